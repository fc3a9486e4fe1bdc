//go:build !windows && !darwin

package dl

var systemLibraryCandidates = []string{
	"libc.so.6",
	"libc.so",
	"libc.musl-x86_64.so.1",
	"libc.musl-aarch64.so.1",
}

const (
	knownSymbol  = "strlen"
	strcpySymbol = "strcpy"
	strlenSymbol = "strlen"
	globalSymbol = "malloc"
)
