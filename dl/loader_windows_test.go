//go:build windows

package dl

var systemLibraryCandidates = []string{
	"kernel32.dll",
}

const (
	knownSymbol  = "GetCurrentProcessId"
	strcpySymbol = "lstrcpyA"
	strlenSymbol = "lstrlenA"
)
