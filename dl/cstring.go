package dl

import "unsafe"

// maxCStringLen bounds the scan for a terminator so a corrupt pointer fails
// with a truncated string instead of walking the entire address space.
const maxCStringLen = 1 << 20

// minValidAddress rejects pointers into the zero page.
const minValidAddress = 4096

// GoString copies the NUL-terminated C string at ptr into a Go string.
// It returns "" for a null pointer or an address inside the zero page.
//
// ptr is expected to reference C memory. Go heap addresses read correctly
// while kept alive, but checkptr (enabled by -race) rejects converting them
// back from a uintptr.
func GoString(ptr uintptr) string {
	if ptr < minValidAddress {
		return ""
	}

	base := unsafe.Pointer(ptr)
	n := 0
	for n < maxCStringLen && *(*byte)(unsafe.Add(base, n)) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(base), n))
}

// CString returns a NUL-terminated copy of s and the address of its first
// byte, suitable for passing to C functions as a const char*.
//
// The caller must keep the returned slice alive for as long as C code may
// read the pointer:
//
//	name, namePtr := dl.CString("id")
//	status := cFunction(namePtr)
//	runtime.KeepAlive(name)
func CString(s string) ([]byte, uintptr) {
	b := append([]byte(s), 0)
	return b, uintptr(unsafe.Pointer(&b[0]))
}
