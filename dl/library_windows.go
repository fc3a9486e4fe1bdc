//go:build windows

package dl

import (
	"errors"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sys/windows"
)

// Windows has no process-wide symbol scope: a Loader always holds a module.
const hasDefaultScope = false

const defaultScope = 0

func openLibrary(name string) (uintptr, error) {
	handle, err := windows.LoadLibraryEx(name, 0, 0)
	if err != nil {
		return 0, err
	}
	return uintptr(handle), nil
}

func resolveSymbol(handle uintptr, name string) (uintptr, error) {
	return windows.GetProcAddress(windows.Handle(handle), name)
}

func closeLibrary(handle uintptr) error {
	return windows.FreeLibrary(windows.Handle(handle))
}

func loadDiagnostic(err error) zap.Field {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return zap.Uint32("last_error", uint32(errno))
	}
	return zap.Skip()
}
