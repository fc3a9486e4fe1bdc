//go:build !windows && !darwin

package dl

import (
	"errors"

	"github.com/ebitengine/purego"
	"go.uber.org/zap"
)

const hasDefaultScope = true

const defaultScope = purego.RTLD_DEFAULT

func openLibrary(name string) (uintptr, error) {
	return purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_LOCAL)
}

func resolveSymbol(handle uintptr, name string) (uintptr, error) {
	return purego.Dlsym(handle, name)
}

func closeLibrary(handle uintptr) error {
	return purego.Dlclose(handle)
}

func loadDiagnostic(err error) zap.Field {
	var dlErr purego.Dlerror
	if errors.As(err, &dlErr) {
		return zap.String("dlerror", dlErr.Error())
	}
	return zap.Skip()
}
