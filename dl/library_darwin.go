package dl

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ebitengine/purego"
	"go.uber.org/zap"
)

const hasDefaultScope = true

const defaultScope = purego.RTLD_DEFAULT

// RTLD_FIRST from <dlfcn.h>; purego does not export it.
const rtldFirst = 0x100

// openLibrary opens the library through a temporary symlink.
// DYLD_FRAMEWORK_PATH takes precedence even over absolute paths, and loading
// via a link with an unrelated path sidesteps that. Each call links inside
// its own temporary directory, so concurrent loads do not share a path.
func openLibrary(name string) (uintptr, error) {
	const flags = purego.RTLD_NOW | purego.RTLD_LOCAL | rtldFirst

	if !strings.ContainsRune(name, os.PathSeparator) {
		return purego.Dlopen(name, flags)
	}

	target, err := filepath.Abs(name)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve absolute path for %q: %w", name, err)
	}

	dir, err := os.MkdirTemp("", "dlopen.")
	if err != nil {
		return 0, fmt.Errorf("failed to create symlink directory: %w", err)
	}
	defer func() {
		_ = os.RemoveAll(dir)
	}()

	link := filepath.Join(dir, filepath.Base(target))
	if err := os.Symlink(target, link); err != nil {
		return 0, fmt.Errorf("failed to link %q: %w", target, err)
	}
	return purego.Dlopen(link, flags)
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
