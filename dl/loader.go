// Package dl loads shared libraries into the process and resolves symbol
// addresses from them without cgo.
//
// A failed load is fatal: the Loader's logger emits a Fatal entry and the
// process exits. A failed symbol lookup is not: Lookup returns 0 and the
// caller decides what a missing symbol means.
package dl

import (
	"errors"

	"github.com/ebitengine/purego"
	"go.uber.org/zap"
)

var errNullHandle = errors.New("loader returned a null handle")

// Loader owns one loaded shared library. It must not be copied, and it is
// meant to be used from a single goroutine.
type Loader struct {
	name   string
	handle uintptr
	closed bool
	logger *zap.Logger
}

// Option configures New.
type Option func(*Loader)

// WithLogger sets the logger that receives the fatal diagnostic when the
// library cannot be loaded. A nil logger keeps the package logger.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New loads the named library. The name is handed to the host loader as is,
// so both absolute paths and search-path names are accepted.
//
// On every platform except Windows an empty name yields a Loader without a
// library handle whose lookups go to the process default symbol scope.
//
// If the library cannot be loaded New logs a Fatal entry, which terminates the
// process unless the logger was built with a fatal hook that returns. In that
// case the returned Loader is closed and every lookup yields 0.
func New(name string, opts ...Option) *Loader {
	l := &Loader{name: name}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	if l.logger == nil {
		l.logger = Logger()
	}

	if name == "" && hasDefaultScope {
		return l
	}

	handle, err := openLibrary(name)
	if err != nil || handle == 0 {
		if err == nil {
			err = errNullHandle
		}
		l.closed = true
		l.logger.Fatal("can't load library",
			zap.String("library", name),
			loadDiagnostic(err),
			zap.Error(err),
		)
		return l
	}
	l.handle = handle
	return l
}

// Lookup returns the address of the named symbol, or 0 if it does not exist.
// A Loader without a library handle searches the process default scope.
func (l *Loader) Lookup(name string) uintptr {
	if l == nil || l.closed {
		return 0
	}
	addr, err := resolveSymbol(l.scope(), name)
	if err != nil {
		return 0
	}
	return addr
}

// Func binds the named symbol into fptr, which must be a pointer to a func
// variable whose signature matches the C function. It reports whether the
// symbol was found; fptr is left untouched otherwise.
//
// Func panics if fptr is not a pointer to a func, like purego.RegisterFunc.
func (l *Loader) Func(fptr any, name string) bool {
	addr := l.Lookup(name)
	if addr == 0 {
		return false
	}
	purego.RegisterFunc(fptr, addr)
	return true
}

// Close unloads the library. The unload result is ignored and calling Close
// more than once is a no-op. Addresses obtained from the Loader must not be
// used afterwards.
func (l *Loader) Close() {
	if l == nil || l.closed {
		return
	}
	l.closed = true
	if l.handle != 0 {
		_ = closeLibrary(l.handle)
		l.handle = 0
	}
}

func (l *Loader) scope() uintptr {
	if l.handle == 0 {
		return defaultScope
	}
	return l.handle
}
