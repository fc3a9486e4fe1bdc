package dl

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// ErrNotFound is returned by Resolve when no search directory holds the library.
var ErrNotFound = errors.New("shared library not found")

type libraryNaming struct {
	prefix    string
	extension string
	// versionedGlob matches versioned file names given the undecorated base.
	versionedGlob func(base string) string
}

func namingFor(goos string) libraryNaming {
	switch goos {
	case "windows":
		return libraryNaming{
			extension: ".dll",
			versionedGlob: func(base string) string {
				return base + "*.dll"
			},
		}
	case "darwin", "ios":
		return libraryNaming{
			prefix:    "lib",
			extension: ".dylib",
			versionedGlob: func(base string) string {
				return "lib" + base + ".*.dylib"
			},
		}
	default:
		return libraryNaming{
			prefix:    "lib",
			extension: ".so",
			versionedGlob: func(base string) string {
				return "lib" + base + ".so.*"
			},
		}
	}
}

// LibraryFileName returns the platform file name for a library base name,
// such as libfoo.so, libfoo.dylib or foo.dll for "foo". A name that already
// carries the platform prefix or extension is not decorated again.
func LibraryFileName(base string) string {
	return libraryFileName(runtime.GOOS, base)
}

func libraryFileName(goos, base string) string {
	n := namingFor(goos)
	name := strings.TrimSpace(base)
	if name == "" {
		return ""
	}
	if n.prefix != "" && !strings.HasPrefix(name, n.prefix) {
		name = n.prefix + name
	}
	if !hasLibraryExtension(name, n.extension) {
		name += n.extension
	}
	return name
}

func hasLibraryExtension(name, extension string) bool {
	if strings.EqualFold(filepath.Ext(name), extension) {
		return true
	}
	// libfoo.so.1.2
	return extension == ".so" && strings.Contains(name, ".so.")
}

func undecoratedBase(goos, name string) string {
	n := namingFor(goos)
	base := strings.TrimPrefix(name, n.prefix)
	if i := strings.Index(base, n.extension); i > 0 {
		base = base[:i]
	}
	return base
}

// Resolve locates a shared library on disk.
//
// A name containing a path separator is validated as a file and returned as
// an absolute path. Otherwise each directory is searched in order for the
// name as given, its platform file name, and versioned variants of it. When
// nothing matches, Resolve returns the name unchanged together with an error
// wrapping ErrNotFound, so the caller may still hand the name to the OS
// search path.
func Resolve(name string, dirs ...string) (string, error) {
	return resolveLibrary(runtime.GOOS, name, dirs)
}

func resolveLibrary(goos, name string, dirs []string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("library name is empty")
	}

	if strings.ContainsAny(name, `/\`) {
		return validateLibraryFile(name)
	}

	var invalidCandidates []error
	trackCandidateError := func(path string, validationErr error) {
		if validationErr == nil || errors.Is(validationErr, os.ErrNotExist) {
			return
		}
		invalidCandidates = append(invalidCandidates, fmt.Errorf("%s: %w", path, validationErr))
	}

	fileName := libraryFileName(goos, name)
	exact := []string{name}
	if fileName != name {
		exact = append(exact, fileName)
	}
	glob := namingFor(goos).versionedGlob(undecoratedBase(goos, fileName))

	for _, dir := range dirs {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			continue
		}

		for _, candidate := range exact {
			path := filepath.Join(dir, candidate)
			resolved, err := validateLibraryFile(path)
			if err == nil {
				return resolved, nil
			}
			trackCandidateError(path, err)
		}

		matches, err := filepath.Glob(filepath.Join(dir, glob))
		if err != nil {
			return "", fmt.Errorf("failed to search %q for %s: %w", dir, name, err)
		}
		sort.Strings(matches)
		for _, match := range matches {
			resolved, err := validateLibraryFile(match)
			if err == nil {
				return resolved, nil
			}
			trackCandidateError(match, err)
		}
	}

	if len(invalidCandidates) > 0 {
		return name, fmt.Errorf("found candidates for %s but none are valid: %w", name, errors.Join(append(invalidCandidates, ErrNotFound)...))
	}
	return name, fmt.Errorf("%s: %w", name, ErrNotFound)
}

// validateLibraryFile returns the absolute path of a non-empty regular file.
func validateLibraryFile(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("library name is empty")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("library %s: %w", path, err)
	}

	info, err := os.Stat(abs)
	switch {
	case err != nil:
		return "", fmt.Errorf("library %s: %w", abs, err)
	case info.IsDir():
		return "", fmt.Errorf("library %s is a directory", abs)
	case info.Size() == 0:
		return "", fmt.Errorf("library %s has zero size", abs)
	}
	return abs, nil
}
