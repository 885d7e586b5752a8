// Package stdlib defines the pluggable standard-library resolution seam
// described in spec.md §4.3/§6. The standard-library source files
// themselves are out of scope for this module; only the resolution
// contract lives here.
package stdlib

import "strings"

// StdDirPrefix is the specifier prefix a StdLibLocator is responsible
// for, per spec.md §6 ("std/*").
const StdDirPrefix = "std/"

// StdLibLocator resolves a std/* import specifier to a concrete file
// path that a source.FileReader can then read. Absence of a configured
// locator means std/* imports are unresolved (reported as MOD005).
type StdLibLocator interface {
	// Resolve returns the filesystem path for specifier (e.g. "std/io"),
	// or ok=false if this locator does not recognize it.
	Resolve(specifier string) (path string, ok bool)
}

// IsStdSpecifier reports whether specifier names a standard-library
// module, per the std/* convention.
func IsStdSpecifier(specifier string) bool {
	return strings.HasPrefix(specifier, StdDirPrefix)
}

// MapLocator is a StdLibLocator backed by a fixed specifier -> path
// table, sufficient for tests and for embedding hosts that ship a small
// fixed standard library.
type MapLocator map[string]string

func (m MapLocator) Resolve(specifier string) (string, bool) {
	path, ok := m[specifier]
	return path, ok
}
