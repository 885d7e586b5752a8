// Package source defines the file-I/O seam the module loader consumes.
// File reading itself is an external collaborator per spec.md §1 — the
// core depends only on this interface, never on os directly.
package source

// FileReader abstracts reading source file contents by path, so the
// module loader and preprocessor never touch the filesystem directly.
// A production driver (out of scope for this module) backs this with
// os.ReadFile; tests back it with an in-memory map.
type FileReader interface {
	// ReadFile returns the contents of path, or an error if it cannot
	// be read.
	ReadFile(path string) (string, error)

	// Exists reports whether path names a readable file, without
	// reading its contents.
	Exists(path string) bool
}

// MapReader is an in-memory FileReader, used by tests and by any
// embedding host that wants to supply sources without a real
// filesystem.
type MapReader map[string]string

func (m MapReader) ReadFile(path string) (string, error) {
	content, ok := m[path]
	if !ok {
		return "", &NotFoundError{Path: path}
	}
	return content, nil
}

func (m MapReader) Exists(path string) bool {
	_, ok := m[path]
	return ok
}

// NotFoundError reports that a FileReader has no content for a path.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return "source: file not found: " + e.Path
}
