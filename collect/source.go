package collect

import (
	"io"
	"os"
	"path/filepath"
)

// Source is the resource-reader capability the collector consumes. A
// resource is opaque line-oriented text addressed by name.
// Implementations must be safe for concurrent use.
type Source interface {
	// Exists reports whether the named resource can be opened for
	// reading.
	Exists(name string) bool

	// Open opens the named resource for sequential reading. The caller
	// closes the returned reader.
	Open(name string) (io.ReadCloser, error)
}

// DirSource reads resources from the local filesystem. Names are
// resolved relative to Root; an empty Root means the working
// directory.
type DirSource struct {
	Root string
}

func (d DirSource) path(name string) string {
	if d.Root == "" {
		return name
	}
	return filepath.Join(d.Root, name)
}

// Exists reports whether name resolves to a regular file.
func (d DirSource) Exists(name string) bool {
	info, err := os.Stat(d.path(name))
	return err == nil && info.Mode().IsRegular()
}

// Open opens the file for reading.
func (d DirSource) Open(name string) (io.ReadCloser, error) {
	return os.Open(d.path(name))
}
