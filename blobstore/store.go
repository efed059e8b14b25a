package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store is an abstraction for reading input tables and writing exports.
//
// Input files are parsed as a whole, so reads are sequential streams rather
// than random access. Implementations must be safe for concurrent use;
// loaders fetch independent files in parallel.
type Store interface {
	// Open opens a blob for sequential reading.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// Put writes a blob atomically. An existing blob with the same name
	// is replaced.
	Put(ctx context.Context, name string, data []byte) error
}
