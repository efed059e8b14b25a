// Package fileio opens input blobs with transparent decompression.
package fileio

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/hupe1980/ecotab/blobstore"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Logical strips a single trailing compression suffix (.gz, .zst, .lz4)
// from name, so format detection sees the underlying file type.
func Logical(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".gz", ".zst", ".lz4":
		return strings.TrimSuffix(name, path.Ext(name))
	}
	return name
}

// Open opens name from store, wrapping the stream in a decompressor when
// the name carries a compression suffix.
func Open(ctx context.Context, store blobstore.Store, name string) (io.ReadCloser, error) {
	rc, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(path.Ext(name)) {
	case ".gz":
		zr, err := gzip.NewReader(rc)
		if err != nil {
			_ = rc.Close()
			return nil, err
		}
		return &readCloser{r: zr, closers: []io.Closer{zr, rc}}, nil
	case ".zst":
		zr, err := zstd.NewReader(rc)
		if err != nil {
			_ = rc.Close()
			return nil, err
		}
		return &readCloser{r: zr, closers: []io.Closer{closerFunc(func() error { zr.Close(); return nil }), rc}}, nil
	case ".lz4":
		return &readCloser{r: lz4.NewReader(rc), closers: []io.Closer{rc}}, nil
	default:
		return rc, nil
	}
}

type readCloser struct {
	r       io.Reader
	closers []io.Closer
}

func (rc *readCloser) Read(p []byte) (int, error) { return rc.r.Read(p) }

func (rc *readCloser) Close() error {
	var first error
	for _, c := range rc.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
