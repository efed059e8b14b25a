// Package blobstore provides storage abstraction for input tables and
// exported datasets.
//
// Store is the interface for reading and writing data blobs. Implementations
// must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem with atomic writes
//   - MemoryStore: in-memory store for tests
//   - s3.Store: Amazon S3
//   - minio.Store: MinIO and other S3-compatible storage
//
// # Custom Implementations
//
// Implement the Store interface to support custom storage backends:
//
//	type Store interface {
//	    Open(ctx, name) (io.ReadCloser, error)  // Open for reading
//	    Put(ctx, name, data) error              // Atomic write
//	}
package blobstore
