// Package storage abstracts the object store that holds listing images.
//
// Two drivers are available:
//   - "s3"     — S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//   - "local"  — local filesystem, for development
//
// Boot once in internal/server, then address disks by name:
//
//	storage.Connect()
//	storage.Use("s3").PutStream(ctx, "abc_photo.jpg", file)
package storage

import (
	"context"
	"io"
)

// Disk is the object-store driver contract.
type Disk interface {
	// EnsureStore makes sure the backing container exists and serves its
	// objects publicly, creating it when absent.
	EnsureStore(ctx context.Context) error

	// PutStream writes from r to path.
	PutStream(ctx context.Context, path string, r io.Reader) error

	// Get returns the full content of the object at path.
	Get(ctx context.Context, path string) ([]byte, error)

	// Exists reports whether an object exists at path.
	Exists(ctx context.Context, path string) bool

	// Delete removes an object. Deleting a missing object is not an error.
	Delete(ctx context.Context, path string) error

	// URL returns the durable public URL for path.
	URL(path string) string
}
