// Package storage holds the object-store abstraction for the SVG archive.
// Every stored asset keeps a verbatim copy of its markup in an
// S3-compatible bucket, addressed by the asset id; the bucket copy backs
// the presigned download endpoint. Implementations stream all I/O and
// never touch local disk.
package storage

import (
	"context"
	"io"
	"time"
)

// PutOptions define optional parameters for archiving an object.
// Size should be the exact number of bytes if known; -1 lets the backend
// buffer/chunk as it supports. ContentType and Metadata are optional.
type PutOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an archived object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the S3-compatible client interface used by the asset service.
type Storage interface {
	// Put uploads an object under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutOptions) (ObjectInfo, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited URL that can be used to download the object without credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
