package outbound

import (
	"context"
	"io"
)

// BlobStore holds product images. Keys are opaque to callers.
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, r io.Reader) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}
