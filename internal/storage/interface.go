package storage

import (
	"context"
	"io"
)

// ObjectStorage stores uploaded project images and hands back the public URL
// the frontend embeds.
type ObjectStorage interface {
	// Upload stores an object under key.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// GetURL returns the public URL for accessing an object.
	GetURL(key string) string

	// Delete removes an object from storage.
	Delete(ctx context.Context, key string) error
}
