package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage writes uploads to a directory served as static files. It is
// the default backend for single-host deployments.
type LocalStorage struct {
	dir       string
	publicURL string
}

// NewLocalStorage creates a LocalStorage rooted at dir. Uploaded keys are
// addressable as publicURL + "/" + key.
func NewLocalStorage(dir, publicURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStorage{
		dir:       dir,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}, nil
}

// Upload stores an object as a file under the storage directory.
func (s *LocalStorage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	// Keys are generated server-side, but never trust them with path parts.
	name := filepath.Base(key)
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, reader); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to write upload file: %w", err)
	}
	return nil
}

// GetURL returns the public URL for accessing an object.
func (s *LocalStorage) GetURL(key string) string {
	return s.publicURL + "/" + filepath.Base(key)
}

// Delete removes an object file.
func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(key)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete upload file: %w", err)
	}
	return nil
}
