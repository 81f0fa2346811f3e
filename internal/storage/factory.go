package storage

import (
	"fmt"

	"github.com/doubletutu/portfolio-api/internal/config"
)

// NewStorage creates the ObjectStorage backend selected by configuration.
// Parameters:
//   - cfg: storage configuration; cfg.Type picks the implementation.
//
// Returns:
//   - ObjectStorage: initialized storage client.
//   - error: non-nil if the backend cannot be constructed.
func NewStorage(cfg *config.StorageConfig) (ObjectStorage, error) {
	switch cfg.Type {
	case "local", "":
		return NewLocalStorage(cfg.LocalDir, cfg.PublicURL)
	case "s3", "r2", "s3compatible":
		return NewS3Storage(&S3Config{
			Type:      StorageType(cfg.Type),
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			UseSSL:    cfg.UseSSL,
			Bucket:    cfg.Bucket,
			Region:    cfg.Region,
			PublicURL: cfg.PublicURL,
		})
	default:
		return nil, fmt.Errorf("unknown storage type: %q", cfg.Type)
	}
}
