package repository

import (
	"context"
	"fmt"

	"github.com/doubletutu/portfolio-api/internal/config"
	"github.com/doubletutu/portfolio-api/internal/domain"
)

// VectorStore abstracts the hosted vector database holding article chunk
// embeddings. The store is the source of truth for the search index; the
// articles JSON file remains the source of truth for article text.
type VectorStore interface {
	// Upsert inserts or overwrites the given documents by id.
	Upsert(ctx context.Context, docs []domain.VectorDocument) error

	// Query returns the topK nearest documents to vector, with metadata.
	Query(ctx context.Context, vector []float32, topK int) ([]domain.VectorMatch, error)

	// Delete removes the documents with the given ids. Unknown ids are not
	// an error.
	Delete(ctx context.Context, ids []string) error

	// Close releases any underlying connections.
	Close() error
}

// NewVectorStore builds the vector store backend selected by configuration.
// Parameters:
//   - cfg: vector store configuration; cfg.Backend picks the implementation.
//   - dimensions: embedding vector size the index must hold.
//
// Returns:
//   - VectorStore: initialized backend client.
//   - error: non-nil if the backend cannot be constructed.
func NewVectorStore(cfg *config.VectorConfig, dimensions int) (VectorStore, error) {
	switch cfg.Backend {
	case "qdrant":
		return NewQdrantStore(&QdrantConnectionConfig{
			Host:            cfg.Qdrant.Host,
			Port:            cfg.Qdrant.Port,
			Collection:      cfg.Qdrant.Collection,
			APIKey:          cfg.Qdrant.APIKey,
			UseTLS:          cfg.Qdrant.UseTLS,
			VectorDimension: dimensions,
		})
	case "upstash", "":
		return NewUpstashStore(cfg.Upstash.URL, cfg.Upstash.Token), nil
	default:
		return nil, fmt.Errorf("unknown vector backend: %q", cfg.Backend)
	}
}
