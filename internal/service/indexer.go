package service

import (
	"context"
	"fmt"

	"github.com/doubletutu/portfolio-api/internal/domain"
	"github.com/doubletutu/portfolio-api/internal/logger"
	"github.com/doubletutu/portfolio-api/internal/repository"
)

// staleSweepLimit bounds how many chunk ids beyond the current count are
// deleted on re-index. The previous pass's chunk count is not stored locally,
// so the sweep covers a fixed window; deleting an absent id is a no-op in
// every backend.
const staleSweepLimit = 64

// IndexerService materializes the vector-store representation of articles:
// load, chunk, embed in one batch, upsert in one batch.
type IndexerService struct {
	articles  *repository.ArticleRepository
	vectors   repository.VectorStore
	embedding EmbeddingProvider
	chunker   *Chunker
	logger    *logger.Logger
}

// NewIndexerService creates a new indexer service.
// Parameters:
//   - articles: article store to read content from.
//   - vectors: vector store holding the searchable index.
//   - embedding: embedding provider for chunk texts.
//   - chunker: chunking strategy; nil uses the default configuration.
//   - log: logger instance.
//
// Returns:
//   - *IndexerService: initialized indexer.
func NewIndexerService(
	articles *repository.ArticleRepository,
	vectors repository.VectorStore,
	embedding EmbeddingProvider,
	chunker *Chunker,
	log *logger.Logger,
) *IndexerService {
	if chunker == nil {
		chunker = NewChunker(nil)
	}
	return &IndexerService{
		articles:  articles,
		vectors:   vectors,
		embedding: embedding,
		chunker:   chunker,
		logger:    log,
	}
}

func (s *IndexerService) log(ctx context.Context) *logger.Logger {
	if l := logger.FromContext(ctx); l != nil {
		return l
	}
	return s.logger
}

// IndexArticle (re)indexes a single article. The article's content is chunked,
// all chunk texts are embedded in one batched call, and the resulting
// documents are upserted under deterministic ids so a re-index overwrites the
// previous pass. Stale ids beyond the new chunk count are deleted first, so a
// shrunken article does not leave orphaned chunks behind.
// Returns repository.ErrNotFound when the article does not exist; indexing an
// article that yields zero chunks is a warning, not an error.
func (s *IndexerService) IndexArticle(ctx context.Context, articleID string) error {
	article, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		return err
	}

	chunks := s.chunker.Chunk(article.Content, article.ID, article.Title)
	if len(chunks) == 0 {
		s.log(ctx).WithField(logger.FieldArticleID, articleID).
			Warn("No chunks generated for article, skipping index")
		return nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	embeddings, err := s.embedding.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to embed chunks for article %s: %w", articleID, err)
	}

	docs := make([]domain.VectorDocument, len(chunks))
	for i, chunk := range chunks {
		docs[i] = domain.VectorDocument{
			ID:     chunk.VectorID(),
			Vector: embeddings[i],
			Metadata: domain.ChunkMetadata{
				ArticleID:    chunk.ArticleID,
				ArticleTitle: chunk.ArticleTitle,
				ChunkIndex:   chunk.ChunkIndex,
				Text:         chunk.Text,
			},
		}
	}

	// Sweep ids the previous pass may have written beyond the new count.
	stale := make([]string, 0, staleSweepLimit)
	for i := len(chunks); i < len(chunks)+staleSweepLimit; i++ {
		stale = append(stale, domain.ChunkVectorID(article.ID, i))
	}
	if err := s.vectors.Delete(ctx, stale); err != nil {
		return fmt.Errorf("failed to delete stale chunks for article %s: %w", articleID, err)
	}

	if err := s.vectors.Upsert(ctx, docs); err != nil {
		return fmt.Errorf("failed to upsert chunks for article %s: %w", articleID, err)
	}

	s.log(ctx).WithFields(logger.Fields{
		logger.FieldArticleID: articleID,
		logger.FieldCount:     len(chunks),
	}).Info("Indexed article")
	return nil
}

// IndexReport summarizes a full indexing pass.
type IndexReport struct {
	Indexed int `json:"indexed"`
	Failed  int `json:"failed"`
}

// IndexAll (re)indexes every stored article. A failure on one article is
// logged and counted but does not stop the remaining articles from being
// indexed.
func (s *IndexerService) IndexAll(ctx context.Context) (*IndexReport, error) {
	articles, err := s.articles.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	report := &IndexReport{}
	for i := range articles {
		if err := s.IndexArticle(ctx, articles[i].ID); err != nil {
			s.log(ctx).WithError(err).
				WithField(logger.FieldArticleID, articles[i].ID).
				Error("Failed to index article")
			report.Failed++
			continue
		}
		report.Indexed++
	}

	s.log(ctx).WithFields(logger.Fields{
		"indexed": report.Indexed,
		"failed":  report.Failed,
	}).Info("Indexing complete")
	return report, nil
}
