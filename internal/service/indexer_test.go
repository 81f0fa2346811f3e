package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/doubletutu/portfolio-api/internal/domain"
	"github.com/doubletutu/portfolio-api/internal/repository"
)

func newTestArticleRepo(t *testing.T) *repository.ArticleRepository {
	t.Helper()
	return repository.NewArticleRepository(filepath.Join(t.TempDir(), "articles.json"))
}

func mustCreateArticle(t *testing.T, repo *repository.ArticleRepository, title, content string) *domain.Article {
	t.Helper()
	article, err := repo.Create(context.Background(), title, strings.ToLower(title), content, time.Now())
	if err != nil {
		t.Fatalf("Failed to create article: %v", err)
	}
	return article
}

// TestIndexArticleNotFound verifies indexing an unknown article surfaces
// ErrNotFound
func TestIndexArticleNotFound(t *testing.T) {
	indexer := NewIndexerService(newTestArticleRepo(t), &fakeVectorStore{}, &fakeEmbedder{}, nil, nil)

	err := indexer.IndexArticle(context.Background(), "missing")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("IndexArticle = %v, want ErrNotFound", err)
	}
}

// TestIndexArticleDeterministicIDs verifies chunks are upserted under the
// article-scoped sequential ids a re-index overwrites
func TestIndexArticleDeterministicIDs(t *testing.T) {
	repo := newTestArticleRepo(t)
	article := mustCreateArticle(t, repo, "post", strings.Repeat("Go is expressive. ", 80))

	store := &fakeVectorStore{}
	embedder := &fakeEmbedder{vector: []float32{0.5, 0.5}}
	indexer := NewIndexerService(repo, store, embedder, nil, nil)

	if err := indexer.IndexArticle(context.Background(), article.ID); err != nil {
		t.Fatalf("IndexArticle failed: %v", err)
	}

	if len(store.upserted) == 0 {
		t.Fatal("No documents upserted")
	}
	for i, doc := range store.upserted {
		want := domain.ChunkVectorID(article.ID, i)
		if doc.ID != want {
			t.Errorf("Document %d id = %q, want %q", i, doc.ID, want)
		}
		if doc.Metadata.ArticleID != article.ID || doc.Metadata.ChunkIndex != i {
			t.Errorf("Document %d metadata mismatch: %+v", i, doc.Metadata)
		}
		if doc.Metadata.Text == "" {
			t.Errorf("Document %d has empty chunk text", i)
		}
	}

	// All chunk texts went out in a single batched embedding call.
	if len(embedder.batches) != 1 {
		t.Errorf("EmbedBatch called %d times, want 1", len(embedder.batches))
	}
}

// TestIndexArticleSweepsStaleChunks verifies ids beyond the new chunk count
// are deleted before the upsert
func TestIndexArticleSweepsStaleChunks(t *testing.T) {
	repo := newTestArticleRepo(t)
	article := mustCreateArticle(t, repo, "post", strings.Repeat("Short but indexable content. ", 10))

	store := &fakeVectorStore{}
	indexer := NewIndexerService(repo, store, &fakeEmbedder{vector: []float32{1}}, nil, nil)

	if err := indexer.IndexArticle(context.Background(), article.ID); err != nil {
		t.Fatalf("IndexArticle failed: %v", err)
	}

	if len(store.deleted) != 1 {
		t.Fatalf("Delete called %d times, want 1", len(store.deleted))
	}
	stale := store.deleted[0]
	if len(stale) != staleSweepLimit {
		t.Fatalf("Stale sweep covered %d ids, want %d", len(stale), staleSweepLimit)
	}
	if want := domain.ChunkVectorID(article.ID, len(store.upserted)); stale[0] != want {
		t.Errorf("Sweep starts at %q, want first id past the new count %q", stale[0], want)
	}
}

// TestIndexArticleNoChunks verifies an article too short to chunk is skipped
// without error and without touching the vector store
func TestIndexArticleNoChunks(t *testing.T) {
	repo := newTestArticleRepo(t)
	article := mustCreateArticle(t, repo, "stub", "tiny")

	store := &fakeVectorStore{}
	indexer := NewIndexerService(repo, store, &fakeEmbedder{vector: []float32{1}}, nil, nil)

	if err := indexer.IndexArticle(context.Background(), article.ID); err != nil {
		t.Fatalf("IndexArticle failed: %v", err)
	}
	if len(store.upserted) != 0 || len(store.deleted) != 0 {
		t.Error("Vector store should be untouched when no chunks are produced")
	}
}

// TestIndexAllIsolatesFailures verifies one failing article does not stop the
// rest of the pass
func TestIndexAllIsolatesFailures(t *testing.T) {
	repo := newTestArticleRepo(t)
	good := mustCreateArticle(t, repo, "good", strings.Repeat("Healthy article content. ", 20))
	bad := mustCreateArticle(t, repo, "bad", strings.Repeat("Doomed article content. ", 20))

	store := &fakeVectorStore{failArticleID: bad.ID}
	indexer := NewIndexerService(repo, store, &fakeEmbedder{vector: []float32{1}}, nil, nil)

	report, err := indexer.IndexAll(context.Background())
	if err != nil {
		t.Fatalf("IndexAll failed: %v", err)
	}
	if report.Indexed != 1 || report.Failed != 1 {
		t.Errorf("Report = %+v, want 1 indexed and 1 failed", report)
	}

	for _, doc := range store.upserted {
		if doc.Metadata.ArticleID != good.ID {
			t.Errorf("Unexpected upsert for article %s", doc.Metadata.ArticleID)
		}
	}
}
