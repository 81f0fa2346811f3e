package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestArticleRepo(t *testing.T) *ArticleRepository {
	t.Helper()
	return NewArticleRepository(filepath.Join(t.TempDir(), "articles.json"))
}

// TestArticleCreateAndGet verifies a created article round-trips through the
// file store with all fields intact
func TestArticleCreateAndGet(t *testing.T) {
	repo := newTestArticleRepo(t)
	ctx := context.Background()
	publishedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	created, err := repo.Create(ctx, "My Post", "my-post", "hello world", publishedAt)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == "" {
		t.Error("Created article has empty id")
	}
	if created.ViewCount != 0 {
		t.Errorf("New article ViewCount = %d, want 0", created.ViewCount)
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Title != "My Post" || got.Slug != "my-post" || got.Content != "hello world" {
		t.Errorf("Stored article mismatch: %+v", got)
	}
	if !got.PublishedAt.Equal(publishedAt) {
		t.Errorf("PublishedAt = %v, want %v", got.PublishedAt, publishedAt)
	}

	bySlug, err := repo.GetBySlug(ctx, "my-post")
	if err != nil {
		t.Fatalf("GetBySlug failed: %v", err)
	}
	if bySlug.ID != created.ID {
		t.Errorf("GetBySlug returned id %s, want %s", bySlug.ID, created.ID)
	}
}

// TestArticleCreateIDCollision verifies two creates in the same millisecond
// still get distinct ids
func TestArticleCreateIDCollision(t *testing.T) {
	repo := newTestArticleRepo(t)
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	ctx := context.Background()
	first, err := repo.Create(ctx, "One", "one", "a", fixed)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second, err := repo.Create(ctx, "Two", "two", "b", fixed)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if first.ID == second.ID {
		t.Errorf("Colliding creates got the same id %s", first.ID)
	}
}

// TestGenerateUniqueSlug verifies the suffix counter walks past taken slugs
func TestGenerateUniqueSlug(t *testing.T) {
	repo := newTestArticleRepo(t)
	ctx := context.Background()

	testCases := []struct {
		name     string
		expected string
	}{
		{name: "base slug free", expected: "my-post"},
		{name: "first suffix", expected: "my-post-1"},
		{name: "second suffix", expected: "my-post-2"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			slug, err := repo.GenerateUniqueSlug(ctx, "my-post")
			if err != nil {
				t.Fatalf("GenerateUniqueSlug failed: %v", err)
			}
			if slug != tc.expected {
				t.Errorf("GenerateUniqueSlug = %q, want %q", slug, tc.expected)
			}
			if _, err := repo.Create(ctx, "My Post", slug, "content", time.Now()); err != nil {
				t.Fatalf("Create failed: %v", err)
			}
		})
	}
}

// TestIncrementViewCount verifies increments persist and unknown slugs leave
// the store untouched
func TestIncrementViewCount(t *testing.T) {
	repo := newTestArticleRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "Post", "post", "content", time.Now())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	for want := 1; want <= 3; want++ {
		got, err := repo.IncrementViewCount(ctx, "post")
		if err != nil {
			t.Fatalf("IncrementViewCount failed: %v", err)
		}
		if got.ViewCount != want {
			t.Errorf("ViewCount = %d, want %d", got.ViewCount, want)
		}
	}

	if _, err := repo.IncrementViewCount(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("IncrementViewCount on unknown slug = %v, want ErrNotFound", err)
	}

	stored, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if stored.ViewCount != 3 {
		t.Errorf("Stored ViewCount = %d, want 3 after failed increment", stored.ViewCount)
	}
}

// TestUpdateTitleKeepsSlug verifies a title change never touches the slug
func TestUpdateTitleKeepsSlug(t *testing.T) {
	repo := newTestArticleRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "Old Title", "old-title", "content", time.Now())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := repo.UpdateTitle(ctx, created.ID, "New Title")
	if err != nil {
		t.Fatalf("UpdateTitle failed: %v", err)
	}
	if updated.Title != "New Title" {
		t.Errorf("Title = %q, want %q", updated.Title, "New Title")
	}
	if updated.Slug != "old-title" {
		t.Errorf("Slug changed to %q, must stay %q", updated.Slug, "old-title")
	}

	if _, err := repo.UpdateTitle(ctx, "missing", "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateTitle on unknown id = %v, want ErrNotFound", err)
	}
}

// TestArticleDelete verifies removal and the not-found path
func TestArticleDelete(t *testing.T) {
	repo := newTestArticleRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "Post", "post", "content", time.Now())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.GetByID(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID after delete = %v, want ErrNotFound", err)
	}
	if err := repo.Delete(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Second delete = %v, want ErrNotFound", err)
	}
}

// TestListItemsSortedNewestFirst verifies the trimmed list ordering
func TestListItemsSortedNewestFirst(t *testing.T) {
	repo := newTestArticleRepo(t)
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, slug := range []string{"oldest", "middle", "newest"} {
		if _, err := repo.Create(ctx, slug, slug, "content", base.AddDate(0, 0, i)); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	items, err := repo.ListItems(ctx)
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(items))
	}
	for i, want := range []string{"newest", "middle", "oldest"} {
		if items[i].Slug != want {
			t.Errorf("Item %d slug = %q, want %q", i, items[i].Slug, want)
		}
	}
}
