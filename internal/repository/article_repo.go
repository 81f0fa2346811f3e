package repository

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/doubletutu/portfolio-api/internal/domain"
)

// articlesFile is the on-disk document shape of the articles store.
type articlesFile struct {
	Articles []domain.Article `json:"articles"`
}

// ArticleRepository persists articles in a single JSON file. Every mutation
// is a read-modify-write of the whole collection; a mutex serializes writers
// within the process and the file itself is replaced atomically, so
// concurrent view-count increments are not lost.
type ArticleRepository struct {
	path string
	mu   sync.Mutex

	// now is swappable in tests for deterministic ids/timestamps.
	now func() time.Time
}

// NewArticleRepository creates an ArticleRepository backed by the file at path.
// Parameters:
//   - path: JSON file location; created on first write.
//
// Returns:
//   - *ArticleRepository: repository instance bound to path.
func NewArticleRepository(path string) *ArticleRepository {
	return &ArticleRepository{path: path, now: time.Now}
}

func (r *ArticleRepository) load() ([]domain.Article, error) {
	var doc articlesFile
	if err := readJSONFile(r.path, &doc); err != nil {
		return nil, err
	}
	return doc.Articles, nil
}

func (r *ArticleRepository) save(articles []domain.Article) error {
	return writeJSONFile(r.path, &articlesFile{Articles: articles})
}

// GetAll returns every stored article.
// Parameters:
//   - ctx: context for call symmetry with other repositories.
//
// Returns:
//   - []domain.Article: all articles, possibly empty.
//   - error: non-nil if the file cannot be read or parsed.
func (r *ArticleRepository) GetAll(ctx context.Context) ([]domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

// ListItems returns the trimmed article list sorted by publish time, newest
// first.
func (r *ArticleRepository) ListItems(ctx context.Context) ([]domain.ArticleListItem, error) {
	articles, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]domain.ArticleListItem, 0, len(articles))
	for i := range articles {
		items = append(items, articles[i].ListItem())
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})
	return items, nil
}

// GetBySlug returns the article with the given slug. The slug is URL-decoded
// first so percent-encoded CJK slugs resolve correctly.
// Returns ErrNotFound when no article matches.
func (r *ArticleRepository) GetBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	if decoded, err := url.QueryUnescape(slug); err == nil {
		slug = decoded
	}

	articles, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range articles {
		if articles[i].Slug == slug {
			return &articles[i], nil
		}
	}
	return nil, ErrNotFound
}

// GetByID returns the article with the given id, or ErrNotFound.
func (r *ArticleRepository) GetByID(ctx context.Context, id string) (*domain.Article, error) {
	articles, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range articles {
		if articles[i].ID == id {
			return &articles[i], nil
		}
	}
	return nil, ErrNotFound
}

// Create appends a new article with a time-derived id, zero view count and
// fresh timestamps, then persists the collection.
// Parameters:
//   - ctx: context for call symmetry.
//   - title, slug, content: article fields; slug must already be unique.
//   - publishedAt: publish timestamp shown on the site.
//
// Returns:
//   - *domain.Article: the stored article.
//   - error: non-nil if the store cannot be read or written.
func (r *ArticleRepository) Create(ctx context.Context, title, slug, content string, publishedAt time.Time) (*domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	articles, err := r.load()
	if err != nil {
		return nil, err
	}

	now := r.now()
	article := domain.Article{
		ID:          strconv.FormatInt(now.UnixMilli(), 10),
		Title:       title,
		Slug:        slug,
		Content:     content,
		ViewCount:   0,
		PublishedAt: publishedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// Millisecond ids can collide when two articles are created in the same
	// tick; bump until free.
	for r.idExists(articles, article.ID) {
		now = now.Add(time.Millisecond)
		article.ID = strconv.FormatInt(now.UnixMilli(), 10)
	}

	articles = append(articles, article)
	if err := r.save(articles); err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *ArticleRepository) idExists(articles []domain.Article, id string) bool {
	for i := range articles {
		if articles[i].ID == id {
			return true
		}
	}
	return false
}

// IncrementViewCount adds one to the view count of the article with the given
// slug and persists the collection. Returns ErrNotFound (leaving the store
// untouched) when the slug is unknown.
func (r *ArticleRepository) IncrementViewCount(ctx context.Context, slug string) (*domain.Article, error) {
	if decoded, err := url.QueryUnescape(slug); err == nil {
		slug = decoded
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	articles, err := r.load()
	if err != nil {
		return nil, err
	}

	for i := range articles {
		if articles[i].Slug == slug {
			articles[i].ViewCount++
			if err := r.save(articles); err != nil {
				return nil, err
			}
			return &articles[i], nil
		}
	}
	return nil, ErrNotFound
}

// UpdateTitle changes an article's title (the slug is intentionally left
// unchanged so existing URLs keep working) and bumps UpdatedAt.
// Returns ErrNotFound when the id is unknown.
func (r *ArticleRepository) UpdateTitle(ctx context.Context, id, title string) (*domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	articles, err := r.load()
	if err != nil {
		return nil, err
	}

	for i := range articles {
		if articles[i].ID == id {
			articles[i].Title = title
			articles[i].UpdatedAt = r.now()
			if err := r.save(articles); err != nil {
				return nil, err
			}
			return &articles[i], nil
		}
	}
	return nil, ErrNotFound
}

// Delete removes the article with the given id. Returns ErrNotFound (leaving
// the store untouched) when the id is unknown.
func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	articles, err := r.load()
	if err != nil {
		return err
	}

	filtered := articles[:0:0]
	for i := range articles {
		if articles[i].ID != id {
			filtered = append(filtered, articles[i])
		}
	}
	if len(filtered) == len(articles) {
		return ErrNotFound
	}
	return r.save(filtered)
}

// GenerateUniqueSlug returns baseSlug if no stored article uses it, otherwise
// the first free "<baseSlug>-<n>" with n counting up from 1.
func (r *ArticleRepository) GenerateUniqueSlug(ctx context.Context, baseSlug string) (string, error) {
	articles, err := r.GetAll(ctx)
	if err != nil {
		return "", err
	}

	used := make(map[string]bool, len(articles))
	for i := range articles {
		used[articles[i].Slug] = true
	}

	slug := baseSlug
	for counter := 1; used[slug]; counter++ {
		slug = fmt.Sprintf("%s-%d", baseSlug, counter)
	}
	return slug, nil
}
