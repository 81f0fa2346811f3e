package domain

import "time"

// Article represents a blog post persisted in the articles JSON file.
// ID is assigned at creation time and never changes; Slug is derived from the
// title at creation and stays stable even when the title is edited later.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Content     string    `json:"content"`
	ViewCount   int       `json:"viewCount"`
	PublishedAt time.Time `json:"publishedAt"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ArticleListItem is the trimmed article projection returned by list endpoints.
type ArticleListItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	ViewCount   int       `json:"viewCount"`
	PublishedAt time.Time `json:"publishedAt"`
}

// ListItem returns the trimmed projection of the article.
func (a *Article) ListItem() ArticleListItem {
	return ArticleListItem{
		ID:          a.ID,
		Title:       a.Title,
		Slug:        a.Slug,
		ViewCount:   a.ViewCount,
		PublishedAt: a.PublishedAt,
	}
}
