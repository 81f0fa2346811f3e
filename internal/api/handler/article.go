package handler

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/doubletutu/portfolio-api/internal/domain"
	"github.com/doubletutu/portfolio-api/internal/logger"
	"github.com/doubletutu/portfolio-api/internal/repository"
	"github.com/doubletutu/portfolio-api/internal/service"
)

// maxUploadFileSize bounds article file uploads.
const maxUploadFileSize = 10 << 20 // 10MB

// ArticleHandler handles article CRUD and upload endpoints.
type ArticleHandler struct {
	articles *repository.ArticleRepository
	logger   *logger.Logger
}

// NewArticleHandler creates a new article handler.
// Parameters:
//   - articles: article repository instance.
//   - log: logger instance.
//
// Returns:
//   - *ArticleHandler: initialized handler.
func NewArticleHandler(articles *repository.ArticleRepository, log *logger.Logger) *ArticleHandler {
	return &ArticleHandler{
		articles: articles,
		logger:   log,
	}
}

// List handles GET /api/articles. With ?simple=true it returns the trimmed
// list sorted by publish time descending.
func (h *ArticleHandler) List(c *gin.Context) {
	if c.Query("simple") == "true" {
		items, err := h.articles.ListItems(c.Request.Context())
		if err != nil {
			logger.CtxError(c.Request.Context(), "Failed to list articles: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list articles"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"articles": items})
		return
	}

	articles, err := h.articles.GetAll(c.Request.Context())
	if err != nil {
		logger.CtxError(c.Request.Context(), "Failed to list articles: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list articles"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

// CreateArticleRequest is the POST /api/articles body.
type CreateArticleRequest struct {
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	PublishedAt *time.Time `json:"publishedAt"`
}

// Create handles POST /api/articles.
func (h *ArticleHandler) Create(c *gin.Context) {
	var req CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if req.Title == "" || req.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and content are required"})
		return
	}

	publishedAt := time.Now()
	if req.PublishedAt != nil {
		publishedAt = *req.PublishedAt
	}

	article, err := h.createArticle(c, req.Title, req.Content, publishedAt)
	if err != nil {
		logger.CtxError(c.Request.Context(), "Failed to create article: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create article"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"article": article})
}

// Delete handles DELETE /api/articles?id=<id>.
func (h *ArticleHandler) Delete(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Article id is required"})
		return
	}

	err := h.articles.Delete(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}
	if err != nil {
		logger.CtxError(c.Request.Context(), "Failed to delete article: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete article"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdateTitleRequest is the PATCH /api/articles body.
type UpdateTitleRequest struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// UpdateTitle handles PATCH /api/articles. Only the title is editable; the
// slug stays stable so published URLs keep working.
func (h *ArticleHandler) UpdateTitle(c *gin.Context) {
	var req UpdateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if req.ID == "" || req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Article id and title are required"})
		return
	}

	article, err := h.articles.UpdateTitle(c.Request.Context(), req.ID, req.Title)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}
	if err != nil {
		logger.CtxError(c.Request.Context(), "Failed to update article title: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update article"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"article": article})
}

// ViewRequest is the POST /api/articles/view body.
type ViewRequest struct {
	Slug string `json:"slug"`
}

// IncrementView handles POST /api/articles/view.
func (h *ArticleHandler) IncrementView(c *gin.Context) {
	var req ViewRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Article slug is required"})
		return
	}

	article, err := h.articles.IncrementViewCount(c.Request.Context(), req.Slug)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}
	if err != nil {
		logger.CtxError(c.Request.Context(), "Failed to increment view count: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update view count"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"viewCount": article.ViewCount})
}

// uploadTextRequest is the JSON fallback body for POST /api/articles/upload.
type uploadTextRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Upload handles POST /api/articles/upload. Multipart requests carry a .md or
// .docx file (optionally with a custom title field); JSON requests carry
// {title, content} directly.
func (h *ArticleHandler) Upload(c *gin.Context) {
	contentType := c.GetHeader("Content-Type")
	if strings.Contains(contentType, "multipart/form-data") {
		h.uploadFile(c)
		return
	}

	var req uploadTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if req.Title == "" || req.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and content are required"})
		return
	}

	article, err := h.createArticle(c, req.Title, req.Content, time.Now())
	if err != nil {
		logger.CtxError(c.Request.Context(), "Failed to create article: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create article"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"article": article})
}

var reMarkdownTitle = regexp.MustCompile(`(?m)^#\s+(.+)$`)

func (h *ArticleHandler) uploadFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}
	if fileHeader.Size > maxUploadFileSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is too large"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		logger.CtxError(c.Request.Context(), "Failed to open upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}
	defer f.Close()

	data := make([]byte, fileHeader.Size)
	if _, err := io.ReadFull(f, data); err != nil {
		logger.CtxError(c.Request.Context(), "Failed to read upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	customTitle := c.PostForm("title")
	title := customTitle
	if title == "" {
		title = strings.TrimSuffix(fileHeader.Filename, filepath.Ext(fileHeader.Filename))
	}

	var content string
	switch ext {
	case ".md":
		content = string(data)
		// Prefer the first heading as the title unless the admin set one.
		if m := reMarkdownTitle.FindStringSubmatch(content); m != nil && customTitle == "" {
			title = strings.TrimSpace(m[1])
		}
	case ".docx":
		content, err = service.ExtractDocxText(data)
		if err != nil {
			logger.CtxError(c.Request.Context(), "Failed to extract docx: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse .docx file"})
			return
		}
	case ".pdf":
		c.JSON(http.StatusBadRequest, gin.H{"error": "PDF files are not supported, please upload .md or .docx"})
		return
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported file format, please upload .md or .docx"})
		return
	}

	article, err := h.createArticle(c, title, strings.TrimSpace(content), time.Now())
	if err != nil {
		logger.CtxError(c.Request.Context(), "Failed to create article: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create article"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"article": article})
}

func (h *ArticleHandler) createArticle(c *gin.Context, title, content string, publishedAt time.Time) (*domain.Article, error) {
	ctx := c.Request.Context()
	slug, err := h.articles.GenerateUniqueSlug(ctx, Slugify(title))
	if err != nil {
		return nil, err
	}
	return h.articles.Create(ctx, title, slug, content, publishedAt)
}

var reSlugStrip = regexp.MustCompile(`[^a-z0-9\x{4e00}-\x{9fa5}]+`)

// Slugify derives a URL-safe slug from a title: lowercase, runs of anything
// outside [a-z0-9] and CJK replaced with a dash, edges trimmed.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = reSlugStrip.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
