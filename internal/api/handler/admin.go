package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/doubletutu/portfolio-api/internal/logger"
	"github.com/doubletutu/portfolio-api/internal/repository"
	"github.com/doubletutu/portfolio-api/internal/service"
)

// AdminHandler handles maintenance endpoints.
type AdminHandler struct {
	indexer *service.IndexerService // nil when embedding or vector config is missing
	logger  *logger.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(indexer *service.IndexerService, log *logger.Logger) *AdminHandler {
	return &AdminHandler{
		indexer: indexer,
		logger:  log,
	}
}

// IndexArticlesRequest is the POST /api/admin/index-articles body. An empty
// or malformed body means "reindex everything".
type IndexArticlesRequest struct {
	ArticleID string `json:"articleId"`
}

// IndexArticles handles POST /api/admin/index-articles.
func (h *AdminHandler) IndexArticles(c *gin.Context) {
	if h.indexer == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Embedding or vector store configuration missing"})
		return
	}

	var req IndexArticlesRequest
	// Tolerate an empty or malformed body: treat it as index-all.
	_ = c.ShouldBindJSON(&req)

	ctx := c.Request.Context()

	if req.ArticleID != "" {
		err := h.indexer.IndexArticle(ctx, req.ArticleID)
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
			return
		}
		if err != nil {
			logger.CtxError(ctx, "Failed to index article %s: %v", req.ArticleID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to index article"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "indexed": 1})
		return
	}

	report, err := h.indexer.IndexAll(ctx)
	if err != nil {
		logger.CtxError(ctx, "Failed to index articles: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to index articles"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"indexed": report.Indexed,
		"failed":  report.Failed,
	})
}
