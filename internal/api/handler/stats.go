package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/doubletutu/portfolio-api/internal/logger"
	"github.com/doubletutu/portfolio-api/internal/repository"
)

// StatsHandler handles visit counter endpoints.
type StatsHandler struct {
	stats  *repository.StatsRepository
	logger *logger.Logger
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(stats *repository.StatsRepository, log *logger.Logger) *StatsHandler {
	return &StatsHandler{
		stats:  stats,
		logger: log,
	}
}

// Get handles GET /api/stats.
func (h *StatsHandler) Get(c *gin.Context) {
	stats, err := h.stats.Get(c.Request.Context())
	if err != nil {
		logger.CtxError(c.Request.Context(), "Failed to read stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// UpdateStatsRequest is the POST /api/stats body. The client supplies its
// local date so the daily counter rolls over in the visitor's timezone.
type UpdateStatsRequest struct {
	Today string `json:"today"`
}

// Update handles POST /api/stats.
func (h *StatsHandler) Update(c *gin.Context) {
	var req UpdateStatsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Today == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Today date is required"})
		return
	}

	stats, err := h.stats.Update(c.Request.Context(), req.Today)
	if err != nil {
		logger.CtxError(c.Request.Context(), "Failed to update stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
