package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/doubletutu/portfolio-api/internal/domain"
	"github.com/doubletutu/portfolio-api/internal/logger"
	"github.com/doubletutu/portfolio-api/internal/repository"
)

// ProjectHandler handles project listing and editing endpoints.
type ProjectHandler struct {
	projects *repository.ProjectRepository
	logger   *logger.Logger
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(projects *repository.ProjectRepository, log *logger.Logger) *ProjectHandler {
	return &ProjectHandler{
		projects: projects,
		logger:   log,
	}
}

// List handles GET /api/projects.
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projects.GetAll(c.Request.Context())
	if err != nil {
		logger.CtxError(c.Request.Context(), "Failed to list projects: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list projects"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// Patch handles PATCH /api/projects. Absent fields stay untouched; fields
// present as empty strings clear the stored value.
func (h *ProjectHandler) Patch(c *gin.Context) {
	var body struct {
		ID          string  `json:"id"`
		Emoji       *string `json:"emoji"`
		Catchphrase *string `json:"catchphrase"`
		ImageURL    *string `json:"imageUrl"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if body.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Project id is required"})
		return
	}

	patch := domain.ProjectPatch{
		Emoji:       body.Emoji,
		Catchphrase: body.Catchphrase,
		ImageURL:    body.ImageURL,
	}
	if patch.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	project, err := h.projects.Update(c.Request.Context(), body.ID, patch)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	if err != nil {
		logger.CtxError(c.Request.Context(), "Failed to update project: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": project})
}
