package handler

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"math/rand"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	// Registered decoders back image validation below.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/doubletutu/portfolio-api/internal/logger"
	"github.com/doubletutu/portfolio-api/internal/storage"
)

// maxImageSize bounds project image uploads.
const maxImageSize = 2 << 20 // 2MB

// UploadHandler handles project image uploads.
type UploadHandler struct {
	storage storage.ObjectStorage
	logger  *logger.Logger
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(store storage.ObjectStorage, log *logger.Logger) *UploadHandler {
	return &UploadHandler{
		storage: store,
		logger:  log,
	}
}

var imageExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// UploadImage handles POST /api/upload. The file must be a real image (the
// bytes are decoded, not just the extension checked) of at most 2MB.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}
	if fileHeader.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image must be 2MB or smaller"})
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	contentType, ok := imageExtensions[ext]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported image format"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		logger.CtxError(c.Request.Context(), "Failed to open upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageSize+1))
	if err != nil {
		logger.CtxError(c.Request.Context(), "Failed to read upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}
	if len(data) > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image must be 2MB or smaller"})
		return
	}

	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is not a valid image"})
		return
	}

	key := fmt.Sprintf("project-%d-%06d%s", time.Now().UnixMilli(), rand.Intn(1000000), ext)

	if err := h.storage.Upload(c.Request.Context(), key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		logger.CtxError(c.Request.Context(), "Failed to store upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": h.storage.GetURL(key)})
}
