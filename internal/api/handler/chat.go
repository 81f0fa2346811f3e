package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/doubletutu/portfolio-api/internal/domain"
	"github.com/doubletutu/portfolio-api/internal/logger"
	"github.com/doubletutu/portfolio-api/internal/service"
)

// ChatHandler handles the visitor chat endpoint.
type ChatHandler struct {
	chat   *service.ChatService
	logger *logger.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(chat *service.ChatService, log *logger.Logger) *ChatHandler {
	return &ChatHandler{
		chat:   chat,
		logger: log,
	}
}

// ChatRequest is the POST /api/chat body.
type ChatRequest struct {
	Message string               `json:"message"`
	History []domain.ChatMessage `json:"history"`
}

// Chat handles POST /api/chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	reply, err := h.chat.Reply(c.Request.Context(), req.Message, req.History)
	if errors.Is(err, service.ErrChatNotConfigured) {
		logger.CtxError(c.Request.Context(), "Chat requested but API key is missing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Chat service is not configured"})
		return
	}
	if err != nil {
		logger.CtxError(c.Request.Context(), "Chat request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate reply"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
