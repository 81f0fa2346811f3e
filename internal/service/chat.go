package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/doubletutu/portfolio-api/internal/config"
	"github.com/doubletutu/portfolio-api/internal/domain"
	"github.com/doubletutu/portfolio-api/internal/logger"
	"github.com/doubletutu/portfolio-api/internal/prompts"
	"github.com/doubletutu/portfolio-api/internal/repository"
)

// ErrChatNotConfigured is returned when the chat API key is absent.
var ErrChatNotConfigured = errors.New("chat API key is not configured")

// articleSummaryLimit bounds the plain-text summary length per article in the
// system prompt context block.
const articleSummaryLimit = 500

// articleContextCount is how many recent articles are summarized into the
// system prompt.
const articleContextCount = 5

// ChatService forwards visitor messages to the hosted chat-completion API
// with the site persona, a digest of recent articles, bounded conversation
// history and, when the vector index is available, RAG-augmented context.
type ChatService struct {
	client       *resty.Client
	endpoint     string
	model        string
	historyLimit int
	configured   bool

	articles *repository.ArticleRepository
	rag      *RAGService // nil when the vector store is not configured
	logger   *logger.Logger
}

// NewChatService creates a new chat service.
// Parameters:
//   - cfg: chat API configuration (key, endpoint, model, history bound).
//   - articles: article store used to build the recent-articles context.
//   - rag: optional RAG service; nil disables retrieval augmentation.
//   - log: logger instance.
//
// Returns:
//   - *ChatService: initialized chat client wrapper.
func NewChatService(cfg *config.ChatConfig, articles *repository.ArticleRepository, rag *RAGService, log *logger.Logger) *ChatService {
	client := resty.New()
	client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")

	historyLimit := cfg.HistoryLimit
	if historyLimit <= 0 {
		historyLimit = 20
	}

	return &ChatService{
		client:       client,
		endpoint:     strings.TrimSuffix(cfg.Endpoint, "/") + "/chat/completions",
		model:        cfg.Model,
		historyLimit: historyLimit,
		configured:   cfg.APIKey != "",
		articles:     articles,
		rag:          rag,
		logger:       log,
	}
}

func (s *ChatService) log(ctx context.Context) *logger.Logger {
	if l := logger.FromContext(ctx); l != nil {
		return l
	}
	return s.logger
}

type chatCompletionRequest struct {
	Model    string               `json:"model"`
	Messages []domain.ChatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Reply sends a visitor message to the chat model and returns the assistant's
// answer. History beyond the configured bound is discarded oldest-first.
// Returns ErrChatNotConfigured when no API key is set.
func (s *ChatService) Reply(ctx context.Context, message string, history []domain.ChatMessage) (string, error) {
	if !s.configured {
		return "", ErrChatNotConfigured
	}

	systemPrompt := prompts.AssistantSystemPrompt + s.buildArticlesContext(ctx)

	userContent := message
	if s.rag != nil {
		augmented, err := s.rag.Query(ctx, message, defaultTopK)
		if err != nil {
			// Retrieval is best-effort: fall back to the raw message.
			s.log(ctx).WithError(err).Warn("RAG augmentation failed, using raw message")
		} else {
			userContent = augmented
		}
	}

	if len(history) > s.historyLimit {
		history = history[len(history)-s.historyLimit:]
	}

	messages := make([]domain.ChatMessage, 0, len(history)+2)
	messages = append(messages, domain.ChatMessage{Role: "system", Content: systemPrompt})
	messages = append(messages, history...)
	messages = append(messages, domain.ChatMessage{Role: "user", Content: userContent})

	req := chatCompletionRequest{
		Model:    s.model,
		Messages: messages,
	}

	var resp chatCompletionResponse
	httpResp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&resp).
		SetError(&resp).
		Post(s.endpoint)
	if err != nil {
		return "", fmt.Errorf("failed to call chat API: %w", err)
	}

	if httpResp.IsError() {
		if resp.Error != nil && resp.Error.Message != "" {
			return "", fmt.Errorf("chat API error: %s", resp.Error.Message)
		}
		return "", fmt.Errorf("chat API error: status %d", httpResp.StatusCode())
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return prompts.ChatFallbackReply, nil
	}
	return resp.Choices[0].Message.Content, nil
}

var reWhitespaceRun = regexp.MustCompile(`\s+`)

// buildArticlesContext summarizes the most recent articles into a context
// block appended to the system prompt. Failures degrade to a short notice
// instead of failing the chat request.
func (s *ChatService) buildArticlesContext(ctx context.Context) string {
	articles, err := s.articles.GetAll(ctx)
	if err != nil {
		s.log(ctx).WithError(err).Error("Failed to load articles for chat context")
		return "\n## 站长文章\n加载文章失败。\n"
	}
	if len(articles) == 0 {
		return "\n## 站长文章\n暂无文章。\n"
	}

	sort.Slice(articles, func(i, j int) bool {
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})
	if len(articles) > articleContextCount {
		articles = articles[:articleContextCount]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n## 站长文章（最新 %d 篇摘要）\n", len(articles))
	for i := range articles {
		plain := cleanMarkdown(articles[i].Content)
		plain = reWhitespaceRun.ReplaceAllString(plain, " ")
		summary := []rune(strings.TrimSpace(plain))
		if len(summary) > articleSummaryLimit {
			summary = append(summary[:articleSummaryLimit], []rune("...")...)
		}
		fmt.Fprintf(&b, "### %s\n%s\n\n", articles[i].Title, string(summary))
	}
	return b.String()
}
