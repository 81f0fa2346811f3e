package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/doubletutu/portfolio-api/internal/domain"
	"github.com/doubletutu/portfolio-api/internal/prompts"
	"github.com/doubletutu/portfolio-api/internal/repository"
)

// defaultTopK is the number of chunks retrieved when the caller does not ask
// for a specific amount.
const defaultTopK = 3

// RAGService retrieves article chunks related to a query and assembles the
// augmented prompt handed to the chat model.
type RAGService struct {
	vectors   repository.VectorStore
	embedding EmbeddingProvider
}

// NewRAGService creates a new RAG service.
func NewRAGService(vectors repository.VectorStore, embedding EmbeddingProvider) *RAGService {
	return &RAGService{
		vectors:   vectors,
		embedding: embedding,
	}
}

// SearchRelated embeds the query and returns the topK most similar chunks.
// Hits whose stored chunk text is empty are dropped.
func (s *RAGService) SearchRelated(ctx context.Context, query string, topK int) ([]domain.RAGSearchResult, error) {
	if topK <= 0 {
		topK = defaultTopK
	}

	queryVector, err := s.embedding.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	matches, err := s.vectors.Query(ctx, queryVector, topK)
	if err != nil {
		return nil, fmt.Errorf("failed to query vector store: %w", err)
	}

	results := make([]domain.RAGSearchResult, 0, len(matches))
	for _, match := range matches {
		if match.Metadata.Text == "" {
			continue
		}
		results = append(results, domain.RAGSearchResult{
			Chunk:        match.Metadata.Text,
			ArticleID:    match.Metadata.ArticleID,
			ArticleTitle: match.Metadata.ArticleTitle,
			Score:        match.Score,
		})
	}
	return results, nil
}

// BuildPrompt assembles the augmented prompt from the retrieved chunks. With
// no results the raw query is returned unchanged so the caller degrades to a
// plain, non-augmented conversation.
func (s *RAGService) BuildPrompt(query string, results []domain.RAGSearchResult) string {
	if len(results) == 0 {
		return query
	}

	blocks := make([]string, len(results))
	for i, result := range results {
		blocks[i] = fmt.Sprintf(prompts.RAGContextBlock,
			i+1, result.ArticleTitle, result.Score*100, result.Chunk)
	}
	context := strings.Join(blocks, prompts.RAGContextSeparator)

	return fmt.Sprintf(prompts.RAGPromptTemplate, context, query)
}

// Query is the full retrieval flow: search related chunks, then build the
// augmented prompt.
func (s *RAGService) Query(ctx context.Context, query string, topK int) (string, error) {
	results, err := s.SearchRelated(ctx, query, topK)
	if err != nil {
		return "", err
	}
	return s.BuildPrompt(query, results), nil
}
