package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/doubletutu/portfolio-api/internal/domain"
)

// UpstashStore talks to the Upstash Vector REST API. It is the default
// backend: a single index, bearer-token auth, no connection state.
type UpstashStore struct {
	client  *resty.Client
	baseURL string
}

// NewUpstashStore creates an UpstashStore for the given REST endpoint.
// Parameters:
//   - url: index REST URL from UPSTASH_VECTOR_REST_URL.
//   - token: REST token from UPSTASH_VECTOR_REST_TOKEN.
//
// Returns:
//   - *UpstashStore: initialized client wrapper.
func NewUpstashStore(url, token string) *UpstashStore {
	client := resty.New()
	client.SetHeader("Authorization", "Bearer "+token)
	client.SetHeader("Content-Type", "application/json")

	return &UpstashStore{
		client:  client,
		baseURL: strings.TrimSuffix(url, "/"),
	}
}

type upstashVector struct {
	ID       string               `json:"id"`
	Vector   []float32            `json:"vector"`
	Metadata domain.ChunkMetadata `json:"metadata"`
}

type upstashQueryRequest struct {
	Vector          []float32 `json:"vector"`
	TopK            int       `json:"topK"`
	IncludeMetadata bool      `json:"includeMetadata"`
}

type upstashQueryResponse struct {
	Result []struct {
		ID       string               `json:"id"`
		Score    float32              `json:"score"`
		Metadata domain.ChunkMetadata `json:"metadata"`
	} `json:"result"`
	Error string `json:"error,omitempty"`
}

type upstashStatusResponse struct {
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Upsert inserts or overwrites documents by id in a single batch call.
func (s *UpstashStore) Upsert(ctx context.Context, docs []domain.VectorDocument) error {
	if len(docs) == 0 {
		return nil
	}

	body := make([]upstashVector, len(docs))
	for i, doc := range docs {
		body[i] = upstashVector{
			ID:       doc.ID,
			Vector:   doc.Vector,
			Metadata: doc.Metadata,
		}
	}

	var resp upstashStatusResponse
	httpResp, err := s.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&resp).
		SetError(&resp).
		Post(s.baseURL + "/upsert")
	if err != nil {
		return fmt.Errorf("failed to call Upstash upsert: %w", err)
	}
	if httpResp.IsError() {
		return upstashError("upsert", httpResp.StatusCode(), resp.Error)
	}
	return nil
}

// Query returns the topK nearest documents with metadata included.
func (s *UpstashStore) Query(ctx context.Context, vector []float32, topK int) ([]domain.VectorMatch, error) {
	req := upstashQueryRequest{
		Vector:          vector,
		TopK:            topK,
		IncludeMetadata: true,
	}

	var resp upstashQueryResponse
	httpResp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&resp).
		SetError(&resp).
		Post(s.baseURL + "/query")
	if err != nil {
		return nil, fmt.Errorf("failed to call Upstash query: %w", err)
	}
	if httpResp.IsError() {
		return nil, upstashError("query", httpResp.StatusCode(), resp.Error)
	}

	matches := make([]domain.VectorMatch, len(resp.Result))
	for i, item := range resp.Result {
		matches[i] = domain.VectorMatch{
			ID:       item.ID,
			Score:    item.Score,
			Metadata: item.Metadata,
		}
	}
	return matches, nil
}

// Delete removes documents by id in a single batch call.
func (s *UpstashStore) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	var resp upstashStatusResponse
	httpResp, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string][]string{"ids": ids}).
		SetResult(&resp).
		SetError(&resp).
		Post(s.baseURL + "/delete")
	if err != nil {
		return fmt.Errorf("failed to call Upstash delete: %w", err)
	}
	if httpResp.IsError() {
		return upstashError("delete", httpResp.StatusCode(), resp.Error)
	}
	return nil
}

// Close is a no-op; the REST client holds no persistent connections.
func (s *UpstashStore) Close() error {
	return nil
}

func upstashError(op string, status int, detail string) error {
	if detail != "" {
		return fmt.Errorf("Upstash %s error: %s", op, detail)
	}
	return fmt.Errorf("Upstash %s error: status %d", op, status)
}
