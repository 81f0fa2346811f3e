package domain

import "fmt"

// TextChunk is a bounded plain-text excerpt of an article prepared for
// embedding. Chunks are derived data: they are regenerated on every indexing
// pass and never persisted outside the vector store.
type TextChunk struct {
	Text         string `json:"text"`
	ArticleID    string `json:"articleId"`
	ArticleTitle string `json:"articleTitle"`
	ChunkIndex   int    `json:"chunkIndex"`
}

// VectorID returns the deterministic vector document id for this chunk, so a
// re-index of the same article overwrites its previous chunks in place.
func (c *TextChunk) VectorID() string {
	return ChunkVectorID(c.ArticleID, c.ChunkIndex)
}

// ChunkVectorID builds the vector document id for an (article, chunk) pair.
func ChunkVectorID(articleID string, chunkIndex int) string {
	return fmt.Sprintf("%s-chunk-%d", articleID, chunkIndex)
}

// VectorDocument is one embedded chunk ready for upsert into the vector store.
type VectorDocument struct {
	ID       string        `json:"id"`
	Vector   []float32     `json:"vector"`
	Metadata ChunkMetadata `json:"metadata"`
}

// ChunkMetadata is the payload stored alongside each vector.
type ChunkMetadata struct {
	ArticleID    string `json:"articleId"`
	ArticleTitle string `json:"articleTitle"`
	ChunkIndex   int    `json:"chunkIndex"`
	Text         string `json:"text"`
}

// VectorMatch is a single similarity-search hit from the vector store.
type VectorMatch struct {
	ID       string        `json:"id"`
	Score    float32       `json:"score"`
	Metadata ChunkMetadata `json:"metadata"`
}

// RAGSearchResult is a retrieved chunk mapped into the shape the prompt
// builder consumes.
type RAGSearchResult struct {
	Chunk        string  `json:"chunk"`
	ArticleID    string  `json:"articleId"`
	ArticleTitle string  `json:"articleTitle"`
	Score        float32 `json:"score"`
}
