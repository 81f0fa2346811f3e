package service

import (
	"regexp"
	"strings"

	"github.com/doubletutu/portfolio-api/internal/domain"
)

// ChunkConfig bounds the chunks produced for embedding. Sizes are in runes so
// CJK content is measured in characters, not bytes.
type ChunkConfig struct {
	MaxChunkSize int // maximum runes per chunk
	ChunkOverlap int // runes carried over between adjacent chunks
	MinChunkSize int // chunks below this are suppressed
}

// DefaultChunkConfig returns the production chunking parameters.
func DefaultChunkConfig() *ChunkConfig {
	return &ChunkConfig{
		MaxChunkSize: 500,
		ChunkOverlap: 50,
		MinChunkSize: 100,
	}
}

// Chunker converts article markdown into bounded, overlapping plain-text
// chunks. It is a pure function of its input: no I/O, deterministic output.
type Chunker struct {
	cfg ChunkConfig
}

// NewChunker creates a Chunker. A nil cfg uses DefaultChunkConfig.
func NewChunker(cfg *ChunkConfig) *Chunker {
	if cfg == nil {
		cfg = DefaultChunkConfig()
	}
	return &Chunker{cfg: *cfg}
}

var (
	reHeading   = regexp.MustCompile(`#{1,6}\s`)
	reBold      = regexp.MustCompile(`\*\*`)
	reItalic    = regexp.MustCompile(`\*`)
	reCode      = regexp.MustCompile("`{1,3}")
	reImage     = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	reLink      = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	reBlankRuns = regexp.MustCompile(`\n\s*\n`)
	reParaSplit = regexp.MustCompile(`\n\n+`)
)

// cleanMarkdown strips markdown syntax down to plain text: headings, emphasis
// and code markers removed, images dropped, links reduced to their text,
// blank-line runs collapsed.
func cleanMarkdown(content string) string {
	s := reImage.ReplaceAllString(content, "")
	s = reHeading.ReplaceAllString(s, "")
	s = reBold.ReplaceAllString(s, "")
	s = reItalic.ReplaceAllString(s, "")
	s = reCode.ReplaceAllString(s, "")
	s = reLink.ReplaceAllString(s, "$1")
	s = reBlankRuns.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// Chunk splits an article's markdown content into ordered text chunks.
// Paragraphs are accumulated up to MaxChunkSize; when a chunk is emitted, the
// trailing ChunkOverlap runes seed the next one. A single paragraph longer
// than MaxChunkSize is hard-sliced into fixed windows advancing by
// MaxChunkSize-ChunkOverlap runes. Chunks below MinChunkSize are suppressed,
// including an under-sized final remainder.
func (c *Chunker) Chunk(content, articleID, articleTitle string) []domain.TextChunk {
	var chunks []domain.TextChunk
	chunkIndex := 0

	emit := func(text string) {
		text = strings.TrimSpace(text)
		if text == "" {
			return
		}
		chunks = append(chunks, domain.TextChunk{
			Text:         text,
			ArticleID:    articleID,
			ArticleTitle: articleTitle,
			ChunkIndex:   chunkIndex,
		})
		chunkIndex++
	}

	paragraphs := reParaSplit.Split(cleanMarkdown(content), -1)

	var current []rune
	for _, paragraph := range paragraphs {
		para := []rune(strings.TrimSpace(paragraph))
		if len(para) == 0 {
			continue
		}

		if len(para) > c.cfg.MaxChunkSize {
			// Flush the buffer; a buffer below the minimum is dropped.
			if len(current) >= c.cfg.MinChunkSize {
				emit(string(current))
			}

			// Hard-slice the oversized paragraph into sliding windows.
			step := c.cfg.MaxChunkSize - c.cfg.ChunkOverlap
			for len(para) > c.cfg.MaxChunkSize {
				emit(string(para[:c.cfg.MaxChunkSize]))
				para = para[step:]
			}
			current = para
			continue
		}

		joined := joinParagraph(current, para)
		if len(joined) <= c.cfg.MaxChunkSize {
			current = joined
			continue
		}

		// Adding the paragraph would overflow: emit what we have and seed
		// the next chunk with the trailing overlap.
		if len(current) >= c.cfg.MinChunkSize {
			emit(string(current))
		}
		seed := current
		if len(seed) > c.cfg.ChunkOverlap {
			seed = seed[len(seed)-c.cfg.ChunkOverlap:]
		}
		current = joinParagraph(seed, para)
		if len(current) > c.cfg.MaxChunkSize {
			// Seed plus paragraph overflows on its own; give up the
			// overlap to keep the size bound.
			current = para
		}
	}

	// The final buffer is only kept when it clears the minimum.
	if len([]rune(strings.TrimSpace(string(current)))) > c.cfg.MinChunkSize {
		emit(string(current))
	}

	return chunks
}

func joinParagraph(current, para []rune) []rune {
	if len(current) == 0 {
		out := make([]rune, len(para))
		copy(out, para)
		return out
	}
	joined := make([]rune, 0, len(current)+2+len(para))
	joined = append(joined, current...)
	joined = append(joined, '\n', '\n')
	joined = append(joined, para...)
	return joined
}
