// Package chunker splits documents into overlapping fixed-size text
// windows for embedding and indexing.
package chunker

import (
	"strings"

	"github.com/google/uuid"

	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// separators are tried in order when looking for a natural cut point:
// paragraph break, line break, sentence end, word boundary.
var separators = []string{"\n\n", "\n", ". ", " "}

// Splitter splits document content into fixed-size chunks, preferring
// natural boundaries over hard character cuts.
type Splitter struct {
	chunkSize int
	overlap   int
}

// Option configures the splitter.
type Option func(*Splitter)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// New creates a new splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Ensure overlap doesn't exceed chunk size
	if s.overlap >= s.chunkSize {
		s.overlap = s.chunkSize / 4
	}

	return s
}

// ChunkSize returns the configured chunk size in characters.
func (s *Splitter) ChunkSize() int { return s.chunkSize }

// Overlap returns the configured overlap in characters.
func (s *Splitter) Overlap() int { return s.overlap }

// Split chunks a single document. Empty content produces no chunks.
// Every chunk after the first starts overlap characters before the end
// of its predecessor, so context carries across cut points.
func (s *Splitter) Split(doc domain.Document) []domain.Chunk {
	if doc.Content == "" {
		return nil
	}

	content := doc.Content
	contentLen := len(content)

	estimatedChunks := (contentLen / (s.chunkSize - s.overlap)) + 1
	chunks := make([]domain.Chunk, 0, estimatedChunks)

	position := 0
	start := 0

	for start < contentLen {
		end := start + s.chunkSize
		if end >= contentLen {
			end = contentLen
		} else {
			end = s.cutPoint(content, start, end)
		}

		chunks = append(chunks, domain.Chunk{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			Topic:      doc.Topic,
			Content:    content[start:end],
			Position:   position,
		})
		position++

		if end == contentLen {
			break
		}

		// Step back by the overlap so the next chunk repeats the tail
		// of this one.
		next := end - s.overlap
		if next <= start {
			// Forward progress regardless of degenerate parameters.
			next = end
		}
		start = next
	}

	return chunks
}

// SplitAll chunks a sequence of documents in order. Positions are
// assigned across the whole corpus so they match vector index order.
func (s *Splitter) SplitAll(docs []domain.Document) []domain.Chunk {
	var all []domain.Chunk
	for _, doc := range docs {
		for _, c := range s.Split(doc) {
			c.Position = len(all)
			all = append(all, c)
		}
	}
	return all
}

// cutPoint finds the best place to end a chunk that would otherwise be
// cut at end. It prefers the last paragraph break in the window, then
// line break, sentence end and word boundary, falling back to the hard
// cut. A boundary in the first half of the window is ignored to avoid
// producing tiny chunks.
func (s *Splitter) cutPoint(content string, start, end int) int {
	window := content[start:end]
	minCut := len(window) / 2

	for _, sep := range separators {
		idx := strings.LastIndex(window, sep)
		if idx > minCut {
			// Keep the separator with the earlier chunk.
			return start + idx + len(sep)
		}
	}
	return end
}
