package driven

import (
	"context"

	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/core/domain"
)

// RawDocumentStore persists raw scraped text per topic.
// Backed by the filesystem: one text file per topic key.
type RawDocumentStore interface {
	// LoadRaw reads the persisted documents for a topic. An empty slice
	// means nothing has been scraped for the topic yet.
	LoadRaw(ctx context.Context, topic string) ([]domain.Document, error)

	// SaveRaw stores scraped content for a topic, replacing any
	// previous content.
	SaveRaw(ctx context.Context, topic, source, content string) error
}

// ManifestStore persists the ordered chunk texts for a topic alongside
// the vector index, so that a search result position can be mapped back
// to its chunk after a restart.
type ManifestStore interface {
	// SaveManifest writes chunk texts in index order. The round trip is
	// lossless even when a chunk contains the separator sequence.
	SaveManifest(topic string, chunks []domain.Chunk) error

	// LoadManifest reads chunk texts back in index order. Returns
	// domain.ErrNotFound when no manifest exists for the topic, and
	// domain.ErrCorruptIndex when the file cannot be parsed.
	LoadManifest(topic string) ([]domain.Chunk, error)
}
