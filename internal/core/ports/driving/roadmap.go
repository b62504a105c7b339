package driving

import (
	"context"

	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/core/domain"
)

// RoadmapService generates retrieval-grounded career roadmaps.
type RoadmapService interface {
	// GenerateRoadmap detects the career topic in the query, ensures a
	// vector index is ready for it (scraping and building on first
	// use), retrieves grounding chunks and generates a roadmap.
	GenerateRoadmap(ctx context.Context, query string) (*domain.Roadmap, error)

	// QuickTips returns short actionable tips for a career.
	QuickTips(ctx context.Context, career string) ([]string, error)
}

// Retriever exposes the retrieval core to callers.
type Retriever interface {
	// EnsureReady loads a persisted index for the topic or builds one
	// from stored documents. Idempotent. Returns domain.ErrNoDocuments
	// when the topic has no raw documents to build from.
	EnsureReady(ctx context.Context, topic string) error

	// Retrieve returns up to k chunks nearest to the query, nearest
	// first. Returns domain.ErrNotReady when EnsureReady has not
	// succeeded for the topic.
	Retrieve(ctx context.Context, topic, query string, k int) ([]domain.Chunk, error)
}
