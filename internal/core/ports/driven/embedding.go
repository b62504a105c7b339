package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Note: this is separate from the vector index, which stores and
// searches vectors. EmbeddingService generates vectors; the index
// stores them. The dimension is fixed per model instance and must match
// between index build time and query time.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts in one request.
	// The result has one vector per input text, in input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 384, 768).
	// This is determined by the model and must match the index.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}
