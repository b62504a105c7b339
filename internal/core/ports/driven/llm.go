package driven

import "context"

// LLMService generates text completions.
// This is an optional service - when nil, services that depend on it
// return domain.ErrLLMUnavailable or fall back to heuristic output.
type LLMService interface {
	// Generate produces a completion for the given prompt.
	Generate(ctx context.Context, prompt string) (string, error)

	// GenerateCreative produces a completion with a higher sampling
	// temperature, for tasks such as cover letter writing.
	GenerateCreative(ctx context.Context, prompt string) (string, error)

	// ModelName returns the name of the underlying model.
	ModelName() string

	// Close releases resources.
	Close() error
}
