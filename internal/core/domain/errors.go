package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotReady indicates retrieval was attempted before an index was
	// built or loaded for the topic. This is a caller contract violation,
	// not a transient condition.
	ErrNotReady = errors.New("retriever not ready for topic")

	// ErrNoDocuments indicates no raw documents exist for a topic.
	// The caller must scrape and rebuild before retrieval is possible.
	ErrNoDocuments = errors.New("no documents for topic")

	// ErrCorruptIndex indicates a persisted index or chunk manifest is
	// unreadable or inconsistent. The retriever treats the topic as
	// unbuilt and a rebuild is required.
	ErrCorruptIndex = errors.New("corrupt persisted index state")

	// ErrDimensionMismatch indicates the embedding dimension does not
	// match the index dimension. This is a configuration error and is
	// never retried.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Report generation falls back to heuristic output where possible.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Semantic retrieval and similarity scoring are disabled.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrNoResume indicates no resume has been uploaded to the session.
	ErrNoResume = errors.New("no resume uploaded")

	// ErrNoJobDescription indicates no job description has been stored
	// in the session.
	ErrNoJobDescription = errors.New("no job description stored")

	// ErrUnsupportedFileType indicates an upload with a file type the
	// text extractor cannot handle.
	ErrUnsupportedFileType = errors.New("unsupported file type")
)
