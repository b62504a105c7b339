package domain

import (
	"strings"
	"time"
)

// Document represents a raw text document loaded from the scraped data
// store. Documents are immutable once created; they are consumed by the
// chunker during an index build.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Source describes where the content came from (file name or URL).
	Source string

	// Topic is the normalised topic key the document belongs to.
	Topic string

	// Content is the full text content.
	Content string

	// CreatedAt is when the document was loaded.
	CreatedAt time.Time
}

// Chunk is a bounded-length slice of a document, the atomic unit stored
// and searched in the vector index. Chunks are never subdivided further.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the source Document.
	DocumentID string

	// Topic is the normalised topic key the chunk belongs to.
	Topic string

	// Content is the text content of this chunk.
	Content string

	// Position is the ordinal position within the topic corpus. It is
	// the join key between the vector index and the chunk manifest, so
	// ordering must survive persistence.
	Position int
}

// TopicKey normalises a free-form topic name (a career such as
// "Data Science") into the storage partition key used for document
// files, manifests and index files.
func TopicKey(topic string) string {
	key := strings.ToLower(strings.TrimSpace(topic))
	return strings.ReplaceAll(key, " ", "_")
}
