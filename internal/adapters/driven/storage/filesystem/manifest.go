package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/core/domain"
)

// sentinel separates chunk texts in a manifest file. Occurrences inside
// chunk text are escaped so the round trip stays lossless even for
// adversarial scraped content.
const sentinel = "---DOCUMENT_SEPARATOR---"

// separator is the sentinel on its own line, as written between chunks.
const separator = "\n" + sentinel + "\n"

// escapeChar prefixes escaped sequences inside chunk text.
const escapeChar = '\\'

// SaveManifest writes chunk texts in index order, separated by the
// sentinel line. Chunk order is the contract: position i in the file is
// position i in the vector index.
func (s *DocStore) SaveManifest(topic string, chunks []domain.Chunk) error {
	key := domain.TopicKey(topic)
	path := filepath.Join(s.manifestDir, key+manifestSuffix)

	var b strings.Builder
	for i, c := range chunks {
		if i > 0 {
			b.WriteString(separator)
		}
		b.WriteString(escapeChunk(c.Content))
	}

	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// LoadManifest reads chunk texts back in index order.
func (s *DocStore) LoadManifest(topic string) ([]domain.Chunk, error) {
	key := domain.TopicKey(topic)
	path := filepath.Join(s.manifestDir, key+manifestSuffix)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	parts := strings.Split(string(data), separator)
	chunks := make([]domain.Chunk, 0, len(parts))
	for i, part := range parts {
		content, err := unescapeChunk(part)
		if err != nil {
			return nil, fmt.Errorf("manifest entry %d: %w", i, domain.ErrCorruptIndex)
		}
		chunks = append(chunks, domain.Chunk{
			ID:       uuid.New().String(),
			Topic:    key,
			Content:  content,
			Position: i,
		})
	}
	return chunks, nil
}

// escapeChunk makes chunk text safe to embed between separators.
// Backslashes are doubled and any literal sentinel is prefixed with a
// backslash, so the separator split can never fire inside chunk text.
func escapeChunk(text string) string {
	text = strings.ReplaceAll(text, string(escapeChar), string(escapeChar)+string(escapeChar))
	return strings.ReplaceAll(text, sentinel, string(escapeChar)+sentinel)
}

// unescapeChunk reverses escapeChunk.
func unescapeChunk(text string) (string, error) {
	if !strings.ContainsRune(text, escapeChar) {
		return text, nil
	}

	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); {
		if text[i] != escapeChar {
			b.WriteByte(text[i])
			i++
			continue
		}
		switch {
		case i+1 < len(text) && text[i+1] == escapeChar:
			b.WriteByte(escapeChar)
			i += 2
		case strings.HasPrefix(text[i+1:], sentinel):
			b.WriteString(sentinel)
			i += 1 + len(sentinel)
		default:
			return "", fmt.Errorf("dangling escape at offset %d", i)
		}
	}
	return b.String(), nil
}
