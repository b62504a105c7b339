// Package filesystem provides file-based stores for scraped raw text
// and chunk manifests, partitioned by topic key.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/core/domain"
	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/core/ports/driven"
)

// Ensure DocStore implements the interfaces.
var (
	_ driven.RawDocumentStore = (*DocStore)(nil)
	_ driven.ManifestStore    = (*DocStore)(nil)
)

// rawSuffix is appended to the topic key for raw scraped text files.
const rawSuffix = "_data.txt"

// manifestSuffix is appended to the topic key for chunk manifests.
const manifestSuffix = "_docs.txt"

// DocStore stores raw scraped text and chunk manifests under a data
// directory, one file per topic key.
type DocStore struct {
	rawDir      string
	manifestDir string
}

// NewDocStore creates a store rooted at dataDir. Raw text lives in
// dataDir/raw, manifests in dataDir/index.
func NewDocStore(dataDir string) (*DocStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".careeragent", "data")
	}

	s := &DocStore{
		rawDir:      filepath.Join(dataDir, "raw"),
		manifestDir: filepath.Join(dataDir, "index"),
	}
	for _, dir := range []string{s.rawDir, s.manifestDir} {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}
	return s, nil
}

// IndexDir returns the directory holding index and manifest files.
func (s *DocStore) IndexDir() string {
	return s.manifestDir
}

// LoadRaw reads the persisted documents for a topic. Returns an empty
// slice when nothing has been scraped for the topic yet.
func (s *DocStore) LoadRaw(_ context.Context, topic string) ([]domain.Document, error) {
	key := domain.TopicKey(topic)
	path := filepath.Join(s.rawDir, key+rawSuffix)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading raw documents: %w", err)
	}

	content := strings.TrimSpace(string(data))
	if content == "" {
		return nil, nil
	}

	doc := domain.Document{
		ID:        uuid.New().String(),
		Source:    key + rawSuffix,
		Topic:     key,
		Content:   content,
		CreatedAt: time.Now(),
	}
	return []domain.Document{doc}, nil
}

// SaveRaw stores scraped content for a topic, replacing any previous
// content.
func (s *DocStore) SaveRaw(_ context.Context, topic, source, content string) error {
	key := domain.TopicKey(topic)
	path := filepath.Join(s.rawDir, key+rawSuffix)

	header := fmt.Sprintf("# Source: %s\n# Scraped: %s\n\n", source, time.Now().Format(time.RFC3339))
	if err := os.WriteFile(path, []byte(header+content), 0600); err != nil {
		return fmt.Errorf("writing raw documents: %w", err)
	}
	return nil
}
