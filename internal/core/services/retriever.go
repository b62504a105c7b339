package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/chunker"
	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/core/domain"
	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/core/ports/driven"
	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/core/ports/driving"
	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/logger"
	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/vectorindex/flat"
)

// Ensure RetrieverService implements the interface.
var _ driving.Retriever = (*RetrieverService)(nil)

// indexSuffix names the persisted vector index file for a topic.
// It shares a base name with the chunk manifest written next to it.
const indexSuffix = "_index.bin"

// topicState tracks one topic's index through its lifecycle.
// A topic starts unbuilt, and becomes ready once a persisted index is
// loaded or a fresh one is built. The per-topic mutex serialises
// builds so two callers cannot race to write the same files.
type topicState struct {
	mu     sync.RWMutex
	ready  bool
	index  *flat.Index
	chunks []domain.Chunk
}

// RetrieverService maintains one vector index per topic and answers
// nearest-chunk queries against it. Indexes are loaded lazily on first
// use and kept in memory for the life of the process.
type RetrieverService struct {
	docStore  driven.RawDocumentStore
	manifests driven.ManifestStore
	embedder  driven.EmbeddingService
	splitter  *chunker.Splitter
	indexDir  string

	mu     sync.Mutex
	topics map[string]*topicState
}

// NewRetrieverService creates a retriever over the given stores.
// indexDir is where per-topic index files are written, alongside the
// manifests the ManifestStore maintains.
func NewRetrieverService(
	docStore driven.RawDocumentStore,
	manifests driven.ManifestStore,
	embedder driven.EmbeddingService,
	splitter *chunker.Splitter,
	indexDir string,
) *RetrieverService {
	return &RetrieverService{
		docStore:  docStore,
		manifests: manifests,
		embedder:  embedder,
		splitter:  splitter,
		indexDir:  indexDir,
		topics:    make(map[string]*topicState),
	}
}

// state returns the tracked state for a topic key, creating it on
// first use.
func (s *RetrieverService) state(key string) *topicState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.topics[key]
	if !ok {
		st = &topicState{}
		s.topics[key] = st
	}
	return st
}

func (s *RetrieverService) indexPath(key string) string {
	return filepath.Join(s.indexDir, key+indexSuffix)
}

// EnsureReady makes the topic's index available, loading a persisted
// one when it exists and building from raw documents otherwise.
// Idempotent: a ready topic returns immediately. Returns
// domain.ErrNoDocuments when nothing has been scraped for the topic.
func (s *RetrieverService) EnsureReady(ctx context.Context, topic string) error {
	key := domain.TopicKey(topic)
	st := s.state(key)

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.ready {
		return nil
	}

	// Try a persisted index first.
	if err := s.loadLocked(st, key); err == nil {
		logger.Debug("Loaded persisted index for %q (%d chunks)", key, len(st.chunks))
		return nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		// Corrupt or mismatched state counts as unbuilt.
		logger.Warn("Discarding persisted index for %q: %v", key, err)
	}

	return s.buildLocked(ctx, st, key)
}

// Rebuild discards any in-memory and persisted index for the topic and
// builds a fresh one from raw documents. Used after a re-scrape.
func (s *RetrieverService) Rebuild(ctx context.Context, topic string) error {
	key := domain.TopicKey(topic)
	st := s.state(key)

	st.mu.Lock()
	defer st.mu.Unlock()

	st.ready = false
	st.index = nil
	st.chunks = nil
	return s.buildLocked(ctx, st, key)
}

// loadLocked restores a persisted index and manifest pair. Caller
// holds the topic write lock.
func (s *RetrieverService) loadLocked(st *topicState, key string) error {
	idx, err := flat.LoadFile(s.indexPath(key))
	if err != nil {
		return err
	}

	chunks, err := s.manifests.LoadManifest(key)
	if err != nil {
		return err
	}

	if idx.Len() != len(chunks) {
		return fmt.Errorf("index has %d vectors but manifest has %d chunks: %w",
			idx.Len(), len(chunks), domain.ErrCorruptIndex)
	}
	if idx.Dimension() != s.embedder.Dimensions() {
		return fmt.Errorf("index dimension %d, embedder dimension %d: %w",
			idx.Dimension(), s.embedder.Dimensions(), domain.ErrDimensionMismatch)
	}

	st.index = idx
	st.chunks = chunks
	st.ready = true
	return nil
}

// buildLocked chunks the topic's raw documents, embeds every chunk and
// builds and persists a fresh index. Caller holds the topic write lock.
func (s *RetrieverService) buildLocked(ctx context.Context, st *topicState, key string) error {
	logger.Section("Index Build")
	logger.Debug("Building index for topic %q", key)

	docs, err := s.docStore.LoadRaw(ctx, key)
	if err != nil {
		return fmt.Errorf("load raw documents for %q: %w", key, err)
	}
	if len(docs) == 0 {
		return fmt.Errorf("topic %q: %w", key, domain.ErrNoDocuments)
	}

	chunks := s.splitter.SplitAll(docs)
	if len(chunks) == 0 {
		return fmt.Errorf("topic %q produced no chunks: %w", key, domain.ErrNoDocuments)
	}
	logger.Debug("Split %d documents into %d chunks", len(docs), len(chunks))

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed %d chunks for %q: %w", len(chunks), key, err)
	}

	idx, err := flat.Build(s.embedder.Dimensions(), vectors)
	if err != nil {
		return fmt.Errorf("build index for %q: %w", key, err)
	}

	if err := idx.SaveFile(s.indexPath(key)); err != nil {
		return fmt.Errorf("persist index for %q: %w", key, err)
	}
	if err := s.manifests.SaveManifest(key, chunks); err != nil {
		return fmt.Errorf("persist manifest for %q: %w", key, err)
	}

	st.index = idx
	st.chunks = chunks
	st.ready = true
	logger.Debug("Index ready for %q: %d vectors, dimension %d", key, idx.Len(), idx.Dimension())
	return nil
}

// Retrieve returns up to k chunks nearest to the query, nearest first.
// The topic must be ready; call EnsureReady first.
func (s *RetrieverService) Retrieve(ctx context.Context, topic, query string, k int) ([]domain.Chunk, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d: %w", k, domain.ErrInvalidInput)
	}

	key := domain.TopicKey(topic)
	st := s.state(key)

	st.mu.RLock()
	defer st.mu.RUnlock()

	if !st.ready {
		return nil, fmt.Errorf("topic %q: %w", key, domain.ErrNotReady)
	}

	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := st.index.Search(vec, k)
	if err != nil {
		return nil, fmt.Errorf("search topic %q: %w", key, err)
	}

	results := make([]domain.Chunk, 0, len(hits))
	for _, h := range hits {
		if h.Position < 0 || h.Position >= len(st.chunks) {
			return nil, fmt.Errorf("hit position %d outside manifest of %d chunks: %w",
				h.Position, len(st.chunks), domain.ErrCorruptIndex)
		}
		results = append(results, st.chunks[h.Position])
	}
	logger.Debug("Retrieved %d chunks for topic %q", len(results), key)
	return results, nil
}

// Ready reports whether the topic's index is ready without triggering
// a load or build.
func (s *RetrieverService) Ready(topic string) bool {
	st := s.state(domain.TopicKey(topic))
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.ready
}
