package services

import (
	"context"
	"fmt"

	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/core/domain"
)

// --- Mock implementations ---

// mockEmbedder implements driven.EmbeddingService with a deterministic
// embedding: a few byte statistics of the text. Identical text always
// produces identical vectors, so self-matches have distance zero.
type mockEmbedder struct {
	dimensions int
	embedErr   error
	calls      int
}

func newMockEmbedder() *mockEmbedder {
	return &mockEmbedder{dimensions: 4}
}

func (m *mockEmbedder) embed(text string) []float32 {
	v := make([]float32, m.dimensions)
	for i, b := range []byte(text) {
		v[i%m.dimensions] += float32(b) / 255
	}
	v[0] += float32(len(text)) / 100
	return v
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.calls++
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.embed(text), nil
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.calls++
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = m.embed(t)
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int   { return m.dimensions }
func (m *mockEmbedder) ModelName() string { return "mock-embedder" }
func (m *mockEmbedder) Close() error      { return nil }

// mockLLM implements driven.LLMService.
type mockLLM struct {
	response    string
	creative    string
	generateErr error
	prompts     []string
}

func (m *mockLLM) Generate(_ context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.generateErr != nil {
		return "", m.generateErr
	}
	return m.response, nil
}

func (m *mockLLM) GenerateCreative(_ context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.generateErr != nil {
		return "", m.generateErr
	}
	if m.creative != "" {
		return m.creative, nil
	}
	return m.response, nil
}

func (m *mockLLM) ModelName() string { return "mock-llm" }
func (m *mockLLM) Close() error     { return nil }

// mockPromptStore implements driven.PromptStore with trivial
// templates whose placeholder count matches the real defaults.
type mockPromptStore struct {
	overrides map[string]string
	getErr    error
}

func (m *mockPromptStore) Get(name string) (string, error) {
	if m.getErr != nil {
		return "", m.getErr
	}
	if p, ok := m.overrides[name]; ok {
		return p, nil
	}
	switch name {
	case "roadmap":
		return "context: %s query: %s", nil
	case "quick_tips":
		return "tips for %s", nil
	case "market_analysis":
		return "role %s jobs %d salary %s cities %s skills %s trend %s", nil
	case "match":
		return "resume %s job %s similarity %.1f", nil
	case "ats", "cover_letter":
		return "resume %s job %s", nil
	}
	return "", fmt.Errorf("unknown prompt %q", name)
}

// mockRawStore implements driven.RawDocumentStore in memory.
type mockRawStore struct {
	docs    map[string]string
	loadErr error
	saveErr error
}

func newMockRawStore() *mockRawStore {
	return &mockRawStore{docs: make(map[string]string)}
}

func (m *mockRawStore) LoadRaw(_ context.Context, topic string) ([]domain.Document, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	key := domain.TopicKey(topic)
	content, ok := m.docs[key]
	if !ok {
		return nil, nil
	}
	return []domain.Document{{ID: "doc-" + key, Topic: key, Content: content}}, nil
}

func (m *mockRawStore) SaveRaw(_ context.Context, topic, _, content string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.docs[domain.TopicKey(topic)] = content
	return nil
}

// mockManifestStore implements driven.ManifestStore in memory.
type mockManifestStore struct {
	manifests map[string][]domain.Chunk
	saveErr   error
	loadErr   error
}

func newMockManifestStore() *mockManifestStore {
	return &mockManifestStore{manifests: make(map[string][]domain.Chunk)}
}

func (m *mockManifestStore) SaveManifest(topic string, chunks []domain.Chunk) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.manifests[domain.TopicKey(topic)] = chunks
	return nil
}

func (m *mockManifestStore) LoadManifest(topic string) ([]domain.Chunk, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	chunks, ok := m.manifests[domain.TopicKey(topic)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return chunks, nil
}

// mockCareerSource implements driven.CareerSource.
type mockCareerSource struct {
	content   string
	scrapeErr error
	calls     int
}

func (m *mockCareerSource) ScrapeAll(_ context.Context, _ string) (string, error) {
	m.calls++
	if m.scrapeErr != nil {
		return "", m.scrapeErr
	}
	return m.content, nil
}

// mockJobBoard implements driven.JobBoard.
type mockJobBoard struct {
	jobs      []domain.JobPosting
	scrapeErr error
}

func (m *mockJobBoard) Scrape(_ context.Context, _, _ string, limit int) ([]domain.JobPosting, error) {
	if m.scrapeErr != nil {
		return nil, m.scrapeErr
	}
	if limit < len(m.jobs) {
		return m.jobs[:limit], nil
	}
	return m.jobs, nil
}

// mockTrendStore implements driven.TrendStore in memory.
type mockTrendStore struct {
	snapshots map[string]*domain.TrendSnapshot
	saveErr   error
}

func newMockTrendStore() *mockTrendStore {
	return &mockTrendStore{snapshots: make(map[string]*domain.TrendSnapshot)}
}

func (m *mockTrendStore) LatestSnapshot(_ context.Context, role string) (*domain.TrendSnapshot, error) {
	snap, ok := m.snapshots[domain.TopicKey(role)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return snap, nil
}

func (m *mockTrendStore) SaveSnapshot(_ context.Context, role string, jobCount int) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.snapshots[domain.TopicKey(role)] = &domain.TrendSnapshot{
		Role:     role,
		JobCount: jobCount,
	}
	return nil
}

// mockSessionStore implements driven.SessionStore in memory.
type mockSessionStore struct {
	mem     domain.SessionMemory
	loadErr error
	saveErr error
}

func (m *mockSessionStore) LoadSession(_ context.Context) (*domain.SessionMemory, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	mem := m.mem
	return &mem, nil
}

func (m *mockSessionStore) SaveSession(_ context.Context, mem *domain.SessionMemory) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mem = *mem
	return nil
}

func (m *mockSessionStore) ClearSession(_ context.Context) error {
	m.mem = domain.SessionMemory{}
	return nil
}
