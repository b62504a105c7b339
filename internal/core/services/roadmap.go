package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/core/domain"
	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/core/ports/driven"
	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/core/ports/driving"
	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/logger"
)

// Ensure RoadmapService implements the interface.
var _ driving.RoadmapService = (*RoadmapService)(nil)

// DefaultCareer is assumed when no known career appears in the query.
const DefaultCareer = "full stack"

// careerKeywords maps a canonical career name to the query phrases
// that identify it. Checked in the order listed so more specific
// phrases win over generic ones.
var careerKeywords = []struct {
	career   string
	keywords []string
}{
	{"full stack", []string{"full stack", "fullstack", "full-stack"}},
	{"frontend", []string{"frontend", "front-end", "front end"}},
	{"backend", []string{"backend", "back-end", "back end"}},
	{"data science", []string{"data science", "data scientist"}},
	{"machine learning", []string{"machine learning", "ml engineer", "ai engineer"}},
	{"devops", []string{"devops", "dev ops"}},
	{"android", []string{"android"}},
	{"ios", []string{"ios", "swift"}},
	{"python", []string{"python developer"}},
	{"java", []string{"java developer"}},
	{"react", []string{"react developer", "reactjs"}},
	{"nodejs", []string{"nodejs", "node.js", "node js"}},
	{"cyber security", []string{"cyber security", "cybersecurity", "security"}},
	{"blockchain", []string{"blockchain", "web3"}},
}

// RoadmapService generates career learning roadmaps grounded in
// scraped web content retrieved from a per-career vector index.
type RoadmapService struct {
	retriever driving.Retriever
	docStore  driven.RawDocumentStore
	source    driven.CareerSource
	llm       driven.LLMService
	prompts   driven.PromptStore
	topK      int
}

// NewRoadmapService creates a roadmap service.
// The llm parameter is optional (can be nil); without it, roadmap
// generation returns domain.ErrLLMUnavailable.
func NewRoadmapService(
	retriever driving.Retriever,
	docStore driven.RawDocumentStore,
	source driven.CareerSource,
	llm driven.LLMService,
	prompts driven.PromptStore,
	topK int,
) *RoadmapService {
	return &RoadmapService{
		retriever: retriever,
		docStore:  docStore,
		source:    source,
		llm:       llm,
		prompts:   prompts,
		topK:      topK,
	}
}

// DetectCareer extracts the career a query is about, falling back to
// DefaultCareer when nothing matches.
func DetectCareer(query string) string {
	lower := strings.ToLower(query)
	for _, entry := range careerKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.career
			}
		}
	}
	return DefaultCareer
}

// GenerateRoadmap detects the career in the query, makes sure an index
// exists for it (scraping on first use), retrieves grounding chunks
// and asks the LLM for a week-by-week roadmap.
func (s *RoadmapService) GenerateRoadmap(ctx context.Context, query string) (*domain.Roadmap, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty query: %w", domain.ErrInvalidInput)
	}
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	career := DetectCareer(query)
	logger.Section("Roadmap Generation")
	logger.Debug("Detected career: %q", career)

	if err := s.ensureIndex(ctx, career); err != nil {
		return nil, err
	}

	chunks, err := s.retriever.Retrieve(ctx, career, query, s.topK)
	if err != nil {
		return nil, fmt.Errorf("retrieve context: %w", err)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no relevant content for %q: %w", career, domain.ErrNoDocuments)
	}

	template, err := s.prompts.Get(driven.PromptRoadmap)
	if err != nil {
		return nil, fmt.Errorf("load roadmap prompt: %w", err)
	}

	prompt := fmt.Sprintf(template, formatContext(chunks), query)
	content, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate roadmap: %w", err)
	}

	return &domain.Roadmap{
		Career:      career,
		Content:     content,
		SourcesUsed: len(chunks),
	}, nil
}

// ensureIndex prepares the career's index, scraping and building on
// first use for a career with no stored documents.
func (s *RoadmapService) ensureIndex(ctx context.Context, career string) error {
	err := s.retriever.EnsureReady(ctx, career)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNoDocuments) {
		return fmt.Errorf("prepare index for %q: %w", career, err)
	}

	logger.Debug("No stored documents for %q, scraping", career)
	content, err := s.source.ScrapeAll(ctx, career)
	if err != nil {
		return fmt.Errorf("scrape sources for %q: %w", career, err)
	}
	if err := s.docStore.SaveRaw(ctx, career, "web", content); err != nil {
		return fmt.Errorf("store scraped content for %q: %w", career, err)
	}

	if err := s.retriever.EnsureReady(ctx, career); err != nil {
		return fmt.Errorf("build index for %q: %w", career, err)
	}
	return nil
}

// QuickTips returns short actionable tips for starting out in a
// career, one tip per slice element.
func (s *RoadmapService) QuickTips(ctx context.Context, career string) ([]string, error) {
	career = strings.TrimSpace(career)
	if career == "" {
		return nil, fmt.Errorf("empty career: %w", domain.ErrInvalidInput)
	}
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	template, err := s.prompts.Get(driven.PromptQuickTips)
	if err != nil {
		return nil, fmt.Errorf("load tips prompt: %w", err)
	}

	text, err := s.llm.Generate(ctx, fmt.Sprintf(template, career))
	if err != nil {
		return nil, fmt.Errorf("generate tips: %w", err)
	}

	var tips []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			tips = append(tips, line)
		}
	}
	return tips, nil
}

// formatContext renders retrieved chunks into the numbered block the
// roadmap prompt expects.
func formatContext(chunks []domain.Chunk) string {
	var b strings.Builder
	for i, c := range chunks {
		fmt.Fprintf(&b, "--- Document %d ---\n%s\n\n", i+1, c.Content)
	}
	return strings.TrimRight(b.String(), "\n")
}
