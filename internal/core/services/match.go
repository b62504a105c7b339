package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/core/domain"
	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/core/ports/driven"
	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/core/ports/driving"
	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/extract"
	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/logger"
)

// Ensure MatchService implements the interface.
var _ driving.MatchService = (*MatchService)(nil)

const (
	// minResumeChars rejects uploads whose extracted text is too short
	// to be a real resume.
	minResumeChars = 50

	// minJobChars rejects job descriptions too short to analyze.
	minJobChars = 20

	// similarityTruncate bounds the text embedded for the similarity
	// score. Long resumes dilute the embedding past this point.
	similarityTruncate = 2000

	// Prompt truncation limits, matching the prompt templates' size
	// expectations.
	promptResumeLimit = 4000
	promptJobLimit    = 2000
)

// MatchService analyzes a stored resume against a stored job
// description: match scoring, ATS optimisation and cover letter
// generation.
type MatchService struct {
	sessions driven.SessionStore
	embedder driven.EmbeddingService
	llm      driven.LLMService
	prompts  driven.PromptStore
}

// NewMatchService creates a resume analysis service.
// The llm parameter is required for Match, ATSOptimize and
// GenerateCoverLetter; those return domain.ErrLLMUnavailable when it
// is nil.
func NewMatchService(
	sessions driven.SessionStore,
	embedder driven.EmbeddingService,
	llm driven.LLMService,
	prompts driven.PromptStore,
) *MatchService {
	return &MatchService{
		sessions: sessions,
		embedder: embedder,
		llm:      llm,
		prompts:  prompts,
	}
}

// UploadResume extracts text from the uploaded file and stores it in
// the session, replacing any previous resume.
func (s *MatchService) UploadResume(ctx context.Context, filename, mime string, data []byte) (*domain.SessionMemory, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty upload: %w", domain.ErrInvalidInput)
	}
	if mime == "" {
		mime = extract.MIMEForFilename(filename)
	}

	text, err := extract.Text(mime, data)
	if err != nil {
		return nil, fmt.Errorf("extract resume text: %w", err)
	}
	if len(text) < minResumeChars {
		return nil, fmt.Errorf("extracted only %d characters, resume appears empty: %w",
			len(text), domain.ErrInvalidInput)
	}

	mem, err := s.sessions.LoadSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	mem.ResumeText = text
	mem.UploadedFilename = filename
	mem.UploadedAt = time.Now().UTC()

	if err := s.sessions.SaveSession(ctx, mem); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	logger.Debug("Stored resume %q (%d chars)", filename, len(text))
	return mem, nil
}

// SetJobDescription stores the job description in the session.
func (s *MatchService) SetJobDescription(ctx context.Context, description string) (*domain.SessionMemory, error) {
	description = strings.TrimSpace(description)
	if len(description) < minJobChars {
		return nil, fmt.Errorf("job description too short (%d chars): %w",
			len(description), domain.ErrInvalidInput)
	}

	mem, err := s.sessions.LoadSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	mem.JobDescription = description
	mem.JobStoredAt = time.Now().UTC()

	if err := s.sessions.SaveSession(ctx, mem); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return mem, nil
}

// Match scores the stored resume against the stored job description,
// combining an embedding similarity score with the LLM's assessment.
func (s *MatchService) Match(ctx context.Context) (*domain.MatchReport, error) {
	mem, err := s.requireSession(ctx)
	if err != nil {
		return nil, err
	}
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	logger.Section("Resume Match")
	similarity, err := s.similarityScore(ctx, mem.ResumeText, mem.JobDescription)
	if err != nil {
		return nil, err
	}
	logger.Debug("Embedding similarity: %.1f", similarity)

	template, err := s.prompts.Get(driven.PromptMatch)
	if err != nil {
		return nil, fmt.Errorf("load match prompt: %w", err)
	}
	prompt := fmt.Sprintf(template,
		truncate(mem.ResumeText, promptResumeLimit),
		truncate(mem.JobDescription, promptJobLimit),
		similarity)

	reply, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate match analysis: %w", err)
	}

	var report domain.MatchReport
	if err := json.Unmarshal([]byte(cleanJSON(reply)), &report); err != nil {
		return nil, fmt.Errorf("parse match analysis: %w", err)
	}
	report.SimilarityScore = similarity
	return &report, nil
}

// ATSOptimize suggests ATS improvements for the stored resume.
func (s *MatchService) ATSOptimize(ctx context.Context) (*domain.ATSReport, error) {
	mem, err := s.requireSession(ctx)
	if err != nil {
		return nil, err
	}
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	template, err := s.prompts.Get(driven.PromptATS)
	if err != nil {
		return nil, fmt.Errorf("load ats prompt: %w", err)
	}
	prompt := fmt.Sprintf(template,
		truncate(mem.ResumeText, promptResumeLimit),
		truncate(mem.JobDescription, promptJobLimit))

	reply, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate ats analysis: %w", err)
	}

	var report domain.ATSReport
	if err := json.Unmarshal([]byte(cleanJSON(reply)), &report); err != nil {
		return nil, fmt.Errorf("parse ats analysis: %w", err)
	}
	return &report, nil
}

// GenerateCoverLetter writes a tailored cover letter from the stored
// resume and job description.
func (s *MatchService) GenerateCoverLetter(ctx context.Context) (*domain.CoverLetter, error) {
	mem, err := s.requireSession(ctx)
	if err != nil {
		return nil, err
	}
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	template, err := s.prompts.Get(driven.PromptCoverLetter)
	if err != nil {
		return nil, fmt.Errorf("load cover letter prompt: %w", err)
	}
	prompt := fmt.Sprintf(template,
		truncate(mem.ResumeText, promptResumeLimit),
		truncate(mem.JobDescription, promptJobLimit))

	content, err := s.llm.GenerateCreative(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate cover letter: %w", err)
	}
	content = strings.TrimSpace(content)

	return &domain.CoverLetter{
		Content:     content,
		WordCount:   len(strings.Fields(content)),
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// StoredData returns the current session contents.
func (s *MatchService) StoredData(ctx context.Context) (*domain.SessionMemory, error) {
	return s.sessions.LoadSession(ctx)
}

// ClearData removes all stored session data.
func (s *MatchService) ClearData(ctx context.Context) error {
	return s.sessions.ClearSession(ctx)
}

// requireSession loads the session and checks both inputs are present.
func (s *MatchService) requireSession(ctx context.Context) (*domain.SessionMemory, error) {
	mem, err := s.sessions.LoadSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !mem.HasResume() {
		return nil, domain.ErrNoResume
	}
	if !mem.HasJob() {
		return nil, domain.ErrNoJobDescription
	}
	return mem, nil
}

// similarityScore embeds both texts and returns their cosine
// similarity scaled to 0-100.
func (s *MatchService) similarityScore(ctx context.Context, resume, job string) (float64, error) {
	vectors, err := s.embedder.EmbedBatch(ctx, []string{
		truncate(resume, similarityTruncate),
		truncate(job, similarityTruncate),
	})
	if err != nil {
		return 0, fmt.Errorf("embed texts for similarity: %w", err)
	}
	if len(vectors) != 2 {
		return 0, fmt.Errorf("expected 2 embeddings, got %d: %w",
			len(vectors), domain.ErrEmbeddingUnavailable)
	}
	return cosineSimilarity(vectors[0], vectors[1]) * 100, nil
}

// cosineSimilarity is clamped to [0, 1]; embedding vectors point the
// same general direction so negative values in practice mean noise.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return math.Max(0, math.Min(1, sim))
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
