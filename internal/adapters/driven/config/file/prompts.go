package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads LLM prompts from user-editable files on disk.
// Prompts are loaded from a configurable directory with fallback to embedded defaults.
//
// The store uses lazy initialisation - files are only created when first accessed,
// not in the constructor. This makes testing easier and avoids unexpected I/O.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts contains embedded default prompts.
// These are used when user files don't exist and as the initial content for new files.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptRoadmap: `You are an expert career mentor. Create a detailed week-by-week learning roadmap.

Context:
%s

Query: %s

Generate a structured roadmap with weekly tasks, recommended videos, hands-on projects, and course recommendations. Ground every recommendation in the context above where possible.`,

	driven.PromptQuickTips: `Provide 5 quick, actionable tips for someone starting a career in %s.
Keep each tip one sentence long, specific, and practical. Return one tip per line with no numbering.`,

	driven.PromptMarketAnalysis: `You are an expert job market analyst. Analyze the following job market data and provide insights.

Job Role: %s
Total Jobs Found: %d
Salary Data: %s
Top Cities: %s
Skills Found: %s
Historical Trend: %s

Based on this data, provide a comprehensive market analysis.

Return ONLY valid JSON in this exact format:
{
    "market_summary": {
        "avg_salary": "string with range",
        "demand_level": "High/Medium/Low",
        "growth_trend": "percentage or description",
        "top_cities": ["city1", "city2", "city3"]
    },
    "skill_insights": {
        "emerging": ["skill1", "skill2"],
        "declining": ["skill1", "skill2"],
        "reasoning": "brief explanation"
    },
    "recommendations": {
        "focus_skills": ["skill1", "skill2"],
        "market_outlook": "positive/neutral/negative",
        "advice": "career advice for this role"
    }
}`,

	driven.PromptMatch: `You are an expert recruiter. Compare the resume below against the job description and score the match.

Resume:
%s

Job Description:
%s

Embedding similarity score (0-100): %.1f

Return ONLY valid JSON in this exact format:
{
    "match_score": 0,
    "relevant_experiences": ["experience1", "experience2"],
    "relevant_skills": ["skill1", "skill2"],
    "missing_skills": ["skill1", "skill2"],
    "summary": "two sentence summary of the fit",
    "recommendation": "one concrete next step for the candidate"
}`,

	driven.PromptATS: `You are an ATS (applicant tracking system) expert. Review the resume against the job description and suggest optimisations.

Resume:
%s

Job Description:
%s

Return ONLY valid JSON in this exact format:
{
    "ats_score": 0,
    "missing_keywords": ["keyword1", "keyword2"],
    "formatting_issues": ["issue1"],
    "section_improvements": ["improvement1"],
    "rewrite_suggestions": ["suggestion1"],
    "summary": "two sentence summary"
}`,

	driven.PromptCoverLetter: `You are a professional career writer. Write a tailored cover letter for the candidate below.

Resume:
%s

Job Description:
%s

The letter should be 250-350 words, specific to the role, and reference concrete experience from the resume. Return ONLY the letter text with no preamble.`,
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.careeragent/prompts/.
//
// The constructor does not perform any I/O - directory creation and
// file writes happen lazily on first Get() call.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(home, ".careeragent", "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Get returns the prompt template for the given name.
// On first call, initialises the prompt directory and creates default files.
// Returns cached value if available, otherwise loads from file.
// Falls back to embedded default if file doesn't exist.
func (s *PromptStore) Get(name string) (string, error) {
	// Ensure directory and defaults exist (lazy init)
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		// Fall back to embedded defaults if init failed
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	// Check cache first (read lock)
	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	// Load from file (no lock held during I/O)
	prompt, err := s.loadFromFile(name)
	if err != nil {
		// Fall back to embedded default
		if defaultPrompt, ok := defaultPrompts[name]; ok {
			return defaultPrompt, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	// Cache the result (write lock)
	// Use double-check pattern to avoid overwriting concurrent loads
	s.mu.Lock()
	if _, ok := s.cache[name]; !ok {
		s.cache[name] = prompt
	} else {
		// Another goroutine loaded it first, use their value
		prompt = s.cache[name]
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// initialise creates the prompt directory and default files.
// Called once via sync.Once on first Get().
func (s *PromptStore) initialise() {
	// Create directory
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	// Create default prompt files (only if they don't exist)
	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	// Create README
	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

// loadFromFile reads a prompt from disk.
func (s *PromptStore) loadFromFile(name string) (string, error) {
	path := filepath.Join(s.promptDir, name+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// createReadme writes a README file explaining the prompts directory.
func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil // Already exists or stat error (ignore)
	}

	content := `# Career Agent Prompts

This directory contains customisable prompts used by the career agent's LLM features.

## Files

- ` + "`roadmap.txt`" + ` - Generates the week-by-week career roadmap
- ` + "`quick_tips.txt`" + ` - Short actionable tips for a career
- ` + "`market_analysis.txt`" + ` - Job market analysis over scraped data
- ` + "`match.txt`" + ` - Scores a resume against a job description
- ` + "`ats.txt`" + ` - ATS optimisation suggestions
- ` + "`cover_letter.txt`" + ` - Tailored cover letter generation

## Customisation

Edit any file to customise LLM behaviour. Changes take effect on the next
command run.

## Format Placeholders

Prompts use Go fmt placeholders:
- ` + "`%s`" + ` - String (e.g., the resume or job description)
- ` + "`%d`" + ` - Integer (e.g., job count)
- ` + "`%.1f`" + ` - Float (e.g., similarity score)

Ensure customised prompts maintain placeholders in the correct positions.
`
	return os.WriteFile(path, []byte(content), 0600)
}
