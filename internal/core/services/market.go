package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/core/domain"
	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/core/ports/driven"
	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/core/ports/driving"
	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/logger"
	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/market"
)

// Ensure MarketService implements the interface.
var _ driving.MarketService = (*MarketService)(nil)

const (
	// analysisScrapeLimit bounds how many postings one analysis run
	// scrapes for statistics.
	analysisScrapeLimit = 50

	// maxLiveJobs bounds the opportunities surfaced in the report.
	maxLiveJobs = 7

	// maxSkills bounds the skill list passed to the LLM.
	maxSkills = 20

	topCityCount = 5
)

// MarketService runs the job market analysis pipeline: scrape, clean,
// aggregate, compare against the previous snapshot and ask the LLM for
// insights. Every stage degrades rather than fails: a dead job board
// yields sample data and a bad LLM reply yields heuristic insights.
type MarketService struct {
	board   driven.JobBoard
	trends  driven.TrendStore
	llm     driven.LLMService
	prompts driven.PromptStore
}

// NewMarketService creates a market analysis service.
// The llm parameter is optional (can be nil); without it, analysis
// falls back to heuristic insights derived from the scraped data.
func NewMarketService(
	board driven.JobBoard,
	trends driven.TrendStore,
	llm driven.LLMService,
	prompts driven.PromptStore,
) *MarketService {
	return &MarketService{
		board:   board,
		trends:  trends,
		llm:     llm,
		prompts: prompts,
	}
}

// AnalyzeMarket produces a full market report for a role.
func (s *MarketService) AnalyzeMarket(ctx context.Context, role, location, experienceLevel string) (*domain.MarketReport, error) {
	role = strings.TrimSpace(role)
	if role == "" {
		return nil, fmt.Errorf("empty role: %w", domain.ErrInvalidInput)
	}

	logger.Section("Market Analysis")
	logger.Debug("Role: %q, location: %q, level: %q", role, location, experienceLevel)

	postings, err := s.board.Scrape(ctx, role, location, analysisScrapeLimit)
	if err != nil {
		return nil, fmt.Errorf("scrape postings for %q: %w", role, err)
	}
	jobs := market.CleanJobs(postings)
	logger.Debug("Scraped %d postings", len(jobs))

	stats := market.SalaryStatsOf(jobs)
	cities := market.TopCities(jobs, topCityCount)

	var descriptions strings.Builder
	for _, job := range jobs {
		descriptions.WriteString(job.Description)
		descriptions.WriteString(" ")
	}
	skills := market.ExtractSkills(descriptions.String(), maxSkills)

	trend := s.loadTrend(ctx, role, len(jobs))

	insights := s.analyzeWithLLM(ctx, role, jobs, stats, cities, skills, trend)

	report := &domain.MarketReport{
		Role:              role,
		TotalJobsAnalyzed: len(jobs),
		MarketSummary:     insights.MarketSummary,
		SkillInsights:     insights.SkillInsights,
		Recommendations:   insights.Recommendations,
		Trend:             trend,
		LiveJobs:          liveJobs(jobs),
		Timestamp:         time.Now().UTC(),
	}

	if err := s.trends.SaveSnapshot(ctx, role, len(jobs)); err != nil {
		// Losing one snapshot only weakens the next trend comparison.
		logger.Warn("Save trend snapshot for %q: %v", role, err)
	}

	return report, nil
}

// loadTrend compares the current count against the stored snapshot.
// A missing snapshot means this is the role's first analysis.
func (s *MarketService) loadTrend(ctx context.Context, role string, current int) domain.Trend {
	previous, err := s.trends.LatestSnapshot(ctx, role)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		logger.Warn("Load trend snapshot for %q: %v", role, err)
	}
	return market.CompareTrend(current, previous)
}

// analyzeWithLLM asks the LLM for structured insights, falling back to
// heuristics derived from the scraped data when the LLM is missing or
// returns something unparseable.
func (s *MarketService) analyzeWithLLM(
	ctx context.Context,
	role string,
	jobs []domain.JobPosting,
	stats domain.SalaryStats,
	cities, skills []string,
	trend domain.Trend,
) domain.MarketInsights {
	fallback := fallbackInsights(stats, cities, skills)
	if s.llm == nil {
		return fallback
	}

	template, err := s.prompts.Get(driven.PromptMarketAnalysis)
	if err != nil {
		logger.Warn("Load market prompt: %v", err)
		return fallback
	}

	prompt := fmt.Sprintf(template,
		role, len(jobs), mustJSON(stats), mustJSON(cities), mustJSON(skills), mustJSON(trend))

	reply, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		logger.Warn("Market analysis generation failed: %v", err)
		return fallback
	}

	var insights domain.MarketInsights
	if err := json.Unmarshal([]byte(cleanJSON(reply)), &insights); err != nil {
		logger.Warn("Unparseable market insights, using fallback: %v", err)
		return fallback
	}
	return insights
}

// fallbackInsights derives insights from scraped data alone.
func fallbackInsights(stats domain.SalaryStats, cities, skills []string) domain.MarketInsights {
	return domain.MarketInsights{
		MarketSummary: domain.MarketSummary{
			AvgSalary:   stats.AverageRange,
			DemandLevel: "Medium",
			GrowthTrend: "Stable",
			TopCities:   cities,
		},
		SkillInsights: domain.SkillInsights{
			Emerging:  firstN(skills, 5),
			Reasoning: "Analysis based on job posting frequency",
		},
		Recommendations: domain.MarketRecommendations{
			FocusSkills:   firstN(skills, 3),
			MarketOutlook: "neutral",
			Advice:        "Continue building skills in this domain",
		},
	}
}

// liveJobs picks the first few cleaned postings as apply-now
// opportunities.
func liveJobs(jobs []domain.JobPosting) []domain.JobPick {
	picks := make([]domain.JobPick, 0, maxLiveJobs)
	for _, job := range jobs {
		if len(picks) == maxLiveJobs {
			break
		}
		salary := job.Salary
		if salary == "" {
			salary = "Not specified"
		}
		picks = append(picks, domain.JobPick{
			Title:     job.Title,
			Company:   job.Company,
			Location:  job.Location,
			Salary:    salary,
			ApplyLink: job.Link,
			Source:    job.Source,
		})
	}
	return picks
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// mustJSON renders a value for prompt interpolation. Marshal failures
// cannot happen for the plain structs passed here.
func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(data)
}
