package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/core/domain"
	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/market"
)

func samplePostings() []domain.JobPosting {
	return []domain.JobPosting{
		{
			Title: "Data Scientist", Company: "Acme", Location: "New York, NY",
			Salary:      "$90,000 - $120,000 a year",
			Description: "Python, SQL and machine learning experience required.",
			Link:        "https://example.com/1", Source: "Indeed",
		},
		{
			Title: "ML Engineer", Company: "Globex", Location: "New York, NY",
			Salary:      "$100,000 - $140,000 a year",
			Description: "TensorFlow, Python and Docker in production.",
			Link:        "https://example.com/2", Source: "Indeed",
		},
		{
			Title: "Analyst", Company: "Initech", Location: "Austin, TX",
			Description: "SQL and Tableau reporting.",
			Link:        "https://example.com/3", Source: "Indeed",
		},
	}
}

func TestAnalyzeMarket_FullPipeline(t *testing.T) {
	board := &mockJobBoard{jobs: samplePostings()}
	trends := newMockTrendStore()
	llm := &mockLLM{response: `{
		"market_summary": {"avg_salary": "$95k - $130k", "demand_level": "High", "growth_trend": "+12%", "top_cities": ["New York, NY"]},
		"skill_insights": {"emerging": ["Python", "Docker"], "declining": ["Tableau"], "reasoning": "cloud shift"},
		"recommendations": {"focus_skills": ["Python"], "market_outlook": "positive", "advice": "learn cloud"}
	}`}
	svc := NewMarketService(board, trends, llm, &mockPromptStore{})

	report, err := svc.AnalyzeMarket(context.Background(), "data scientist", "", "entry")
	require.NoError(t, err)

	assert.Equal(t, "data scientist", report.Role)
	assert.Equal(t, 3, report.TotalJobsAnalyzed)
	assert.Equal(t, "High", report.MarketSummary.DemandLevel)
	assert.Equal(t, []string{"Python", "Docker"}, report.SkillInsights.Emerging)
	assert.Equal(t, "positive", report.Recommendations.MarketOutlook)
	assert.Equal(t, market.SentimentNew, report.Trend.Sentiment, "first run has no history")
	assert.NotEmpty(t, report.LiveJobs)
	assert.False(t, report.Timestamp.IsZero())

	// The run recorded a snapshot for the next trend comparison.
	snap, err := trends.LatestSnapshot(context.Background(), "data scientist")
	require.NoError(t, err)
	assert.Equal(t, 3, snap.JobCount)
}

func TestAnalyzeMarket_FencedJSONReply(t *testing.T) {
	llm := &mockLLM{response: "```json\n{\"market_summary\": {\"demand_level\": \"Low\"}}\n```"}
	svc := NewMarketService(&mockJobBoard{jobs: samplePostings()}, newMockTrendStore(), llm, &mockPromptStore{})

	report, err := svc.AnalyzeMarket(context.Background(), "analyst", "", "entry")
	require.NoError(t, err)
	assert.Equal(t, "Low", report.MarketSummary.DemandLevel)
}

func TestAnalyzeMarket_UnparseableReplyFallsBack(t *testing.T) {
	llm := &mockLLM{response: "I cannot produce JSON today, sorry."}
	svc := NewMarketService(&mockJobBoard{jobs: samplePostings()}, newMockTrendStore(), llm, &mockPromptStore{})

	report, err := svc.AnalyzeMarket(context.Background(), "analyst", "", "entry")
	require.NoError(t, err, "bad LLM output must degrade, not fail")
	assert.Equal(t, "Medium", report.MarketSummary.DemandLevel)
	assert.Equal(t, "neutral", report.Recommendations.MarketOutlook)
	assert.NotEmpty(t, report.SkillInsights.Emerging, "fallback derives skills from postings")
}

func TestAnalyzeMarket_NoLLM(t *testing.T) {
	svc := NewMarketService(&mockJobBoard{jobs: samplePostings()}, newMockTrendStore(), nil, &mockPromptStore{})

	report, err := svc.AnalyzeMarket(context.Background(), "analyst", "", "entry")
	require.NoError(t, err)
	assert.Equal(t, "Medium", report.MarketSummary.DemandLevel)
}

func TestAnalyzeMarket_EmptyRole(t *testing.T) {
	svc := NewMarketService(&mockJobBoard{}, newMockTrendStore(), nil, &mockPromptStore{})

	_, err := svc.AnalyzeMarket(context.Background(), "  ", "", "entry")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAnalyzeMarket_TrendAgainstPreviousRun(t *testing.T) {
	trends := newMockTrendStore()
	require.NoError(t, trends.SaveSnapshot(context.Background(), "analyst", 2))

	svc := NewMarketService(&mockJobBoard{jobs: samplePostings()}, trends, nil, &mockPromptStore{})
	report, err := svc.AnalyzeMarket(context.Background(), "analyst", "", "entry")
	require.NoError(t, err)

	assert.Equal(t, market.SentimentGrowing, report.Trend.Sentiment)
	assert.Equal(t, 2, report.Trend.PreviousCount)
	assert.Equal(t, 3, report.Trend.CurrentCount)
}

func TestCleanJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"leading prose", "Here you go: {\"a\": 1}", `{"a": 1}`},
		{"trailing prose", "{\"a\": 1} hope that helps!", `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanJSON(tt.in))
		})
	}
}
