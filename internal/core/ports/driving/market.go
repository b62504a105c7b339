package driving

import (
	"context"

	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/core/domain"
)

// MarketService analyzes the live job market for a role.
type MarketService interface {
	// AnalyzeMarket scrapes postings, computes salary and skill
	// statistics, compares against the previous snapshot and asks the
	// LLM for insights.
	AnalyzeMarket(ctx context.Context, role, location, experienceLevel string) (*domain.MarketReport, error)
}
