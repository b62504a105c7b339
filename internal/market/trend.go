package market

import (
	"fmt"
	"time"

	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/core/domain"
)

// Sentiment values produced by CompareTrend.
const (
	SentimentNew       = "New"
	SentimentGrowing   = "Growing"
	SentimentDeclining = "Declining"
	SentimentStable    = "Stable"
)

// trendThreshold is the percentage change below which demand is
// considered stable.
const trendThreshold = 10.0

// CompareTrend compares the current posting count against the
// previous snapshot. A nil previous snapshot means this is the first
// analysis for the role.
func CompareTrend(current int, previous *domain.TrendSnapshot) domain.Trend {
	if previous == nil || previous.JobCount <= 0 {
		return domain.Trend{
			Description:  "First analysis - no historical data available",
			Sentiment:    SentimentNew,
			CurrentCount: current,
		}
	}

	change := float64(current-previous.JobCount) / float64(previous.JobCount) * 100

	trend := domain.Trend{
		PreviousCount: previous.JobCount,
		CurrentCount:  current,
		LastAnalyzed:  previous.TakenAt.Format(time.RFC3339),
	}

	switch {
	case change > trendThreshold:
		trend.Description = fmt.Sprintf("+%.1f%% increase from previous analysis", change)
		trend.Sentiment = SentimentGrowing
	case change < -trendThreshold:
		trend.Description = fmt.Sprintf("%.1f%% decrease from previous analysis", change)
		trend.Sentiment = SentimentDeclining
	default:
		trend.Description = "Stable market demand"
		trend.Sentiment = SentimentStable
	}
	return trend
}
