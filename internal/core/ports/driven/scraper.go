package driven

import (
	"context"

	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/core/domain"
)

// CareerSource fetches learning-path content for a career topic from
// public web sources. Implementations degrade to canned fallback text
// when a source is unreachable; scraping failures are never fatal.
type CareerSource interface {
	// ScrapeAll gathers content for the topic from every configured
	// source and returns it as one text blob.
	ScrapeAll(ctx context.Context, topic string) (string, error)
}

// JobBoard fetches live job postings for a role.
// Implementations fall back to generated sample postings when the board
// cannot be scraped, so the analysis pipeline always has data.
type JobBoard interface {
	// Scrape returns up to limit postings for the role and location.
	Scrape(ctx context.Context, role, location string, limit int) ([]domain.JobPosting, error)
}
