package driven

import (
	"context"

	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/core/domain"
)

// TrendStore persists job-count snapshots per role for trend analysis.
// Backed by SQLite.
type TrendStore interface {
	// LatestSnapshot returns the most recent snapshot for a role, or
	// domain.ErrNotFound when the role has never been analyzed.
	LatestSnapshot(ctx context.Context, role string) (*domain.TrendSnapshot, error)

	// SaveSnapshot records the job count observed for a role now.
	SaveSnapshot(ctx context.Context, role string, jobCount int) error
}

// SessionStore persists the resume and job description for the current
// analysis session.
type SessionStore interface {
	// LoadSession returns the stored session, or an empty session when
	// nothing has been stored yet.
	LoadSession(ctx context.Context) (*domain.SessionMemory, error)

	// SaveSession stores or replaces the session.
	SaveSession(ctx context.Context, mem *domain.SessionMemory) error

	// ClearSession removes all stored session data.
	ClearSession(ctx context.Context) error
}
