package driving

import (
	"context"

	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/core/domain"
)

// MatchService analyzes a resume against a job description.
type MatchService interface {
	// UploadResume extracts text from an uploaded resume file and
	// stores it in the session.
	UploadResume(ctx context.Context, filename, mime string, data []byte) (*domain.SessionMemory, error)

	// SetJobDescription stores the job description in the session.
	SetJobDescription(ctx context.Context, description string) (*domain.SessionMemory, error)

	// Match scores the stored resume against the stored job
	// description.
	Match(ctx context.Context) (*domain.MatchReport, error)

	// ATSOptimize suggests ATS improvements for the stored resume.
	ATSOptimize(ctx context.Context) (*domain.ATSReport, error)

	// GenerateCoverLetter writes a tailored cover letter.
	GenerateCoverLetter(ctx context.Context) (*domain.CoverLetter, error)

	// StoredData returns the current session contents.
	StoredData(ctx context.Context) (*domain.SessionMemory, error)

	// ClearData removes all stored session data.
	ClearData(ctx context.Context) error
}
