package driven

// Prompt names used with PromptStore.Get.
const (
	// PromptRoadmap generates a week-by-week career roadmap from
	// retrieved context. Takes context and query.
	PromptRoadmap = "roadmap"

	// PromptQuickTips generates short actionable tips. Takes career.
	PromptQuickTips = "quick_tips"

	// PromptMarketAnalysis analyzes scraped market data.
	// Takes role, job count, salary data, cities, skills and trend JSON.
	PromptMarketAnalysis = "market_analysis"

	// PromptMatch scores a resume against a job description.
	// Takes resume, job description and the embedding similarity score.
	PromptMatch = "match"

	// PromptATS suggests ATS improvements. Takes resume and job
	// description.
	PromptATS = "ats"

	// PromptCoverLetter writes a tailored cover letter. Takes resume
	// and job description.
	PromptCoverLetter = "cover_letter"
)

// PromptStore provides named LLM prompt templates.
// Implementations may load user-edited files with embedded defaults.
type PromptStore interface {
	// Get returns the prompt template for the given name.
	Get(name string) (string, error)
}
