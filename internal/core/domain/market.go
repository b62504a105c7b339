package domain

import "time"

// JobPosting is a single scraped job listing before cleaning.
type JobPosting struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Salary      string `json:"salary"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Source      string `json:"source"`
}

// SalaryRange is a salary string parsed into a structured form.
// Min and Max are zero when the posting carried no usable figures.
type SalaryRange struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
	Period   string  `json:"period"`
}

// SalaryStats aggregates parsed salaries across a set of postings,
// restricted to the most common currency and pay period.
type SalaryStats struct {
	AverageRange string  `json:"average_range"`
	MinSalary    float64 `json:"min_salary"`
	MaxSalary    float64 `json:"max_salary"`
	MedianSalary float64 `json:"median_salary"`
	Currency     string  `json:"currency"`
	Period       string  `json:"period"`
}

// TrendSnapshot records the posting count observed for a role at a
// point in time. Snapshots back the market trend comparison.
type TrendSnapshot struct {
	Role     string    `json:"role"`
	JobCount int       `json:"job_count"`
	TakenAt  time.Time `json:"taken_at"`
}

// Trend compares the current posting count against the previous
// snapshot for the role.
type Trend struct {
	Description   string `json:"trend_description"`
	Sentiment     string `json:"sentiment"`
	PreviousCount int    `json:"previous_count"`
	CurrentCount  int    `json:"current_count"`
	LastAnalyzed  string `json:"last_analyzed,omitempty"`
}

// MarketSummary is the market-level portion of the LLM's JSON reply.
type MarketSummary struct {
	AvgSalary   string   `json:"avg_salary"`
	DemandLevel string   `json:"demand_level"`
	GrowthTrend string   `json:"growth_trend"`
	TopCities   []string `json:"top_cities"`
}

// SkillInsights classifies skills into emerging and declining sets.
type SkillInsights struct {
	Emerging  []string `json:"emerging"`
	Declining []string `json:"declining"`
	Reasoning string   `json:"reasoning"`
}

// MarketRecommendations carries the advisory portion of the LLM reply.
type MarketRecommendations struct {
	FocusSkills   []string `json:"focus_skills"`
	MarketOutlook string   `json:"market_outlook"`
	Advice        string   `json:"advice"`
}

// MarketInsights is the complete JSON contract expected back from the
// market analysis prompt.
type MarketInsights struct {
	MarketSummary   MarketSummary         `json:"market_summary"`
	SkillInsights   SkillInsights         `json:"skill_insights"`
	Recommendations MarketRecommendations `json:"recommendations"`
}

// JobPick is a cleaned job opportunity surfaced in the final report.
type JobPick struct {
	Title     string `json:"title"`
	Company   string `json:"company"`
	Location  string `json:"location"`
	Salary    string `json:"salary"`
	ApplyLink string `json:"apply_link"`
	Source    string `json:"source"`
}

// MarketReport is the final result of a market analysis run.
type MarketReport struct {
	Role              string                `json:"role"`
	TotalJobsAnalyzed int                   `json:"total_jobs_analyzed"`
	MarketSummary     MarketSummary         `json:"market_summary"`
	SkillInsights     SkillInsights         `json:"skill_insights"`
	Recommendations   MarketRecommendations `json:"recommendations"`
	Trend             Trend                 `json:"trend"`
	LiveJobs          []JobPick             `json:"live_jobs"`
	Timestamp         time.Time             `json:"timestamp"`
}
