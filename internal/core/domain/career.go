package domain

import "time"

// Roadmap is the result of a retrieval-grounded roadmap generation.
type Roadmap struct {
	// Career is the detected career topic the roadmap targets.
	Career string `json:"career"`

	// Content is the generated week-by-week roadmap text.
	Content string `json:"roadmap"`

	// SourcesUsed is the number of retrieved chunks that grounded the
	// generation.
	SourcesUsed int `json:"sources_used"`
}

// SessionMemory holds the resume and job description for the current
// analysis session.
type SessionMemory struct {
	ResumeText       string    `json:"resume_text"`
	JobDescription   string    `json:"job_description"`
	UploadedFilename string    `json:"uploaded_filename,omitempty"`
	UploadedAt       time.Time `json:"uploaded_at,omitzero"`
	JobStoredAt      time.Time `json:"job_stored_at,omitzero"`
}

// HasResume reports whether a resume has been uploaded.
func (m SessionMemory) HasResume() bool { return m.ResumeText != "" }

// HasJob reports whether a job description has been stored.
func (m SessionMemory) HasJob() bool { return m.JobDescription != "" }

// MatchReport is the JSON contract expected back from the resume/job
// match prompt, combined with the embedding similarity score.
type MatchReport struct {
	MatchScore          int      `json:"match_score"`
	SimilarityScore     float64  `json:"similarity_score"`
	RelevantExperiences []string `json:"relevant_experiences"`
	RelevantSkills      []string `json:"relevant_skills"`
	MissingSkills       []string `json:"missing_skills"`
	Summary             string   `json:"summary"`
	Recommendation      string   `json:"recommendation"`
}

// ATSReport is the JSON contract expected back from the ATS
// optimization prompt.
type ATSReport struct {
	ATSScore            int      `json:"ats_score"`
	MissingKeywords     []string `json:"missing_keywords"`
	FormattingIssues    []string `json:"formatting_issues"`
	SectionImprovements []string `json:"section_improvements"`
	RewriteSuggestions  []string `json:"rewrite_suggestions"`
	Summary             string   `json:"summary"`
}

// CoverLetter is a generated cover letter with basic metadata.
type CoverLetter struct {
	Content     string    `json:"content"`
	WordCount   int       `json:"word_count"`
	GeneratedAt time.Time `json:"generated_at"`
}
