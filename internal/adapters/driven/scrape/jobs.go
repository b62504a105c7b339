package scrape

import (
	"context"
	"fmt"
	"hash/fnv"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/core/domain"
	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/core/ports/driven"
	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/logger"
)

// Ensure JobScraper implements the interface.
var _ driven.JobBoard = (*JobScraper)(nil)

// jobBoardURL is the search endpoint scraped for live postings.
const jobBoardURL = "https://www.indeed.com/jobs"

// minLiveJobs is the threshold below which scraped results are
// supplemented with generated sample postings.
const minLiveJobs = 10

// JobScraper fetches job postings from a job board, falling back to
// deterministic sample postings when the board cannot be scraped.
// Board markup changes frequently and aggressive bot detection is
// common, so the fallback path is the expected path.
type JobScraper struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewJobScraper creates a scraper with the given request timeout.
func NewJobScraper(timeout time.Duration) *JobScraper {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &JobScraper{
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// Scrape returns up to limit postings for the role and location.
func (s *JobScraper) Scrape(ctx context.Context, role, location string, limit int) ([]domain.JobPosting, error) {
	if limit <= 0 {
		limit = 50
	}
	if location == "" {
		location = "Remote"
	}

	jobs := s.scrapeBoard(ctx, role, location, limit)
	if len(jobs) < minLiveJobs {
		logger.Info("Low job count (%d) for %q, supplementing with sample data", len(jobs), role)
		jobs = append(jobs, sampleJobs(role, location, limit-len(jobs))...)
	}
	if len(jobs) > limit {
		jobs = jobs[:limit]
	}
	return jobs, nil
}

// scrapeBoard attempts a live scrape. Any failure returns what was
// parsed so far; the caller supplements from the sample generator.
func (s *JobScraper) scrapeBoard(ctx context.Context, role, location string, limit int) []domain.JobPosting {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil
	}

	q := url.Values{}
	q.Set("q", role)
	q.Set("l", location)
	searchURL := jobBoardURL + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, http.NoBody)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Referer", "https://www.indeed.com/")

	logger.Debug("Scraping job board: %s", searchURL)
	resp, err := s.client.Do(req)
	if err != nil {
		logger.Warn("Job board request failed: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("Job board returned status %d", resp.StatusCode)
		return nil
	}

	// Board markup is obfuscated and changes weekly; a stable CSS-level
	// parse is not maintainable here. Extract what the text layer
	// yields and let the sample generator cover the shortfall.
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		logger.Warn("Job board body read failed: %v", err)
		return nil
	}
	text := stripHTML(string(body))

	var jobs []domain.JobPosting
	for _, line := range usefulLines(text, 30, limit) {
		if !strings.Contains(strings.ToLower(line), strings.ToLower(role)) {
			continue
		}
		jobs = append(jobs, domain.JobPosting{
			Title:       line,
			Company:     "Unknown Company",
			Location:    location,
			Description: line,
			Link:        searchURL,
			Source:      "Indeed",
		})
	}
	return jobs
}

// sampleCompanies seeds the generated postings.
var sampleCompanies = []string{
	"TechCorp Solutions", "Innovate Labs", "DataWorks Inc", "CloudNine Systems",
	"NextGen Software", "Digital Dynamics", "CodeCraft Studios", "ByteBridge",
	"Quantum Apps", "Skyline Technologies",
}

// sampleCities seeds the generated postings.
var sampleCities = []string{
	"San Francisco, CA", "New York, NY", "Austin, TX", "Seattle, WA",
	"Boston, MA", "Remote", "Chicago, IL", "Denver, CO",
}

// sampleSkillSets maps role keywords to plausible description skills.
var sampleSkillSets = map[string][]string{
	"data":     {"Python", "SQL", "Machine Learning", "Pandas", "TensorFlow", "Data Visualization"},
	"frontend": {"JavaScript", "React", "TypeScript", "CSS", "HTML", "Tailwind"},
	"backend":  {"Go", "PostgreSQL", "Docker", "Kubernetes", "REST API", "Microservices"},
	"devops":   {"AWS", "Terraform", "Docker", "Kubernetes", "CI/CD", "Jenkins"},
	"default":  {"Python", "JavaScript", "SQL", "Git", "Agile", "REST API"},
}

// sampleJobs generates deterministic sample postings for a role. The
// same role always yields the same postings, which keeps trend
// comparisons meaningful across runs.
func sampleJobs(role, location string, count int) []domain.JobPosting {
	if count <= 0 {
		return nil
	}

	h := fnv.New64a()
	h.Write([]byte(strings.ToLower(role)))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	skills := sampleSkillSets["default"]
	for key, set := range sampleSkillSets {
		if key != "default" && strings.Contains(strings.ToLower(role), key) {
			skills = set
			break
		}
	}

	titles := []string{role, "Senior " + role, "Junior " + role, role + " II", "Lead " + role}

	jobs := make([]domain.JobPosting, 0, count)
	for i := 0; i < count; i++ {
		company := sampleCompanies[rng.Intn(len(sampleCompanies))]
		city := location
		if city == "" || city == "Remote" || i%3 == 0 {
			city = sampleCities[rng.Intn(len(sampleCities))]
		}
		low := 60 + rng.Intn(60)
		high := low + 20 + rng.Intn(40)
		descSkills := make([]string, 0, 4)
		for _, j := range rng.Perm(len(skills))[:4] {
			descSkills = append(descSkills, skills[j])
		}

		jobs = append(jobs, domain.JobPosting{
			Title:       titles[i%len(titles)],
			Company:     company,
			Location:    city,
			Salary:      fmt.Sprintf("$%d,000 - $%d,000 a year", low, high),
			Description: fmt.Sprintf("Looking for a %s with experience in %s.", role, strings.Join(descSkills, ", ")),
			Link:        "https://www.indeed.com/viewjob?jk=sample",
			Source:      "Sample",
		})
	}
	return jobs
}
