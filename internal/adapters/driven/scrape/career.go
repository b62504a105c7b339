// Package scrape fetches career learning content and job postings from
// public web sources, with deterministic fallbacks when a source is
// unreachable. Scraping failures are never fatal to the caller.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/core/ports/driven"
	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/logger"
)

// Ensure CareerScraper implements the interface.
var _ driven.CareerSource = (*CareerScraper)(nil)

// Default configuration values.
const (
	DefaultTimeout = 10 * time.Second

	// userAgent mimics a browser; several sources reject default Go
	// client identification.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	// maxContentLines bounds how much of a page is kept per source.
	maxContentLines = 50

	// minLineLen drops navigation crumbs and button labels.
	minLineLen = 20
)

// roadmapSlugs maps career topics to roadmap.sh path slugs.
var roadmapSlugs = map[string]string{
	"full stack":       "full-stack",
	"frontend":         "frontend",
	"backend":          "backend",
	"devops":           "devops",
	"data science":     "data-scientist",
	"machine learning": "ml-engineer",
	"android":          "android",
	"ios":              "ios",
	"python":           "python",
	"java":             "java",
	"react":            "react",
	"nodejs":           "nodejs",
	"cyber security":   "cyber-security",
	"blockchain":       "blockchain",
}

// CareerScraper fetches learning-path content for a career topic.
type CareerScraper struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewCareerScraper creates a scraper with the given request timeout.
// Requests are rate limited to one per second to stay polite.
func NewCareerScraper(timeout time.Duration) *CareerScraper {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &CareerScraper{
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// ScrapeAll gathers content for the topic from every configured source.
// Sources that fail contribute fallback text instead of an error.
func (s *CareerScraper) ScrapeAll(ctx context.Context, topic string) (string, error) {
	var sections []string

	roadmap, err := s.scrapeRoadmapSite(ctx, topic)
	if err != nil {
		logger.Warn("roadmap source failed for %q: %v", topic, err)
		roadmap = fmt.Sprintf("Roadmap for %s development path.", topic)
	}
	sections = append(sections, "=== CAREER ROADMAP ===", roadmap)

	guide, err := s.scrapeGuideSite(ctx, topic)
	if err != nil {
		logger.Warn("guide source failed for %q: %v", topic, err)
		guide = fmt.Sprintf("Guide for %s career path.", topic)
	}
	sections = append(sections, "\n=== LEARNING GUIDE ===", guide)

	return strings.Join(sections, "\n"), nil
}

// scrapeRoadmapSite fetches the structured career path from roadmap.sh.
func (s *CareerScraper) scrapeRoadmapSite(ctx context.Context, topic string) (string, error) {
	slug, ok := roadmapSlugs[strings.ToLower(strings.TrimSpace(topic))]
	if !ok {
		slug = "full-stack"
	}
	url := "https://roadmap.sh/" + slug

	body, err := s.fetch(ctx, url)
	if err != nil {
		return "", err
	}

	var content []string
	if title := pageTitle(body); title != "" {
		content = append(content, "# "+title)
	}
	if desc := pageDescription(body); desc != "" {
		content = append(content, desc)
	}
	content = append(content, usefulLines(stripHTML(body), minLineLen, maxContentLines)...)

	if len(content) == 0 {
		return "", fmt.Errorf("no usable content at %s", url)
	}
	return strings.Join(content, "\n"), nil
}

// scrapeGuideSite fetches a career guide article.
func (s *CareerScraper) scrapeGuideSite(ctx context.Context, topic string) (string, error) {
	slug := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(topic)), " ", "-")
	url := fmt.Sprintf("https://www.geeksforgeeks.org/%s-roadmap/", slug)

	body, err := s.fetch(ctx, url)
	if err != nil {
		return "", err
	}

	lines := usefulLines(stripHTML(body), minLineLen, maxContentLines)
	if len(lines) == 0 {
		return "", fmt.Errorf("no usable content at %s", url)
	}
	return strings.Join(lines, "\n"), nil
}

// fetch performs a rate-limited GET and returns the response body.
func (s *CareerScraper) fetch(ctx context.Context, url string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	logger.Debug("Fetching %s", url)
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(body), nil
}
