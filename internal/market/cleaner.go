// Package market cleans and aggregates scraped job posting data for
// analysis: text normalisation, salary parsing, city ranking and skill
// extraction.
package market

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/core/domain"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	trailingZIP   = regexp.MustCompile(`\s+\d{5}$`)
	numberPattern = regexp.MustCompile(`[\d.]+`)
)

// CleanJobs normalises scraped postings in place: collapsed
// whitespace, standardised locations, defaulted links.
func CleanJobs(jobs []domain.JobPosting) []domain.JobPosting {
	cleaned := make([]domain.JobPosting, 0, len(jobs))
	for _, job := range jobs {
		job.Title = cleanText(job.Title)
		job.Company = cleanText(job.Company)
		job.Location = cleanLocation(job.Location)
		job.Description = cleanText(job.Description)
		if job.Link == "" {
			job.Link = "#"
		}
		if job.Source == "" {
			job.Source = "Unknown"
		}
		cleaned = append(cleaned, job)
	}
	return cleaned
}

func cleanText(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

// cleanLocation standardises a location string. Missing locations are
// treated as remote; trailing ZIP codes are dropped.
func cleanLocation(location string) string {
	if location == "" {
		return "Remote"
	}
	return trailingZIP.ReplaceAllString(cleanText(location), "")
}

// ParseSalary parses a salary string such as "$80,000 - $120,000 a
// year" or a monthly INR amount into a structured range. Strings with
// no usable figures return a zero range with defaulted currency and
// period.
func ParseSalary(s string) domain.SalaryRange {
	rng := domain.SalaryRange{Currency: "USD", Period: "year"}
	if s == "" {
		return rng
	}

	s = strings.ReplaceAll(s, ",", "")

	switch {
	case strings.Contains(s, "₹"):
		rng.Currency = "INR"
	case strings.Contains(s, "€"):
		rng.Currency = "EUR"
	case strings.Contains(s, "£"):
		rng.Currency = "GBP"
	}

	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "month"):
		rng.Period = "month"
	case strings.Contains(lower, "hour"):
		rng.Period = "hour"
	}

	numbers := numberPattern.FindAllString(s, -1)
	parse := func(raw string) float64 {
		v, err := strconv.ParseFloat(strings.Trim(raw, "."), 64)
		if err != nil {
			return 0
		}
		return v
	}

	switch {
	case len(numbers) >= 2:
		rng.Min = parse(numbers[0])
		rng.Max = parse(numbers[1])
	case len(numbers) == 1:
		rng.Min = parse(numbers[0])
		rng.Max = rng.Min
	}
	return rng
}

// SalaryStatsOf aggregates salary figures across postings, restricted
// to the most common currency and period so mixed markets do not skew
// the averages.
func SalaryStatsOf(jobs []domain.JobPosting) domain.SalaryStats {
	type sample struct {
		avg      float64
		currency string
		period   string
	}

	var samples []sample
	for _, job := range jobs {
		rng := ParseSalary(job.Salary)
		if rng.Min > 0 && rng.Max > 0 {
			samples = append(samples, sample{
				avg:      (rng.Min + rng.Max) / 2,
				currency: rng.Currency,
				period:   rng.Period,
			})
		}
	}

	if len(samples) == 0 {
		return domain.SalaryStats{AverageRange: "Data not available"}
	}

	currencyCounts := make(map[string]int)
	periodCounts := make(map[string]int)
	for _, s := range samples {
		currencyCounts[s.currency]++
		periodCounts[s.period]++
	}
	currency := mostCommon(currencyCounts)
	period := mostCommon(periodCounts)

	var values []float64
	for _, s := range samples {
		if s.currency == currency && s.period == period {
			values = append(values, s.avg)
		}
	}
	sort.Float64s(values)

	symbol := currency
	if currency == "USD" {
		symbol = "$"
	}

	return domain.SalaryStats{
		AverageRange: fmt.Sprintf("%s%d - %s%d per %s",
			symbol, int(values[0]), symbol, int(values[len(values)-1]), period),
		MinSalary:    values[0],
		MaxSalary:    values[len(values)-1],
		MedianSalary: values[len(values)/2],
		Currency:     currency,
		Period:       period,
	}
}

// TopCities returns the n locations with the most postings, most
// frequent first. Without location data it returns a canned list so
// downstream prompts always have something to work with.
func TopCities(jobs []domain.JobPosting, n int) []string {
	counts := make(map[string]int)
	for _, job := range jobs {
		if job.Location != "" {
			counts[job.Location]++
		}
	}

	if len(counts) == 0 {
		return []string{"Remote", "San Francisco, CA", "New York, NY"}
	}

	cities := make([]string, 0, len(counts))
	for city := range counts {
		cities = append(cities, city)
	}
	sort.Slice(cities, func(i, j int) bool {
		if counts[cities[i]] != counts[cities[j]] {
			return counts[cities[i]] > counts[cities[j]]
		}
		return cities[i] < cities[j]
	})

	if len(cities) > n {
		cities = cities[:n]
	}
	return cities
}

func mostCommon(counts map[string]int) string {
	best := ""
	for key, count := range counts {
		if best == "" || count > counts[best] || (count == counts[best] && key < best) {
			best = key
		}
	}
	return best
}
