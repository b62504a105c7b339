package market

import (
	"regexp"
	"sort"
	"strings"
)

// techSkills is the known-skill vocabulary matched against job
// descriptions. Matching is case-insensitive on word boundaries.
var techSkills = []string{
	// Programming languages
	"python", "java", "javascript", "typescript", "c++", "c#", "ruby", "php",
	"swift", "kotlin", "go", "rust", "scala", "r",

	// Web technologies
	"react", "angular", "vue.js", "vue", "node.js", "express", "django", "flask",
	"html", "css", "sass", "tailwind", "bootstrap", "jquery",

	// Data and AI
	"sql", "nosql", "mongodb", "postgresql", "mysql", "redis",
	"machine learning", "deep learning", "tensorflow", "pytorch", "keras",
	"pandas", "numpy", "scikit-learn", "opencv",

	// Cloud and DevOps
	"aws", "azure", "gcp", "docker", "kubernetes", "jenkins", "terraform",
	"ci/cd", "git", "github", "gitlab",

	// Mobile
	"ios", "android", "react native", "flutter",

	// Others
	"agile", "scrum", "rest api", "graphql", "microservices",
	"data visualization", "tableau", "power bi",
}

// skillPatterns is built once from techSkills.
var skillPatterns = func() map[string]*regexp.Regexp {
	wordEnd := regexp.MustCompile(`\w$`)
	patterns := make(map[string]*regexp.Regexp, len(techSkills))
	for _, skill := range techSkills {
		// A \b after a trailing symbol ("c++", "c#") can never match,
		// so those skills need an explicit right delimiter instead.
		tail := `\b`
		if !wordEnd.MatchString(skill) {
			tail = `(?:$|[^\w+#])`
		}
		patterns[skill] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(skill) + tail)
	}
	return patterns
}()

// ExtractSkills returns up to limit known skills found in the text,
// ordered by mention count descending. Names are title-cased for
// display.
func ExtractSkills(text string, limit int) []string {
	if text == "" {
		return nil
	}

	counts := make(map[string]int)
	for skill, pattern := range skillPatterns {
		if n := len(pattern.FindAllStringIndex(text, -1)); n > 0 {
			counts[titleCase(skill)] = n
		}
	}

	skills := make([]string, 0, len(counts))
	for skill := range counts {
		skills = append(skills, skill)
	}
	sort.Slice(skills, func(i, j int) bool {
		if counts[skills[i]] != counts[skills[j]] {
			return counts[skills[i]] > counts[skills[j]]
		}
		return skills[i] < skills[j]
	})

	if len(skills) > limit {
		skills = skills[:limit]
	}
	return skills
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
