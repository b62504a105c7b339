package scrape

import (
	"html"
	"regexp"
	"strings"
)

// Pre-compiled regular expressions for HTML text extraction.
var (
	titleTag      = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	metaDesc      = regexp.MustCompile(`(?is)<meta\s+name="description"\s+content="([^"]*)"`)
	scriptTag     = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag      = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	noscriptTag   = regexp.MustCompile(`(?is)<noscript[^>]*>.*?</noscript>`)
	svgTag        = regexp.MustCompile(`(?is)<svg[^>]*>.*?</svg>`)
	htmlComments  = regexp.MustCompile(`(?s)<!--.*?-->`)
	blockElements = regexp.MustCompile(`(?i)</?(p|div|br|hr|h[1-6]|li|ul|ol|tr|blockquote|pre|table|section|article)[^>]*>`)
	allTags       = regexp.MustCompile(`<[^>]+>`)
	multiSpaces   = regexp.MustCompile(`[ \t]+`)
	multiNewlines = regexp.MustCompile(`\n{3,}`)
)

// pageTitle extracts the contents of the <title> tag, if any.
func pageTitle(content string) string {
	matches := titleTag.FindStringSubmatch(content)
	if len(matches) > 1 {
		return strings.TrimSpace(html.UnescapeString(matches[1]))
	}
	return ""
}

// pageDescription extracts the meta description, if any.
func pageDescription(content string) string {
	matches := metaDesc.FindStringSubmatch(content)
	if len(matches) > 1 {
		return strings.TrimSpace(html.UnescapeString(matches[1]))
	}
	return ""
}

// stripHTML removes HTML tags and extracts readable text content.
// Block elements become line breaks so paragraph structure survives,
// which the chunker relies on for natural split points.
func stripHTML(content string) string {
	content = scriptTag.ReplaceAllString(content, "")
	content = styleTag.ReplaceAllString(content, "")
	content = noscriptTag.ReplaceAllString(content, "")
	content = svgTag.ReplaceAllString(content, "")
	content = htmlComments.ReplaceAllString(content, "")

	content = blockElements.ReplaceAllString(content, "\n")
	content = allTags.ReplaceAllString(content, "")
	content = html.UnescapeString(content)

	content = multiSpaces.ReplaceAllString(content, " ")
	content = multiNewlines.ReplaceAllString(content, "\n\n")

	// Trim each line but keep one blank line between paragraphs, so the
	// \n\n separators survive into stored documents.
	var result []string
	blank := true
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if !blank {
				result = append(result, "")
			}
			blank = true
			continue
		}
		result = append(result, line)
		blank = false
	}
	if n := len(result); n > 0 && result[n-1] == "" {
		result = result[:n-1]
	}
	return strings.Join(result, "\n")
}

// usefulLines keeps lines long enough to carry meaning, up to max.
// Navigation crumbs and button labels fall below the threshold.
func usefulLines(text string, minLen, max int) []string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		if len(line) >= minLen {
			kept = append(kept, line)
			if len(kept) == max {
				break
			}
		}
	}
	return kept
}
