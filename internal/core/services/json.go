package services

import "strings"

// cleanJSON strips markdown code fences and surrounding prose from an
// LLM reply so it can be unmarshalled. Models frequently wrap JSON in
// ```json fences despite instructions not to.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	// Cut any prose before the first brace or after the last one.
	if start := strings.IndexByte(text, '{'); start > 0 {
		text = text[start:]
	}
	if end := strings.LastIndexByte(text, '}'); end >= 0 && end < len(text)-1 {
		text = text[:end+1]
	}
	return text
}
