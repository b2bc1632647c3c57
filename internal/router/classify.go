package router

import "strings"

// assertKeywords are phrases that strongly suggest a declarative
// statement rather than a question, used when the text has no trailing
// question mark.
var assertKeywords = []string{"is a", "is the", "are", "has", "have", "was", "were"}

// classifyKeyword maps free text to "assert" or "query" via a trailing
// "?" or a fixed keyword list, per the keyword router variant.
func classifyKeyword(text string) string {
	trimmed := strings.TrimSpace(text)
	if strings.HasSuffix(trimmed, "?") {
		return "query"
	}
	lower := strings.ToLower(trimmed)
	for _, kw := range []string{"who", "what", "when", "where", "why", "how", "is ", "are ", "does ", "do "} {
		if strings.HasPrefix(lower, kw) {
			return "query"
		}
	}
	for _, kw := range assertKeywords {
		if strings.Contains(lower, kw) {
			return "assert"
		}
	}
	return "assert"
}
