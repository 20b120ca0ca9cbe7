package sentiment

import (
	"strings"

	"github.com/utafrali/storefront/internal/domain"
)

// ClassifySuggestion labels suggestion text with a keyword rule: "improve" or
// "issue" marks it negative, otherwise "love" or "great" marks it positive,
// otherwise it is neutral. Matching is case-insensitive substring containment.
func ClassifySuggestion(content string) domain.SentimentLabel {
	lower := strings.ToLower(content)
	switch {
	case strings.Contains(lower, "improve"), strings.Contains(lower, "issue"):
		return domain.SentimentNegative
	case strings.Contains(lower, "love"), strings.Contains(lower, "great"):
		return domain.SentimentPositive
	default:
		return domain.SentimentNeutral
	}
}
