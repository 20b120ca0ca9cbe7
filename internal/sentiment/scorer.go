// Package sentiment implements the lexicon-based review scorer and the
// product-level aggregator.
package sentiment

import (
	"strings"

	"github.com/utafrali/storefront/internal/domain"
)

// Lexicon entries are matched as substrings of the lower-cased text, so
// "best" also matches "bestial".
var (
	positiveWords = []string{
		"love", "great", "excellent", "best", "perfect",
		"amazing", "fantastic", "happy", "satisfied", "recommend",
	}
	negativeWords = []string{
		"bad", "poor", "terrible", "worst", "hate",
		"disappointed", "broken", "issue", "problem", "refund",
	}
)

// PositiveLexicon returns a copy of the positive lexicon in match order.
func PositiveLexicon() []string { return append([]string(nil), positiveWords...) }

// NegativeLexicon returns a copy of the negative lexicon in match order.
func NegativeLexicon() []string { return append([]string(nil), negativeWords...) }

// Match lists the lexicon entries found in a text.
type Match struct {
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
}

// Matches returns the positive and negative lexicon entries contained in text.
// Each entry is reported at most once regardless of how often it occurs.
func Matches(text string) Match {
	lower := strings.ToLower(text)
	return Match{
		Positive: matching(lower, positiveWords),
		Negative: matching(lower, negativeWords),
	}
}

func matching(lower string, lexicon []string) []string {
	found := make([]string, 0, len(lexicon))
	for _, w := range lexicon {
		if strings.Contains(lower, w) {
			found = append(found, w)
		}
	}
	return found
}

// Score derives a sentiment distribution from free text. It never fails;
// text without lexicon hits scores fully neutral.
func Score(text string) domain.SentimentScore {
	return Matches(text).Score()
}

// Score converts a match set into a distribution.
func (m Match) Score() domain.SentimentScore {
	p := float64(len(m.Positive))
	n := float64(len(m.Negative))
	total := max(p+n, 1)

	positive := p / total
	negative := n / total
	return domain.NewSentimentScore(positive, 1-positive-negative, negative)
}
