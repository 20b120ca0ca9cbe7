package sentiment

import "github.com/utafrali/storefront/internal/domain"

// Aggregate averages the review sentiments component-wise. ok is false when
// reviews is empty, in which case there is no meaningful score.
func Aggregate(reviews []domain.Review) (score domain.SentimentScore, ok bool) {
	if len(reviews) == 0 {
		return domain.SentimentScore{}, false
	}

	var pos, neu, neg float64
	for i := range reviews {
		s := reviews[i].Sentiment
		pos += s.Positive()
		neu += s.Neutral()
		neg += s.Negative()
	}

	n := float64(len(reviews))
	return domain.NewSentimentScore(pos/n, neu/n, neg/n), true
}
