package catalog

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/utafrali/storefront/internal/domain"
)

var (
	reviewUsernames = []string{
		"Aarav", "Diya", "Vihaan", "Isha", "Advait",
		"Ananya", "Reyansh", "Saanvi", "Vivaan", "Anika",
	}

	positiveComments = []string{
		"Love this product! Works exactly as described.",
		"Amazing quality for the price. Highly recommend!",
		"Very satisfied with my purchase. Will buy again.",
		"This exceeded my expectations. Great value!",
		"Perfect for my needs. So happy with this purchase!",
	}
	neutralComments = []string{
		"It's okay. Does what it's supposed to do.",
		"Average product. Nothing special but works fine.",
		"Good enough for the price, but there are better options.",
		"Decent quality. Some minor issues but overall satisfactory.",
		"It serves its purpose, but I wouldn't call it exceptional.",
	}
	negativeComments = []string{
		"Disappointed with the quality. Not worth the price.",
		"Broke within a week of use. Would not recommend.",
		"Doesn't work as advertised. Save your money.",
		"Poor build quality. Expected better for the price.",
		"Had issues from day one. Very frustrating experience.",
	}
)

type cannedSuggestion struct {
	content   string
	sentiment domain.SentimentLabel
}

var (
	aiSuggestions = []cannedSuggestion{
		{"Consider improving battery life based on user feedback", domain.SentimentNegative},
		{"Users love the design, consider expanding color options", domain.SentimentPositive},
		{"The interface could be more user-friendly", domain.SentimentNeutral},
		{"Many users report connectivity issues", domain.SentimentNegative},
		{"The durability is highly praised, maintain this quality", domain.SentimentPositive},
	}
	userSuggestions = []cannedSuggestion{
		{"Add a water-resistant feature", domain.SentimentNeutral},
		{"The size is perfect, don't change it", domain.SentimentPositive},
		{"The buttons are hard to press", domain.SentimentNegative},
		{"Would love to see more storage options", domain.SentimentNeutral},
		{"The sound quality is amazing, keep it up!", domain.SentimentPositive},
	}
)

// reviewWindowMonths is how far back generated review dates reach.
const reviewWindowMonths = 6

// generator produces deterministic review and suggestion fixtures for a seed.
type generator struct {
	rng *rand.Rand
	now time.Time
}

func newGenerator(seed int64, now time.Time) *generator {
	return &generator{
		rng: rand.New(rand.NewPCG(uint64(seed), 0x9e3779b97f4a7c15)),
		now: now,
	}
}

func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.IntN(len(items))]
}

// reviews generates count reviews. Ratings of 4 and 5 draw a positive
// comment and distribution, 3 a neutral one, and 1 or 2 a negative one.
func (g *generator) reviews(productID string, count int) []domain.Review {
	reviews := make([]domain.Review, 0, count)
	for i := range count {
		rating := g.rng.IntN(5) + 1

		var comment string
		var positive, negative float64
		switch {
		case rating >= 4:
			comment = pick(g.rng, positiveComments)
			positive = 0.7 + g.rng.Float64()*0.3
			negative = g.rng.Float64() * 0.2
		case rating == 3:
			comment = pick(g.rng, neutralComments)
			positive = 0.3 + g.rng.Float64()*0.2
			negative = 0.3 + g.rng.Float64()*0.2
		default:
			comment = pick(g.rng, negativeComments)
			positive = g.rng.Float64() * 0.2
			negative = 0.7 + g.rng.Float64()*0.3
		}

		reviews = append(reviews, domain.Review{
			ID:        fmt.Sprintf("review-%s-%d", productID, i),
			UserID:    fmt.Sprintf("user-%d", i),
			Username:  pick(g.rng, reviewUsernames),
			Rating:    rating,
			Comment:   comment,
			Sentiment: generatedScore(positive, negative),
			Date:      g.date(),
		})
	}
	return reviews
}

// generatedScore keeps the distribution on the simplex: when the drawn
// positive and negative shares exceed 1 together they are rescaled and
// neutral becomes 0.
func generatedScore(positive, negative float64) domain.SentimentScore {
	if sum := positive + negative; sum > 1 {
		positive /= sum
		negative /= sum
	}
	return domain.NewSentimentScore(positive, max(1-positive-negative, 0), negative)
}

// date returns a uniformly random day within the review window ending now.
func (g *generator) date() domain.Date {
	from := g.now.AddDate(0, -reviewWindowMonths, 0)
	span := g.now.Sub(from)
	offset := time.Duration(g.rng.Int64N(int64(span) + 1))
	return domain.DateOf(from.Add(offset).UTC())
}

// suggestions generates two or three ai suggestions followed by one or two
// user suggestions.
func (g *generator) suggestions(productID string) []domain.Suggestion {
	numAI := g.rng.IntN(2) + 2
	numUser := g.rng.IntN(2) + 1

	out := make([]domain.Suggestion, 0, numAI+numUser)
	for i := range numAI {
		s := pick(g.rng, aiSuggestions)
		out = append(out, domain.Suggestion{
			ID:        fmt.Sprintf("ai-suggestion-%s-%d", productID, i),
			ProductID: productID,
			Content:   s.content,
			Source:    domain.SuggestionSourceAI,
			Sentiment: s.sentiment,
		})
	}
	for i := range numUser {
		s := pick(g.rng, userSuggestions)
		out = append(out, domain.Suggestion{
			ID:        fmt.Sprintf("user-suggestion-%s-%d", productID, i),
			ProductID: productID,
			Content:   s.content,
			Source:    domain.SuggestionSourceUser,
			Sentiment: s.sentiment,
		})
	}
	return out
}
