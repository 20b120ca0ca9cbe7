package domain

// SuggestionSource identifies who authored a suggestion.
type SuggestionSource string

const (
	SuggestionSourceAI   SuggestionSource = "ai"
	SuggestionSourceUser SuggestionSource = "user"
)

// Suggestion is an improvement idea attached to a product.
type Suggestion struct {
	ID        string           `json:"id"`
	ProductID string           `json:"product_id"`
	Content   string           `json:"content"`
	Source    SuggestionSource `json:"source"`
	Sentiment SentimentLabel   `json:"sentiment"`
}
