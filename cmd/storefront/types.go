package main

import (
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/sentiment"
)

// CLIResult is the top-level JSON envelope for all command output.
type CLIResult struct {
	Command    string `json:"command"`
	Results    any    `json:"results"`
	TotalCount *int   `json:"total_count,omitempty"`
	Error      string `json:"error,omitempty"`
}

// CLIScore is the result of scoring a piece of text.
type CLIScore struct {
	Text      string                `json:"text"`
	Sentiment domain.SentimentScore `json:"sentiment"`
	Matches   sentiment.Match       `json:"matches"`
}

// CLIProductDetail is a product with its aggregated review sentiment and
// improvement suggestions.
type CLIProductDetail struct {
	Product     domain.Product         `json:"product"`
	Sentiment   *domain.SentimentScore `json:"sentiment"`
	Suggestions []domain.Suggestion    `json:"suggestions"`
}
