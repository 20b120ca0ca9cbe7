package domain

import (
	"encoding/json"
	"fmt"
)

// SentimentLabel is the categorical summary of a sentiment distribution.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentNegative SentimentLabel = "negative"
)

// Valid reports whether l is one of the known labels.
func (l SentimentLabel) Valid() bool {
	switch l {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	}
	return false
}

// LabelFor applies the tie-break rule to a distribution. Positive wins only
// when it strictly exceeds both other components, then negative under the
// same condition; every other case, ties included, is neutral.
func LabelFor(positive, neutral, negative float64) SentimentLabel {
	if positive > negative && positive > neutral {
		return SentimentPositive
	}
	if negative > positive && negative > neutral {
		return SentimentNegative
	}
	return SentimentNeutral
}

// SentimentScore is a positive/neutral/negative distribution with its derived
// label. The label is computed on construction and cannot be set directly.
type SentimentScore struct {
	positive float64
	neutral  float64
	negative float64
	overall  SentimentLabel
}

// NewSentimentScore builds a score from its three components.
func NewSentimentScore(positive, neutral, negative float64) SentimentScore {
	return SentimentScore{
		positive: positive,
		neutral:  neutral,
		negative: negative,
		overall:  LabelFor(positive, neutral, negative),
	}
}

// NeutralSentiment is the score of text with no lexicon hits.
func NeutralSentiment() SentimentScore {
	return NewSentimentScore(0, 1, 0)
}

func (s SentimentScore) Positive() float64       { return s.positive }
func (s SentimentScore) Neutral() float64        { return s.neutral }
func (s SentimentScore) Negative() float64       { return s.negative }
func (s SentimentScore) Overall() SentimentLabel { return s.overall }

// Sum returns positive + neutral + negative.
func (s SentimentScore) Sum() float64 {
	return s.positive + s.neutral + s.negative
}

func (s SentimentScore) String() string {
	return fmt.Sprintf("%s (positive=%.2f neutral=%.2f negative=%.2f)",
		s.overall, s.positive, s.neutral, s.negative)
}

type sentimentScoreJSON struct {
	Positive float64        `json:"positive"`
	Neutral  float64        `json:"neutral"`
	Negative float64        `json:"negative"`
	Overall  SentimentLabel `json:"overall"`
}

// MarshalJSON implements json.Marshaler.
func (s SentimentScore) MarshalJSON() ([]byte, error) {
	return json.Marshal(sentimentScoreJSON{
		Positive: s.positive,
		Neutral:  s.neutral,
		Negative: s.negative,
		Overall:  s.overall,
	})
}

// UnmarshalJSON implements json.Unmarshaler. Any overall value in the input is
// ignored and re-derived from the components.
func (s *SentimentScore) UnmarshalJSON(data []byte) error {
	var raw sentimentScoreJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = NewSentimentScore(raw.Positive, raw.Neutral, raw.Negative)
	return nil
}
