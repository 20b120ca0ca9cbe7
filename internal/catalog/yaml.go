package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/sentiment"
	"github.com/utafrali/storefront/pkg/slug"
	"github.com/utafrali/storefront/pkg/validator"
)

//go:embed data/storefront.yaml
var defaultFixtureYAML []byte

type fixtureDoc struct {
	Categories  []categoryDoc              `yaml:"categories" validate:"dive"`
	Products    []productDoc               `yaml:"products" validate:"required,dive"`
	Suggestions map[string][]suggestionDoc `yaml:"suggestions" validate:"dive,dive"`
}

type categoryDoc struct {
	ID            string           `yaml:"id"`
	Name          string           `yaml:"name" validate:"notblank"`
	ImageURL      string           `yaml:"image_url"`
	SubCategories []subCategoryDoc `yaml:"sub_categories" validate:"dive"`
}

type subCategoryDoc struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name" validate:"notblank"`
}

type productDoc struct {
	ID          string      `yaml:"id" validate:"notblank"`
	Name        string      `yaml:"name" validate:"notblank"`
	Category    string      `yaml:"category" validate:"notblank"`
	SubCategory string      `yaml:"sub_category"`
	Price       float64     `yaml:"price" validate:"gte=0"`
	Rating      float64     `yaml:"rating" validate:"gte=0,lte=5"`
	Description string      `yaml:"description"`
	ImageURL    string      `yaml:"image_url"`
	Features    []string    `yaml:"features"`
	Reviews     []reviewDoc `yaml:"reviews" validate:"dive"`

	// GenerateReviews appends that many generated reviews after any
	// explicit ones.
	GenerateReviews int `yaml:"generate_reviews" validate:"gte=0"`
	// GenerateSuggestions fills the product's suggestions when the document
	// lists none for it.
	GenerateSuggestions bool `yaml:"generate_suggestions"`
}

type reviewDoc struct {
	ID        string        `yaml:"id" validate:"notblank"`
	UserID    string        `yaml:"user_id"`
	Username  string        `yaml:"username"`
	Rating    int           `yaml:"rating" validate:"gte=1,lte=5"`
	Comment   string        `yaml:"comment"`
	Date      string        `yaml:"date" validate:"notblank"`
	Sentiment *sentimentDoc `yaml:"sentiment"`
}

type sentimentDoc struct {
	Positive float64 `yaml:"positive" validate:"gte=0,lte=1"`
	Neutral  float64 `yaml:"neutral" validate:"gte=0,lte=1"`
	Negative float64 `yaml:"negative" validate:"gte=0,lte=1"`
}

type suggestionDoc struct {
	ID        string `yaml:"id" validate:"notblank"`
	Content   string `yaml:"content" validate:"notblank"`
	Source    string `yaml:"source" validate:"oneof=ai user"`
	Sentiment string `yaml:"sentiment" validate:"omitempty,oneof=positive neutral negative"`
}

// sentimentTolerance bounds how far explicit fixture fractions may stray from
// summing to 1.
const sentimentTolerance = 1e-6

// DefaultFixture returns the built-in storefront catalog. Generated reviews and
// suggestions are deterministic for a given seed and now.
func DefaultFixture(seed int64, now time.Time) (Fixture, error) {
	return LoadFixtureYAML(bytes.NewReader(defaultFixtureYAML), seed, now)
}

// LoadFixtureYAML decodes and validates a YAML fixture document. seed and now
// only matter for products carrying generate_* directives. Reviews without an
// explicit sentiment are scored from their comment, and suggestions without a
// label are classified from their content.
func LoadFixtureYAML(r io.Reader, seed int64, now time.Time) (Fixture, error) {
	var doc fixtureDoc
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Fixture{}, invalid("empty document")
		}
		return Fixture{}, fmt.Errorf("decode fixture: %w", err)
	}

	if err := validator.Validate(&doc); err != nil {
		return Fixture{}, fmt.Errorf("%w: %w", ErrInvalidFixture, err)
	}

	f, err := doc.toFixture(newGenerator(seed, now))
	if err != nil {
		return Fixture{}, err
	}
	if err := f.Validate(); err != nil {
		return Fixture{}, err
	}
	return f, nil
}

func (d *fixtureDoc) toFixture(gen *generator) (Fixture, error) {
	f := Fixture{
		Categories:  make([]domain.Category, 0, len(d.Categories)),
		Products:    make([]domain.Product, 0, len(d.Products)),
		Suggestions: make(map[string][]domain.Suggestion, len(d.Products)),
	}

	for _, c := range d.Categories {
		cat := domain.Category{
			ID:            orSlug(c.ID, c.Name),
			Name:          c.Name,
			ImageURL:      c.ImageURL,
			SubCategories: make([]domain.SubCategory, 0, len(c.SubCategories)),
		}
		for _, sc := range c.SubCategories {
			cat.SubCategories = append(cat.SubCategories, domain.SubCategory{
				ID:   orSlug(sc.ID, sc.Name),
				Name: sc.Name,
			})
		}
		f.Categories = append(f.Categories, cat)
	}

	for _, p := range d.Products {
		reviews := make([]domain.Review, 0, len(p.Reviews)+p.GenerateReviews)
		for _, r := range p.Reviews {
			review, err := r.toReview()
			if err != nil {
				return Fixture{}, fmt.Errorf("product %q: %w", p.ID, err)
			}
			reviews = append(reviews, review)
		}
		reviews = append(reviews, gen.reviews(p.ID, p.GenerateReviews)...)

		f.Products = append(f.Products, domain.Product{
			ID:          p.ID,
			Name:        p.Name,
			Category:    p.Category,
			SubCategory: p.SubCategory,
			Price:       p.Price,
			Rating:      p.Rating,
			Description: p.Description,
			ImageURL:    p.ImageURL,
			Reviews:     reviews,
			Features:    p.Features,
		})
	}

	for productID, list := range d.Suggestions {
		out := make([]domain.Suggestion, 0, len(list))
		for _, s := range list {
			label := domain.SentimentLabel(s.Sentiment)
			if label == "" {
				label = sentiment.ClassifySuggestion(s.Content)
			}
			out = append(out, domain.Suggestion{
				ID:        s.ID,
				ProductID: productID,
				Content:   s.Content,
				Source:    domain.SuggestionSource(s.Source),
				Sentiment: label,
			})
		}
		f.Suggestions[productID] = out
	}

	// Suggestions are generated after every product's reviews so the random
	// stream does not depend on map iteration order.
	for _, p := range d.Products {
		if _, ok := f.Suggestions[p.ID]; ok || !p.GenerateSuggestions {
			continue
		}
		f.Suggestions[p.ID] = gen.suggestions(p.ID)
	}

	return f, nil
}

func (r *reviewDoc) toReview() (domain.Review, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return domain.Review{}, invalid("review %q: %v", r.ID, err)
	}

	score := sentiment.Score(r.Comment)
	if s := r.Sentiment; s != nil {
		sum := s.Positive + s.Neutral + s.Negative
		if sum < 1-sentimentTolerance || sum > 1+sentimentTolerance {
			return domain.Review{}, invalid("review %q sentiment sums to %v", r.ID, sum)
		}
		score = domain.NewSentimentScore(s.Positive, s.Neutral, s.Negative)
	}

	return domain.Review{
		ID:        r.ID,
		UserID:    r.UserID,
		Username:  r.Username,
		Rating:    r.Rating,
		Comment:   r.Comment,
		Sentiment: score,
		Date:      date,
	}, nil
}

func orSlug(id, name string) string {
	if id != "" {
		return id
	}
	return slug.Generate(name)
}
