// Package service implements the storefront's catalog and cart operations on
// top of the in-memory stores.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/metrics"
	"github.com/utafrali/storefront/internal/sentiment"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/logger"
	"github.com/utafrali/storefront/pkg/pagination"
)

// DefaultTopRated is the number of products on the home page "top rated" shelf.
const DefaultTopRated = 8

// SubmitReviewInput holds the parameters for submitting a review.
type SubmitReviewInput struct {
	ProductID string
	UserID    string
	Username  string
	Rating    int
	Comment   string
}

// CatalogService implements the query and mutation operations over the
// catalog.
type CatalogService struct {
	store   CatalogStore
	logger  *slog.Logger
	nowFunc func() time.Time // injectable clock for testing
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(store CatalogStore, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		store:   store,
		logger:  logger,
		nowFunc: time.Now,
	}
}

func (s *CatalogService) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOr(ctx, s.logger)
}

// FetchAll returns the whole catalog in source order.
func (s *CatalogService) FetchAll(ctx context.Context) []domain.Product {
	_, end := traceQuery(ctx, s.logger, "fetch_all")
	products := s.store.All()
	end(nil, len(products))
	return products
}

// FetchByID returns a single product or a NotFound error.
func (s *CatalogService) FetchByID(ctx context.Context, id string) (domain.Product, error) {
	_, end := traceQuery(ctx, s.logger, "fetch_by_id", attribute.String("product.id", id))
	p, err := s.store.FetchByID(id)
	if err != nil {
		end(err, 0)
		return domain.Product{}, fmt.Errorf("fetch product: %w", err)
	}
	end(nil, 1)
	return p, nil
}

// Search runs a case-insensitive substring search. A blank query returns
// the whole catalog.
func (s *CatalogService) Search(ctx context.Context, query string) []domain.Product {
	_, end := traceQuery(ctx, s.logger, "search", attribute.String("catalog.query", query))
	products := s.store.Search(query)
	end(nil, len(products))
	return products
}

// Filter returns the products matching every constrained axis of f.
func (s *CatalogService) Filter(ctx context.Context, f domain.Filter) []domain.Product {
	_, end := traceQuery(ctx, s.logger, "filter")
	products := s.store.Filter(f)
	end(nil, len(products))
	return products
}

// TopRated returns up to n products by descending rating. n <= 0 selects
// DefaultTopRated.
func (s *CatalogService) TopRated(ctx context.Context, n int) []domain.Product {
	if n <= 0 {
		n = DefaultTopRated
	}
	_, end := traceQuery(ctx, s.logger, "top_rated")
	products := s.store.TopRated(n)
	end(nil, len(products))
	return products
}

// Categories returns the category taxonomy.
func (s *CatalogService) Categories(_ context.Context) []domain.Category {
	return s.store.Categories()
}

// Category returns a single category or a NotFound error.
func (s *CatalogService) Category(_ context.Context, id string) (domain.Category, error) {
	c, err := s.store.CategoryByID(id)
	if err != nil {
		return domain.Category{}, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// Suggestions returns a product's suggestions, most recent first.
func (s *CatalogService) Suggestions(_ context.Context, productID string) ([]domain.Suggestion, error) {
	list, err := s.store.Suggestions(productID)
	if err != nil {
		return nil, fmt.Errorf("list suggestions: %w", err)
	}
	return list, nil
}

// Reviews returns one page of a product's reviews, most recent first.
func (s *CatalogService) Reviews(ctx context.Context, productID string, params pagination.Params) (pagination.Result[domain.Review], error) {
	p, err := s.FetchByID(ctx, productID)
	if err != nil {
		return pagination.Result[domain.Review]{}, err
	}
	return pagination.Paginate(p.Reviews, params), nil
}

// ProductSentiment aggregates the sentiment of a product's reviews. ok is
// false when the product has no reviews.
func (s *CatalogService) ProductSentiment(ctx context.Context, productID string) (score domain.SentimentScore, ok bool, err error) {
	p, err := s.FetchByID(ctx, productID)
	if err != nil {
		return domain.SentimentScore{}, false, err
	}
	score, ok = sentiment.Aggregate(p.Reviews)
	return score, ok, nil
}

// SubmitReview scores the comment and prepends the review to the product.
func (s *CatalogService) SubmitReview(ctx context.Context, input SubmitReviewInput) (domain.Review, error) {
	if strings.TrimSpace(input.ProductID) == "" {
		return domain.Review{}, apperrors.InvalidInput("product id is required")
	}
	if strings.TrimSpace(input.UserID) == "" {
		return domain.Review{}, apperrors.InvalidInput("user id is required")
	}
	if strings.TrimSpace(input.Username) == "" {
		return domain.Review{}, apperrors.InvalidInput("username is required")
	}
	if input.Rating < domain.MinReviewRating || input.Rating > domain.MaxReviewRating {
		return domain.Review{}, apperrors.InvalidInput("rating must be between 1 and 5")
	}
	if strings.TrimSpace(input.Comment) == "" {
		return domain.Review{}, apperrors.InvalidInput("comment is required")
	}

	review := domain.Review{
		ID:        "review-" + uuid.New().String(),
		UserID:    input.UserID,
		Username:  input.Username,
		Rating:    input.Rating,
		Comment:   input.Comment,
		Sentiment: sentiment.Score(input.Comment),
		Date:      domain.DateOf(s.nowFunc()),
	}

	if err := s.store.AppendReview(input.ProductID, review); err != nil {
		return domain.Review{}, apperrors.Wrap(err, "append review")
	}

	metrics.ReviewsSubmitted.WithLabelValues(string(review.Sentiment.Overall())).Inc()

	s.log(ctx).InfoContext(ctx, "review submitted",
		slog.String("review_id", review.ID),
		slog.String("product_id", input.ProductID),
		slog.String("user_id", review.UserID),
		slog.Int("rating", review.Rating),
		slog.String("sentiment", string(review.Sentiment.Overall())),
	)

	return review, nil
}

// SubmitSuggestion classifies a shopper suggestion and prepends it to the
// product's suggestions.
func (s *CatalogService) SubmitSuggestion(ctx context.Context, productID, content string) (domain.Suggestion, error) {
	if strings.TrimSpace(productID) == "" {
		return domain.Suggestion{}, apperrors.InvalidInput("product id is required")
	}
	if strings.TrimSpace(content) == "" {
		return domain.Suggestion{}, apperrors.InvalidInput("content is required")
	}

	suggestion := domain.Suggestion{
		ID:        "user-suggestion-" + uuid.New().String(),
		ProductID: productID,
		Content:   content,
		Source:    domain.SuggestionSourceUser,
		Sentiment: sentiment.ClassifySuggestion(content),
	}

	if err := s.store.AppendSuggestion(productID, suggestion); err != nil {
		return domain.Suggestion{}, apperrors.Wrap(err, "append suggestion")
	}

	metrics.SuggestionsSubmitted.WithLabelValues(string(suggestion.Source), string(suggestion.Sentiment)).Inc()

	s.log(ctx).InfoContext(ctx, "suggestion submitted",
		slog.String("suggestion_id", suggestion.ID),
		slog.String("product_id", productID),
		slog.String("sentiment", string(suggestion.Sentiment)),
	)

	return suggestion, nil
}
