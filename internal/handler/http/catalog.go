package http

import (
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/sentiment"
	"github.com/utafrali/storefront/internal/service"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/pagination"
	"github.com/utafrali/storefront/pkg/validator"
)

const maxTopRated = 50

// CatalogHandler handles HTTP requests for product, review, suggestion and
// category endpoints.
type CatalogHandler struct {
	service  *service.CatalogService
	deferred *service.DeferredCatalog
	logger   *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(svc *service.CatalogService, deferred *service.DeferredCatalog, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service:  svc,
		deferred: deferred,
		logger:   logger,
	}
}

// --- Request DTOs ---

// CreateReviewRequest is the JSON request body for submitting a review.
type CreateReviewRequest struct {
	UserID   string `json:"user_id" validate:"notblank,max=100"`
	Username string `json:"username" validate:"notblank,max=100"`
	Rating   int    `json:"rating" validate:"gte=1,lte=5"`
	Comment  string `json:"comment" validate:"notblank,max=2000"`
}

// CreateSuggestionRequest is the JSON request body for submitting a suggestion.
type CreateSuggestionRequest struct {
	Content string `json:"content" validate:"notblank,max=500"`
}

// --- Response DTOs ---

// SentimentResponse is a product's aggregated review sentiment. Sentiment is
// null when the product has no reviews.
type SentimentResponse struct {
	ProductID   string                 `json:"product_id"`
	ReviewCount int                    `json:"review_count"`
	Sentiment   *domain.SentimentScore `json:"sentiment"`
}

// --- Handlers ---

// ListProducts handles GET /api/v1/products. A q parameter runs a search;
// otherwise any filter parameters run a filter; with neither the whole
// catalog is returned.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var pending *service.Pending[[]domain.Product]
	if query.Has("q") {
		pending = h.deferred.Search(r.Context(), query.Get("q"))
	} else {
		filter, err := parseFilter(query)
		if err != nil {
			httputil.WriteError(w, r, err, h.logger)
			return
		}
		if filter.IsEmpty() {
			pending = h.deferred.FetchAll(r.Context())
		} else {
			pending = h.deferred.Filter(r.Context(), filter)
		}
	}

	products, err := pending.Wait()
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, products)
}

// TopRated handles GET /api/v1/products/top-rated
func (h *CatalogHandler) TopRated(w http.ResponseWriter, r *http.Request) {
	limit := service.DefaultTopRated
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > maxTopRated {
			httputil.WriteError(w, r, apperrors.InvalidInput(fmt.Sprintf("limit must be an integer between 1 and %d", maxTopRated)), h.logger)
			return
		}
		limit = v
	}

	httputil.WriteData(w, http.StatusOK, h.service.TopRated(r.Context(), limit))
}

// GetProduct handles GET /api/v1/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.deferred.FetchByID(r.Context(), chi.URLParam(r, "id")).Wait()
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, product)
}

// GetSentiment handles GET /api/v1/products/{id}/sentiment. The count and
// the aggregate come from the same product snapshot.
func (h *CatalogHandler) GetSentiment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.service.FetchByID(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	resp := SentimentResponse{ProductID: id, ReviewCount: len(product.Reviews)}
	if score, ok := sentiment.Aggregate(product.Reviews); ok {
		resp.Sentiment = &score
	}
	httputil.WriteData(w, http.StatusOK, resp)
}

// ListReviews handles GET /api/v1/products/{id}/reviews
func (h *CatalogHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.Reviews(r.Context(), chi.URLParam(r, "id"), pagination.FromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, page)
}

// CreateReview handles POST /api/v1/products/{id}/reviews
func (h *CatalogHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req CreateReviewRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	review, err := h.service.SubmitReview(r.Context(), service.SubmitReviewInput{
		ProductID: chi.URLParam(r, "id"),
		UserID:    req.UserID,
		Username:  req.Username,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusCreated, review)
}

// ListSuggestions handles GET /api/v1/products/{id}/suggestions
func (h *CatalogHandler) ListSuggestions(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.Suggestions(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, list)
}

// CreateSuggestion handles POST /api/v1/products/{id}/suggestions
func (h *CatalogHandler) CreateSuggestion(w http.ResponseWriter, r *http.Request) {
	var req CreateSuggestionRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	suggestion, err := h.service.SubmitSuggestion(r.Context(), chi.URLParam(r, "id"), req.Content)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusCreated, suggestion)
}

// ListCategories handles GET /api/v1/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.service.Categories(r.Context()))
}

// GetCategory handles GET /api/v1/categories/{id}
func (h *CatalogHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.Category(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, c)
}

// parseFilter builds a Filter from category, subcategory, min_price,
// max_price and min_rating. category and subcategory accept repeated or
// comma-separated values. A single price bound leaves the other open.
func parseFilter(q url.Values) (domain.Filter, error) {
	var f domain.Filter

	f.Categories = splitList(q["category"])
	f.SubCategories = splitList(q["subcategory"])

	minPrice, hasMin, err := parseFloat(q, "min_price")
	if err != nil {
		return domain.Filter{}, err
	}
	maxPrice, hasMax, err := parseFloat(q, "max_price")
	if err != nil {
		return domain.Filter{}, err
	}
	if hasMin || hasMax {
		if !hasMax {
			maxPrice = math.MaxFloat64
		}
		if minPrice > maxPrice {
			return domain.Filter{}, apperrors.InvalidInput("min_price must not exceed max_price")
		}
		f.Price = &domain.PriceRange{Min: minPrice, Max: maxPrice}
	}

	minRating, hasRating, err := parseFloat(q, "min_rating")
	if err != nil {
		return domain.Filter{}, err
	}
	if hasRating {
		if minRating < 0 || minRating > domain.MaxProductRating {
			return domain.Filter{}, apperrors.InvalidInput("min_rating must be between 0 and 5")
		}
		f.Rating = &minRating
	}

	return f, nil
}

func parseFloat(q url.Values, key string) (float64, bool, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || v < 0 {
		return 0, false, apperrors.InvalidInput(fmt.Sprintf("%s must be a non-negative number", key))
	}
	return v, true, nil
}

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
