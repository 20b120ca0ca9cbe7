package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/validator"
)

// CartHandler handles HTTP requests for cart endpoints.
type CartHandler struct {
	service *service.CartService
	catalog *service.CatalogService
	logger  *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(svc *service.CartService, catalog *service.CatalogService, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		service: svc,
		catalog: catalog,
		logger:  logger,
	}
}

// --- Request DTOs ---

// AddItemRequest is the JSON request body for adding a product to the cart.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"notblank"`
}

// UpdateQuantityRequest is the JSON request body for updating a line's
// quantity. The storefront offers quantities 1 through 10.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=1,lte=10"`
}

// --- Handlers ---

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.service.View(r.Context()))
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.service.Clear(r.Context())
	httputil.WriteData(w, http.StatusOK, h.service.View(r.Context()))
}

// AddItem handles POST /api/v1/cart/items. Unknown products are rejected
// here so the ledger only ever holds catalog ids.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if _, err := h.catalog.FetchByID(r.Context(), req.ProductID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if _, err := h.service.Add(r.Context(), req.ProductID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, h.service.View(r.Context()))
}

// UpdateItemQuantity handles PUT /api/v1/cart/items/{productId}. Updating a
// product that is not in the cart leaves the cart unchanged.
func (h *CartHandler) UpdateItemQuantity(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if _, err := h.service.SetQuantity(r.Context(), chi.URLParam(r, "productId"), req.Quantity); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, h.service.View(r.Context()))
}

// RemoveItem handles DELETE /api/v1/cart/items/{productId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if _, err := h.service.Remove(r.Context(), chi.URLParam(r, "productId")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, h.service.View(r.Context()))
}
