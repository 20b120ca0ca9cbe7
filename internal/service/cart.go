package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/metrics"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/logger"
)

// CartService implements the cart operations. The ledger is the source of
// truth for quantities; the catalog is consulted only to render the cart.
type CartService struct {
	ledger  CartStore
	catalog ProductLookup
	logger  *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(ledger CartStore, catalog ProductLookup, logger *slog.Logger) *CartService {
	return &CartService{
		ledger:  ledger,
		catalog: catalog,
		logger:  logger,
	}
}

func (s *CartService) record(ctx context.Context, operation string, attrs ...any) {
	metrics.CartOperations.WithLabelValues(operation).Inc()
	count := s.ledger.ItemCount()
	metrics.CartItems.Set(float64(count))

	attrs = append(attrs, slog.Int("item_count", count))
	logger.FromContextOr(ctx, s.logger).InfoContext(ctx, "cart "+operation, attrs...)
}

func requireProductID(productID string) error {
	if strings.TrimSpace(productID) == "" {
		return apperrors.InvalidInput("product id is required")
	}
	return nil
}

// Add increments the product's quantity by one and returns the new quantity.
func (s *CartService) Add(ctx context.Context, productID string) (int, error) {
	if err := requireProductID(productID); err != nil {
		return 0, err
	}
	qty := s.ledger.Add(productID)
	s.record(ctx, "add", slog.String("product_id", productID), slog.Int("quantity", qty))
	return qty, nil
}

// Remove deletes the product's line. It reports whether a line existed.
func (s *CartService) Remove(ctx context.Context, productID string) (bool, error) {
	if err := requireProductID(productID); err != nil {
		return false, err
	}
	removed := s.ledger.Remove(productID)
	s.record(ctx, "remove", slog.String("product_id", productID), slog.Bool("removed", removed))
	return removed, nil
}

// SetQuantity replaces an existing line's quantity. It reports whether the
// line existed; quantities below 1 are rejected.
func (s *CartService) SetQuantity(ctx context.Context, productID string, quantity int) (bool, error) {
	if err := requireProductID(productID); err != nil {
		return false, err
	}
	updated, err := s.ledger.SetQuantity(productID, quantity)
	if err != nil {
		return false, fmt.Errorf("set quantity: %w", err)
	}
	s.record(ctx, "set_quantity",
		slog.String("product_id", productID),
		slog.Int("quantity", quantity),
		slog.Bool("updated", updated),
	)
	return updated, nil
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context) {
	s.ledger.Clear()
	s.record(ctx, "clear")
}

// ItemCount returns the sum of all quantities.
func (s *CartService) ItemCount(_ context.Context) int {
	return s.ledger.ItemCount()
}

// Lines returns the raw ledger in insertion order.
func (s *CartService) Lines(_ context.Context) []domain.CartLine {
	return s.ledger.Lines()
}

// View resolves the cart against the catalog. Lines whose product is no
// longer in the catalog are left out of Items and TotalPrice but still count
// toward ItemCount.
func (s *CartService) View(ctx context.Context) domain.CartView {
	lines := s.ledger.Lines()
	view := domain.CartView{
		Items:     make([]domain.CartItem, 0, len(lines)),
		ItemCount: domain.ItemCount(lines),
	}

	for _, line := range lines {
		p, err := s.catalog.FetchByID(line.ProductID)
		if err != nil {
			logger.FromContextOr(ctx, s.logger).WarnContext(ctx, "cart line references unknown product",
				slog.String("product_id", line.ProductID),
				slog.String("error", err.Error()),
			)
			continue
		}
		item := domain.CartItem{Product: p, Quantity: line.Quantity}
		view.TotalPrice += item.Subtotal()
		view.Items = append(view.Items, item)
	}

	return view
}
