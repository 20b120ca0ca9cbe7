// Package cart keeps the shopping cart's quantity ledger.
package cart

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// Ledger maps product ids to quantities, one line per product, in the order
// lines were first added. Readers see immutable snapshots; writers are
// serialised and publish a fresh slice on every change.
type Ledger struct {
	mu    sync.Mutex
	lines atomic.Pointer[[]domain.CartLine]
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	l := &Ledger{}
	l.lines.Store(&[]domain.CartLine{})
	return l
}

func (l *Ledger) load() []domain.CartLine {
	return *l.lines.Load()
}

func indexOf(lines []domain.CartLine, productID string) int {
	return slices.IndexFunc(lines, func(cl domain.CartLine) bool {
		return cl.ProductID == productID
	})
}

// Add increments the product's quantity, creating the line with quantity 1
// on first add. It returns the new quantity.
func (l *Ledger) Add(productID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	lines := slices.Clone(l.load())
	i := indexOf(lines, productID)
	if i < 0 {
		lines = append(lines, domain.CartLine{ProductID: productID, Quantity: 1})
		i = len(lines) - 1
	} else {
		lines[i].Quantity++
	}
	l.lines.Store(&lines)
	return lines[i].Quantity
}

// Remove deletes the product's line. Removing an absent product is a no-op.
// It reports whether a line was removed.
func (l *Ledger) Remove(productID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	current := l.load()
	i := indexOf(current, productID)
	if i < 0 {
		return false
	}
	lines := slices.Delete(slices.Clone(current), i, i+1)
	l.lines.Store(&lines)
	return true
}

// SetQuantity replaces the quantity of an existing line. Quantities below 1
// are rejected with ErrInvalidInput; an absent line is left absent and
// reported as false.
func (l *Ledger) SetQuantity(productID string, quantity int) (bool, error) {
	if quantity < 1 {
		return false, apperrors.InvalidInput(fmt.Sprintf("quantity must be at least 1, got %d", quantity))
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	current := l.load()
	i := indexOf(current, productID)
	if i < 0 {
		return false, nil
	}
	lines := slices.Clone(current)
	lines[i].Quantity = quantity
	l.lines.Store(&lines)
	return true, nil
}

// Clear removes every line.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.lines.Store(&[]domain.CartLine{})
}

// ItemCount is the sum of all quantities.
func (l *Ledger) ItemCount() int {
	return domain.ItemCount(l.load())
}

// Quantity returns the product's quantity, or 0 if it has no line.
func (l *Ledger) Quantity(productID string) int {
	lines := l.load()
	if i := indexOf(lines, productID); i >= 0 {
		return lines[i].Quantity
	}
	return 0
}

// Lines returns a copy of the ledger in insertion order.
func (l *Ledger) Lines() []domain.CartLine {
	return slices.Clone(l.load())
}
