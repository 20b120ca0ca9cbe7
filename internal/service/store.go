package service

import "github.com/utafrali/storefront/internal/domain"

// CatalogStore is the product catalog the services query and append to.
// *catalog.Index satisfies it.
type CatalogStore interface {
	All() []domain.Product
	Search(query string) []domain.Product
	Filter(f domain.Filter) []domain.Product
	FetchByID(id string) (domain.Product, error)
	TopRated(n int) []domain.Product
	AppendReview(productID string, review domain.Review) error
	AppendSuggestion(productID string, suggestion domain.Suggestion) error
	Suggestions(productID string) ([]domain.Suggestion, error)
	Categories() []domain.Category
	CategoryByID(id string) (domain.Category, error)
}

// ProductLookup resolves product ids for display.
type ProductLookup interface {
	FetchByID(id string) (domain.Product, error)
}

// CartStore is the cart quantity ledger. *cart.Ledger satisfies it.
type CartStore interface {
	Add(productID string) int
	Remove(productID string) bool
	SetQuantity(productID string, quantity int) (bool, error)
	Clear()
	ItemCount() int
	Lines() []domain.CartLine
}
