// Package catalog holds the product catalog and answers search and filter
// queries over it.
package catalog

import (
	"cmp"
	"maps"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// snapshot is an immutable view of the catalog. Writers derive a new snapshot
// and swap it in; nothing reachable from a published snapshot is modified.
type snapshot struct {
	products    []domain.Product
	byID        map[string]int
	categories  []domain.Category
	suggestions map[string][]domain.Suggestion
}

// Index is the in-memory catalog. Reads are lock-free and always see a
// complete snapshot; writes are serialised.
type Index struct {
	mu   sync.Mutex
	snap atomic.Pointer[snapshot]
}

// NewIndex validates f and builds an index over it. The index takes its own
// copy of the fixture data.
func NewIndex(f Fixture) (*Index, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	s := &snapshot{
		products:    make([]domain.Product, len(f.Products)),
		byID:        make(map[string]int, len(f.Products)),
		categories:  cloneCategories(f.Categories),
		suggestions: make(map[string][]domain.Suggestion, len(f.Suggestions)),
	}
	for i := range f.Products {
		s.products[i] = f.Products[i].Clone()
		s.byID[f.Products[i].ID] = i
	}
	for id, list := range f.Suggestions {
		s.suggestions[id] = slices.Clone(list)
	}

	idx := &Index{}
	idx.snap.Store(s)
	return idx, nil
}

// Len returns the number of products.
func (idx *Index) Len() int {
	return len(idx.snap.Load().products)
}

// All returns every product in source order.
func (idx *Index) All() []domain.Product {
	s := idx.snap.Load()
	return collect(s.products, func(*domain.Product) bool { return true })
}

// Search returns products whose name, description, category or subcategory
// contains query, ignoring case and surrounding whitespace. A blank query
// returns the whole catalog. Source order is preserved.
func (idx *Index) Search(query string) []domain.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	s := idx.snap.Load()
	if q == "" {
		return collect(s.products, func(*domain.Product) bool { return true })
	}
	return collect(s.products, func(p *domain.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.Category), q) ||
			(p.HasSubCategory() && strings.Contains(strings.ToLower(p.SubCategory), q))
	})
}

// Filter returns the products matching every constrained axis of f, in
// source order. The zero Filter returns the whole catalog.
func (idx *Index) Filter(f domain.Filter) []domain.Product {
	s := idx.snap.Load()
	return collect(s.products, f.Matches)
}

// FetchByID looks up a single product.
func (idx *Index) FetchByID(id string) (domain.Product, error) {
	s := idx.snap.Load()
	i, ok := s.byID[id]
	if !ok {
		return domain.Product{}, apperrors.NotFound("product", id)
	}
	return s.products[i].Clone(), nil
}

// TopRated returns up to n products ordered by rating, highest first. Equal
// ratings keep source order.
func (idx *Index) TopRated(n int) []domain.Product {
	if n <= 0 {
		return []domain.Product{}
	}
	all := idx.All()
	slices.SortStableFunc(all, func(a, b domain.Product) int {
		return cmp.Compare(b.Rating, a.Rating)
	})
	return all[:min(n, len(all))]
}

// AppendReview puts review at the head of the product's review list.
func (idx *Index) AppendReview(productID string, review domain.Review) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	s := idx.snap.Load()
	i, ok := s.byID[productID]
	if !ok {
		return apperrors.NotFound("product", productID)
	}

	products := slices.Clone(s.products)
	p := products[i]
	p.Reviews = append([]domain.Review{review}, p.Reviews...)
	products[i] = p

	idx.snap.Store(&snapshot{
		products:    products,
		byID:        s.byID,
		categories:  s.categories,
		suggestions: s.suggestions,
	})
	return nil
}

// AppendSuggestion puts suggestion at the head of the product's suggestion
// list.
func (idx *Index) AppendSuggestion(productID string, suggestion domain.Suggestion) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	s := idx.snap.Load()
	if _, ok := s.byID[productID]; !ok {
		return apperrors.NotFound("product", productID)
	}

	suggestions := maps.Clone(s.suggestions)
	suggestions[productID] = append([]domain.Suggestion{suggestion}, s.suggestions[productID]...)

	idx.snap.Store(&snapshot{
		products:    s.products,
		byID:        s.byID,
		categories:  s.categories,
		suggestions: suggestions,
	})
	return nil
}

// Suggestions returns the product's suggestions, most recent first.
func (idx *Index) Suggestions(productID string) ([]domain.Suggestion, error) {
	s := idx.snap.Load()
	if _, ok := s.byID[productID]; !ok {
		return nil, apperrors.NotFound("product", productID)
	}
	out := make([]domain.Suggestion, len(s.suggestions[productID]))
	copy(out, s.suggestions[productID])
	return out, nil
}

// Categories returns the taxonomy in source order.
func (idx *Index) Categories() []domain.Category {
	return cloneCategories(idx.snap.Load().categories)
}

// CategoryByID looks up a single category.
func (idx *Index) CategoryByID(id string) (domain.Category, error) {
	for _, c := range idx.snap.Load().categories {
		if c.ID == id {
			c.SubCategories = slices.Clone(c.SubCategories)
			return c, nil
		}
	}
	return domain.Category{}, apperrors.NotFound("category", id)
}

func collect(products []domain.Product, keep func(*domain.Product) bool) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for i := range products {
		if keep(&products[i]) {
			out = append(out, products[i].Clone())
		}
	}
	return out
}

func cloneCategories(categories []domain.Category) []domain.Category {
	out := make([]domain.Category, len(categories))
	for i, c := range categories {
		c.SubCategories = slices.Clone(c.SubCategories)
		out[i] = c
	}
	return out
}
