package domain

import "slices"

// PriceRange bounds a price, inclusive on both ends.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Filter describes a conjunctive product query. A nil or empty axis places no
// constraint on that axis, so the zero Filter matches every product.
type Filter struct {
	Price         *PriceRange `json:"price,omitempty"`
	Rating        *float64    `json:"rating,omitempty"`
	Categories    []string    `json:"categories,omitempty"`
	SubCategories []string    `json:"sub_categories,omitempty"`
}

// IsEmpty reports whether no axis is constrained.
func (f Filter) IsEmpty() bool {
	return f.Price == nil && f.Rating == nil && len(f.Categories) == 0 && len(f.SubCategories) == 0
}

// Matches reports whether p satisfies every constrained axis of f.
func (f Filter) Matches(p *Product) bool {
	if len(f.Categories) > 0 && !slices.Contains(f.Categories, p.Category) {
		return false
	}
	if len(f.SubCategories) > 0 {
		if !p.HasSubCategory() || !slices.Contains(f.SubCategories, p.SubCategory) {
			return false
		}
	}
	if f.Price != nil && (p.Price < f.Price.Min || p.Price > f.Price.Max) {
		return false
	}
	if f.Rating != nil && p.Rating < *f.Rating {
		return false
	}
	return true
}
