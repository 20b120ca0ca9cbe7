package catalog

import (
	"errors"
	"fmt"

	"github.com/utafrali/storefront/internal/domain"
)

// ErrInvalidFixture is wrapped by every fixture validation failure.
var ErrInvalidFixture = errors.New("invalid fixture")

// Fixture is the one-time catalog load: products with their reviews, the
// category taxonomy, and per-product suggestions.
type Fixture struct {
	Categories  []domain.Category
	Products    []domain.Product
	Suggestions map[string][]domain.Suggestion
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidFixture, fmt.Sprintf(format, args...))
}

// Validate checks the invariants the index relies on. All problems are
// reported together.
func (f *Fixture) Validate() error {
	var errs []error

	categories := make(map[string]*domain.Category, len(f.Categories))
	for i := range f.Categories {
		c := &f.Categories[i]
		if c.ID == "" {
			errs = append(errs, invalid("category %d has no id", i))
			continue
		}
		if _, dup := categories[c.ID]; dup {
			errs = append(errs, invalid("duplicate category id %q", c.ID))
		}
		categories[c.ID] = c

		seen := make(map[string]struct{}, len(c.SubCategories))
		for _, sc := range c.SubCategories {
			if _, dup := seen[sc.ID]; dup {
				errs = append(errs, invalid("duplicate subcategory id %q in category %q", sc.ID, c.ID))
			}
			seen[sc.ID] = struct{}{}
		}
	}

	products := make(map[string]struct{}, len(f.Products))
	for i := range f.Products {
		p := &f.Products[i]
		if p.ID == "" {
			errs = append(errs, invalid("product %d has no id", i))
			continue
		}
		if _, dup := products[p.ID]; dup {
			errs = append(errs, invalid("duplicate product id %q", p.ID))
		}
		products[p.ID] = struct{}{}

		if p.Price < 0 {
			errs = append(errs, invalid("product %q has negative price %v", p.ID, p.Price))
		}
		if p.Rating < 0 || p.Rating > domain.MaxProductRating {
			errs = append(errs, invalid("product %q rating %v outside [0,%v]", p.ID, p.Rating, domain.MaxProductRating))
		}

		if len(categories) > 0 {
			c, ok := categories[p.Category]
			switch {
			case !ok:
				errs = append(errs, invalid("product %q references unknown category %q", p.ID, p.Category))
			case p.HasSubCategory():
				if _, ok := c.SubCategory(p.SubCategory); !ok {
					errs = append(errs, invalid("product %q references unknown subcategory %q of %q", p.ID, p.SubCategory, p.Category))
				}
			}
		}

		reviews := make(map[string]struct{}, len(p.Reviews))
		for _, r := range p.Reviews {
			if _, dup := reviews[r.ID]; dup {
				errs = append(errs, invalid("duplicate review id %q on product %q", r.ID, p.ID))
			}
			reviews[r.ID] = struct{}{}
			if r.Rating < domain.MinReviewRating || r.Rating > domain.MaxReviewRating {
				errs = append(errs, invalid("review %q rating %d outside [1,5]", r.ID, r.Rating))
			}
		}
	}

	for productID, list := range f.Suggestions {
		if _, ok := products[productID]; !ok {
			errs = append(errs, invalid("suggestions reference unknown product %q", productID))
			continue
		}
		for _, s := range list {
			if s.ProductID != productID {
				errs = append(errs, invalid("suggestion %q filed under %q belongs to %q", s.ID, productID, s.ProductID))
			}
			if s.Source != domain.SuggestionSourceAI && s.Source != domain.SuggestionSourceUser {
				errs = append(errs, invalid("suggestion %q has unknown source %q", s.ID, s.Source))
			}
			if !s.Sentiment.Valid() {
				errs = append(errs, invalid("suggestion %q has unknown sentiment %q", s.ID, s.Sentiment))
			}
		}
	}

	return errors.Join(errs...)
}
