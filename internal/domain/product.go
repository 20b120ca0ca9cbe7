package domain

// Product is a catalog entry.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	SubCategory string   `json:"sub_category,omitempty"`
	Price       float64  `json:"price"`
	Rating      float64  `json:"rating"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
	Reviews     []Review `json:"reviews"`
	Features    []string `json:"features,omitempty"`
}

// HasSubCategory reports whether the product carries a subcategory tag.
func (p *Product) HasSubCategory() bool {
	return p.SubCategory != ""
}

// Clone returns a copy of p whose slices are not shared with p.
func (p *Product) Clone() Product {
	c := *p
	c.Reviews = append(make([]Review, 0, len(p.Reviews)), p.Reviews...)
	c.Features = append([]string(nil), p.Features...)
	return c
}

// Review is a shopper review attached to a product.
type Review struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Username  string         `json:"username"`
	Rating    int            `json:"rating"`
	Comment   string         `json:"comment"`
	Sentiment SentimentScore `json:"sentiment"`
	Date      Date           `json:"date"`
}

// MinReviewRating and MaxReviewRating bound Review.Rating.
const (
	MinReviewRating = 1
	MaxReviewRating = 5
)

// MaxProductRating bounds Product.Rating.
const MaxProductRating = 5.0
