package domain

// Category is a top-level taxonomy node.
type Category struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	ImageURL      string        `json:"image_url"`
	SubCategories []SubCategory `json:"sub_categories"`
}

// SubCategory is a child of a Category. IDs are unique within their category.
type SubCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SubCategory looks up a subcategory by id.
func (c *Category) SubCategory(id string) (SubCategory, bool) {
	for _, sc := range c.SubCategories {
		if sc.ID == id {
			return sc, true
		}
	}
	return SubCategory{}, false
}
