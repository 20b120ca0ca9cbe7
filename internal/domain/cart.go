package domain

// CartLine is one product entry in the cart ledger.
type CartLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CartItem is a cart line resolved against the catalog for display.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal returns price times quantity.
func (i *CartItem) Subtotal() float64 {
	return i.Product.Price * float64(i.Quantity)
}

// CartView is the resolved cart.
type CartView struct {
	Items      []CartItem `json:"items"`
	ItemCount  int        `json:"item_count"`
	TotalPrice float64    `json:"total_price"`
}

// ItemCount sums the quantities of lines.
func ItemCount(lines []CartLine) int {
	var count int
	for _, l := range lines {
		count += l.Quantity
	}
	return count
}
