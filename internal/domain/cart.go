package domain

import "time"

// CartLine is one product-and-quantity pair in a cart. UnitPrice is in kobo.
type CartLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	ImageURL  string `json:"image_url,omitempty"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// LineTotal returns unit price times quantity for this line.
func (l *CartLine) LineTotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// Cart is the per-user shopping cart. Only the line sequence is persisted;
// the totals are derived on read so they can never go stale.
type Cart struct {
	UserID    string     `json:"user_id"`
	Items     []CartLine `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TotalItems is the sum of all line quantities.
func (c *Cart) TotalItems() int {
	var n int
	for _, l := range c.Items {
		n += l.Quantity
	}
	return n
}

// Subtotal is the sum of unit price times quantity across all lines, in kobo.
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, l := range c.Items {
		total += l.LineTotal()
	}
	return total
}

// FindLine returns the index of the line for productID, or -1.
func (c *Cart) FindLine(productID string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}
