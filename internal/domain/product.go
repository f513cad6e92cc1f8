package domain

import (
	"hash/fnv"
	"time"
)

// Product categories carried by the catalog.
const (
	CategoryCoffeeBeans      = "coffee-beans"
	CategoryInstantCoffee    = "instant-coffee"
	CategoryCoffeePods       = "coffee-pods"
	CategoryAccessories      = "accessories"
	CategoryGiftSets         = "gift-sets"
	CategoryBrewingEquipment = "brewing-equipment"
)

// LowStockThreshold is the stock level at or below which a product is shown
// with a low-stock badge. It does not block purchase; only zero stock does.
const LowStockThreshold = 5

// Availability display states derived from stock.
const (
	AvailabilityOutOfStock = "out_of_stock"
	AvailabilityLowStock   = "low_stock"
	AvailabilityInStock    = "in_stock"
)

// Product is a catalog product. Price is in kobo.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Category    string    `json:"category"`
	Price       int64     `json:"price"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ValidCategories returns the fixed set of catalog categories.
func ValidCategories() []string {
	return []string{
		CategoryCoffeeBeans,
		CategoryInstantCoffee,
		CategoryCoffeePods,
		CategoryAccessories,
		CategoryGiftSets,
		CategoryBrewingEquipment,
	}
}

// IsValidCategory checks whether category is one of the fixed set.
func IsValidCategory(category string) bool {
	for _, c := range ValidCategories() {
		if c == category {
			return true
		}
	}
	return false
}

// Availability returns the display state for the product's stock level.
func (p *Product) Availability() string {
	switch {
	case p.Stock <= 0:
		return AvailabilityOutOfStock
	case p.Stock <= LowStockThreshold:
		return AvailabilityLowStock
	default:
		return AvailabilityInStock
	}
}

// HasStock reports whether the product can satisfy the requested quantity.
func (p *Product) HasStock(quantity int) bool {
	return quantity > 0 && p.Stock >= quantity
}

// LegacyNumericID derives a deterministic integer identifier from a string
// product ID for consumers that still key on integers. FNV-1a over the whole
// ID avoids the collisions a truncated-UUID scheme would risk.
func LegacyNumericID(id string) uint64 {
	h := fnv.New64a()
	// fnv.Write never returns an error.
	_, _ = h.Write([]byte(id))
	return h.Sum64()
}
