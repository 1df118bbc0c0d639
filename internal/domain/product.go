package domain

import "strings"

// Product represents a catalog entry as served by the SmartKart backend
type Product struct {
	ProductID      string  `json:"product_id"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	Aisle          string  `json:"aisle"`
	VariableWeight bool    `json:"variable_weight"`
	Price          float64 `json:"price,omitempty"`           // fixed-price items only
	PricePerKg     float64 `json:"price_per_kg,omitempty"`    // variable-weight items only
	ExpectedWeight float64 `json:"expected_weight,omitempty"` // grams, fixed-price items only
}

// UnitPrice returns the one meaningful price of the product: price per kg for
// variable-weight items, the unit price otherwise.
func (p Product) UnitPrice() float64 {
	if p.VariableWeight {
		return p.PricePerKg
	}
	return p.Price
}

// Matches reports whether the product passes a search term and a category
// filter. An empty search or category disables that predicate.
func (p Product) Matches(search, category string) bool {
	if search != "" {
		term := strings.ToLower(search)
		if !strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.ProductID), term) {
			return false
		}
	}
	if category != "" && p.Category != category {
		return false
	}
	return true
}

// Catalog is the ordered product list last fetched from the backend
type Catalog []Product

// NormalizeProductID trims and uppercases a shopper-entered identifier
func NormalizeProductID(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
