package domain

import "time"

// CartLine is one item in the server-side cart
type CartLine struct {
	ProductID      string      `json:"product_id"`
	Name           string      `json:"name"`
	Price          float64     `json:"price"`
	PricePerKg     float64     `json:"price_per_kg,omitempty"`
	ExpectedWeight float64     `json:"expected_weight,omitempty"`
	MeasuredWeight float64     `json:"measured_weight"`
	Category       string      `json:"category,omitempty"`
	Aisle          string      `json:"aisle,omitempty"`
	VariableWeight bool        `json:"variable_weight"`
	AddedAt        BackendTime `json:"added_at"`
}

// Cart is the authoritative cart snapshot. Totals are never recomputed locally.
type Cart struct {
	Lines     []CartLine `json:"cart"`
	ItemCount int        `json:"item_count"`
	Total     float64    `json:"total"`
}

// AddRequest is the body of POST /api/cart/add
type AddRequest struct {
	ProductID      string  `json:"product_id"`
	MeasuredWeight float64 `json:"measured_weight"`
}

// AddResult is a successful add-to-cart response
type AddResult struct {
	Message string    `json:"message"`
	Item    *CartLine `json:"item,omitempty"`
}

// Refresh tells the session which regions must be re-fetched after a mutation
type Refresh struct {
	Cart        bool
	Budget      bool
	HideInvoice bool
}

// RefreshAll is returned by every successful cart mutation
var RefreshAll = Refresh{Cart: true, Budget: true}

// Any reports whether the signal asks for any work
func (r Refresh) Any() bool {
	return r.Cart || r.Budget || r.HideInvoice
}

// BackendTime parses the ISO-8601 timestamps the backend emits without a zone
type BackendTime struct {
	time.Time
}

var backendTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// UnmarshalJSON accepts RFC 3339 and zone-less ISO timestamps. Unknown formats
// leave the zero time rather than failing the whole cart decode.
func (t *BackendTime) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || len(s) < 2 {
		return nil
	}
	s = s[1 : len(s)-1]
	for _, layout := range backendTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return nil
}

// MarshalJSON writes the zero time as null
func (t BackendTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(time.RFC3339) + `"`), nil
}
