package domain

import "time"

// Level is the visual severity of a notice, banner or style class
type Level string

const (
	LevelNone    Level = ""
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelDanger  Level = "danger"
)

// Notice is a transient inline message shown in one screen region
type Notice struct {
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// ProductRow is one rendered catalog entry
type ProductRow struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	Aisle      string `json:"aisle"`
	PriceText  string `json:"price_text"`
	WeightText string `json:"weight_text"`
	Weighed    bool   `json:"weighed"`
}

// ProductListView is the catalog region
type ProductListView struct {
	Rows      []ProductRow `json:"rows"`
	EmptyText string       `json:"empty_text,omitempty"`
}

// FilterState is the active search term and category selection
type FilterState struct {
	Search   string `json:"search"`
	Category string `json:"category"`
}

// FormState holds the scan form fields
type FormState struct {
	ProductID      string `json:"product_id"`
	MeasuredWeight string `json:"measured_weight"`
}

// PreviewView is the product preview panel filled by a lookup
type PreviewView struct {
	Visible      bool   `json:"visible"`
	Name         string `json:"name,omitempty"`
	PriceText    string `json:"price_text,omitempty"`
	WeightText   string `json:"weight_text,omitempty"`
	PriceSuccess bool   `json:"price_success,omitempty"`
}

// LocationView is the "show location" modal
type LocationView struct {
	Visible   bool   `json:"visible"`
	ProductID string `json:"product_id,omitempty"`
	Name      string `json:"name,omitempty"`
	Aisle     string `json:"aisle,omitempty"`
}

// BudgetView is the budget monitor region
type BudgetView struct {
	Visible        bool    `json:"visible"`
	BudgetText     string  `json:"budget_text,omitempty"`
	SpentText      string  `json:"spent_text,omitempty"`
	RemainingText  string  `json:"remaining_text,omitempty"`
	ProgressWidth  float64 `json:"progress_width"`
	ProgressLabel  string  `json:"progress_label,omitempty"`
	ProgressClass  Level   `json:"progress_class,omitempty"`
	RemainingClass Level   `json:"remaining_class,omitempty"`
	Alert          *Notice `json:"alert,omitempty"`
}

// CartRow is one rendered cart line. Index is the server-side position.
type CartRow struct {
	Index      int    `json:"index"`
	Name       string `json:"name"`
	DetailText string `json:"detail_text"`
	PriceText  string `json:"price_text"`
	Weighed    bool   `json:"weighed"`
}

// CartView is the cart region
type CartView struct {
	CountText string    `json:"count_text"`
	TotalText string    `json:"total_text"`
	Rows      []CartRow `json:"rows"`
	EmptyText string    `json:"empty_text,omitempty"`
}

// InvoiceRow is one purchased item on the rendered invoice
type InvoiceRow struct {
	Name       string `json:"name"`
	DetailText string `json:"detail_text,omitempty"`
	PriceText  string `json:"price_text"`
}

// InvoiceView is the invoice region shown after checkout
type InvoiceView struct {
	Visible       bool         `json:"visible"`
	Title         string       `json:"title,omitempty"`
	Subtitle      string       `json:"subtitle,omitempty"`
	Number        string       `json:"number,omitempty"`
	Date          string       `json:"date,omitempty"`
	ItemsHeader   string       `json:"items_header,omitempty"`
	Rows          []InvoiceRow `json:"rows,omitempty"`
	TotalText     string       `json:"total_text,omitempty"`
	PaymentStatus string       `json:"payment_status,omitempty"`
	Message       string       `json:"message,omitempty"`
}

// Dialog is a blocking message that must be acknowledged before it goes away
type Dialog struct {
	Message string `json:"message"`
}

// Screen is every region of the kiosk display
type Screen struct {
	ProductList ProductListView `json:"product_list"`
	Categories  []string        `json:"categories"`
	Filter      FilterState     `json:"filter"`
	Form        FormState       `json:"form"`
	Preview     PreviewView     `json:"preview"`
	Location    LocationView    `json:"location"`
	Notice      *Notice         `json:"notice,omitempty"`
	Budget      BudgetView      `json:"budget"`
	Cart        CartView        `json:"cart"`
	Invoice     InvoiceView     `json:"invoice"`
	Dialog      *Dialog         `json:"dialog,omitempty"`
}
