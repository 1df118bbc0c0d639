package domain

// Invoice is the finalized record of a completed checkout
type Invoice struct {
	InvoiceNumber string     `json:"invoice_number"`
	Date          string     `json:"date"`
	Items         []CartLine `json:"items"`
	ItemCount     int        `json:"item_count"`
	Total         float64    `json:"total"`
	PaymentStatus string     `json:"payment_status"`
	Message       string     `json:"message"`
}
