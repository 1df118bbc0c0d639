// Package presenter turns backend data into the view models of the kiosk
// screen. It holds no state and performs no I/O.
package presenter

import (
	"fmt"
	"math"
	"strconv"

	"github.com/smartkart/kiosk/internal/domain"
)

const (
	currency = "₹"

	emptyCatalogText = "No products found"
	emptyCartText    = "Your cart is empty"
	variableWeight   = "Variable (weigh item)"
	weighedBadge     = "Weighed Item"
	invoiceTitle     = "SmartKart"
	invoiceSubtitle  = "Digital Invoice"
)

// Money formats an amount with two decimals
func Money(v float64) string {
	return fmt.Sprintf("%s%.2f", currency, v)
}

// Number formats a value the shortest way that round-trips (500, 40.5)
func Number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RawPrice formats an unrounded catalog price (₹60, ₹40.5)
func RawPrice(v float64) string {
	return currency + Number(v)
}

// PerKg formats a per-kilogram rate
func PerKg(v float64) string {
	return RawPrice(v) + "/kg"
}

// Grams formats a weight
func Grams(v float64) string {
	return Number(v) + "g"
}

// ProductRow renders one catalog entry
func ProductRow(p domain.Product) domain.ProductRow {
	row := domain.ProductRow{
		ProductID: p.ProductID,
		Name:      p.Name,
		Category:  p.Category,
		Aisle:     p.Aisle,
		Weighed:   p.VariableWeight,
	}
	if p.VariableWeight {
		row.PriceText = PerKg(p.UnitPrice())
		row.WeightText = weighedBadge
	} else {
		row.PriceText = RawPrice(p.UnitPrice())
		row.WeightText = Grams(p.ExpectedWeight)
	}
	return row
}

// ProductList renders the catalog region
func ProductList(products []domain.Product) domain.ProductListView {
	view := domain.ProductListView{Rows: make([]domain.ProductRow, 0, len(products))}
	if len(products) == 0 {
		view.EmptyText = emptyCatalogText
		return view
	}
	for _, p := range products {
		view.Rows = append(view.Rows, ProductRow(p))
	}
	return view
}

// Preview renders the lookup preview panel
func Preview(p domain.Product) domain.PreviewView {
	view := domain.PreviewView{Visible: true, Name: p.Name}
	if p.VariableWeight {
		view.PriceText = PerKg(p.UnitPrice())
		view.WeightText = variableWeight
		view.PriceSuccess = true
	} else {
		view.PriceText = RawPrice(p.UnitPrice())
		view.WeightText = Grams(p.ExpectedWeight)
	}
	return view
}

// Location renders the "show location" modal
func Location(p domain.Product) domain.LocationView {
	return domain.LocationView{
		Visible:   true,
		ProductID: p.ProductID,
		Name:      p.Name,
		Aisle:     p.Aisle,
	}
}

// ItemCount renders "1 item" / "N items"
func ItemCount(n int) string {
	if n == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", n)
}

// lineDetail renders the weight annotation of a cart line
func lineDetail(line domain.CartLine) string {
	if line.VariableWeight {
		return fmt.Sprintf("%s @ %s", Grams(line.MeasuredWeight), PerKg(line.PricePerKg))
	}
	return "Weight: " + Grams(line.MeasuredWeight)
}

// Cart renders the cart region. The total is the server's; it is never summed here.
func Cart(cart domain.Cart) domain.CartView {
	view := domain.CartView{
		CountText: ItemCount(cart.ItemCount),
		TotalText: Money(cart.Total),
		Rows:      make([]domain.CartRow, 0, len(cart.Lines)),
	}
	if len(cart.Lines) == 0 {
		view.EmptyText = emptyCartText
		return view
	}
	for i, line := range cart.Lines {
		view.Rows = append(view.Rows, domain.CartRow{
			Index:      i,
			Name:       line.Name,
			DetailText: lineDetail(line),
			PriceText:  Money(line.Price),
			Weighed:    line.VariableWeight,
		})
	}
	return view
}

// ProgressWidth clamps the percentage used for display
func ProgressWidth(percentageUsed float64) float64 {
	return math.Min(percentageUsed, 100)
}

// BudgetPending renders a budget that has been set but not yet checked
func BudgetPending(budget float64) domain.BudgetView {
	return domain.BudgetView{
		Visible:    true,
		BudgetText: Money(budget),
	}
}

// Budget renders the budget monitor. Exactly one severity is applied to the
// progress bar. The remaining amount is danger only when exceeded; a warning
// keeps it success-colored.
func Budget(budget float64, status domain.BudgetStatus) domain.BudgetView {
	width := ProgressWidth(status.PercentageUsed)
	view := domain.BudgetView{
		Visible:       true,
		BudgetText:    Money(budget),
		SpentText:     Money(status.TotalSpent),
		RemainingText: Money(status.Remaining),
		ProgressWidth: width,
		ProgressLabel: fmt.Sprintf("%.1f%%", width),
	}

	switch {
	case status.Exceeded():
		view.ProgressClass = domain.LevelDanger
		view.RemainingClass = domain.LevelDanger
		view.Alert = &domain.Notice{Level: domain.LevelDanger, Message: status.Message}
	case status.Warning():
		view.ProgressClass = domain.LevelWarning
		view.RemainingClass = domain.LevelSuccess
		view.Alert = &domain.Notice{Level: domain.LevelWarning, Message: status.Message}
	default:
		view.ProgressClass = domain.LevelSuccess
		view.RemainingClass = domain.LevelSuccess
	}

	return view
}

// Invoice renders a completed checkout
func Invoice(inv domain.Invoice) domain.InvoiceView {
	view := domain.InvoiceView{
		Visible:       true,
		Title:         invoiceTitle,
		Subtitle:      invoiceSubtitle,
		Number:        inv.InvoiceNumber,
		Date:          inv.Date,
		ItemsHeader:   fmt.Sprintf("Items (%d):", inv.ItemCount),
		Rows:          make([]domain.InvoiceRow, 0, len(inv.Items)),
		TotalText:     Money(inv.Total),
		PaymentStatus: inv.PaymentStatus,
		Message:       inv.Message,
	}
	for _, item := range inv.Items {
		row := domain.InvoiceRow{Name: item.Name, PriceText: Money(item.Price)}
		if item.VariableWeight {
			row.DetailText = fmt.Sprintf("(%s @ %s)", Grams(item.MeasuredWeight), PerKg(item.PricePerKg))
		}
		view.Rows = append(view.Rows, row)
	}
	return view
}
