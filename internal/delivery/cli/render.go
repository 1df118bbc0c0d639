package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/smartkart/kiosk/internal/domain"
)

const progressCells = 20

// RenderScreen writes every visible region of screen as text
func RenderScreen(w io.Writer, screen domain.Screen) {
	RenderProducts(w, screen.ProductList, screen.Filter)
	RenderScan(w, screen)
	if screen.Location.Visible {
		RenderLocation(w, screen.Location)
	}
	RenderBudget(w, screen.Budget)
	RenderCart(w, screen.Cart)
	RenderInvoice(w, screen.Invoice)
	if screen.Dialog != nil {
		RenderDialog(w, *screen.Dialog)
	}
}

func heading(w io.Writer, title string) {
	fmt.Fprintf(w, "\n== %s ==\n", title)
}

// RenderProducts writes the catalog table
func RenderProducts(w io.Writer, list domain.ProductListView, filter domain.FilterState) {
	title := "Products"
	if filter.Search != "" || filter.Category != "" {
		category := filter.Category
		if category == "" {
			category = "All"
		}
		title = fmt.Sprintf("Products (search %q, category %s)", filter.Search, category)
	}
	heading(w, title)

	if len(list.Rows) == 0 {
		fmt.Fprintln(w, list.EmptyText)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tAISLE\tPRICE\tWEIGHT")
	for _, row := range list.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			row.ProductID, row.Name, row.Category, row.Aisle, row.PriceText, row.WeightText)
	}
	tw.Flush()
}

// RenderCategories writes one category per line
func RenderCategories(w io.Writer, categories []string) {
	heading(w, "Categories")
	if len(categories) == 0 {
		fmt.Fprintln(w, "No categories")
		return
	}
	for _, c := range categories {
		fmt.Fprintln(w, c)
	}
}

// RenderScan writes the scan form, its notice and the preview panel
func RenderScan(w io.Writer, screen domain.Screen) {
	heading(w, "Scan")
	if screen.Form.ProductID != "" || screen.Form.MeasuredWeight != "" {
		fmt.Fprintf(w, "Product ID: %s  Weight: %s\n", screen.Form.ProductID, screen.Form.MeasuredWeight)
	}
	if screen.Notice != nil {
		RenderNotice(w, *screen.Notice)
	}
	RenderPreview(w, screen.Preview)
}

// RenderNotice writes a notice tagged with its level
func RenderNotice(w io.Writer, notice domain.Notice) {
	if notice.Level == domain.LevelNone {
		fmt.Fprintln(w, notice.Message)
		return
	}
	fmt.Fprintf(w, "[%s] %s\n", notice.Level, notice.Message)
}

// RenderPreview writes the product preview, if any
func RenderPreview(w io.Writer, preview domain.PreviewView) {
	if !preview.Visible {
		return
	}
	price := preview.PriceText
	if preview.PriceSuccess {
		price += " (weighed)"
	}
	fmt.Fprintf(w, "Preview: %s  %s  Expected: %s\n", preview.Name, price, preview.WeightText)
}

// RenderLocation writes the location modal
func RenderLocation(w io.Writer, location domain.LocationView) {
	heading(w, "Location")
	fmt.Fprintf(w, "%s (%s) is in %s\n", location.Name, location.ProductID, location.Aisle)
}

// RenderBudget writes the budget monitor, or nothing while no budget is set
func RenderBudget(w io.Writer, budget domain.BudgetView) {
	if !budget.Visible {
		return
	}
	heading(w, "Budget")
	fmt.Fprintf(w, "Budget: %s\n", budget.BudgetText)
	if budget.SpentText == "" {
		fmt.Fprintln(w, "Checking...")
		return
	}
	fmt.Fprintf(w, "Spent: %s  Remaining: %s%s\n", budget.SpentText, budget.RemainingText, levelTag(budget.RemainingClass))
	fmt.Fprintf(w, "%s %s%s\n", progressBar(budget.ProgressWidth), budget.ProgressLabel, levelTag(budget.ProgressClass))
	if budget.Alert != nil {
		RenderNotice(w, *budget.Alert)
	}
}

func levelTag(level domain.Level) string {
	if level == domain.LevelNone {
		return ""
	}
	return " (" + string(level) + ")"
}

func progressBar(width float64) string {
	filled := int(width / 100 * progressCells)
	if filled > progressCells {
		filled = progressCells
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", progressCells-filled) + "]"
}

// RenderCart writes the cart lines with their server-side indexes
func RenderCart(w io.Writer, cart domain.CartView) {
	heading(w, "Cart ("+cart.CountText+")")
	if len(cart.Rows) == 0 {
		fmt.Fprintln(w, cart.EmptyText)
	} else {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, row := range cart.Rows {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", row.Index, row.Name, row.DetailText, row.PriceText)
		}
		tw.Flush()
	}
	fmt.Fprintf(w, "Total: %s\n", cart.TotalText)
}

// RenderInvoice writes the invoice, or nothing while it is hidden
func RenderInvoice(w io.Writer, invoice domain.InvoiceView) {
	if !invoice.Visible {
		return
	}
	heading(w, invoice.Title+" - "+invoice.Subtitle)
	fmt.Fprintf(w, "Invoice #: %s\nDate: %s\n%s\n", invoice.Number, invoice.Date, invoice.ItemsHeader)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, row := range invoice.Rows {
		fmt.Fprintf(tw, "  %s %s\t%s\n", row.Name, row.DetailText, row.PriceText)
	}
	tw.Flush()

	fmt.Fprintf(w, "Total: %s\nPayment: %s\n%s\n", invoice.TotalText, invoice.PaymentStatus, invoice.Message)
}

// RenderDialog writes a blocking dialog
func RenderDialog(w io.Writer, dialog domain.Dialog) {
	fmt.Fprintf(w, "\n!! %s\n", dialog.Message)
}
