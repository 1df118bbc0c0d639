package usecase

import (
	"context"
	"sync"

	"github.com/smartkart/kiosk/internal/domain"
	"github.com/smartkart/kiosk/internal/presenter"
	"go.uber.org/zap"
)

// CheckoutFlow finalizes orders and keeps the invoice on display
type CheckoutFlow struct {
	client domain.ShopClient

	mu      sync.RWMutex
	invoice *domain.Invoice
	visible bool
}

// NewCheckoutFlow creates a checkout flow with no invoice shown
func NewCheckoutFlow(client domain.ShopClient) *CheckoutFlow {
	return &CheckoutFlow{client: client}
}

// Checkout finalizes the server-side cart. On success the invoice is shown
// and the cart and budget must be re-fetched.
func (f *CheckoutFlow) Checkout(ctx context.Context) (*domain.Invoice, domain.Refresh, error) {
	invoice, err := f.client.Checkout(ctx)
	if err != nil {
		zap.L().Error("error during checkout", zap.Error(err))
		return nil, domain.Refresh{}, err
	}

	f.show(invoice)
	zap.L().Info("checkout complete",
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.Int("item_count", invoice.ItemCount),
		zap.Float64("total", invoice.Total),
	)
	return invoice, domain.RefreshAll, nil
}

// LastInvoice fetches and shows the invoice of the most recent checkout
func (f *CheckoutFlow) LastInvoice(ctx context.Context) (*domain.Invoice, error) {
	invoice, err := f.client.LastInvoice(ctx)
	if err != nil {
		return nil, err
	}
	f.show(invoice)
	return invoice, nil
}

func (f *CheckoutFlow) show(invoice *domain.Invoice) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invoice = invoice
	f.visible = true
}

// Hide removes the invoice from the display
func (f *CheckoutFlow) Hide() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visible = false
}

// View renders the invoice region
func (f *CheckoutFlow) View() domain.InvoiceView {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if !f.visible || f.invoice == nil {
		return domain.InvoiceView{}
	}
	return presenter.Invoice(*f.invoice)
}
