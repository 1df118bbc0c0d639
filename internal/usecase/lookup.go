package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/smartkart/kiosk/internal/domain"
	"go.uber.org/zap"
)

// ProductLookup resolves single products against the backend and owns the
// current product
type ProductLookup struct {
	client domain.ShopClient

	mu      sync.RWMutex
	current *domain.Product
	seq     Sequencer
}

// NewProductLookup creates a lookup with no current product
func NewProductLookup(client domain.ShopClient) *ProductLookup {
	return &ProductLookup{client: client}
}

// Lookup fetches the product for a shopper-entered identifier.
//
// Blank input fails with domain.ErrEmptyProductID before any request, and
// still supersedes lookups in flight. A not-found answer clears the current
// product; a transport failure leaves it unchanged. If another lookup was
// issued while this one was in flight the response is dropped with
// domain.ErrSuperseded.
func (l *ProductLookup) Lookup(ctx context.Context, rawID string) (*domain.Product, error) {
	seq := l.seq.Next()
	productID := domain.NormalizeProductID(rawID)
	if productID == "" {
		return nil, domain.ErrEmptyProductID
	}

	product, err := l.client.GetProduct(ctx, productID)

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.seq.IsLatest(seq) {
		zap.L().Debug("discarding superseded lookup", zap.String("product_id", productID))
		return nil, domain.ErrSuperseded
	}

	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			l.current = nil
		} else {
			zap.L().Error("error looking up product", zap.String("product_id", productID), zap.Error(err))
		}
		return nil, err
	}

	l.current = product
	found := *product
	return &found, nil
}

// Current returns a copy of the current product, or nil
func (l *ProductLookup) Current() *domain.Product {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.current == nil {
		return nil
	}
	p := *l.current
	return &p
}

// SetCurrent makes p the current product
func (l *ProductLookup) SetCurrent(p domain.Product) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.current = &p
}

// ClearCurrent forgets the current product
func (l *ProductLookup) ClearCurrent() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.current = nil
}
