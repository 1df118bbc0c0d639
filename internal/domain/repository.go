package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface of the TTL store behind transient notices
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// ShopClient defines the interface for the SmartKart backend REST contract
type ShopClient interface {
	ListProducts(ctx context.Context) (Catalog, error)
	ListCategories(ctx context.Context) ([]string, error)
	GetProduct(ctx context.Context, productID string) (*Product, error)
	CheckBudget(ctx context.Context, budget float64) (*BudgetStatus, error)
	AddToCart(ctx context.Context, req AddRequest) (*AddResult, error)
	GetCart(ctx context.Context) (*Cart, error)
	RemoveFromCart(ctx context.Context, index int) error
	ClearCart(ctx context.Context) error
	Checkout(ctx context.Context) (*Invoice, error)
	LastInvoice(ctx context.Context) (*Invoice, error)
}

// Confirmer asks the shopper to approve a destructive action
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a plain function to Confirmer
type ConfirmFunc func(prompt string) bool

// Confirm calls f(prompt)
func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}
