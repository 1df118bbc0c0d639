package usecase

import (
	"context"
	"sync"

	"github.com/smartkart/kiosk/internal/domain"
	"go.uber.org/zap"
)

// FilterCatalog returns the products matching search and category, in catalog
// order. The input slice is never modified.
func FilterCatalog(products domain.Catalog, search, category string) domain.Catalog {
	filtered := make(domain.Catalog, 0, len(products))
	for _, p := range products {
		if p.Matches(search, category) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// CatalogCache holds the last fetched product and category lists together
// with the active filter
type CatalogCache struct {
	client domain.ShopClient

	mu         sync.RWMutex
	products   domain.Catalog
	categories []string
	filter     domain.FilterState

	productSeq  Sequencer
	categorySeq Sequencer
}

// NewCatalogCache creates an empty catalog cache
func NewCatalogCache(client domain.ShopClient) *CatalogCache {
	return &CatalogCache{client: client}
}

// Load fetches the full product list and replaces the cache. On failure the
// previous list is kept.
func (c *CatalogCache) Load(ctx context.Context) error {
	seq := c.productSeq.Next()

	products, err := c.client.ListProducts(ctx)
	if err != nil {
		zap.L().Error("error loading products", zap.Error(err))
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.productSeq.IsLatest(seq) {
		return domain.ErrSuperseded
	}
	c.products = products

	zap.L().Debug("catalog loaded", zap.Int("products", len(products)))
	return nil
}

// LoadCategories fetches the category list. On failure the previous list is kept.
func (c *CatalogCache) LoadCategories(ctx context.Context) error {
	seq := c.categorySeq.Next()

	categories, err := c.client.ListCategories(ctx)
	if err != nil {
		zap.L().Error("error loading categories", zap.Error(err))
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.categorySeq.IsLatest(seq) {
		return domain.ErrSuperseded
	}
	c.categories = categories
	return nil
}

// Products returns a copy of the cached catalog
func (c *CatalogCache) Products() domain.Catalog {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append(domain.Catalog(nil), c.products...)
}

// Categories returns a copy of the cached category list
func (c *CatalogCache) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.categories...)
}

// Filter derives a filtered view of the cache without changing the active filter
func (c *CatalogCache) Filter(search, category string) domain.Catalog {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return FilterCatalog(c.products, search, category)
}

// SetFilter stores the active filter and returns the resulting view
func (c *CatalogCache) SetFilter(search, category string) domain.Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = domain.FilterState{Search: search, Category: category}
	return FilterCatalog(c.products, search, category)
}

// ActiveFilter returns the current search term and category
func (c *CatalogCache) ActiveFilter() domain.FilterState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filter
}

// Visible returns the cache filtered by the active filter
func (c *CatalogCache) Visible() domain.Catalog {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return FilterCatalog(c.products, c.filter.Search, c.filter.Category)
}

// Find returns the cached product with the exact identifier
func (c *CatalogCache) Find(productID string) (domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.products {
		if p.ProductID == productID {
			return p, true
		}
	}
	return domain.Product{}, false
}
