package cli

import (
	"context"
	"sort"
	"sync"

	"github.com/smartkart/kiosk/internal/domain"
)

// fakeShop is an in-memory domain.ShopClient
type fakeShop struct {
	mu       sync.Mutex
	products map[string]domain.Product
	cart     []domain.CartLine
	invoice  *domain.Invoice
	clears   int
}

func newFakeShop() *fakeShop {
	return &fakeShop{
		products: map[string]domain.Product{
			"A1": {ProductID: "A1", Name: "Milk", Category: "Dairy", Aisle: "Aisle 1", Price: 60, ExpectedWeight: 500},
			"G7": {ProductID: "G7", Name: "Basmati Rice", Category: "Grains", Aisle: "Aisle 3", Price: 120, ExpectedWeight: 1000},
			"V1": {ProductID: "V1", Name: "Apples", Category: "Produce", Aisle: "Aisle 4", VariableWeight: true, PricePerKg: 180},
		},
	}
}

func (f *fakeShop) total() float64 {
	total := 0.0
	for _, line := range f.cart {
		total += line.Price
	}
	return total
}

func (f *fakeShop) ListProducts(ctx context.Context) (domain.Catalog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(domain.Catalog, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

func (f *fakeShop) ListCategories(ctx context.Context) ([]string, error) {
	return []string{"Dairy", "Grains", "Produce"}, nil
}

func (f *fakeShop) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[productID]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

func (f *fakeShop) CheckBudget(ctx context.Context, budget float64) (*domain.BudgetStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	spent := f.total()
	status := &domain.BudgetStatus{
		Budget:         budget,
		TotalSpent:     spent,
		Remaining:      budget - spent,
		PercentageUsed: spent / budget * 100,
		Status:         domain.BudgetStatusOK,
		Message:        "Within budget",
	}
	if spent > budget {
		status.Status = domain.BudgetStatusExceeded
		status.Message = "Budget exceeded!"
	}
	return status, nil
}

func (f *fakeShop) AddToCart(ctx context.Context, req domain.AddRequest) (*domain.AddResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[req.ProductID]
	if !ok {
		return nil, &domain.APIError{Status: 404, Message: "Product not found"}
	}
	line := domain.CartLine{ProductID: p.ProductID, Name: p.Name, Price: p.Price, MeasuredWeight: req.MeasuredWeight}
	if p.VariableWeight {
		line.VariableWeight = true
		line.PricePerKg = p.PricePerKg
		line.Price = req.MeasuredWeight / 1000 * p.PricePerKg
	}
	f.cart = append(f.cart, line)
	return &domain.AddResult{Message: p.Name + " added to cart successfully!", Item: &line}, nil
}

func (f *fakeShop) GetCart(ctx context.Context) (*domain.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lines := append([]domain.CartLine{}, f.cart...)
	return &domain.Cart{Lines: lines, ItemCount: len(lines), Total: f.total()}, nil
}

func (f *fakeShop) RemoveFromCart(ctx context.Context, index int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if index >= len(f.cart) {
		return &domain.APIError{Status: 400, Message: "Invalid index"}
	}
	f.cart = append(f.cart[:index], f.cart[index+1:]...)
	return nil
}

func (f *fakeShop) ClearCart(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clears++
	f.cart = nil
	return nil
}

func (f *fakeShop) Checkout(ctx context.Context) (*domain.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.cart) == 0 {
		return nil, &domain.APIError{Status: 400, Message: "Cart is empty"}
	}
	f.invoice = &domain.Invoice{
		InvoiceNumber: "INV-1",
		Date:          "01-05-2024 10:11:12",
		Items:         f.cart,
		ItemCount:     len(f.cart),
		Total:         f.total(),
		PaymentStatus: "Simulated - Successful",
		Message:       "Thank you for shopping with SmartKart!",
	}
	f.cart = nil
	return f.invoice, nil
}

func (f *fakeShop) LastInvoice(ctx context.Context) (*domain.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.invoice == nil {
		return nil, domain.ErrNoInvoice
	}
	return f.invoice, nil
}

func (f *fakeShop) cartLen() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cart)
}
