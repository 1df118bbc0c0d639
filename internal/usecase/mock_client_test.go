package usecase

import (
	"context"
	"sync"

	"github.com/smartkart/kiosk/internal/domain"
)

// MockShopClient is a mock implementation of domain.ShopClient
type MockShopClient struct {
	mu sync.Mutex

	products      domain.Catalog
	productsErr   error
	categories    []string
	categoriesErr error

	catalogByID map[string]domain.Product
	productErr  error
	productGate func(productID string)

	budgetStatus *domain.BudgetStatus
	budgetErr    error

	addResult *domain.AddResult
	addErr    error

	cart    *domain.Cart
	cartErr error

	removeErr error
	clearErr  error

	invoice        *domain.Invoice
	checkoutErr    error
	lastInvoiceErr error

	calls       map[string]int
	addRequests []domain.AddRequest
	budgets     []float64
	removed     []int
}

func NewMockShopClient() *MockShopClient {
	return &MockShopClient{
		catalogByID: make(map[string]domain.Product),
		calls:       make(map[string]int),
		cart:        &domain.Cart{Lines: []domain.CartLine{}},
	}
}

func (m *MockShopClient) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[name]++
}

func (m *MockShopClient) Calls(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

func (m *MockShopClient) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.calls {
		total += n
	}
	return total
}

func (m *MockShopClient) ListProducts(ctx context.Context) (domain.Catalog, error) {
	m.record("ListProducts")
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.productsErr != nil {
		return nil, m.productsErr
	}
	return append(domain.Catalog(nil), m.products...), nil
}

func (m *MockShopClient) ListCategories(ctx context.Context) ([]string, error) {
	m.record("ListCategories")
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.categoriesErr != nil {
		return nil, m.categoriesErr
	}
	return append([]string(nil), m.categories...), nil
}

func (m *MockShopClient) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	m.record("GetProduct")
	if m.productGate != nil {
		m.productGate(productID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.productErr != nil {
		return nil, m.productErr
	}
	p, ok := m.catalogByID[productID]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

func (m *MockShopClient) CheckBudget(ctx context.Context, budget float64) (*domain.BudgetStatus, error) {
	m.record("CheckBudget")
	m.mu.Lock()
	defer m.mu.Unlock()
	m.budgets = append(m.budgets, budget)
	if m.budgetErr != nil {
		return nil, m.budgetErr
	}
	if m.budgetStatus == nil {
		return &domain.BudgetStatus{Budget: budget, Remaining: budget, Status: domain.BudgetStatusOK}, nil
	}
	status := *m.budgetStatus
	return &status, nil
}

func (m *MockShopClient) AddToCart(ctx context.Context, req domain.AddRequest) (*domain.AddResult, error) {
	m.record("AddToCart")
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addRequests = append(m.addRequests, req)
	if m.addErr != nil {
		return nil, m.addErr
	}
	if m.addResult != nil {
		return m.addResult, nil
	}
	return &domain.AddResult{Message: "added"}, nil
}

func (m *MockShopClient) GetCart(ctx context.Context) (*domain.Cart, error) {
	m.record("GetCart")
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cartErr != nil {
		return nil, m.cartErr
	}
	cart := *m.cart
	return &cart, nil
}

func (m *MockShopClient) RemoveFromCart(ctx context.Context, index int) error {
	m.record("RemoveFromCart")
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removed = append(m.removed, index)
	return m.removeErr
}

func (m *MockShopClient) ClearCart(ctx context.Context) error {
	m.record("ClearCart")
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clearErr
}

func (m *MockShopClient) Checkout(ctx context.Context) (*domain.Invoice, error) {
	m.record("Checkout")
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.checkoutErr != nil {
		return nil, m.checkoutErr
	}
	return m.invoice, nil
}

func (m *MockShopClient) LastInvoice(ctx context.Context) (*domain.Invoice, error) {
	m.record("LastInvoice")
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lastInvoiceErr != nil {
		return nil, m.lastInvoiceErr
	}
	if m.invoice == nil {
		return nil, domain.ErrNoInvoice
	}
	return m.invoice, nil
}

func (m *MockShopClient) setCart(cart domain.Cart) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cart = &cart
}

// confirmAnswer is a domain.Confirmer that records the prompt it was shown
type confirmAnswer struct {
	answer bool
	prompt string
}

func (c *confirmAnswer) Confirm(prompt string) bool {
	c.prompt = prompt
	return c.answer
}

var (
	milk   = domain.Product{ProductID: "A1", Name: "Milk", Category: "Dairy", Aisle: "Aisle 1", Price: 60, ExpectedWeight: 500}
	curd   = domain.Product{ProductID: "A2", Name: "Curd", Category: "Dairy", Aisle: "Aisle 1", Price: 45, ExpectedWeight: 400}
	rice   = domain.Product{ProductID: "G7", Name: "Basmati Rice", Category: "Grains", Aisle: "Aisle 3", Price: 120, ExpectedWeight: 1000}
	apples = domain.Product{ProductID: "V1", Name: "Apples", Category: "Produce", Aisle: "Aisle 4", VariableWeight: true, PricePerKg: 180}
)

func seededClient() *MockShopClient {
	m := NewMockShopClient()
	m.products = domain.Catalog{milk, curd, rice, apples}
	m.categories = []string{"Dairy", "Grains", "Produce"}
	for _, p := range m.products {
		m.catalogByID[p.ProductID] = p
	}
	return m
}
