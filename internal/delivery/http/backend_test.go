package http

import (
	"math"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/smartkart/kiosk/internal/domain"
	"github.com/smartkart/kiosk/internal/infrastructure/smartkart"
)

// fakeBackend is an in-process SmartKart backend
type fakeBackend struct {
	mu       sync.Mutex
	products map[string]domain.Product
	cart     []domain.CartLine
	invoice  *domain.Invoice
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		products: map[string]domain.Product{
			"A1": {ProductID: "A1", Name: "Milk", Category: "Dairy", Aisle: "Aisle 1", Price: 60, ExpectedWeight: 500},
			"G7": {ProductID: "G7", Name: "Basmati Rice", Category: "Grains", Aisle: "Aisle 3", Price: 120, ExpectedWeight: 1000},
			"V1": {ProductID: "V1", Name: "Apples", Category: "Produce", Aisle: "Aisle 4", VariableWeight: true, PricePerKg: 180},
		},
	}
}

// start serves the fake on an httptest server and returns a client for it
func (b *fakeBackend) start(t *testing.T) *smartkart.Client {
	t.Helper()

	r := gin.New()
	r.GET("/api/products", b.listProducts)
	r.GET("/api/categories", b.listCategories)
	r.GET("/api/product/:id", b.getProduct)
	r.POST("/api/cart/add", b.addToCart)
	r.GET("/api/cart", b.getCart)
	r.DELETE("/api/cart/remove/:index", b.removeFromCart)
	r.DELETE("/api/cart/clear", b.clearCart)
	r.POST("/api/budget/check", b.checkBudget)
	r.POST("/api/checkout", b.checkout)
	r.GET("/api/invoice", b.lastInvoice)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	return smartkart.NewClient(smartkart.Config{BaseURL: server.URL})
}

func (b *fakeBackend) sortedProducts() []domain.Product {
	out := make([]domain.Product, 0, len(b.products))
	for _, p := range b.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

func (b *fakeBackend) cartLen() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.cart)
}

func (b *fakeBackend) total() float64 {
	total := 0.0
	for _, line := range b.cart {
		total += line.Price
	}
	return math.Round(total*100) / 100
}

func (b *fakeBackend) listProducts(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c.JSON(http.StatusOK, b.sortedProducts())
}

func (b *fakeBackend) listCategories(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	seen := map[string]bool{}
	var categories []string
	for _, p := range b.sortedProducts() {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	sort.Strings(categories)
	c.JSON(http.StatusOK, categories)
}

func (b *fakeBackend) getProduct(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.products[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (b *fakeBackend) addToCart(c *gin.Context) {
	var req domain.AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	p, ok := b.products[req.ProductID]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Product not found"})
		return
	}

	line := domain.CartLine{
		ProductID:      p.ProductID,
		Name:           p.Name,
		MeasuredWeight: req.MeasuredWeight,
		VariableWeight: p.VariableWeight,
		PricePerKg:     p.PricePerKg,
	}
	if p.VariableWeight {
		line.Price = math.Round(req.MeasuredWeight/1000*p.PricePerKg*100) / 100
	} else {
		diff := math.Abs(req.MeasuredWeight - p.ExpectedWeight)
		if diff > 50 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success":         false,
				"error":           "Weight mismatch! Expected: " + strconv.FormatFloat(p.ExpectedWeight, 'f', -1, 64) + "g",
				"expected_weight": p.ExpectedWeight,
				"measured_weight": req.MeasuredWeight,
				"difference":      diff,
			})
			return
		}
		line.Price = p.Price
		line.ExpectedWeight = p.ExpectedWeight
	}

	b.cart = append(b.cart, line)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": p.Name + " added to cart successfully!", "item": line})
}

func (b *fakeBackend) getCart(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"cart": b.cart, "item_count": len(b.cart), "total": b.total()})
}

func (b *fakeBackend) removeFromCart(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil || i < 0 || i >= len(b.cart) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid index"})
		return
	}
	b.cart = append(b.cart[:i], b.cart[i+1:]...)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item removed"})
}

func (b *fakeBackend) clearCart(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cart = nil
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart cleared"})
}

func (b *fakeBackend) checkBudget(c *gin.Context) {
	var req domain.BudgetCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid budget"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	spent := b.total()
	pct := spent / req.Budget * 100
	status, message := "ok", "Within budget"
	switch {
	case pct > 100:
		status, message = "exceeded", "Budget exceeded!"
	case pct >= 80:
		status, message = "warning", "Approaching budget limit"
	}
	c.JSON(http.StatusOK, domain.BudgetStatus{
		Budget:         req.Budget,
		TotalSpent:     spent,
		Remaining:      req.Budget - spent,
		PercentageUsed: pct,
		Status:         status,
		Message:        message,
	})
}

func (b *fakeBackend) checkout(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.cart) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Cart is empty"})
		return
	}
	b.invoice = &domain.Invoice{
		InvoiceNumber: "INV-20240501101112",
		Date:          "01-05-2024 10:11:12",
		Items:         b.cart,
		ItemCount:     len(b.cart),
		Total:         b.total(),
		PaymentStatus: "Simulated - Successful",
		Message:       "Thank you for shopping with SmartKart!",
	}
	b.cart = nil
	c.JSON(http.StatusOK, gin.H{"success": true, "invoice": b.invoice})
}

func (b *fakeBackend) lastInvoice(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.invoice == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "No recent invoice found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "invoice": b.invoice})
}
