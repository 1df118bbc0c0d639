package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/smartkart/kiosk/config"
	"github.com/smartkart/kiosk/internal/domain"
	"github.com/smartkart/kiosk/internal/infrastructure/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(shop *fakeShop) *App {
	cfg := &config.Config{
		Notices: config.NoticesConfig{Type: "memory", TTL: time.Minute},
	}
	return NewAppWithClient(cfg, shop, cache.NewMemoryCache(0))
}

func run(t *testing.T, app *App, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand(WithApp(app))
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestProductsCommand(t *testing.T) {
	app := newTestApp(newFakeShop())

	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
	}{
		{"all products", []string{"products"}, []string{"Milk", "Basmati Rice", "Apples", "₹180/kg"}, nil},
		{"search", []string{"products", "--search", "MILK"}, []string{"Milk", `search "MILK"`}, []string{"Apples"}},
		{"category", []string{"products", "-c", "Produce"}, []string{"Apples"}, []string{"Milk"}},
		{"no match", []string{"products", "-s", "zzz"}, []string{"No products found"}, []string{"Milk"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, app, "", tt.args...)
			require.NoError(t, err)
			for _, s := range tt.want {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.notWant {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestCategoriesCommand(t *testing.T) {
	out, err := run(t, newTestApp(newFakeShop()), "", "categories")

	require.NoError(t, err)
	assert.Contains(t, out, "Dairy\nGrains\nProduce\n")
}

func TestLookupCommand(t *testing.T) {
	app := newTestApp(newFakeShop())

	out, err := run(t, app, "", "lookup", "a1")
	require.NoError(t, err)
	assert.Contains(t, out, "Preview: Milk  ₹60  Expected: 500g")

	out, err = run(t, app, "", "lookup", " ")
	assert.ErrorIs(t, err, domain.ErrEmptyProductID)
	assert.Contains(t, out, "[warning] Please enter a Product ID")

	_, err = run(t, app, "", "lookup")
	assert.Error(t, err)
}

func TestAddCommand(t *testing.T) {
	shop := newFakeShop()
	app := newTestApp(shop)

	out, err := run(t, app, "", "add", "V1", "512")
	require.NoError(t, err)
	assert.Contains(t, out, "[success] Apples added to cart successfully!")
	assert.Contains(t, out, "512g @ ₹180/kg")
	assert.Contains(t, out, "Total: ₹92.16")

	out, err = run(t, app, "", "add", "A1", "0")
	assert.ErrorIs(t, err, domain.ErrInvalidWeight)
	assert.Contains(t, out, "[warning] Please enter a valid measured weight")
	assert.Equal(t, 1, shop.cartLen())
}

func TestCartAndRemoveCommands(t *testing.T) {
	shop := newFakeShop()
	app := newTestApp(shop)
	_, err := run(t, app, "", "add", "A1", "500")
	require.NoError(t, err)
	_, err = run(t, app, "", "add", "G7", "1000")
	require.NoError(t, err)

	out, err := run(t, app, "", "cart")
	require.NoError(t, err)
	assert.Contains(t, out, "Cart (2 items)")
	assert.Contains(t, out, "Total: ₹180.00")

	_, err = run(t, app, "", "remove", "x")
	assert.ErrorIs(t, err, domain.ErrInvalidCartIndex)

	_, err = run(t, app, "", "remove", "7")
	msg, ok := domain.ServerMessage(err)
	assert.True(t, ok)
	assert.Equal(t, "Invalid index", msg)

	out, err = run(t, app, "", "remove", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Cart (1 item)")
	assert.Contains(t, out, "Basmati Rice")
	assert.NotContains(t, out, "Milk")
}

func TestClearCommand(t *testing.T) {
	shop := newFakeShop()
	app := newTestApp(shop)
	_, err := run(t, app, "", "add", "A1", "500")
	require.NoError(t, err)

	out, err := run(t, app, "n\n", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Are you sure you want to clear the cart? [y/N]: ")
	assert.Contains(t, out, "Cart not cleared.")
	assert.Equal(t, 0, shop.clears)

	out, err = run(t, app, "", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Cart not cleared.")

	out, err = run(t, app, "y\n", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Your cart is empty")
	assert.Equal(t, 1, shop.clears)

	_, err = run(t, app, "", "clear", "--yes")
	require.NoError(t, err)
	assert.Equal(t, 2, shop.clears)
}

func TestBudgetCommand(t *testing.T) {
	app := newTestApp(newFakeShop())
	_, err := run(t, app, "", "add", "A1", "500")
	require.NoError(t, err)

	out, err := run(t, app, "", "budget", "50")
	require.NoError(t, err)
	assert.Contains(t, out, "Budget: ₹50.00")
	assert.Contains(t, out, "[####################] 100.0% (danger)")
	assert.Contains(t, out, "[danger] Budget exceeded!")

	_, err = run(t, app, "", "budget", "abc")
	assert.ErrorIs(t, err, domain.ErrInvalidBudget)
}

func TestCheckoutAndInvoiceCommands(t *testing.T) {
	app := newTestApp(newFakeShop())

	_, err := run(t, app, "", "invoice")
	assert.ErrorIs(t, err, domain.ErrNoInvoice)

	out, err := run(t, app, "", "checkout")
	assert.Error(t, err)
	assert.Contains(t, out, "!! Cart is empty")
	assert.Nil(t, app.Session.Screen(context.Background()).Dialog)

	_, err = run(t, app, "", "add", "A1", "500")
	require.NoError(t, err)

	out, err = run(t, app, "", "checkout")
	require.NoError(t, err)
	assert.Contains(t, out, "SmartKart - Digital Invoice")
	assert.Contains(t, out, "Invoice #: INV-1")
	assert.Contains(t, out, "Items (1):")
	assert.Contains(t, out, "Total: ₹60.00")

	out, err = run(t, app, "", "invoice")
	require.NoError(t, err)
	assert.Contains(t, out, "Invoice #: INV-1")
}

func TestNewApp(t *testing.T) {
	cfg := &config.Config{
		Backend: config.BackendConfig{BaseURL: "http://localhost:5000", Timeout: time.Second},
		Notices: config.NoticesConfig{Type: "memory", TTL: time.Second},
	}

	app, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	assert.NotNil(t, app.Session)
	assert.NoError(t, app.Close())
}

func TestNewApp_InvalidRedisURL(t *testing.T) {
	cfg := &config.Config{
		Backend: config.BackendConfig{BaseURL: "http://localhost:5000"},
		Notices: config.NoticesConfig{Type: "redis", RedisURL: "not-a-url", TTL: time.Second},
	}

	_, err := NewApp(context.Background(), cfg)
	assert.Error(t, err)
}
