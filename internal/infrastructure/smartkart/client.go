package smartkart

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/smartkart/kiosk/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var _ domain.ShopClient = (*Client)(nil)

// Config holds the connection settings for the SmartKart backend
type Config struct {
	BaseURL   string
	Timeout   time.Duration // 0 disables the client timeout
	RateLimit float64       // requests per second, 0 means unlimited
	Burst     int
	UserAgent string
}

// Client handles communication with the SmartKart backend REST API
type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new SmartKart API client
func NewClient(cfg Config) *Client {
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 10
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "SmartKart-Kiosk/1.0"
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:   userAgent,
		rateLimiter: rate.NewLimiter(limit, burst),
	}
}

// SetDebug enables logging of every request and response status
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// envelope is the union of the success/error bodies the backend returns
type envelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Error   string           `json:"error"`
	Item    *domain.CartLine `json:"item"`
	Invoice *domain.Invoice  `json:"invoice"`

	ExpectedWeight float64 `json:"expected_weight"`
	MeasuredWeight float64 `json:"measured_weight"`
	Difference     float64 `json:"difference"`
}

func (e *envelope) apiError(status int) *domain.APIError {
	return &domain.APIError{
		Status:         status,
		Message:        e.Error,
		ExpectedWeight: e.ExpectedWeight,
		MeasuredWeight: e.MeasuredWeight,
		Difference:     e.Difference,
	}
}

// do executes one request and returns the status code and raw body.
// Transport failures wrap domain.ErrBackendFailure.
func (c *Client) do(ctx context.Context, method, path string, body interface{}) (int, []byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return 0, nil, fmt.Errorf("rate limiter error: %w", err)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", domain.ErrBackendFailure, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%w: reading body: %v", domain.ErrBackendFailure, err)
	}

	if c.debug {
		zap.L().Debug("smartkart request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.Int("bytes", len(data)),
		)
	}

	return resp.StatusCode, data, nil
}

func decode(data []byte, out interface{}) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", domain.ErrBackendFailure, err)
	}
	return nil
}

func isOK(status int) bool {
	return status >= 200 && status < 300
}

// getJSON performs a GET that must answer 2xx with a JSON body
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	status, data, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if !isOK(status) {
		var env envelope
		_ = json.Unmarshal(data, &env)
		return env.apiError(status)
	}
	return decode(data, out)
}

// ListProducts fetches the full catalog
func (c *Client) ListProducts(ctx context.Context) (domain.Catalog, error) {
	var products domain.Catalog
	if err := c.getJSON(ctx, "/api/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ListCategories fetches the sorted category names
func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.getJSON(ctx, "/api/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetProduct fetches one product. Any non-2xx status is reported as
// domain.ErrProductNotFound.
func (c *Client) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	status, data, err := c.do(ctx, http.MethodGet, "/api/product/"+url.PathEscape(productID), nil)
	if err != nil {
		return nil, err
	}
	if !isOK(status) {
		return nil, fmt.Errorf("%w: %s (status %d)", domain.ErrProductNotFound, productID, status)
	}

	var product domain.Product
	if err := decode(data, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CheckBudget asks the backend to classify the current cart against a budget
func (c *Client) CheckBudget(ctx context.Context, budget float64) (*domain.BudgetStatus, error) {
	status, data, err := c.do(ctx, http.MethodPost, "/api/budget/check", domain.BudgetCheckRequest{Budget: budget})
	if err != nil {
		return nil, err
	}
	if !isOK(status) {
		var env envelope
		_ = json.Unmarshal(data, &env)
		return nil, env.apiError(status)
	}

	var result domain.BudgetStatus
	if err := decode(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AddToCart records a measured item. A success=false body becomes *domain.APIError
// carrying the server's message verbatim.
func (c *Client) AddToCart(ctx context.Context, req domain.AddRequest) (*domain.AddResult, error) {
	status, data, err := c.do(ctx, http.MethodPost, "/api/cart/add", req)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := decode(data, &env); err != nil {
		if !isOK(status) {
			return nil, env.apiError(status)
		}
		return nil, err
	}
	if !env.Success {
		return nil, env.apiError(status)
	}

	return &domain.AddResult{Message: env.Message, Item: env.Item}, nil
}

// GetCart fetches the authoritative cart contents and totals
func (c *Client) GetCart(ctx context.Context) (*domain.Cart, error) {
	var cart domain.Cart
	if err := c.getJSON(ctx, "/api/cart", &cart); err != nil {
		return nil, err
	}
	if cart.Lines == nil {
		cart.Lines = []domain.CartLine{}
	}
	return &cart, nil
}

// RemoveFromCart deletes the line at a server-side position
func (c *Client) RemoveFromCart(ctx context.Context, index int) error {
	status, data, err := c.do(ctx, http.MethodDelete, "/api/cart/remove/"+strconv.Itoa(index), nil)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil || !env.Success {
		return env.apiError(status)
	}
	return nil
}

// ClearCart empties the cart
func (c *Client) ClearCart(ctx context.Context) error {
	status, data, err := c.do(ctx, http.MethodDelete, "/api/cart/clear", nil)
	if err != nil {
		return err
	}
	if !isOK(status) {
		var env envelope
		_ = json.Unmarshal(data, &env)
		return env.apiError(status)
	}
	return nil
}

// Checkout finalizes the order and returns its invoice
func (c *Client) Checkout(ctx context.Context) (*domain.Invoice, error) {
	status, data, err := c.do(ctx, http.MethodPost, "/api/checkout", nil)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := decode(data, &env); err != nil {
		if !isOK(status) {
			return nil, env.apiError(status)
		}
		return nil, err
	}
	if !env.Success || env.Invoice == nil {
		return nil, env.apiError(status)
	}
	return env.Invoice, nil
}

// LastInvoice fetches the invoice of the most recent checkout
func (c *Client) LastInvoice(ctx context.Context) (*domain.Invoice, error) {
	status, data, err := c.do(ctx, http.MethodGet, "/api/invoice", nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, domain.ErrNoInvoice
	}

	var env envelope
	if err := decode(data, &env); err != nil {
		return nil, err
	}
	if !env.Success || env.Invoice == nil {
		return nil, env.apiError(status)
	}
	return env.Invoice, nil
}

// IsTransportError reports whether err came from the network rather than the
// backend's application logic
func IsTransportError(err error) bool {
	var apiErr *domain.APIError
	return errors.Is(err, domain.ErrBackendFailure) && !errors.As(err, &apiErr)
}
