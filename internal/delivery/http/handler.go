package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smartkart/kiosk/internal/domain"
	"github.com/smartkart/kiosk/internal/infrastructure/smartkart"
	"github.com/smartkart/kiosk/internal/usecase"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// Handler holds dependencies for HTTP handlers
type Handler struct {
	session *usecase.Session
}

// NewHandler creates a new HTTP handler
func NewHandler(session *usecase.Session) *Handler {
	return &Handler{session: session}
}

// FilterRequest is the body of POST /kiosk/catalog/filter
type FilterRequest struct {
	Search   string `json:"search"`
	Category string `json:"category"`
}

// BudgetRequest is the body of POST /kiosk/budget. The amount stays a string
// so that the kiosk validates it the same way as typed input.
type BudgetRequest struct {
	Budget string `json:"budget"`
}

// LookupRequest is the body of POST /kiosk/lookup
type LookupRequest struct {
	ProductID string `json:"product_id"`
}

// AddRequest is the body of POST /kiosk/cart/add
type AddRequest struct {
	ProductID      string `json:"product_id"`
	MeasuredWeight string `json:"measured_weight"`
}

// ClearRequest is the body of DELETE /kiosk/cart
type ClearRequest struct {
	Confirm bool `json:"confirm"`
}

// HealthCheck returns the health status of the kiosk
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "smartkart-kiosk",
		"version": Version,
	})
}

// GetScreen returns every screen region
func (h *Handler) GetScreen(c *gin.Context) {
	c.JSON(http.StatusOK, h.session.Screen(c.Request.Context()))
}

// ReloadCatalog refetches products and categories
func (h *Handler) ReloadCatalog(c *gin.Context) {
	h.respond(c, h.session.ReloadCatalog(c.Request.Context()))
}

// SetFilter narrows the product list
func (h *Handler) SetFilter(c *gin.Context) {
	var req FilterRequest
	if !h.bind(c, &req) {
		return
	}
	h.session.SetFilter(req.Search, req.Category)
	h.respond(c, nil)
}

// ShowLocation opens the location modal for a product
func (h *Handler) ShowLocation(c *gin.Context) {
	h.respond(c, h.session.ShowLocation(c.Param("id")))
}

// CloseLocation hides the location modal
func (h *Handler) CloseLocation(c *gin.Context) {
	h.session.CloseLocation()
	h.respond(c, nil)
}

// AddFromLocation moves the current product into the scan form
func (h *Handler) AddFromLocation(c *gin.Context) {
	h.respond(c, h.session.AddFromLocation(c.Request.Context()))
}

// SetBudget stores the shopper's budget
func (h *Handler) SetBudget(c *gin.Context) {
	var req BudgetRequest
	if !h.bind(c, &req) {
		return
	}
	h.respond(c, h.session.SetBudget(c.Request.Context(), req.Budget))
}

// Lookup previews a product
func (h *Handler) Lookup(c *gin.Context) {
	var req LookupRequest
	if !h.bind(c, &req) {
		return
	}
	h.respond(c, h.session.Lookup(c.Request.Context(), req.ProductID))
}

// AddToCart records a measured item
func (h *Handler) AddToCart(c *gin.Context) {
	var req AddRequest
	if !h.bind(c, &req) {
		return
	}
	h.respond(c, h.session.Add(c.Request.Context(), req.ProductID, req.MeasuredWeight))
}

// RemoveFromCart deletes the cart line at :index
func (h *Handler) RemoveFromCart(c *gin.Context) {
	index, err := usecase.ParseCartIndex(c.Param("index"))
	if err != nil {
		h.respond(c, err)
		return
	}
	h.respond(c, h.session.Remove(c.Request.Context(), index))
}

// ClearCart empties the cart. The body must carry {"confirm": true}.
func (h *Handler) ClearCart(c *gin.Context) {
	var req ClearRequest
	// a missing body is an unconfirmed request
	_ = c.ShouldBindJSON(&req)

	confirm := domain.ConfirmFunc(func(string) bool { return req.Confirm })
	h.respond(c, h.session.Clear(c.Request.Context(), confirm))
}

// Checkout finalizes the order
func (h *Handler) Checkout(c *gin.Context) {
	h.respond(c, h.session.Checkout(c.Request.Context()))
}

// GetInvoice redisplays the most recent invoice
func (h *Handler) GetInvoice(c *gin.Context) {
	h.respond(c, h.session.ShowLastInvoice(c.Request.Context()))
}

// AcknowledgeDialog dismisses the blocking dialog
func (h *Handler) AcknowledgeDialog(c *gin.Context) {
	h.session.AcknowledgeDialog()
	h.respond(c, nil)
}

func (h *Handler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid request body: " + err.Error(),
		})
		return false
	}
	return true
}

// respond writes the updated screen, with the error and a matching status
// when the action failed
func (h *Handler) respond(c *gin.Context, err error) {
	screen := h.session.Screen(c.Request.Context())
	if err == nil {
		c.JSON(http.StatusOK, screen)
		return
	}

	message := err.Error()
	if msg, ok := domain.ServerMessage(err); ok {
		message = msg
	}
	c.JSON(statusFor(err), gin.H{
		"error":  message,
		"screen": screen,
	})
}

// statusFor maps a session error onto an HTTP status
func statusFor(err error) int {
	var apiErr *domain.APIError
	switch {
	case errors.Is(err, domain.ErrEmptyProductID),
		errors.Is(err, domain.ErrInvalidWeight),
		errors.Is(err, domain.ErrInvalidBudget),
		errors.Is(err, domain.ErrInvalidCartIndex),
		errors.Is(err, domain.ErrNotConfirmed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrNoInvoice):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSuperseded):
		return http.StatusConflict
	case errors.As(err, &apiErr):
		return http.StatusBadRequest
	case smartkart.IsTransportError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
