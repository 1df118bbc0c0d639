package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/smartkart/kiosk/internal/domain"
	"github.com/smartkart/kiosk/internal/presenter"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Messages shown in the scan notice area
const (
	MsgEnterProductID  = "Please enter a Product ID"
	MsgInvalidWeight   = "Please enter a valid measured weight"
	MsgProductNotFound = "Product not found. Please check the ID."
	MsgLookupFailed    = "Error looking up product"
	MsgAddFailed       = "Error adding item to cart"
)

// Session is the kiosk page controller. It owns the form, preview, modal,
// cart view and dialog, delegates every action to its component, and applies
// the refresh signal each mutation returns. Safe for concurrent use.
type Session struct {
	catalog  *CatalogCache
	lookup   *ProductLookup
	cart     *CartSync
	budget   *BudgetMonitor
	checkout *CheckoutFlow
	notices  *NoticeBoard

	lookupSeq Sequencer

	mu       sync.RWMutex
	form     domain.FormState
	preview  domain.PreviewView
	location domain.LocationView
	cartView domain.CartView
	dialog   *domain.Dialog
}

// NewSession wires the kiosk components around one backend client
func NewSession(client domain.ShopClient, notices *NoticeBoard) *Session {
	return &Session{
		catalog:  NewCatalogCache(client),
		lookup:   NewProductLookup(client),
		cart:     NewCartSync(client),
		budget:   NewBudgetMonitor(client),
		checkout: NewCheckoutFlow(client),
		notices:  notices,
		cartView: presenter.Cart(domain.Cart{}),
	}
}

// Catalog exposes the catalog cache
func (s *Session) Catalog() *CatalogCache {
	return s.catalog
}

// Start performs the initial page load: products, categories and cart. Each
// failure is logged and the region keeps its empty state.
func (s *Session) Start(ctx context.Context) error {
	var g errgroup.Group
	var errs [3]error

	g.Go(func() error { errs[0] = s.catalog.Load(ctx); return nil })
	g.Go(func() error { errs[1] = s.catalog.LoadCategories(ctx); return nil })
	g.Go(func() error { errs[2] = s.RefreshCart(ctx); return nil })
	_ = g.Wait()

	return errors.Join(errs[:]...)
}

// ReloadCatalog refetches products and categories
func (s *Session) ReloadCatalog(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.catalog.Load(gctx) })
	g.Go(func() error { return s.catalog.LoadCategories(gctx) })
	return g.Wait()
}

// SetFilter changes the catalog search term and category
func (s *Session) SetFilter(search, category string) {
	s.catalog.SetFilter(search, category)
}

// ShowLocation opens the location modal for a cached product and makes it
// the current product
func (s *Session) ShowLocation(productID string) error {
	product, ok := s.catalog.Find(productID)
	if !ok {
		return domain.ErrProductNotFound
	}

	s.lookup.SetCurrent(product)

	s.mu.Lock()
	s.location = presenter.Location(product)
	s.mu.Unlock()
	return nil
}

// CloseLocation hides the location modal
func (s *Session) CloseLocation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.location = domain.LocationView{}
}

// AddFromLocation prefills the scan form from the current product and looks
// it up. Fixed-price items get their expected weight as the measured weight.
func (s *Session) AddFromLocation(ctx context.Context) error {
	current := s.lookup.Current()
	if current == nil {
		return domain.ErrEmptyProductID
	}

	weight := ""
	if !current.VariableWeight && current.ExpectedWeight > 0 {
		weight = presenter.Number(current.ExpectedWeight)
	}

	s.mu.Lock()
	s.form = domain.FormState{ProductID: current.ProductID, MeasuredWeight: weight}
	s.location = domain.LocationView{}
	s.mu.Unlock()

	return s.Lookup(ctx, current.ProductID)
}

// Lookup resolves a product for the preview panel. Only the most recent
// lookup touches the preview and the scan notice.
func (s *Session) Lookup(ctx context.Context, rawID string) error {
	seq := s.lookupSeq.Next()
	s.mu.Lock()
	s.form.ProductID = rawID
	s.mu.Unlock()

	product, err := s.lookup.Lookup(ctx, rawID)

	s.mu.Lock()
	if !s.lookupSeq.IsLatest(seq) {
		s.mu.Unlock()
		return domain.ErrSuperseded
	}
	var level domain.Level
	var message string
	switch {
	case err == nil:
		s.preview = presenter.Preview(*product)
	case errors.Is(err, domain.ErrSuperseded):
	case errors.Is(err, domain.ErrEmptyProductID):
		level, message = domain.LevelWarning, MsgEnterProductID
	case errors.Is(err, domain.ErrProductNotFound):
		s.preview = domain.PreviewView{}
		level, message = domain.LevelDanger, MsgProductNotFound
	default:
		level, message = domain.LevelDanger, MsgLookupFailed
	}
	s.mu.Unlock()

	if message != "" {
		s.notify(ctx, level, message)
	}
	return err
}

// Add records a measured item and re-syncs the cart and budget on success
func (s *Session) Add(ctx context.Context, rawID, rawWeight string) error {
	s.mu.Lock()
	s.form = domain.FormState{ProductID: rawID, MeasuredWeight: rawWeight}
	s.mu.Unlock()

	result, refresh, err := s.cart.Add(ctx, rawID, rawWeight)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyProductID):
			s.notify(ctx, domain.LevelWarning, MsgEnterProductID)
		case errors.Is(err, domain.ErrInvalidWeight):
			s.notify(ctx, domain.LevelWarning, MsgInvalidWeight)
		default:
			if msg, ok := domain.ServerMessage(err); ok {
				s.notify(ctx, domain.LevelDanger, msg)
			} else {
				s.notify(ctx, domain.LevelDanger, MsgAddFailed)
			}
		}
		return err
	}

	s.notify(ctx, domain.LevelSuccess, result.Message)
	s.mu.Lock()
	s.form = domain.FormState{}
	s.preview = domain.PreviewView{}
	s.mu.Unlock()
	s.lookup.ClearCurrent()

	s.apply(ctx, refresh)
	return nil
}

// Remove deletes a cart line by its server-side position
func (s *Session) Remove(ctx context.Context, index int) error {
	refresh, err := s.cart.Remove(ctx, index)
	if err != nil {
		return err
	}
	s.apply(ctx, refresh)
	return nil
}

// Clear empties the cart after confirmation and hides the invoice
func (s *Session) Clear(ctx context.Context, confirmer domain.Confirmer) error {
	refresh, err := s.cart.Clear(ctx, confirmer)
	if err != nil {
		return err
	}
	s.apply(ctx, refresh)
	return nil
}

// SetBudget stores a new budget and checks it against the cart
func (s *Session) SetBudget(ctx context.Context, raw string) error {
	refresh, err := s.budget.SetBudget(raw)
	if err != nil {
		return err
	}
	s.apply(ctx, refresh)
	return nil
}

// Checkout finalizes the order. A backend rejection raises a blocking dialog
// and leaves the cart view as it was.
func (s *Session) Checkout(ctx context.Context) error {
	_, refresh, err := s.checkout.Checkout(ctx)
	if err != nil {
		if msg, ok := domain.ServerMessage(err); ok {
			s.mu.Lock()
			s.dialog = &domain.Dialog{Message: msg}
			s.mu.Unlock()
		}
		return err
	}
	s.apply(ctx, refresh)
	return nil
}

// ShowLastInvoice redisplays the invoice of the most recent checkout
func (s *Session) ShowLastInvoice(ctx context.Context) error {
	_, err := s.checkout.LastInvoice(ctx)
	return err
}

// AcknowledgeDialog dismisses the blocking dialog
func (s *Session) AcknowledgeDialog() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dialog = nil
}

// RefreshCart re-fetches the cart view. On failure the last view is kept.
func (s *Session) RefreshCart(ctx context.Context) error {
	cart, err := s.cart.Cart(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cartView = presenter.Cart(*cart)
	s.mu.Unlock()
	return nil
}

// RefreshBudget re-checks the budget
func (s *Session) RefreshBudget(ctx context.Context) error {
	_, err := s.budget.Refresh(ctx)
	if errors.Is(err, domain.ErrSuperseded) {
		return nil
	}
	return err
}

// apply performs the work a refresh signal asks for. Cart and budget are
// fetched concurrently; each failure leaves its own region stale. The
// mutation that produced the signal has already succeeded, so refresh
// failures are logged and not reported to the caller.
func (s *Session) apply(ctx context.Context, refresh domain.Refresh) {
	if refresh.HideInvoice {
		s.checkout.Hide()
	}

	var g errgroup.Group
	if refresh.Cart {
		g.Go(func() error {
			if err := s.RefreshCart(ctx); err != nil {
				zap.L().Warn("cart view left stale", zap.Error(err))
			}
			return nil
		})
	}
	if refresh.Budget {
		g.Go(func() error {
			if err := s.RefreshBudget(ctx); err != nil {
				zap.L().Warn("budget view left stale", zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (s *Session) notify(ctx context.Context, level domain.Level, message string) {
	if s.notices == nil {
		return
	}
	if err := s.notices.Post(ctx, RegionScan, level, message); err != nil {
		zap.L().Warn("notice not shown", zap.String("message", message), zap.Error(err))
	}
}

// Screen returns a snapshot of every region
func (s *Session) Screen(ctx context.Context) domain.Screen {
	var notice *domain.Notice
	if s.notices != nil {
		notice = s.notices.Current(ctx, RegionScan)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	screen := domain.Screen{
		ProductList: presenter.ProductList(s.catalog.Visible()),
		Categories:  s.catalog.Categories(),
		Filter:      s.catalog.ActiveFilter(),
		Form:        s.form,
		Preview:     s.preview,
		Location:    s.location,
		Notice:      notice,
		Budget:      s.budget.View(),
		Cart:        s.cartView,
		Invoice:     s.checkout.View(),
	}
	if s.dialog != nil {
		d := *s.dialog
		screen.Dialog = &d
	}
	return screen
}
