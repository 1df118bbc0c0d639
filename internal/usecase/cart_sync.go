package usecase

import (
	"context"
	"errors"

	"github.com/smartkart/kiosk/internal/domain"
	"go.uber.org/zap"
)

const clearCartPrompt = "Are you sure you want to clear the cart?"

// CartSync forwards cart mutations to the backend. It holds no cart state;
// every successful mutation returns the regions the caller must re-fetch.
type CartSync struct {
	client domain.ShopClient
}

// NewCartSync creates a cart pass-through
func NewCartSync(client domain.ShopClient) *CartSync {
	return &CartSync{client: client}
}

// Add validates the inputs and records a measured item. Validation failures
// return before any request is made.
func (s *CartSync) Add(ctx context.Context, rawID, rawWeight string) (*domain.AddResult, domain.Refresh, error) {
	productID := domain.NormalizeProductID(rawID)
	if productID == "" {
		return nil, domain.Refresh{}, domain.ErrEmptyProductID
	}

	weight, err := ParseWeight(rawWeight)
	if err != nil {
		return nil, domain.Refresh{}, err
	}

	result, err := s.client.AddToCart(ctx, domain.AddRequest{ProductID: productID, MeasuredWeight: weight})
	if err != nil {
		var apiErr *domain.APIError
		if errors.As(err, &apiErr) && apiErr.WeightMismatch() {
			zap.L().Warn("weight mismatch",
				zap.String("product_id", productID),
				zap.Float64("expected_weight", apiErr.ExpectedWeight),
				zap.Float64("measured_weight", apiErr.MeasuredWeight),
				zap.Float64("difference", apiErr.Difference),
			)
			return nil, domain.Refresh{}, err
		}
		zap.L().Warn("add to cart failed",
			zap.String("product_id", productID),
			zap.Float64("measured_weight", weight),
			zap.Error(err),
		)
		return nil, domain.Refresh{}, err
	}

	zap.L().Info("item added to cart", zap.String("product_id", productID), zap.Float64("measured_weight", weight))
	return result, domain.RefreshAll, nil
}

// Remove deletes the line at a position in the server's current ordering
func (s *CartSync) Remove(ctx context.Context, index int) (domain.Refresh, error) {
	if index < 0 {
		return domain.Refresh{}, domain.ErrInvalidCartIndex
	}

	if err := s.client.RemoveFromCart(ctx, index); err != nil {
		zap.L().Error("error removing from cart", zap.Int("index", index), zap.Error(err))
		return domain.Refresh{}, err
	}
	return domain.RefreshAll, nil
}

// Clear empties the cart once the shopper confirms. Declining returns
// domain.ErrNotConfirmed and issues no request.
func (s *CartSync) Clear(ctx context.Context, confirmer domain.Confirmer) (domain.Refresh, error) {
	if confirmer == nil || !confirmer.Confirm(clearCartPrompt) {
		return domain.Refresh{}, domain.ErrNotConfirmed
	}

	if err := s.client.ClearCart(ctx); err != nil {
		zap.L().Error("error clearing cart", zap.Error(err))
		return domain.Refresh{}, err
	}

	refresh := domain.RefreshAll
	refresh.HideInvoice = true
	return refresh, nil
}

// Cart fetches the authoritative cart
func (s *CartSync) Cart(ctx context.Context) (*domain.Cart, error) {
	cart, err := s.client.GetCart(ctx)
	if err != nil {
		zap.L().Error("error loading cart", zap.Error(err))
		return nil, err
	}
	return cart, nil
}
