package usecase

import (
	"math"
	"strings"

	"github.com/smartkart/kiosk/internal/domain"
	"github.com/spf13/cast"
)

// parseFloat coerces a shopper-entered number, rejecting NaN and infinities
func parseFloat(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseWeight validates a measured weight in grams
func ParseWeight(raw string) (float64, error) {
	v, ok := parseFloat(raw)
	if !ok || v <= 0 {
		return 0, domain.ErrInvalidWeight
	}
	return v, nil
}

// ParseBudget validates a budget amount
func ParseBudget(raw string) (float64, error) {
	v, ok := parseFloat(raw)
	if !ok || v <= 0 {
		return 0, domain.ErrInvalidBudget
	}
	return v, nil
}

// ParseCartIndex validates a cart position
func ParseCartIndex(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, domain.ErrInvalidCartIndex
	}
	v, err := cast.ToIntE(raw)
	if err != nil || v < 0 {
		return 0, domain.ErrInvalidCartIndex
	}
	return v, nil
}
