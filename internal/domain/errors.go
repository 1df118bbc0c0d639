package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyProductID is returned when a product identifier is blank after trimming
	ErrEmptyProductID = errors.New("please enter a product ID")

	// ErrInvalidWeight is returned when a measured weight is not a positive finite number
	ErrInvalidWeight = errors.New("please enter a valid measured weight")

	// ErrInvalidBudget is returned when a budget is unparseable or not positive
	ErrInvalidBudget = errors.New("budget must be a positive number")

	// ErrInvalidCartIndex is returned when a cart position cannot be parsed
	ErrInvalidCartIndex = errors.New("invalid cart index")

	// ErrProductNotFound is returned when the backend has no product for an ID
	ErrProductNotFound = errors.New("product not found")

	// ErrBackendFailure is returned when the SmartKart backend rejects or fails a request
	ErrBackendFailure = errors.New("smartkart backend request failed")

	// ErrSuperseded is returned when a newer request was issued before this one completed
	ErrSuperseded = errors.New("response superseded by a newer request")

	// ErrNotConfirmed is returned when the shopper declines a confirmation prompt
	ErrNotConfirmed = errors.New("action not confirmed")

	// ErrNoInvoice is returned when the backend holds no recent invoice
	ErrNoInvoice = errors.New("no recent invoice found")

	// ErrCacheMiss is returned when a key is absent or expired in a notice store
	ErrCacheMiss = errors.New("cache miss")
)

// APIError is an application-level failure reported by the backend, either
// through a success=false body or a non-2xx status.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"error"`

	// Set on weight-mismatch rejections of fixed-price items
	ExpectedWeight float64 `json:"expected_weight,omitempty"`
	MeasuredWeight float64 `json:"measured_weight,omitempty"`
	Difference     float64 `json:"difference,omitempty"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("smartkart backend returned status %d", e.Status)
	}
	return e.Message
}

// Unwrap lets callers match any APIError with errors.Is(err, ErrBackendFailure)
func (e *APIError) Unwrap() error {
	return ErrBackendFailure
}

// WeightMismatch reports whether the rejection carries weight details
func (e *APIError) WeightMismatch() bool {
	return e.ExpectedWeight > 0 && e.Difference > 0
}

// ServerMessage returns the backend's error text when err wraps an APIError
func ServerMessage(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}
