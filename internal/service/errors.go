package service

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart              = errors.New("cart is empty, nothing to checkout")
	ErrIncompleteSession      = errors.New("gateway session has no line items")
	ErrSessionNotFound        = errors.New("checkout session not found or expired")
	ErrOrderNotFound          = errors.New("order not found")
	ErrMaterializeUnavailable = errors.New("order materialization temporarily unavailable")
)

// CheckoutFailedError carries the gateway's own message back to the
// caller; session creation failures are user-facing and never retried
// automatically.
type CheckoutFailedError struct {
	Cause error
}

func (e *CheckoutFailedError) Error() string {
	return fmt.Sprintf("checkout initiation failed: %v", e.Cause)
}

func (e *CheckoutFailedError) Unwrap() error {
	return e.Cause
}
