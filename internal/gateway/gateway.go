package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"
)

var (
	ErrSessionNotFound  = errors.New("checkout session not found")
	ErrDiscountNotFound = errors.New("discount not found")
	ErrDiscountExists   = errors.New("discount already exists")
)

// Error is a non-sentinel failure reported by the payment gateway,
// carrying its HTTP status and machine-readable code verbatim.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("gateway error %d (%s): %s", e.Status, e.Code, e.Message)
}

// IsTransient reports whether the error is a network/availability
// failure that a later poll or webhook redelivery may resolve.
func IsTransient(err error) bool {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.Status >= 500 || gwErr.Status == 429
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// LineItem is one gateway-bound price/quantity/description record,
// already sanitized by the line-item formatter.
type LineItem struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Images      []string `json:"images,omitempty"`
	UnitAmount  int64    `json:"unit_amount"`
	Currency    string   `json:"currency"`
	Quantity    int      `json:"quantity"`
}

type SessionParams struct {
	LineItems  []LineItem
	BuyerEmail string
	DiscountID string
	SuccessURL string
	CancelURL  string
}

type SessionCustomer struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Address Address `json:"address"`
}

type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type SessionLineItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Amount   int64  `json:"amount"`
}

// SessionRecord is the authoritative session state as returned by
// RetrieveSession with line items, customer and payment intent
// expanded.
type SessionRecord struct {
	Handle        string            `json:"id"`
	PaymentStatus string            `json:"payment_status"`
	Currency      string            `json:"currency"`
	AmountTotal   int64             `json:"amount_total"`
	LineItems     []SessionLineItem `json:"line_items"`
	Customer      *SessionCustomer  `json:"customer"`
	PaymentIntent string            `json:"payment_intent"`
}

type DiscountParams struct {
	ID        string
	AmountOff int64
	Currency  string
}

type Discount struct {
	ID        string `json:"id"`
	AmountOff int64  `json:"amount_off"`
	Currency  string `json:"currency"`
	Duration  string `json:"duration"`
}

// Gateway is the narrow payment-gateway surface this service depends
// on. The production implementation is Client; tests inject fakes.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, params SessionParams) (string, error)
	RetrieveSession(ctx context.Context, handle string) (*SessionRecord, error)
	GetDiscount(ctx context.Context, id string) (*Discount, error)
	CreateDiscount(ctx context.Context, params DiscountParams) (*Discount, error)
}
