package domain

import (
	"fmt"
	"time"
)

type FulfillmentStatus string

const (
	FulfillmentConfirmed  FulfillmentStatus = "CONFIRMED"
	FulfillmentProcessing FulfillmentStatus = "PROCESSING"
	FulfillmentShipped    FulfillmentStatus = "SHIPPED"
	FulfillmentDelivered  FulfillmentStatus = "DELIVERED"
)

// String representation (for logging)
func (s FulfillmentStatus) String() string {
	return string(s)
}

// DeliveryLeadTime is the fixed estimate promised at purchase time.
const DeliveryLeadTime = 7 * 24 * time.Hour

type OrderLine struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Amount   int64  `json:"amount"`
}

type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Order is the canonical purchase record materialized from a completed
// gateway session. Immutable once built; fulfillment status is derived
// from elapsed time, never stored.
type Order struct {
	ID                string      `json:"id"`
	SessionHandle     string      `json:"session_handle"`
	Items             []OrderLine `json:"items"`
	TotalAmount       int64       `json:"total_amount"`
	Currency          string      `json:"currency"`
	CreatedAt         time.Time   `json:"created_at"`
	EstimatedDelivery time.Time   `json:"estimated_delivery"`
	ShippingAddress   Address     `json:"shipping_address"`
	BuyerName         string      `json:"buyer_name"`
	BuyerEmail        string      `json:"buyer_email"`
	PaymentStatus     string      `json:"payment_status"`
}

// NewOrderID derives a human-facing order identifier from the tail of
// the session handle plus a timestamp component. Uniqueness is
// best-effort; the session handle stays the primary key.
func NewOrderID(sessionHandle string, at time.Time) string {
	suffix := sessionHandle
	if len(suffix) > 8 {
		suffix = suffix[len(suffix)-8:]
	}
	return fmt.Sprintf("GB-%s-%d", suffix, at.Unix())
}

// FulfillmentStatusAt derives the fulfillment stage from how long ago
// the order was placed.
func (o Order) FulfillmentStatusAt(now time.Time) FulfillmentStatus {
	elapsed := now.Sub(o.CreatedAt)
	switch {
	case elapsed >= DeliveryLeadTime:
		return FulfillmentDelivered
	case elapsed >= 3*24*time.Hour:
		return FulfillmentShipped
	case elapsed >= 24*time.Hour:
		return FulfillmentProcessing
	default:
		return FulfillmentConfirmed
	}
}
