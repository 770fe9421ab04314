package http

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/Kanikabudhiraja/GreenBasket-CarbonEmission-sub000/internal/domain"
	"github.com/Kanikabudhiraja/GreenBasket-CarbonEmission-sub000/internal/service"
)

// CheckoutServiceMock implements service.CheckoutService for testing
type CheckoutServiceMock struct {
	Handle     string
	Err        error
	LastLines  []domain.CartLine
	LastEmail  string
	LastCoupon string
}

func (m *CheckoutServiceMock) Initiate(_ context.Context, lines []domain.CartLine, buyerEmail, couponCode string) (string, error) {
	m.LastLines = lines
	m.LastEmail = buyerEmail
	m.LastCoupon = couponCode
	if m.Err != nil {
		return "", m.Err
	}
	return m.Handle, nil
}

// OrderServiceMock implements service.OrderService for testing
type OrderServiceMock struct {
	Order           *domain.Order
	Orders          []*domain.Order
	Err             error
	SessionCalls    int32
	LastSession     string
	LastBuyerFilter string
}

func (m *OrderServiceMock) GetBySession(_ context.Context, sessionHandle string) (*domain.Order, error) {
	atomic.AddInt32(&m.SessionCalls, 1)
	m.LastSession = sessionHandle
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Order, nil
}

func (m *OrderServiceMock) GetByID(_ context.Context, _ string) (*domain.Order, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Order == nil {
		return nil, service.ErrOrderNotFound
	}
	return m.Order, nil
}

func (m *OrderServiceMock) ListForBuyer(_ context.Context, buyerEmail string) ([]*domain.Order, error) {
	m.LastBuyerFilter = buyerEmail
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Orders, nil
}

func sampleOrder() *domain.Order {
	createdAt := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	return &domain.Order{
		ID:                "GB-ef123456-1773478800",
		SessionHandle:     "cs_test_abcdef123456",
		Items:             []domain.OrderLine{{Name: "Bamboo Toothbrush", Quantity: 2, Amount: 398}},
		TotalAmount:       398,
		Currency:          "inr",
		CreatedAt:         createdAt,
		EstimatedDelivery: createdAt.Add(7 * 24 * time.Hour),
		BuyerName:         "Asha Rao",
		BuyerEmail:        "asha@example.com",
		PaymentStatus:     "paid",
	}
}
