package service

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/Kanikabudhiraja/GreenBasket-CarbonEmission-sub000/internal/domain"
	"github.com/Kanikabudhiraja/GreenBasket-CarbonEmission-sub000/internal/gateway"
)

// MockGateway implements gateway.Gateway for testing
type MockGateway struct {
	mu sync.Mutex

	CreateSessionHandle string
	CreateSessionErr    error
	CreateSessionCalls  int32
	LastSessionParams   gateway.SessionParams

	Session           *gateway.SessionRecord
	RetrieveErr       error
	RetrieveCalls     int32
	RetrieveDelayHook func()

	Discount         *gateway.Discount
	GetDiscountErr   error
	GetDiscountCalls int32

	CreatedDiscount     *gateway.Discount
	CreateDiscountErr   error
	CreateDiscountCalls int32
	LastDiscountParams  gateway.DiscountParams
}

func (m *MockGateway) CreateCheckoutSession(_ context.Context, params gateway.SessionParams) (string, error) {
	atomic.AddInt32(&m.CreateSessionCalls, 1)
	m.mu.Lock()
	m.LastSessionParams = params
	m.mu.Unlock()
	if m.CreateSessionErr != nil {
		return "", m.CreateSessionErr
	}
	return m.CreateSessionHandle, nil
}

func (m *MockGateway) RetrieveSession(_ context.Context, _ string) (*gateway.SessionRecord, error) {
	atomic.AddInt32(&m.RetrieveCalls, 1)
	if m.RetrieveDelayHook != nil {
		m.RetrieveDelayHook()
	}
	if m.RetrieveErr != nil {
		return nil, m.RetrieveErr
	}
	return m.Session, nil
}

func (m *MockGateway) GetDiscount(_ context.Context, _ string) (*gateway.Discount, error) {
	atomic.AddInt32(&m.GetDiscountCalls, 1)
	if m.GetDiscountErr != nil {
		return nil, m.GetDiscountErr
	}
	return m.Discount, nil
}

func (m *MockGateway) CreateDiscount(_ context.Context, params gateway.DiscountParams) (*gateway.Discount, error) {
	atomic.AddInt32(&m.CreateDiscountCalls, 1)
	m.mu.Lock()
	m.LastDiscountParams = params
	m.mu.Unlock()
	if m.CreateDiscountErr != nil {
		return nil, m.CreateDiscountErr
	}
	return m.CreatedDiscount, nil
}

// MockPublisher implements ConfirmedPublisher for testing
type MockPublisher struct {
	mu        sync.Mutex
	Published []*domain.Order
	Err       error
}

func (m *MockPublisher) Publish(_ context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Published = append(m.Published, order)
	return nil
}

func (m *MockPublisher) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Published)
}

func completedSession(handle string) *gateway.SessionRecord {
	return &gateway.SessionRecord{
		Handle:        handle,
		PaymentStatus: "paid",
		Currency:      "inr",
		AmountTotal:   1099,
		LineItems: []gateway.SessionLineItem{
			{Name: "Bamboo Toothbrush", Quantity: 2, Amount: 398},
			{Name: "Organic Cotton Tote", Quantity: 1, Amount: 701},
		},
		Customer: &gateway.SessionCustomer{
			Name:  "Asha Rao",
			Email: "asha@example.com",
			Address: gateway.Address{
				Line1:      "12 MG Road",
				City:       "Bengaluru",
				State:      "KA",
				PostalCode: "560001",
				Country:    "IN",
			},
		},
		PaymentIntent: "pi_test_123",
	}
}
