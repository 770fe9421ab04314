package cache

import (
	"context"
	"sync"

	"github.com/Kanikabudhiraja/GreenBasket-CarbonEmission-sub000/internal/domain"
)

// MemoryStore is the default in-process store. Volatile: a restart
// loses all materialized orders.
type MemoryStore struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		orders: make(map[string]*domain.Order),
	}
}

func (s *MemoryStore) Get(_ context.Context, sessionHandle string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[sessionHandle]
	if !ok {
		return nil, ErrNotCached
	}
	return order, nil
}

func (s *MemoryStore) Put(_ context.Context, sessionHandle string, order *domain.Order) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.orders[sessionHandle]; ok {
		return existing, nil
	}
	s.orders[sessionHandle] = order
	return order, nil
}

// GetByOrderID scans current values. Linear, fine at this scale.
func (s *MemoryStore) GetByOrderID(_ context.Context, orderID string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, order := range s.orders {
		if order.ID == orderID {
			return order, nil
		}
	}
	return nil, ErrNotCached
}

func (s *MemoryStore) List(_ context.Context) ([]*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]*domain.Order, 0, len(s.orders))
	for _, order := range s.orders {
		orders = append(orders, order)
	}
	return orders, nil
}
