package cache

import (
	"context"
	"errors"

	"github.com/Kanikabudhiraja/GreenBasket-CarbonEmission-sub000/internal/domain"
)

// OrderStore maps session handles to materialized orders. Put is
// put-if-absent: the first write for a handle wins and every later
// writer observes the stored order, which is what keeps materialization
// at-most-once per handle.
type OrderStore interface {
	Get(ctx context.Context, sessionHandle string) (*domain.Order, error)
	Put(ctx context.Context, sessionHandle string, order *domain.Order) (*domain.Order, error)
	GetByOrderID(ctx context.Context, orderID string) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
}

var ErrNotCached = errors.New("order not cached")
