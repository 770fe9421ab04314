package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Kanikabudhiraja/GreenBasket-CarbonEmission-sub000/internal/cache"
	"github.com/Kanikabudhiraja/GreenBasket-CarbonEmission-sub000/internal/domain"
	"github.com/Kanikabudhiraja/GreenBasket-CarbonEmission-sub000/internal/gateway"
	"golang.org/x/sync/singleflight"
)

// ConfirmedPublisher notifies downstream fulfillment about a freshly
// materialized order. Publishing is best effort.
type ConfirmedPublisher interface {
	Publish(ctx context.Context, order *domain.Order) error
}

type OrderService interface {
	GetBySession(ctx context.Context, sessionHandle string) (*domain.Order, error)
	GetByID(ctx context.Context, orderID string) (*domain.Order, error)
	ListForBuyer(ctx context.Context, buyerEmail string) ([]*domain.Order, error)
}

// OrderServiceImpl materializes orders from completed gateway sessions
// and serves reads. Materialization is idempotent: the store holds at
// most one order per session handle and the singleflight group
// collapses concurrent attempts for the same handle into one gateway
// call, whether they come from the webhook or from a polling buyer.
type OrderServiceImpl struct {
	gw        gateway.Gateway
	store     cache.OrderStore
	publisher ConfirmedPublisher
	sfg       singleflight.Group
	now       func() time.Time
}

func NewOrderService(gw gateway.Gateway, store cache.OrderStore, publisher ConfirmedPublisher) *OrderServiceImpl {
	return &OrderServiceImpl{
		gw:        gw,
		store:     store,
		publisher: publisher,
		now:       time.Now,
	}
}

// GetBySession returns the cached order or materializes it from the
// gateway. Both the webhook receiver and the buyer poll land here.
func (s *OrderServiceImpl) GetBySession(ctx context.Context, sessionHandle string) (*domain.Order, error) {
	order, err := s.store.Get(ctx, sessionHandle)
	if err == nil {
		return order, nil
	}
	if !errors.Is(err, cache.ErrNotCached) {
		return nil, fmt.Errorf("%w: %v", ErrMaterializeUnavailable, err)
	}

	v, err, _ := s.sfg.Do(sessionHandle, func() (interface{}, error) {
		return s.materialize(ctx, sessionHandle)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Order), nil
}

func (s *OrderServiceImpl) materialize(ctx context.Context, sessionHandle string) (*domain.Order, error) {
	// Re-check inside the flight; a webhook may have stored the order
	// between the miss and the lock.
	if order, err := s.store.Get(ctx, sessionHandle); err == nil {
		return order, nil
	}

	record, err := s.gw.RetrieveSession(ctx, sessionHandle)
	if err != nil {
		if errors.Is(err, gateway.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrMaterializeUnavailable, err)
	}

	if len(record.LineItems) == 0 {
		log.Printf("session %s retrieved without line items, refusing to build a partial order", sessionHandle)
		return nil, ErrIncompleteSession
	}

	order := s.buildOrder(record)

	stored, err := s.store.Put(ctx, sessionHandle, order)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMaterializeUnavailable, err)
	}

	// Publish only when this flight's order won the store race;
	// losers would duplicate the event.
	if stored == order && s.publisher != nil {
		if pubErr := s.publisher.Publish(ctx, stored); pubErr != nil {
			log.Printf("failed to publish confirmed order %s: %v", stored.ID, pubErr)
		}
	}
	return stored, nil
}

func (s *OrderServiceImpl) buildOrder(record *gateway.SessionRecord) *domain.Order {
	createdAt := s.now()

	items := make([]domain.OrderLine, 0, len(record.LineItems))
	for _, li := range record.LineItems {
		items = append(items, domain.OrderLine{
			Name:     li.Name,
			Quantity: li.Quantity,
			Amount:   li.Amount,
		})
	}

	order := &domain.Order{
		ID:                domain.NewOrderID(record.Handle, createdAt),
		SessionHandle:     record.Handle,
		Items:             items,
		TotalAmount:       record.AmountTotal,
		Currency:          record.Currency,
		CreatedAt:         createdAt,
		EstimatedDelivery: createdAt.Add(domain.DeliveryLeadTime),
		PaymentStatus:     record.PaymentStatus,
	}
	if order.Currency == "" {
		order.Currency = defaultCurrency
	}

	// Customer details come back half-filled often enough that every
	// field is mapped defensively.
	if record.Customer != nil {
		order.BuyerName = record.Customer.Name
		order.BuyerEmail = record.Customer.Email
		order.ShippingAddress = domain.Address{
			Line1:      record.Customer.Address.Line1,
			Line2:      record.Customer.Address.Line2,
			City:       record.Customer.Address.City,
			State:      record.Customer.Address.State,
			PostalCode: record.Customer.Address.PostalCode,
			Country:    record.Customer.Address.Country,
		}
	}
	return order
}

func (s *OrderServiceImpl) GetByID(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.store.GetByOrderID(ctx, orderID)
	if errors.Is(err, cache.ErrNotCached) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMaterializeUnavailable, err)
	}
	return order, nil
}

// ListForBuyer returns materialized orders, filtered by buyer email
// when the caller is authenticated. An empty result is a list, never
// an error.
func (s *OrderServiceImpl) ListForBuyer(ctx context.Context, buyerEmail string) ([]*domain.Order, error) {
	orders, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMaterializeUnavailable, err)
	}
	if buyerEmail == "" {
		return orders, nil
	}

	filtered := make([]*domain.Order, 0, len(orders))
	for _, order := range orders {
		if order.BuyerEmail == buyerEmail {
			filtered = append(filtered, order)
		}
	}
	return filtered, nil
}
