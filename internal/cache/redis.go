package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Kanikabudhiraja/GreenBasket-CarbonEmission-sub000/internal/domain"
	"github.com/redis/go-redis/v9"
)

const orderKeyPrefix = "order:"

// RedisStore keeps materialized orders across restarts. Values are
// JSON, keys are never expired (an order does not go away), and SetNX
// preserves first-write-wins across processes.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, sessionHandle string) (*domain.Order, error) {
	data, err := s.client.Get(ctx, orderKey(sessionHandle)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotCached
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var order domain.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, fmt.Errorf("unmarshal order failed: %w", err)
	}
	return &order, nil
}

func (s *RedisStore) Put(ctx context.Context, sessionHandle string, order *domain.Order) (*domain.Order, error) {
	data, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("marshal order failed: %w", err)
	}

	set, err := s.client.SetNX(ctx, orderKey(sessionHandle), data, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("redis setnx failed: %w", err)
	}
	if set {
		return order, nil
	}

	// Lost the race; another process stored first.
	return s.Get(ctx, sessionHandle)
}

func (s *RedisStore) GetByOrderID(ctx context.Context, orderID string) (*domain.Order, error) {
	orders, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, order := range orders {
		if order.ID == orderID {
			return order, nil
		}
	}
	return nil, ErrNotCached
}

func (s *RedisStore) List(ctx context.Context) ([]*domain.Order, error) {
	var orders []*domain.Order

	iter := s.client.Scan(ctx, 0, orderKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		data, err := s.client.Get(ctx, iter.Val()).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("redis get failed: %w", err)
		}

		var order domain.Order
		if err := json.Unmarshal(data, &order); err != nil {
			return nil, fmt.Errorf("unmarshal order failed: %w", err)
		}
		orders = append(orders, &order)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan failed: %w", err)
	}

	if orders == nil {
		orders = make([]*domain.Order, 0)
	}
	return orders, nil
}

func orderKey(sessionHandle string) string {
	return orderKeyPrefix + sessionHandle
}
