package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Kanikabudhiraja/GreenBasket-CarbonEmission-sub000/internal/domain"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const topic = "order-confirmed"

type confirmedEvent struct {
	EventID       string             `json:"event_id"`
	OrderID       string             `json:"order_id"`
	SessionHandle string             `json:"session_handle"`
	Items         []domain.OrderLine `json:"items"`
	TotalAmount   int64              `json:"total_amount"`
	Currency      string             `json:"currency"`
	BuyerEmail    string             `json:"buyer_email"`
	CreatedAt     time.Time          `json:"created_at"`
}

// Confirmed publishes freshly materialized orders for downstream
// fulfillment. Delivery is best effort: the materializer logs and
// moves on when publishing fails.
type Confirmed struct {
	writer *kafka.Writer
}

func NewConfirmed(brokers ...string) *Confirmed {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &Confirmed{writer: w}
}

func (p *Confirmed) Publish(ctx context.Context, order *domain.Order) error {
	msg, err := buildMessage(order)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func buildMessage(order *domain.Order) (kafka.Message, error) {
	event := confirmedEvent{
		EventID:       uuid.NewString(),
		OrderID:       order.ID,
		SessionHandle: order.SessionHandle,
		Items:         order.Items,
		TotalAmount:   order.TotalAmount,
		Currency:      order.Currency,
		BuyerEmail:    order.BuyerEmail,
		CreatedAt:     order.CreatedAt,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal confirmed event failed: %w", err)
	}

	return kafka.Message{
		Key:   []byte(order.SessionHandle), // session handle for ordering
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("order.confirmed")},
		},
	}, nil
}

func (p *Confirmed) Close() error {
	return p.writer.Close()
}
