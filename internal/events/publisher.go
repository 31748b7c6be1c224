package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"lunchline/internal/connections/rabbitmq"
	"lunchline/internal/domain"
	"lunchline/internal/logger"
)

const (
	Exchange = "lunchline.orders"

	KeyOrderCreated = "order.created"
	keyOrderUpdated = "order.updated." // + lowercased status
)

// Envelope is the wire shape of every order lifecycle event.
type Envelope struct {
	Event      string        `json:"event"`
	Order      *domain.Order `json:"order"`
	OccurredAt time.Time     `json:"occurredAt"`
}

// Publisher emits order lifecycle events to a durable topic exchange.
// Events are best-effort: they are published after the transaction has
// committed, and a failed publish is logged, never surfaced.
type Publisher struct {
	client *rabbitmq.Client
	lg     *logger.Logger
}

func NewPublisher(client *rabbitmq.Client, lg *logger.Logger) (*Publisher, error) {
	if err := client.Channel().ExchangeDeclare(
		Exchange, "topic", true, false, false, false, nil); err != nil {
		return nil, err
	}
	return &Publisher{client: client, lg: lg}, nil
}

func (p *Publisher) OrderCreated(ctx context.Context, order *domain.Order) {
	p.publish(ctx, KeyOrderCreated, order)
}

func (p *Publisher) OrderUpdated(ctx context.Context, order *domain.Order) {
	p.publish(ctx, keyOrderUpdated+strings.ToLower(string(order.Status)), order)
}

func (p *Publisher) publish(ctx context.Context, key string, order *domain.Order) {
	body, err := json.Marshal(Envelope{
		Event:      key,
		Order:      order,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		p.lg.Error("event_encode_failed", err, map[string]any{"routing_key": key})
		return
	}

	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	headers := amqp.Table{"x-source": "lunchline"}
	if err := p.client.Publish(pctx, Exchange, key, body, headers, "application/json", true); err != nil {
		p.lg.Error("event_publish_failed", err, map[string]any{
			"routing_key": key,
			"order_id":    order.ID.String(),
		})
		return
	}
	p.lg.Debug("event_published", map[string]any{
		"routing_key": key,
		"order_id":    order.ID.String(),
	})
}
