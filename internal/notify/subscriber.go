package notify

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"

	"lunchline/internal/connections/rabbitmq"
	"lunchline/internal/events"
	"lunchline/internal/logger"
)

// Run binds an exclusive queue to the order events exchange and logs
// every lifecycle event until ctx is cancelled.
func Run(ctx context.Context, client *rabbitmq.Client, lg *logger.Logger) error {
	ch := client.Channel()

	if err := ch.ExchangeDeclare(events.Exchange, "topic", true, false, false, false, nil); err != nil {
		return err
	}
	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return err
	}
	if err := ch.QueueBind(q.Name, "order.#", events.Exchange, false, nil); err != nil {
		return err
	}

	msgs, err := ch.Consume(q.Name, "", false, true, false, false, nil)
	if err != nil {
		return err
	}

	lg.Info("subscriber_started", map[string]any{"queue": q.Name, "exchange": events.Exchange})

	for {
		select {
		case <-ctx.Done():
			lg.Info("subscriber_stopped", nil)
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			logEvent(lg, d)
			_ = d.Ack(false)
		}
	}
}

func logEvent(lg *logger.Logger, d amqp.Delivery) {
	var env events.Envelope
	if err := json.Unmarshal(d.Body, &env); err != nil {
		lg.Error("event_decode_failed", err, map[string]any{"routing_key": d.RoutingKey})
		return
	}

	fields := map[string]any{
		"event":       env.Event,
		"routing_key": d.RoutingKey,
		"occurred_at": env.OccurredAt,
	}
	if env.Order != nil {
		fields["order_id"] = env.Order.ID.String()
		fields["status"] = string(env.Order.Status)
		if env.Order.AssignedTo != nil {
			fields["assigned_to"] = *env.Order.AssignedTo
		}
	}
	lg.Info("order_event", fields)
}
