package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/rabbitmq"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/pickup-notifier/internal/config"
)

// EventType is an order lifecycle transition published by the order service.
type EventType string

const (
	EventCreated   EventType = "created"
	EventUpdated   EventType = "updated"
	EventCancelled EventType = "cancelled"
	EventCompleted EventType = "completed"
	EventDeleted   EventType = "deleted"
)

// OrderEvent is the message body of the order lifecycle queue.
type OrderEvent struct {
	OrderID    uuid.UUID `json:"order_id"`
	Event      EventType `json:"event"`
	OccurredAt time.Time `json:"occurred_at"`
}

// OrderQueue publishes and consumes order lifecycle events.
type OrderQueue struct {
	Publisher  *rabbitmq.Publisher
	Consumer   *rabbitmq.Consumer
	routingKey string
}

// NewOrderQueue declares the exchange, the event queue and its dead-letter queue.
func NewOrderQueue(ch *rabbitmq.Channel, cfg config.RabbitMQ) (*OrderQueue, error) {
	exchange := rabbitmq.NewExchange(cfg.Exchange, "direct")
	if err := exchange.BindToChannel(ch); err != nil {
		return nil, fmt.Errorf("failed to bind to exchange: %w", err)
	}

	qm := rabbitmq.NewQueueManager(ch)

	if _, err := qm.DeclareQueue(cfg.DLQ, rabbitmq.QueueConfig{Durable: true}); err != nil {
		return nil, fmt.Errorf("failed to declare DLQ queue: %w", err)
	}

	mainQ, err := qm.DeclareQueue(cfg.Queue, rabbitmq.QueueConfig{
		Durable: true,
		Args: map[string]interface{}{
			"x-dead-letter-exchange":    "",
			"x-dead-letter-routing-key": cfg.DLQ,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to declare order events queue: %w", err)
	}

	if err := ch.QueueBind(mainQ.Name, cfg.RoutingKey, exchange.Name(), false, nil); err != nil {
		return nil, fmt.Errorf("failed to bind the exchange to the order events queue: %w", err)
	}

	return &OrderQueue{
		Publisher:  rabbitmq.NewPublisher(ch, exchange.Name()),
		Consumer:   rabbitmq.NewConsumer(ch, rabbitmq.NewConsumerConfig(mainQ.Name)),
		routingKey: cfg.RoutingKey,
	}, nil
}

// Publish sends an order event.
func (q *OrderQueue) Publish(evt OrderEvent, strategy retry.Strategy) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	return q.Publisher.PublishWithRetry(body, q.routingKey, "application/json", strategy)
}

// Consume decodes incoming events into out until ctx is done.
// Malformed messages are logged and dropped.
func (q *OrderQueue) Consume(ctx context.Context, out chan<- OrderEvent, strategy retry.Strategy) error {
	raw := make(chan []byte)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-raw:
				if !ok {
					return
				}

				evt, err := DecodeOrderEvent(m)
				if err != nil {
					zlog.Logger.Error().Err(err).Msg("failed to decode order event")
					continue
				}

				select {
				case out <- evt:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return q.Consumer.ConsumeWithRetry(raw, strategy)
}

// DecodeOrderEvent parses and checks an order event body.
func DecodeOrderEvent(body []byte) (OrderEvent, error) {
	var evt OrderEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		return OrderEvent{}, fmt.Errorf("unmarshal order event: %w", err)
	}

	if evt.OrderID == uuid.Nil {
		return OrderEvent{}, errors.New("order event without order_id")
	}

	if _, err := ParseEventType(string(evt.Event)); err != nil {
		return OrderEvent{}, err
	}

	return evt, nil
}

// ParseEventType checks that s names a known order transition.
func ParseEventType(s string) (EventType, error) {
	switch t := EventType(s); t {
	case EventCreated, EventUpdated, EventCancelled, EventCompleted, EventDeleted:
		return t, nil
	default:
		return "", fmt.Errorf("unknown order event %q", s)
	}
}
