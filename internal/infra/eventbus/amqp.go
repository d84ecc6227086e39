package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"doctor-booking/internal/domain/event"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPTarget publishes events to a topic exchange, routed by event type.
type AMQPTarget struct {
	conn     *amqp.Connection
	mu       sync.Mutex
	ch       *amqp.Channel
	exchange string
}

func NewAMQPTarget(url, exchange string) (*AMQPTarget, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &AMQPTarget{conn: conn, ch: ch, exchange: exchange}, nil
}

func (t *AMQPTarget) Name() string {
	return "amqp:" + t.exchange
}

func (t *AMQPTarget) Deliver(ctx context.Context, ev event.Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ch.PublishWithContext(ctx, t.exchange, ev.Type.String(), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}

func (t *AMQPTarget) Close() error {
	if t.ch != nil {
		_ = t.ch.Close()
	}
	if t.conn != nil {
		return t.conn.Close()
	}
	return nil
}
