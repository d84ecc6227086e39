package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"doctor-booking/internal/domain/event"
	"doctor-booking/internal/pkg/config"
	"doctor-booking/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Receiver durably accepts an event. It is the same port the HTTP endpoint uses.
type Receiver interface {
	Accept(ctx context.Context, ev event.Event) (event.Receipt, error)
}

// Consumer feeds events from a queue bound to the events exchange into a
// Receiver. A message is acknowledged only after the receiver stored it.
type Consumer struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	queue  string
	logger *slog.Logger
}

func NewConsumer(cfg config.AMQPConsumerConfig, logger *slog.Logger) (*Consumer, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	setup := func() error {
		if err := ch.Qos(cfg.Prefetch, 0, false); err != nil {
			return fmt.Errorf("set prefetch: %w", err)
		}
		if err := ch.ExchangeDeclare(cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare exchange: %w", err)
		}
		if _, err := ch.QueueDeclare(cfg.Queue, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare queue: %w", err)
		}
		if err := ch.QueueBind(cfg.Queue, "#", cfg.Exchange, false, nil); err != nil {
			return fmt.Errorf("bind queue: %w", err)
		}
		return nil
	}
	if err := setup(); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	return &Consumer{conn: conn, ch: ch, queue: cfg.Queue, logger: logger}, nil
}

// Run consumes until ctx is cancelled or the channel closes.
func (c *Consumer) Run(ctx context.Context, receiver Receiver) error {
	deliveries, err := c.ch.ConsumeWithContext(ctx, c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", c.queue, err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}
			HandleDelivery(ctx, receiver, d, c.logger)
		}
	}
}

func (c *Consumer) Close() error {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// HandleDelivery settles one message. Undecodable or invalid events are
// dropped; a failed store write is requeued.
func HandleDelivery(ctx context.Context, receiver Receiver, d amqp.Delivery, logger *slog.Logger) {
	log := logger.With("message_id", d.MessageId, "routing_key", d.RoutingKey)

	var ev event.Event
	if err := json.Unmarshal(d.Body, &ev); err != nil {
		log.Warn("dropping undecodable event", "error", err.Error())
		settle(log, d.Reject(false))
		return
	}

	receipt, err := receiver.Accept(ctx, ev)
	switch {
	case err == nil:
		log.Info("event consumed", "notification_id", receipt.ID, "status", receipt.Status)
		settle(log, d.Ack(false))
	case errs.Is(err, event.ErrMissingType):
		log.Warn("dropping invalid event", "error", err.Error())
		settle(log, d.Reject(false))
	default:
		log.Error("failed to store event, requeueing", "error", err.Error())
		settle(log, d.Nack(false, true))
	}
}

func settle(log *slog.Logger, err error) {
	if err != nil {
		log.Error("failed to settle message", "error", err.Error())
	}
}
