package events

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"doctor-booking/internal/domain/event"
)

// Target is one downstream receiver of domain events.
type Target interface {
	Name() string
	Deliver(ctx context.Context, ev event.Event) error
}

// Publisher fans an event out to a fixed set of targets. Every target gets
// exactly one best-effort attempt; durability is the receivers' job.
type Publisher struct {
	targets []Target
	timeout time.Duration
	logger  *slog.Logger
}

func NewPublisher(targets []Target, timeout time.Duration, logger *slog.Logger) *Publisher {
	return &Publisher{targets: targets, timeout: timeout, logger: logger}
}

// Publish never fails. Delivery errors are logged per target and do not
// affect the other targets or the caller. The attempt is detached from ctx
// cancellation so a client hanging up does not cut delivery short.
func (p *Publisher) Publish(ctx context.Context, ev event.Event) {
	ctx = context.WithoutCancel(ctx)
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	var wg sync.WaitGroup
	for _, target := range p.targets {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.deliver(ctx, target, ev)
		}()
	}
	wg.Wait()
}

func (p *Publisher) deliver(ctx context.Context, target Target, ev event.Event) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("event target panicked", "target", target.Name(), "panic", r)
		}
	}()

	if err := target.Deliver(ctx, ev); err != nil {
		p.logger.Error("event delivery failed",
			"target", target.Name(),
			"event_type", ev.Type.String(),
			"entity_id", ev.EntityID,
			"error", err.Error())
		return
	}
	p.logger.Debug("event delivered",
		"target", target.Name(),
		"event_type", ev.Type.String(),
		"entity_id", ev.EntityID)
}
