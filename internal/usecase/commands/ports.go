package commands

import (
	"context"
	"time"

	"doctor-booking/internal/domain/event"
)

// EventPublisher delivers domain events downstream. It never fails the caller.
type EventPublisher interface {
	Publish(ctx context.Context, ev event.Event)
}

type BookingConfig struct {
	LockTTL      time.Duration
	SlotCacheTTL time.Duration
}
