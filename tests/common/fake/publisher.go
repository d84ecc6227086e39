//go:build unit || integration

package fake

import (
	"context"
	"slices"
	"sync"

	"doctor-booking/internal/domain/event"
)

// Publisher records published events.
type Publisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *Publisher) Publish(_ context.Context, ev event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *Publisher) Events() []event.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.events)
}
