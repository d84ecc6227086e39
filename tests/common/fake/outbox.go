//go:build unit || integration

package fake

import (
	"context"
	"errors"
	"slices"
	"sync"

	"doctor-booking/internal/domain/notification"

	"github.com/google/uuid"
)

var ErrOutboxDown = errors.New("outbox store unavailable")

// Outbox is an in-memory notification outbox with the same conditional update
// semantics as the Mongo repository. Like the driver, it refuses to run on a
// context that is already done.
type Outbox struct {
	mu      sync.Mutex
	records map[uuid.UUID]*notification.Record
	order   []uuid.UUID

	FailInsert bool
	FailUpdate bool
}

func NewOutbox() *Outbox {
	return &Outbox{records: map[uuid.UUID]*notification.Record{}}
}

func clone(rec *notification.Record) *notification.Record {
	c, err := notification.Reconstruct(rec.ID(), rec.Event(), rec.Status(), rec.RetryCount(), rec.LastError(), rec.CreatedAt(), rec.UpdatedAt())
	if err != nil {
		panic(err)
	}
	return c
}

func (o *Outbox) Insert(ctx context.Context, rec *notification.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.FailInsert {
		return ErrOutboxDown
	}
	o.records[rec.ID()] = clone(rec)
	o.order = append(o.order, rec.ID())
	return nil
}

func (o *Outbox) Update(ctx context.Context, rec *notification.Record, prevStatus notification.Status, prevRetryCount int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.FailUpdate {
		return false, ErrOutboxDown
	}
	stored, ok := o.records[rec.ID()]
	if !ok || stored.Status() != prevStatus || stored.RetryCount() != prevRetryCount {
		return false, nil
	}
	o.records[rec.ID()] = clone(rec)
	return true, nil
}

func (o *Outbox) ListRetryable(_ context.Context, maxRetries, limit int) ([]*notification.Record, error) {
	return o.filter(limit, func(r *notification.Record) bool { return r.Retryable(maxRetries) }), nil
}

func (o *Outbox) ListDeadLetters(_ context.Context, maxRetries, limit int) ([]*notification.Record, error) {
	return o.filter(limit, func(r *notification.Record) bool { return r.Exhausted(maxRetries) }), nil
}

// Get returns a copy of the stored record.
func (o *Outbox) Get(id uuid.UUID) (*notification.Record, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	rec, ok := o.records[id]
	if !ok {
		return nil, false
	}
	return clone(rec), true
}

func (o *Outbox) All() []*notification.Record {
	return o.filter(0, func(*notification.Record) bool { return true })
}

func (o *Outbox) filter(limit int, keep func(*notification.Record) bool) []*notification.Record {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := []*notification.Record{}
	for _, id := range o.order {
		rec := o.records[id]
		if keep(rec) {
			out = append(out, clone(rec))
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return slices.Clip(out)
}
