package lock

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"doctor-booking/internal/domain/appointment"
)

const lockValue = "locked"

// releaseTimeout bounds the delete issued on the way out of a critical section.
const releaseTimeout = 2 * time.Second

type store interface {
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
}

// SlotLock is a TTL-bounded mutual-exclusion lock per (doctor, date, time).
// The TTL must exceed the longest expected critical section; a holder that
// overruns it can be overtaken by a second caller.
type SlotLock struct {
	store  store
	logger *slog.Logger
}

func NewSlotLock(store store, logger *slog.Logger) *SlotLock {
	return &SlotLock{store: store, logger: logger}
}

func Key(slot appointment.Slot) string {
	return fmt.Sprintf("lock:%s:%s:%s", slot.DoctorID(), slot.Date(), slot.Time())
}

// Acquire fails closed: an unreachable cache means the lock is not held.
func (l *SlotLock) Acquire(ctx context.Context, slot appointment.Slot, ttl time.Duration) bool {
	ok, err := l.store.SetNX(ctx, Key(slot), lockValue, ttl)
	if err != nil {
		l.logger.Error("slot lock acquire failed, rejecting booking",
			"doctor_id", slot.DoctorID().String(),
			"slot_date", slot.Date(),
			"slot_time", slot.Time(),
			"error", err.Error())
		return false
	}
	return ok
}

// Release deletes the lock key unconditionally. It runs even when ctx is already cancelled.
func (l *SlotLock) Release(ctx context.Context, slot appointment.Slot) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
	defer cancel()

	if err := l.store.Del(ctx, Key(slot)); err != nil {
		l.logger.Warn("slot lock release failed, key will expire with its ttl",
			"doctor_id", slot.DoctorID().String(),
			"slot_date", slot.Date(),
			"slot_time", slot.Time(),
			"error", err.Error())
	}
}
