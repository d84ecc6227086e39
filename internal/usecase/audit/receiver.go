package audit

import (
	"context"
	"log/slog"
	"time"

	"doctor-booking/internal/domain/event"
	"doctor-booking/internal/pkg/clock"
	"doctor-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidEvent = errs.New("invalid event")
	ErrAuditWrite   = errs.New("failed to write audit log")
)

const StatusRecorded = "RECORDED"

type Repository interface {
	Insert(ctx context.Context, ev event.Event, at time.Time) (uuid.UUID, error)
}

// Receiver appends every inbound event to the audit log. Recording is its only side effect.
type Receiver struct {
	repo   Repository
	clock  clock.Clock
	logger *slog.Logger
}

func NewReceiver(repo Repository, clk clock.Clock, logger *slog.Logger) *Receiver {
	return &Receiver{repo: repo, clock: clk, logger: logger}
}

func (r *Receiver) Accept(ctx context.Context, ev event.Event) (event.Receipt, error) {
	if err := ev.Validate(); err != nil {
		return event.Receipt{}, errs.Mark(err, ErrInvalidEvent)
	}

	id, err := r.repo.Insert(ctx, ev, r.clock.Now())
	if err != nil {
		r.logger.Error("failed to record audit event",
			"event_type", ev.Type.String(),
			"entity_id", ev.EntityID,
			"error", err.Error())
		return event.Receipt{}, errs.Mark(err, ErrAuditWrite)
	}

	r.logger.Info("audit event recorded",
		"audit_id", id.String(),
		"event_type", ev.Type.String(),
		"entity_id", ev.EntityID)
	return event.Receipt{ID: id.String(), Status: StatusRecorded}, nil
}
