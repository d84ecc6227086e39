package notification

import (
	"context"
	"log/slog"
	"time"

	"doctor-booking/internal/domain/event"
	"doctor-booking/internal/domain/notification"
	"doctor-booking/internal/pkg/clock"
	"doctor-booking/internal/pkg/errs"
)

var (
	ErrInvalidEvent = errs.New("invalid event")
	ErrOutboxWrite  = errs.New("failed to persist outbox record")
)

const (
	// DefaultSendTimeout bounds one email attempt. The attempt outlives the
	// inbound request so a slow publisher cannot abort it halfway.
	DefaultSendTimeout = 20 * time.Second

	// statusWriteTimeout bounds the outbox write that records an attempt's
	// outcome. It runs on its own context so a send that used up its whole
	// budget still gets its FAILED state stored.
	statusWriteTimeout = 5 * time.Second
)

// Receiver persists every inbound event before attempting its side effect.
type Receiver struct {
	repo        OutboxRepository
	mailer      Mailer
	builders    Builders
	clock       clock.Clock
	logger      *slog.Logger
	sendTimeout time.Duration
}

type ReceiverOption func(*Receiver)

// WithSendTimeout overrides DefaultSendTimeout.
func WithSendTimeout(d time.Duration) ReceiverOption {
	return func(r *Receiver) {
		if d > 0 {
			r.sendTimeout = d
		}
	}
}

func NewReceiver(repo OutboxRepository, mailer Mailer, builders Builders, clk clock.Clock, logger *slog.Logger, opts ...ReceiverOption) *Receiver {
	r := &Receiver{
		repo:        repo,
		mailer:      mailer,
		builders:    builders,
		clock:       clk,
		logger:      logger,
		sendTimeout: DefaultSendTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Ingest writes a RECEIVED record and then attempts the email inline. Only a
// failed outbox write is returned as an error; a failed email leaves the record
// FAILED with retryCount 0 for the retry worker.
func (r *Receiver) Ingest(ctx context.Context, ev event.Event) (*notification.Record, error) {
	rec, err := notification.NewRecord(ev, r.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidEvent)
	}
	if err := r.repo.Insert(ctx, rec); err != nil {
		return nil, errs.Mark(err, ErrOutboxWrite)
	}

	log := r.logger.With(
		"notification_id", rec.ID().String(),
		"event_type", ev.Type.String(),
		"entity_id", ev.EntityID)

	build, ok := r.builders[ev.Type]
	if !ok {
		log.Info("no side effect registered for event type, record kept as RECEIVED")
		return rec, nil
	}

	received := *rec

	sendCtx, cancelSend := context.WithTimeout(context.WithoutCancel(ctx), r.sendTimeout)
	sendErr := deliver(sendCtx, r.mailer, build, ev)
	cancelSend()

	if sendErr != nil {
		rec.MarkFailed(sendErr, r.clock.Now())
		log.Error("notification side effect failed, left for retry", "error", sendErr.Error())
	} else {
		// a fresh record is RECEIVED, so this cannot fail
		_ = rec.MarkSent(r.clock.Now())
	}

	writeCtx, cancelWrite := statusWriteContext(ctx)
	defer cancelWrite()

	updated, err := r.repo.Update(writeCtx, rec, notification.StatusReceived, 0)
	if err != nil {
		log.Error("failed to persist notification status", "status", rec.Status().String(), "error", err.Error())
		return &received, nil
	}
	if !updated {
		log.Warn("notification record changed concurrently, status not persisted", "status", rec.Status().String())
		return &received, nil
	}
	return rec, nil
}

func statusWriteContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), statusWriteTimeout)
}

// Accept is the transport-facing form of Ingest.
func (r *Receiver) Accept(ctx context.Context, ev event.Event) (event.Receipt, error) {
	rec, err := r.Ingest(ctx, ev)
	if err != nil {
		return event.Receipt{}, err
	}
	return event.Receipt{ID: rec.ID().String(), Status: rec.Status().String()}, nil
}

func deliver(ctx context.Context, mailer Mailer, build EmailBuilder, ev event.Event) error {
	email, err := build(ev)
	if err != nil {
		return err
	}
	return mailer.Send(ctx, email)
}
