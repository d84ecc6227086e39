package notification

import (
	"context"
	"log/slog"
	"time"

	"doctor-booking/internal/domain/notification"
	"doctor-booking/internal/pkg/clock"
	"doctor-booking/internal/pkg/errs"
)

var ErrSweepQuery = errs.New("failed to select retryable notifications")

type SweepResult struct {
	Selected int
	Sent     int
	Failed   int
	Skipped  int
	// DeadLettered counts records that used their last retry in this sweep.
	DeadLettered int
}

type RetryWorkerConfig struct {
	MaxRetries  int
	BatchSize   int
	SendTimeout time.Duration
}

// RetryWorker re-attempts FAILED outbox records until they are SENT or out of retries.
type RetryWorker struct {
	repo     OutboxRepository
	mailer   Mailer
	builders Builders
	clock    clock.Clock
	logger   *slog.Logger
	cfg      RetryWorkerConfig
}

func NewRetryWorker(repo OutboxRepository, mailer Mailer, builders Builders, clk clock.Clock, logger *slog.Logger, cfg RetryWorkerConfig) *RetryWorker {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = notification.DefaultMaxRetries
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = DefaultSendTimeout
	}
	return &RetryWorker{
		repo:     repo,
		mailer:   mailer,
		builders: builders,
		clock:    clk,
		logger:   logger,
		cfg:      cfg,
	}
}

// Sweep runs one retry pass. A failure on one record never stops the pass.
// Records already SENT or exhausted are never selected.
func (w *RetryWorker) Sweep(ctx context.Context) (SweepResult, error) {
	var result SweepResult

	records, err := w.repo.ListRetryable(ctx, w.cfg.MaxRetries, w.cfg.BatchSize)
	if err != nil {
		return result, errs.Mark(err, ErrSweepQuery)
	}
	result.Selected = len(records)

	for _, rec := range records {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		w.retry(ctx, rec, &result)
	}

	if result.Selected > 0 {
		w.logger.Info("notification retry sweep finished",
			"selected", result.Selected,
			"sent", result.Sent,
			"failed", result.Failed,
			"skipped", result.Skipped,
			"dead_lettered", result.DeadLettered)
	}
	return result, nil
}

func (w *RetryWorker) retry(ctx context.Context, rec *notification.Record, result *SweepResult) {
	ev := rec.Event()
	log := w.logger.With(
		"notification_id", rec.ID().String(),
		"event_type", ev.Type.String(),
		"retry_count", rec.RetryCount())

	build, ok := w.builders[ev.Type]
	if !ok {
		result.Skipped++
		log.Warn("no side effect registered for failed record, skipping")
		return
	}

	prevStatus, prevRetryCount := rec.Status(), rec.RetryCount()

	sendCtx, cancel := context.WithTimeout(ctx, w.cfg.SendTimeout)
	sendErr := deliver(sendCtx, w.mailer, build, ev)
	cancel()

	if sendErr != nil {
		rec.RecordRetryFailure(sendErr, w.clock.Now())
		if !w.persist(ctx, log, rec, prevStatus, prevRetryCount) {
			return
		}
		result.Failed++
		if rec.Exhausted(w.cfg.MaxRetries) {
			result.DeadLettered++
			log.Error("notification exhausted its retries", "error", sendErr.Error())
			return
		}
		log.Warn("notification retry failed", "error", sendErr.Error())
		return
	}

	if err := rec.MarkSent(w.clock.Now()); err != nil {
		result.Skipped++
		return
	}
	if w.persist(ctx, log, rec, prevStatus, prevRetryCount) {
		result.Sent++
	}
}

func (w *RetryWorker) persist(ctx context.Context, log *slog.Logger, rec *notification.Record, prevStatus notification.Status, prevRetryCount int) bool {
	writeCtx, cancel := statusWriteContext(ctx)
	defer cancel()

	updated, err := w.repo.Update(writeCtx, rec, prevStatus, prevRetryCount)
	if err != nil {
		log.Error("failed to persist retry outcome", "status", rec.Status().String(), "error", err.Error())
		return false
	}
	if !updated {
		log.Warn("record changed by a concurrent sweep, outcome dropped")
		return false
	}
	return true
}

// DeadLetters lists records that stay FAILED for good.
func (w *RetryWorker) DeadLetters(ctx context.Context, limit int) ([]*notification.Record, error) {
	records, err := w.repo.ListDeadLetters(ctx, w.cfg.MaxRetries, limit)
	if err != nil {
		return nil, errs.Mark(err, ErrSweepQuery)
	}
	return records, nil
}
