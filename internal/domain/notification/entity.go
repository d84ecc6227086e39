package notification

import (
	"errors"
	"time"

	"doctor-booking/internal/domain/event"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus = errors.New("invalid notification status")
	ErrAlreadySent   = errors.New("notification already sent")
)

// Record is an outbox row. It is written before any side effect is attempted.
type Record struct {
	id         uuid.UUID
	event      event.Event
	status     Status
	retryCount int
	lastError  string
	createdAt  time.Time
	updatedAt  time.Time
}

func NewRecord(ev event.Event, now time.Time) (*Record, error) {
	if err := ev.Validate(); err != nil {
		return nil, err
	}
	return &Record{
		id:        uuid.New(),
		event:     ev,
		status:    StatusReceived,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func Reconstruct(
	id uuid.UUID,
	ev event.Event,
	status Status,
	retryCount int,
	lastError string,
	createdAt, updatedAt time.Time,
) (*Record, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	return &Record{
		id:         id,
		event:      ev,
		status:     status,
		retryCount: retryCount,
		lastError:  lastError,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}, nil
}

func (r *Record) ID() uuid.UUID        { return r.id }
func (r *Record) Event() event.Event   { return r.event }
func (r *Record) Status() Status       { return r.status }
func (r *Record) RetryCount() int      { return r.retryCount }
func (r *Record) LastError() string    { return r.lastError }
func (r *Record) CreatedAt() time.Time { return r.createdAt }
func (r *Record) UpdatedAt() time.Time { return r.updatedAt }

func (r *Record) MarkSent(now time.Time) error {
	if r.status == StatusSent {
		return ErrAlreadySent
	}
	r.status = StatusSent
	r.lastError = ""
	r.updatedAt = now
	return nil
}

// MarkFailed records the first failed attempt. The retry count is left untouched.
func (r *Record) MarkFailed(cause error, now time.Time) {
	r.status = StatusFailed
	r.lastError = errorText(cause)
	r.updatedAt = now
}

// RecordRetryFailure counts one more failed retry, leaving the record FAILED.
func (r *Record) RecordRetryFailure(cause error, now time.Time) {
	r.status = StatusFailed
	r.retryCount++
	r.lastError = errorText(cause)
	r.updatedAt = now
}

// Retryable reports whether the retry worker should pick the record up.
func (r *Record) Retryable(maxRetries int) bool {
	return r.status == StatusFailed && r.retryCount < maxRetries
}

// Exhausted reports whether the record reached its terminal dead-letter state.
func (r *Record) Exhausted(maxRetries int) bool {
	return r.status == StatusFailed && r.retryCount >= maxRetries
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
