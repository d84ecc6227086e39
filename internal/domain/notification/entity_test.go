//go:build unit

package notification_test

import (
	"errors"
	"testing"
	"time"

	"doctor-booking/internal/domain/event"
	"doctor-booking/internal/domain/notification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	t0      = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	booked  = event.Event{Type: event.TypeAppointmentBooked, EntityID: "a1", Payload: event.Payload{event.KeyUserEmail: "jane@example.com"}}
	errSMTP = errors.New("smtp: connection refused")
)

func TestNewRecord(t *testing.T) {
	rec, err := notification.NewRecord(booked, t0)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, rec.ID())
	assert.Equal(t, notification.StatusReceived, rec.Status())
	assert.Equal(t, 0, rec.RetryCount())
	assert.Equal(t, t0, rec.CreatedAt())

	_, err = notification.NewRecord(event.Event{}, t0)
	assert.ErrorIs(t, err, event.ErrMissingType)
}

func TestRecordLifecycle(t *testing.T) {
	rec, err := notification.NewRecord(booked, t0)
	require.NoError(t, err)

	rec.MarkFailed(errSMTP, t0.Add(time.Second))
	assert.Equal(t, notification.StatusFailed, rec.Status())
	assert.Equal(t, 0, rec.RetryCount(), "first failure does not count as a retry")
	assert.Equal(t, errSMTP.Error(), rec.LastError())
	assert.True(t, rec.Retryable(notification.DefaultMaxRetries))

	for i := 1; i <= notification.DefaultMaxRetries; i++ {
		rec.RecordRetryFailure(errSMTP, t0.Add(time.Duration(i)*time.Minute))
		assert.Equal(t, i, rec.RetryCount())
	}
	assert.False(t, rec.Retryable(notification.DefaultMaxRetries))
	assert.True(t, rec.Exhausted(notification.DefaultMaxRetries))
	assert.Equal(t, notification.StatusFailed, rec.Status())
}

func TestRecordMarkSent(t *testing.T) {
	rec, err := notification.NewRecord(booked, t0)
	require.NoError(t, err)
	rec.MarkFailed(errSMTP, t0)

	require.NoError(t, rec.MarkSent(t0.Add(time.Minute)))
	assert.Equal(t, notification.StatusSent, rec.Status())
	assert.Empty(t, rec.LastError())
	assert.False(t, rec.Retryable(notification.DefaultMaxRetries))
	assert.False(t, rec.Exhausted(notification.DefaultMaxRetries))

	assert.ErrorIs(t, rec.MarkSent(t0), notification.ErrAlreadySent)
}

func TestReconstructRejectsUnknownStatus(t *testing.T) {
	_, err := notification.Reconstruct(uuid.New(), booked, "PENDING", 0, "", t0, t0)
	assert.ErrorIs(t, err, notification.ErrInvalidStatus)
}
