//go:build unit

package uow

import (
	"errors"
	"testing"
	"time"

	"doctor-booking/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsRetryableError(t *testing.T) {
	assert.True(t, isRetryableError(&pgconn.PgError{Code: pgErrCodeSerializationFailure}))
	assert.True(t, isRetryableError(errs.Wrap(&pgconn.PgError{Code: pgErrCodeDeadlockDetected}, "commit")))
	assert.False(t, isRetryableError(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isRetryableError(errors.New("boom")))
}

func TestShouldRetry(t *testing.T) {
	retryable := &pgconn.PgError{Code: pgErrCodeSerializationFailure}
	assert.True(t, shouldRetry(retryable, 0, 3))
	assert.False(t, shouldRetry(retryable, 3, 3))
}

func TestCalculateBackoff(t *testing.T) {
	base := 100 * time.Millisecond
	for attempt := range 3 {
		wait := calculateBackoff(attempt, base)
		floor := time.Duration(1<<attempt) * base
		assert.GreaterOrEqual(t, wait, floor)
		assert.Less(t, wait, floor+floor/5+time.Millisecond)
	}
}
