package notification

import (
	"context"

	"doctor-booking/internal/domain/notification"
)

type Email struct {
	To       string
	Subject  string
	HTMLBody string
}

type Mailer interface {
	Send(ctx context.Context, email Email) error
}

type OutboxRepository interface {
	Insert(ctx context.Context, rec *notification.Record) error
	// Update applies rec's state only if the stored row still matches prevStatus and prevRetryCount.
	Update(ctx context.Context, rec *notification.Record, prevStatus notification.Status, prevRetryCount int) (bool, error)
	ListRetryable(ctx context.Context, maxRetries, limit int) ([]*notification.Record, error)
	ListDeadLetters(ctx context.Context, maxRetries, limit int) ([]*notification.Record, error)
}
