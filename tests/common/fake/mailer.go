//go:build unit || integration

package fake

import (
	"context"
	"errors"
	"sync"

	"doctor-booking/internal/usecase/notification"
)

var ErrSMTPDown = errors.New("smtp: connection refused")

// Mailer records sent emails. FailFirst makes the first N sends fail. Hang
// makes every send block until its context is done, like an SMTP server that
// accepts the connection and never answers.
type Mailer struct {
	mu        sync.Mutex
	Sent      []notification.Email
	Attempts  int
	FailFirst int
	FailAll   bool
	Hang      bool
}

func (m *Mailer) Send(ctx context.Context, email notification.Email) error {
	if m.Hang {
		m.mu.Lock()
		m.Attempts++
		m.mu.Unlock()
		<-ctx.Done()
		return ctx.Err()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Attempts++
	if m.FailAll || m.Attempts <= m.FailFirst {
		return ErrSMTPDown
	}
	m.Sent = append(m.Sent, email)
	return nil
}

func (m *Mailer) SentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}
