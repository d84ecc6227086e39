package eventbus

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"doctor-booking/internal/domain/event"

	"github.com/sony/gobreaker"
)

var ErrReceiverRejected = errors.New("receiver rejected event")

// HTTPTarget posts events to a receiver's /events endpoint.
// Each target has its own circuit breaker so a dead receiver fails fast
// without slowing delivery to the others.
type HTTPTarget struct {
	name     string
	endpoint string
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker
}

func NewHTTPTarget(name, baseURL string, timeout time.Duration, logger *slog.Logger) *HTTPTarget {
	settings := gobreaker.Settings{
		Name:        "event-target-" + name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("event target breaker changed state",
				"target", name,
				"from", from.String(),
				"to", to.String())
		},
	}
	return &HTTPTarget{
		name:     name,
		endpoint: strings.TrimRight(baseURL, "/") + "/events",
		client:   &http.Client{Timeout: timeout},
		breaker:  gobreaker.NewCircuitBreaker(settings),
	}
}

func (t *HTTPTarget) Name() string {
	return t.name
}

func (t *HTTPTarget) Deliver(ctx context.Context, ev event.Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	_, err = t.breaker.Execute(func() (any, error) {
		return nil, t.post(ctx, body)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("receiver %s unavailable: %w", t.name, err)
	}
	return err
}

func (t *HTTPTarget) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", t.endpoint, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s answered %d", ErrReceiverRejected, t.name, resp.StatusCode)
	}
	return nil
}
