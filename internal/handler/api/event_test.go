//go:build unit

package api_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"doctor-booking/internal/domain/event"
	"doctor-booking/internal/domain/notification"
	"doctor-booking/internal/handler/api"
	resdto "doctor-booking/internal/handler/dto/response"
	"doctor-booking/internal/pkg/errs"
	"doctor-booking/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReceiver struct {
	got     []event.Event
	receipt event.Receipt
	err     error
}

func (r *stubReceiver) Accept(_ context.Context, ev event.Event) (event.Receipt, error) {
	r.got = append(r.got, ev)
	if r.err != nil {
		return event.Receipt{}, r.err
	}
	if err := ev.Validate(); err != nil {
		return event.Receipt{}, errs.Wrap(err, "accept")
	}
	return r.receipt, nil
}

type stubLister struct {
	records []*notification.Record
	limit   int
	err     error
}

func (l *stubLister) DeadLetters(_ context.Context, limit int) ([]*notification.Record, error) {
	l.limit = limit
	return l.records, l.err
}

func TestEventIngest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	setup := func(r *stubReceiver) *gin.Engine {
		router := gin.New()
		router.POST("/events", api.NewEventHandler(r).Ingest)
		return router
	}

	body := map[string]any{
		"eventType": "APPOINTMENT_BOOKED",
		"entityId":  "appt-1",
		"userId":    "user-1",
		"doctorId":  "doc-1",
		"payload":   map[string]any{"userEmail": "jane@example.com", "slotTime": "10:00"},
	}

	t.Run("stored event answers 201 with a receipt", func(t *testing.T) {
		r := &stubReceiver{receipt: event.Receipt{ID: "rec-1", Status: "SENT"}}
		rec := httptest.PerformRequest(t, setup(r), http.MethodPost, "/events", body, "")

		var got resdto.ReceiptResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusCreated, &got)
		assert.True(t, got.Success)
		assert.Equal(t, "rec-1", got.ID)
		assert.Equal(t, "SENT", got.Status)
		require.Len(t, r.got, 1)
		assert.Equal(t, "appt-1", r.got[0].EntityID)
		assert.Equal(t, "jane@example.com", r.got[0].Payload.Text("userEmail"))
	})

	t.Run("missing event type is a client error", func(t *testing.T) {
		r := &stubReceiver{}
		rec := httptest.PerformRequest(t, setup(r), http.MethodPost, "/events", map[string]any{"entityId": "appt-1"}, "")
		httptest.AssertErrorResponse(t, rec, http.StatusBadRequest, "eventType is required")
	})

	t.Run("malformed body", func(t *testing.T) {
		r := &stubReceiver{}
		rec := httptest.PerformRequest(t, setup(r), http.MethodPost, "/events", []int{1, 2}, "")
		httptest.AssertErrorResponse(t, rec, http.StatusBadRequest, "Invalid event body")
		assert.Empty(t, r.got)
	})

	t.Run("store failure is a server error", func(t *testing.T) {
		r := &stubReceiver{err: errors.New("mongo down")}
		rec := httptest.PerformRequest(t, setup(r), http.MethodPost, "/events", body, "")
		httptest.AssertErrorResponse(t, rec, http.StatusInternalServerError, "Failed to store event")
	})
}

func TestOutboxDeadLetters(t *testing.T) {
	gin.SetMode(gin.TestMode)

	setup := func(l *stubLister) *gin.Engine {
		router := gin.New()
		router.GET("/outbox/dead-letters", api.NewOutboxHandler(l).DeadLetters)
		return router
	}

	t.Run("lists records with the default limit", func(t *testing.T) {
		rec1, err := notification.NewRecord(event.Event{Type: event.TypeAppointmentBooked, EntityID: "appt-1"}, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		rec1.RecordRetryFailure(errors.New("smtp timeout"), time.Date(2024, 1, 1, 0, 2, 0, 0, time.UTC))

		l := &stubLister{records: []*notification.Record{rec1}}
		rec := httptest.PerformRequest(t, setup(l), http.MethodGet, "/outbox/dead-letters", nil, "")

		var got resdto.DeadLettersResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &got)
		assert.Equal(t, 50, l.limit)
		require.Len(t, got.Records, 1)
		assert.Equal(t, "appt-1", got.Records[0].EntityID)
		assert.Equal(t, 1, got.Records[0].RetryCount)
		assert.Equal(t, "smtp timeout", got.Records[0].LastError)
	})

	t.Run("explicit limit", func(t *testing.T) {
		l := &stubLister{}
		rec := httptest.PerformRequest(t, setup(l), http.MethodGet, "/outbox/dead-letters?limit=5", nil, "")
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, nil)
		assert.Equal(t, 5, l.limit)
	})

	t.Run("limit out of range", func(t *testing.T) {
		l := &stubLister{}
		rec := httptest.PerformRequest(t, setup(l), http.MethodGet, "/outbox/dead-letters?limit=0", nil, "")
		httptest.AssertErrorResponse(t, rec, http.StatusBadRequest, "Invalid limit")
	})

	t.Run("lister failure", func(t *testing.T) {
		l := &stubLister{err: errors.New("mongo down")}
		rec := httptest.PerformRequest(t, setup(l), http.MethodGet, "/outbox/dead-letters", nil, "")
		httptest.AssertErrorResponse(t, rec, http.StatusInternalServerError, "Failed to list dead letters")
	})
}
