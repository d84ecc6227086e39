package api

import (
	"context"
	"net/http"

	"doctor-booking/internal/domain/event"
	"doctor-booking/internal/domain/notification"
	reqdto "doctor-booking/internal/handler/dto/request"
	resdto "doctor-booking/internal/handler/dto/response"
	"doctor-booking/internal/handler/httperr"
	"doctor-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// EventReceiver durably accepts an inbound domain event.
type EventReceiver interface {
	Accept(ctx context.Context, ev event.Event) (event.Receipt, error)
}

type EventHandler struct {
	receiver EventReceiver
}

func NewEventHandler(receiver EventReceiver) *EventHandler {
	return &EventHandler{receiver: receiver}
}

// Ingest answers 201 once the event is stored. Downstream side effects never
// change the response.
func (h *EventHandler) Ingest(c *gin.Context) {
	var ev event.Event
	if err := c.ShouldBindJSON(&ev); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid event body", nil)
		return
	}

	receipt, err := h.receiver.Accept(c.Request.Context(), ev)
	if err != nil {
		if errs.Is(err, event.ErrMissingType) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "eventType is required", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to store event", nil)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromReceipt(receipt))
}

// DeadLetterLister lists outbox records that exhausted their retries.
type DeadLetterLister interface {
	DeadLetters(ctx context.Context, limit int) ([]*notification.Record, error)
}

type OutboxHandler struct {
	lister DeadLetterLister
}

func NewOutboxHandler(lister DeadLetterLister) *OutboxHandler {
	return &OutboxHandler{lister: lister}
}

func (h *OutboxHandler) DeadLetters(c *gin.Context) {
	var q reqdto.DeadLetterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid limit", nil)
		return
	}
	records, err := h.lister.DeadLetters(c.Request.Context(), q.Limit)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list dead letters", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDeadLetters(records))
}
