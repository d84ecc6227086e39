package response

import (
	"time"

	"doctor-booking/internal/domain/event"
	"doctor-booking/internal/domain/notification"
)

type ReceiptResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Status  string `json:"status"`
}

func FromReceipt(r event.Receipt) ReceiptResponse {
	return ReceiptResponse{Success: true, ID: r.ID, Status: r.Status}
}

type NotificationRecordResponse struct {
	ID         string        `json:"id"`
	EventType  event.Type    `json:"eventType"`
	EntityID   string        `json:"entityId"`
	Payload    event.Payload `json:"payload"`
	Status     string        `json:"status"`
	RetryCount int           `json:"retryCount"`
	LastError  string        `json:"lastError,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

type DeadLettersResponse struct {
	Success bool                         `json:"success"`
	Records []NotificationRecordResponse `json:"records"`
}

func FromDeadLetters(records []*notification.Record) DeadLettersResponse {
	out := DeadLettersResponse{Success: true, Records: make([]NotificationRecordResponse, 0, len(records))}
	for _, r := range records {
		ev := r.Event()
		out.Records = append(out.Records, NotificationRecordResponse{
			ID:         r.ID().String(),
			EventType:  ev.Type,
			EntityID:   ev.EntityID,
			Payload:    ev.Payload,
			Status:     string(r.Status()),
			RetryCount: r.RetryCount(),
			LastError:  r.LastError(),
			CreatedAt:  r.CreatedAt(),
			UpdatedAt:  r.UpdatedAt(),
		})
	}
	return out
}
