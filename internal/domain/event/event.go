package event

import (
	"errors"
	"fmt"
	"maps"
	"strconv"
	"strings"

	"doctor-booking/internal/domain/appointment"
)

var ErrMissingType = errors.New("eventType is required")

type Payload map[string]any

// String returns the value under key when it is a non-empty string.
func (p Payload) String(key string) (string, bool) {
	v, ok := p[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

// Text returns the value under key rendered as text, or "" when absent.
func (p Payload) Text(key string) string {
	v, ok := p[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// numbers decoded from JSON land here; avoid exponent notation
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	default:
		return fmt.Sprint(v)
	}
}

// Event is an immutable domain event. It is the body posted to every receiver.
type Event struct {
	Type     Type    `json:"eventType"`
	EntityID string  `json:"entityId"`
	UserID   string  `json:"userId"`
	DoctorID string  `json:"doctorId"`
	Payload  Payload `json:"payload"`
}

func (e Event) Validate() error {
	if strings.TrimSpace(string(e.Type)) == "" {
		return ErrMissingType
	}
	return nil
}

// Recipient is the contact address email side effects are sent to.
func (e Event) Recipient() (string, bool) {
	return e.Payload.String(KeyUserEmail)
}

func newFromAppointment(t Type, a *appointment.Appointment, extra Payload) Event {
	payload := Payload{
		KeyUserEmail:  a.UserData().Email,
		KeyUserName:   a.UserData().Name,
		KeyDoctorName: a.DoctorData().Name,
		KeySlotDate:   a.Slot().Date(),
		KeySlotTime:   a.Slot().Time(),
	}
	maps.Copy(payload, extra)
	return Event{
		Type:     t,
		EntityID: a.ID().String(),
		UserID:   a.UserID().String(),
		DoctorID: a.DoctorID().String(),
		Payload:  payload,
	}
}

func AppointmentBooked(a *appointment.Appointment) Event {
	return newFromAppointment(TypeAppointmentBooked, a, Payload{KeyAmount: a.Amount()})
}

func AppointmentCancelled(a *appointment.Appointment, by appointment.ActorKind) Event {
	return newFromAppointment(TypeAppointmentCancelled, a, Payload{KeyCancelledBy: by.String()})
}

func PaymentSucceeded(a *appointment.Appointment) Event {
	return newFromAppointment(TypePaymentSuccess, a, Payload{KeyAmount: a.Amount()})
}

// Receipt acknowledges that a receiver durably accepted an event.
type Receipt struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
