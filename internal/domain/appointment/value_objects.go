package appointment

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Slot identifies one bookable unit: a doctor, a date and a time of day.
type Slot struct {
	doctorID uuid.UUID
	date     string
	time     string
}

func NewSlot(doctorID uuid.UUID, date, slotTime string) (Slot, error) {
	date = strings.TrimSpace(date)
	slotTime = strings.TrimSpace(slotTime)
	if doctorID == uuid.Nil || date == "" || slotTime == "" {
		return Slot{}, ErrInvalidSlot
	}
	return Slot{doctorID: doctorID, date: date, time: slotTime}, nil
}

func (s Slot) DoctorID() uuid.UUID { return s.doctorID }
func (s Slot) Date() string        { return s.date }
func (s Slot) Time() string        { return s.time }

func (s Slot) String() string {
	return fmt.Sprintf("%s:%s:%s", s.doctorID, s.date, s.time)
}

// Actor is the authenticated party performing a state change.
type Actor struct {
	ID   uuid.UUID
	Kind ActorKind
}
