//go:build unit || integration

package builder

import (
	"time"

	"doctor-booking/internal/domain/appointment"

	"github.com/google/uuid"
)

type AppointmentBuilder struct {
	ID       uuid.UUID
	User     *UserBuilder
	Doctor   *DoctorBuilder
	SlotDate string
	SlotTime string
	BookedAt time.Time
	Flags    appointment.Flags
}

func NewAppointmentBuilder() *AppointmentBuilder {
	return &AppointmentBuilder{
		ID:       uuid.New(),
		User:     NewUserBuilder(),
		Doctor:   NewDoctorBuilder(),
		SlotDate: "2024-01-01",
		SlotTime: "10:00",
		BookedAt: time.Date(2023, 12, 31, 8, 0, 0, 0, time.UTC),
	}
}

func (a *AppointmentBuilder) With(mutate func(*AppointmentBuilder)) *AppointmentBuilder {
	mutate(a)
	return a
}

func (a *AppointmentBuilder) Slot() appointment.Slot {
	slot, err := appointment.NewSlot(a.Doctor.ID, a.SlotDate, a.SlotTime)
	if err != nil {
		panic(err)
	}
	return slot
}

// Build methods
func (a *AppointmentBuilder) BuildDomain() *appointment.Appointment {
	u := a.User.BuildDomain()
	d := a.Doctor.BuildDomain()
	return appointment.Reconstruct(
		a.ID,
		u.ID(),
		a.Slot(),
		u.Snapshot(),
		d.Snapshot(),
		d.Fees(),
		a.BookedAt,
		a.Flags,
	)
}
