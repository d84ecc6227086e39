package appointment

import (
	"errors"
	"time"

	"doctor-booking/internal/domain/doctor"
	"doctor-booking/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrInvalidSlot      = errors.New("invalid slot")
	ErrNegativeAmount   = errors.New("amount cannot be negative")
	ErrAlreadyCancelled = errors.New("appointment is already cancelled")
	ErrUnauthorized     = errors.New("actor is not allowed to change this appointment")
	ErrNotPayable       = errors.New("cancelled appointment cannot be paid")
	ErrNotCompletable   = errors.New("cancelled appointment cannot be completed")
)

type Appointment struct {
	id         uuid.UUID
	userID     uuid.UUID
	slot       Slot
	userData   user.Snapshot
	doctorData doctor.Snapshot
	amount     int64
	bookedAt   time.Time
	cancelled  bool
	completed  bool
	payment    bool
}

// NewAppointment builds an appointment with denormalized snapshots of the
// patient and the doctor taken at booking time. The amount is the doctor's fee.
func NewAppointment(u *user.User, d *doctor.Doctor, slot Slot, now time.Time) (*Appointment, error) {
	if slot.DoctorID() != d.ID() {
		return nil, ErrInvalidSlot
	}
	if d.Fees() < 0 {
		return nil, ErrNegativeAmount
	}
	return &Appointment{
		id:         uuid.New(),
		userID:     u.ID(),
		slot:       slot,
		userData:   u.Snapshot(),
		doctorData: d.Snapshot(),
		amount:     d.Fees(),
		bookedAt:   now,
	}, nil
}

type Flags struct {
	Cancelled bool
	Completed bool
	Payment   bool
}

func Reconstruct(
	id, userID uuid.UUID,
	slot Slot,
	userData user.Snapshot,
	doctorData doctor.Snapshot,
	amount int64,
	bookedAt time.Time,
	flags Flags,
) *Appointment {
	return &Appointment{
		id:         id,
		userID:     userID,
		slot:       slot,
		userData:   userData,
		doctorData: doctorData,
		amount:     amount,
		bookedAt:   bookedAt,
		cancelled:  flags.Cancelled,
		completed:  flags.Completed,
		payment:    flags.Payment,
	}
}

func (a *Appointment) ID() uuid.UUID               { return a.id }
func (a *Appointment) UserID() uuid.UUID           { return a.userID }
func (a *Appointment) DoctorID() uuid.UUID         { return a.slot.DoctorID() }
func (a *Appointment) Slot() Slot                  { return a.slot }
func (a *Appointment) UserData() user.Snapshot     { return a.userData }
func (a *Appointment) DoctorData() doctor.Snapshot { return a.doctorData }
func (a *Appointment) Amount() int64               { return a.amount }
func (a *Appointment) BookedAt() time.Time         { return a.bookedAt }
func (a *Appointment) Cancelled() bool             { return a.cancelled }
func (a *Appointment) Completed() bool             { return a.completed }
func (a *Appointment) Paid() bool                  { return a.payment }

func (a *Appointment) Flags() Flags {
	return Flags{Cancelled: a.cancelled, Completed: a.completed, Payment: a.payment}
}

// CanBeChangedBy reports whether actor may cancel the appointment.
// Patients own their appointments, doctors own the appointments booked with them.
func (a *Appointment) CanBeChangedBy(actor Actor) bool {
	switch actor.Kind {
	case ActorAdmin:
		return true
	case ActorUser:
		return actor.ID == a.userID
	case ActorDoctor:
		return actor.ID == a.slot.DoctorID()
	default:
		return false
	}
}

func (a *Appointment) Cancel(actor Actor) error {
	if !a.CanBeChangedBy(actor) {
		return ErrUnauthorized
	}
	if a.cancelled {
		return ErrAlreadyCancelled
	}
	a.cancelled = true
	return nil
}

// MarkPaid flips the payment flag and reports whether it changed.
func (a *Appointment) MarkPaid() (bool, error) {
	if a.cancelled {
		return false, ErrNotPayable
	}
	if a.payment {
		return false, nil
	}
	a.payment = true
	return true, nil
}

// Complete marks the appointment as attended. Only the appointment's doctor may do this.
func (a *Appointment) Complete(doctorID uuid.UUID) (bool, error) {
	if doctorID != a.slot.DoctorID() {
		return false, ErrUnauthorized
	}
	if a.cancelled {
		return false, ErrNotCompletable
	}
	if a.completed {
		return false, nil
	}
	a.completed = true
	return true, nil
}

// Earning reports whether the appointment counts towards the doctor's earnings.
func (a *Appointment) Earning() bool {
	return a.completed || a.payment
}
