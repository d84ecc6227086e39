package shared

import (
	"context"

	"doctor-booking/internal/domain/appointment"
	"doctor-booking/internal/domain/doctor"
	"doctor-booking/internal/domain/user"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Appointments() AppointmentRepository
	Doctors() DoctorRepository
	Reads() CommandReads
}

type CommandReads interface {
	DoctorByID(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error)
	UserByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	AppointmentByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error)
}

type DoctorRepository interface {
	// LockByID reads the doctor row and holds a row lock until the transaction ends.
	LockByID(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error)
	UpdateSlots(ctx context.Context, id uuid.UUID, slots doctor.BookedSlots) error
	UpdateAvailability(ctx context.Context, id uuid.UUID, available bool) error
	UpdateProfile(ctx context.Context, d *doctor.Doctor) error
}

type AppointmentRepository interface {
	Create(ctx context.Context, appt *appointment.Appointment) error
	LockByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error)
	UpdateFlags(ctx context.Context, appt *appointment.Appointment) error
}
