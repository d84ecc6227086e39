package queries

import (
	"context"

	"doctor-booking/internal/domain/appointment"
	"doctor-booking/internal/domain/doctor"
	"doctor-booking/internal/domain/user"

	"github.com/google/uuid"
)

type AppointmentReadStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*appointment.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*appointment.Appointment, error)
	ListAll(ctx context.Context) ([]*appointment.Appointment, error)
	Latest(ctx context.Context, limit int) ([]*appointment.Appointment, error)
	Count(ctx context.Context) (int, error)
}

type DoctorReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error)
	List(ctx context.Context) ([]*doctor.Doctor, error)
	Count(ctx context.Context) (int, error)
}

type UserReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	Count(ctx context.Context) (int, error)
}
