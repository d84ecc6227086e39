//go:build unit || integration

package builder

import (
	"time"

	"doctor-booking/internal/domain/doctor"

	"github.com/google/uuid"
)

type DoctorBuilder struct {
	ID          uuid.UUID
	Name        string
	Email       string
	Speciality  string
	Degree      string
	Fees        int64
	Available   bool
	SlotsBooked doctor.BookedSlots
	CreatedAt   time.Time
}

func NewDoctorBuilder() *DoctorBuilder {
	return &DoctorBuilder{
		ID:          uuid.New(),
		Name:        "Dr. Richard James",
		Email:       "richard@example.com",
		Speciality:  "General physician",
		Degree:      "MBBS",
		Fees:        50,
		Available:   true,
		SlotsBooked: doctor.BookedSlots{},
		CreatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (d *DoctorBuilder) With(mutate func(*DoctorBuilder)) *DoctorBuilder {
	mutate(d)
	return d
}

func (d *DoctorBuilder) Profile() doctor.Profile {
	return doctor.Profile{
		Name:       d.Name,
		Email:      d.Email,
		Speciality: d.Speciality,
		Degree:     d.Degree,
		Fees:       d.Fees,
	}
}

// Build methods
func (d *DoctorBuilder) BuildDomain() *doctor.Doctor {
	return doctor.ReconstructDoctor(d.ID, d.Profile(), d.Available, d.SlotsBooked.Clone(), d.CreatedAt)
}
