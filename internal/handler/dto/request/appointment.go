package request

import (
	"doctor-booking/internal/domain/appointment"
	"doctor-booking/internal/domain/doctor"

	"github.com/google/uuid"
)

type BookAppointmentRequest struct {
	DoctorID uuid.UUID `json:"doctorId" binding:"required"`
	SlotDate string    `json:"slotDate" binding:"required"`
	SlotTime string    `json:"slotTime" binding:"required"`
}

type PaymentCallbackRequest struct {
	AppointmentID uuid.UUID `json:"appointmentId" binding:"required"`
	Status        string    `json:"status" binding:"required"`
}

func (r PaymentCallbackRequest) PaymentStatus() appointment.PaymentStatus {
	return appointment.PaymentStatus(r.Status)
}

type DeadLetterQuery struct {
	Limit int `form:"limit,default=50" binding:"min=1,max=500"`
}

// UpdateDoctorProfileRequest carries the fields a doctor may edit. Omitted fields are kept.
type UpdateDoctorProfileRequest struct {
	Fees      *int64  `json:"fees" binding:"omitempty,min=0"`
	About     *string `json:"about" binding:"omitempty,max=2000"`
	Available *bool   `json:"available"`
}

func (r UpdateDoctorProfileRequest) Change() doctor.ProfileChange {
	return doctor.ProfileChange{Fees: r.Fees, About: r.About, Available: r.Available}
}
