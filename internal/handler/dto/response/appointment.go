package response

import (
	"doctor-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	Success       bool      `json:"success"`
	Message       string    `json:"message"`
	AppointmentID uuid.UUID `json:"appointmentId"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type AppointmentsResponse struct {
	Success      bool                      `json:"success"`
	Appointments []queries.AppointmentView `json:"appointments"`
}

type DoctorsResponse struct {
	Success bool                 `json:"success"`
	Doctors []queries.DoctorView `json:"doctors"`
}

type DoctorProfileResponse struct {
	Success     bool                       `json:"success"`
	ProfileData *queries.DoctorProfileView `json:"profileData"`
}

type UserProfileResponse struct {
	Success  bool                     `json:"success"`
	UserData *queries.UserProfileView `json:"userData"`
}

type AvailabilityResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Available bool   `json:"available"`
}

type PaymentResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Changed bool   `json:"changed"`
}

// DashboardResponse wraps either dashboard view.
type DashboardResponse[T any] struct {
	Success  bool `json:"success"`
	DashData T    `json:"dashData"`
}
