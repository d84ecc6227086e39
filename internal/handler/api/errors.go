package api

import (
	"net/http"

	"doctor-booking/internal/pkg/errs"
	"doctor-booking/internal/usecase/commands"
)

type errorMapping struct {
	target  error
	status  int
	message string
}

var appointmentErrors = []errorMapping{
	{commands.ErrSlotContended, http.StatusConflict, "Slot is being booked, please try again"},
	{commands.ErrDoctorUnavailable, http.StatusConflict, "Doctor not Available"},
	{commands.ErrSlotUnavailable, http.StatusConflict, "Slot not Available"},
	{commands.ErrUnauthorizedAction, http.StatusForbidden, "Unauthorized Action"},
	{commands.ErrAlreadyCancelled, http.StatusConflict, "Appointment already cancelled"},
	{commands.ErrAppointmentClosed, http.StatusConflict, "Appointment is cancelled"},
	{commands.ErrInvalidSlot, http.StatusBadRequest, "Invalid slot"},
	{commands.ErrInvalidProfile, http.StatusBadRequest, "Invalid profile data"},
	{errs.ErrDoctorNotFound, http.StatusNotFound, "Doctor not found"},
	{errs.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{errs.ErrAppointmentNotFound, http.StatusNotFound, "Appointment not found"},
}

// mapCommandError translates a command failure into a status and a message
// safe to show to the caller.
func mapCommandError(err error) (int, string) {
	for _, m := range appointmentErrors {
		if errs.Is(err, m.target) {
			return m.status, m.message
		}
	}
	return http.StatusInternalServerError, "Internal server error"
}

// mapQueryError keeps a missing record apart from a failed read.
func mapQueryError(err error, fallback string) (int, string) {
	switch {
	case errs.Is(err, errs.ErrDoctorNotFound):
		return http.StatusNotFound, "Doctor not found"
	case errs.Is(err, errs.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	}
	return http.StatusInternalServerError, fallback
}
