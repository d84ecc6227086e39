package commands

import (
	"doctor-booking/internal/pkg/errs"
)

var (
	ErrSlotContended      = errs.New("slot is being booked")
	ErrDoctorUnavailable  = errs.New("doctor not available")
	ErrSlotUnavailable    = errs.New("slot not available")
	ErrUnauthorizedAction = errs.New("unauthorized action")
	ErrAlreadyCancelled   = errs.New("appointment already cancelled")
	ErrAppointmentClosed  = errs.New("appointment is cancelled")
	ErrInvalidSlot        = errs.New("invalid slot")
	ErrInvalidProfile     = errs.New("invalid profile change")

	// Error markers for categorization
	ErrPersistFailed = errs.New("failed to persist booking")
	ErrStoreFailed   = errs.New("record store operation failed")
)
