package commands

//go:generate mockgen -source=appointment.go -destination=../../../tests/mock/commands/appointment.go -package=commandsmock

import (
	"context"
	"log/slog"

	"doctor-booking/internal/domain/appointment"
	"doctor-booking/internal/domain/event"
	"doctor-booking/internal/infra"
	"doctor-booking/internal/pkg/errs"
	"doctor-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type AppointmentCommands interface {
	CancelAppointment(ctx context.Context, appointmentID uuid.UUID, actor appointment.Actor) error
	CompleteAppointment(ctx context.Context, appointmentID, doctorID uuid.UUID) error
	// ConfirmPayment applies a payment provider callback and reports whether the appointment changed.
	ConfirmPayment(ctx context.Context, appointmentID uuid.UUID, status appointment.PaymentStatus) (bool, error)
}

type appointmentUseCaseImpl struct {
	uow       shared.UnitOfWork
	cache     shared.Cache
	publisher EventPublisher
	logger    *slog.Logger
	cfg       BookingConfig
}

func NewAppointmentUseCase(
	uow shared.UnitOfWork,
	cache shared.Cache,
	publisher EventPublisher,
	logger *slog.Logger,
	cfg BookingConfig,
) AppointmentCommands {
	return &appointmentUseCaseImpl{
		uow:       uow,
		cache:     cache,
		publisher: publisher,
		logger:    logger,
		cfg:       cfg,
	}
}

// CancelAppointment marks the appointment cancelled and returns its slot to the doctor.
func (uc *appointmentUseCaseImpl) CancelAppointment(ctx context.Context, appointmentID uuid.UUID, actor appointment.Actor) error {
	log := uc.logger.With(
		"appointment_id", appointmentID.String(),
		"actor_id", actor.ID.String(),
		"actor_kind", actor.Kind.String())

	var (
		cancelled *appointment.Appointment
		booked    []string
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		appt, err := tx.Appointments().LockByID(ctx, appointmentID)
		if err != nil {
			return err
		}
		if err := appt.Cancel(actor); err != nil {
			return err
		}
		if err := tx.Appointments().UpdateFlags(ctx, appt); err != nil {
			return err
		}

		slot := appt.Slot()
		doc, err := tx.Doctors().LockByID(ctx, slot.DoctorID())
		if err != nil {
			return err
		}
		doc.Release(slot.Date(), slot.Time())
		if err := tx.Doctors().UpdateSlots(ctx, doc.ID(), doc.SlotsBooked()); err != nil {
			return err
		}

		cancelled = appt
		booked = doc.SlotsBooked().On(slot.Date())
		return nil
	})
	if err != nil {
		return uc.mapError(log, "failed to cancel appointment", err)
	}

	slot := cancelled.Slot()
	if err := shared.SetJSON(ctx, uc.cache, shared.SlotsKey(slot.DoctorID(), slot.Date()), booked, uc.cfg.SlotCacheTTL); err != nil {
		log.Warn("failed to refresh slot cache", "error", err.Error())
	}

	uc.publisher.Publish(ctx, event.AppointmentCancelled(cancelled, actor.Kind))

	keys := shared.AppointmentViewKeys(cancelled.UserID(), slot.DoctorID())
	invalidate(ctx, uc.cache, log, append(keys, shared.DoctorsListKey)...)

	log.Info("appointment cancelled")
	return nil
}

// CompleteAppointment marks the appointment as attended. Completing twice is a no-op.
func (uc *appointmentUseCaseImpl) CompleteAppointment(ctx context.Context, appointmentID, doctorID uuid.UUID) error {
	log := uc.logger.With(
		"appointment_id", appointmentID.String(),
		"doctor_id", doctorID.String())

	var completed *appointment.Appointment
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		appt, err := tx.Appointments().LockByID(ctx, appointmentID)
		if err != nil {
			return err
		}
		changed, err := appt.Complete(doctorID)
		if err != nil || !changed {
			return err
		}
		completed = appt
		return tx.Appointments().UpdateFlags(ctx, appt)
	})
	if err != nil {
		return uc.mapError(log, "failed to complete appointment", err)
	}
	if completed == nil {
		return nil
	}

	invalidate(ctx, uc.cache, log, shared.AppointmentViewKeys(completed.UserID(), doctorID)...)

	log.Info("appointment completed")
	return nil
}

func (uc *appointmentUseCaseImpl) ConfirmPayment(ctx context.Context, appointmentID uuid.UUID, status appointment.PaymentStatus) (bool, error) {
	log := uc.logger.With(
		"appointment_id", appointmentID.String(),
		"payment_status", string(status))

	if status != appointment.PaymentPaid {
		log.Info("payment callback without success status ignored")
		return false, nil
	}

	var paid *appointment.Appointment
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		appt, err := tx.Appointments().LockByID(ctx, appointmentID)
		if err != nil {
			return err
		}
		changed, err := appt.MarkPaid()
		if err != nil || !changed {
			return err
		}
		paid = appt
		return tx.Appointments().UpdateFlags(ctx, appt)
	})
	if err != nil {
		return false, uc.mapError(log, "failed to confirm payment", err)
	}
	if paid == nil {
		log.Info("payment already recorded")
		return false, nil
	}

	uc.publisher.Publish(ctx, event.PaymentSucceeded(paid))

	invalidate(ctx, uc.cache, log, shared.AppointmentViewKeys(paid.UserID(), paid.DoctorID())...)

	log.Info("payment confirmed")
	return true, nil
}

func (uc *appointmentUseCaseImpl) mapError(log *slog.Logger, msg string, err error) error {
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return errs.ErrAppointmentNotFound
	case errs.Is(err, appointment.ErrUnauthorized):
		return ErrUnauthorizedAction
	case errs.Is(err, appointment.ErrAlreadyCancelled):
		return ErrAlreadyCancelled
	case errs.Is(err, appointment.ErrNotPayable), errs.Is(err, appointment.ErrNotCompletable):
		return ErrAppointmentClosed
	}
	log.Error(msg, "error", err.Error())
	return errs.Mark(err, ErrPersistFailed)
}
