package commands

//go:generate mockgen -source=booking.go -destination=../../../tests/mock/commands/booking.go -package=commandsmock

import (
	"context"
	"log/slog"
	"slices"

	"doctor-booking/internal/domain/appointment"
	"doctor-booking/internal/domain/doctor"
	"doctor-booking/internal/domain/event"
	"doctor-booking/internal/infra"
	"doctor-booking/internal/pkg/clock"
	"doctor-booking/internal/pkg/errs"
	"doctor-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingCommands interface {
	BookSlot(ctx context.Context, userID, doctorID uuid.UUID, date, slotTime string) (uuid.UUID, error)
}

type bookingUseCaseImpl struct {
	uow       shared.UnitOfWork
	cache     shared.Cache
	locker    shared.SlotLocker
	publisher EventPublisher
	clock     clock.Clock
	logger    *slog.Logger
	cfg       BookingConfig
}

func NewBookingUseCase(
	uow shared.UnitOfWork,
	cache shared.Cache,
	locker shared.SlotLocker,
	publisher EventPublisher,
	clk clock.Clock,
	logger *slog.Logger,
	cfg BookingConfig,
) BookingCommands {
	return &bookingUseCaseImpl{
		uow:       uow,
		cache:     cache,
		locker:    locker,
		publisher: publisher,
		clock:     clk,
		logger:    logger,
		cfg:       cfg,
	}
}

// BookSlot books one slot for a patient. The slot lock is held from admission
// until return on every path. The doctor's stored booked-slot list is the only
// source of truth for availability; the slot cache is advisory.
func (uc *bookingUseCaseImpl) BookSlot(ctx context.Context, userID, doctorID uuid.UUID, date, slotTime string) (uuid.UUID, error) {
	slot, err := appointment.NewSlot(doctorID, date, slotTime)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidSlot)
	}
	log := uc.logger.With(
		"user_id", userID.String(),
		"doctor_id", doctorID.String(),
		"slot_date", slot.Date(),
		"slot_time", slot.Time())

	if !uc.locker.Acquire(ctx, slot, uc.cfg.LockTTL) {
		log.Info("slot contended")
		return uuid.Nil, ErrSlotContended
	}
	defer uc.locker.Release(ctx, slot)

	reads := uc.uow.CommandReads()

	doc, err := reads.DoctorByID(ctx, doctorID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return uuid.Nil, errs.ErrDoctorNotFound
		}
		log.Error("failed to load doctor", "error", err.Error())
		return uuid.Nil, errs.Mark(err, ErrPersistFailed)
	}
	if !doc.Available() {
		return uuid.Nil, ErrDoctorUnavailable
	}

	uc.reconcileSlotCache(ctx, log, slot, doc)
	if err := doc.Reserve(slot.Date(), slot.Time()); err != nil {
		return uuid.Nil, ErrSlotUnavailable
	}

	patient, err := reads.UserByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return uuid.Nil, errs.ErrUserNotFound
		}
		log.Error("failed to load user", "error", err.Error())
		return uuid.Nil, errs.Mark(err, ErrPersistFailed)
	}

	appt, err := appointment.NewAppointment(patient, doc, slot, uc.clock.Now())
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidSlot)
	}

	booked, err := uc.persist(ctx, appt)
	if err != nil {
		if errs.Is(err, ErrSlotUnavailable) {
			log.Warn("slot taken between validation and commit")
			return uuid.Nil, ErrSlotUnavailable
		}
		log.Error("failed to persist booking", "error", err.Error())
		return uuid.Nil, errs.Mark(err, ErrPersistFailed)
	}

	if err := shared.SetJSON(ctx, uc.cache, shared.SlotsKey(doctorID, slot.Date()), booked, uc.cfg.SlotCacheTTL); err != nil {
		log.Warn("failed to refresh slot cache", "error", err.Error())
	}

	uc.publisher.Publish(ctx, event.AppointmentBooked(appt))

	keys := shared.AppointmentViewKeys(userID, doctorID)
	invalidate(ctx, uc.cache, log, append(keys, shared.DoctorsListKey)...)

	log.Info("appointment booked", "appointment_id", appt.ID().String())
	return appt.ID(), nil
}

// persist writes the appointment and the doctor's updated slot list in one
// transaction and returns the committed list for the slot's date. The doctor
// row is re-read under a row lock so bookings of other slots on the same date
// cannot overwrite each other's list.
func (uc *bookingUseCaseImpl) persist(ctx context.Context, appt *appointment.Appointment) ([]string, error) {
	slot := appt.Slot()
	var booked []string

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		locked, err := tx.Doctors().LockByID(ctx, slot.DoctorID())
		if err != nil {
			return err
		}
		if err := locked.Reserve(slot.Date(), slot.Time()); err != nil {
			return ErrSlotUnavailable
		}

		if err := tx.Appointments().Create(ctx, appt); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrSlotUnavailable
			}
			return err
		}
		if err := tx.Doctors().UpdateSlots(ctx, locked.ID(), locked.SlotsBooked()); err != nil {
			return err
		}
		booked = locked.SlotsBooked().On(slot.Date())
		return nil
	})
	return booked, err
}

// reconcileSlotCache compares the cached booked list with the stored one. The
// cached value never decides anything; divergence is only logged.
func (uc *bookingUseCaseImpl) reconcileSlotCache(ctx context.Context, log *slog.Logger, slot appointment.Slot, doc *doctor.Doctor) {
	var cached []string
	hit, err := shared.GetJSON(ctx, uc.cache, shared.SlotsKey(slot.DoctorID(), slot.Date()), &cached)
	if err != nil {
		log.Warn("slot cache unavailable, using record store only", "error", err.Error())
		return
	}
	if !hit {
		return
	}
	stored := doc.SlotsBooked().On(slot.Date())
	if !sameTimes(cached, stored) {
		log.Warn("slot cache diverged from record store",
			"cached", cached,
			"stored", stored)
	}
}

func sameTimes(a, b []string) bool {
	a, b = slices.Clone(a), slices.Clone(b)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}

func invalidate(ctx context.Context, cache shared.Cache, log *slog.Logger, keys ...string) {
	if err := cache.Del(ctx, keys...); err != nil {
		log.Warn("failed to invalidate cache", "keys", keys, "error", err.Error())
	}
}
