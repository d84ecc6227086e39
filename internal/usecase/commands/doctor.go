package commands

//go:generate mockgen -source=doctor.go -destination=../../../tests/mock/commands/doctor.go -package=commandsmock

import (
	"context"
	"log/slog"

	"doctor-booking/internal/domain/appointment"
	"doctor-booking/internal/domain/doctor"
	"doctor-booking/internal/infra"
	"doctor-booking/internal/pkg/errs"
	"doctor-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type DoctorCommands interface {
	// ChangeAvailability flips the doctor's availability and returns the new value.
	ChangeAvailability(ctx context.Context, doctorID uuid.UUID, actor appointment.Actor) (bool, error)
	// UpdateProfile applies a doctor's edits to their own profile.
	UpdateProfile(ctx context.Context, doctorID uuid.UUID, change doctor.ProfileChange) error
}

type doctorUseCaseImpl struct {
	uow    shared.UnitOfWork
	cache  shared.Cache
	logger *slog.Logger
}

func NewDoctorUseCase(uow shared.UnitOfWork, cache shared.Cache, logger *slog.Logger) DoctorCommands {
	return &doctorUseCaseImpl{uow: uow, cache: cache, logger: logger}
}

func (uc *doctorUseCaseImpl) ChangeAvailability(ctx context.Context, doctorID uuid.UUID, actor appointment.Actor) (bool, error) {
	log := uc.logger.With("doctor_id", doctorID.String(), "actor_kind", actor.Kind.String())

	switch actor.Kind {
	case appointment.ActorAdmin:
	case appointment.ActorDoctor:
		if actor.ID != doctorID {
			return false, ErrUnauthorizedAction
		}
	default:
		return false, ErrUnauthorizedAction
	}

	var available bool
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		doc, err := tx.Doctors().LockByID(ctx, doctorID)
		if err != nil {
			return err
		}
		doc.ToggleAvailability()
		available = doc.Available()
		return tx.Doctors().UpdateAvailability(ctx, doc.ID(), available)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return false, errs.ErrDoctorNotFound
		}
		log.Error("failed to change availability", "error", err.Error())
		return false, errs.Mark(err, ErrPersistFailed)
	}

	invalidate(ctx, uc.cache, log,
		shared.DoctorsListKey,
		shared.DoctorDashboardKey(doctorID),
		shared.DoctorProfileKey(doctorID))

	log.Info("doctor availability changed", "available", available)
	return available, nil
}

func (uc *doctorUseCaseImpl) UpdateProfile(ctx context.Context, doctorID uuid.UUID, change doctor.ProfileChange) error {
	log := uc.logger.With("doctor_id", doctorID.String())

	if change.Empty() {
		return ErrInvalidProfile
	}

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		doc, err := tx.Doctors().LockByID(ctx, doctorID)
		if err != nil {
			return err
		}
		if err := doc.ApplyProfileChange(change); err != nil {
			return errs.Mark(err, ErrInvalidProfile)
		}
		return tx.Doctors().UpdateProfile(ctx, doc)
	})
	switch {
	case err == nil:
	case errs.Is(err, ErrInvalidProfile):
		return err
	case infra.IsKind(err, infra.KindNotFound):
		return errs.ErrDoctorNotFound
	default:
		log.Error("failed to update doctor profile", "error", err.Error())
		return errs.Mark(err, ErrPersistFailed)
	}

	invalidate(ctx, uc.cache, log,
		shared.DoctorsListKey,
		shared.DoctorProfileKey(doctorID))

	log.Info("doctor profile updated")
	return nil
}
