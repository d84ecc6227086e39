package queries

//go:generate mockgen -source=appointment.go -destination=../../../tests/mock/queries/appointment.go -package=queriesmock

import (
	"context"
	"log/slog"

	"doctor-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type AppointmentQueries interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]AppointmentView, error)
}

type appointmentQueriesImpl struct {
	repo   AppointmentReadStore
	cache  shared.Cache
	logger *slog.Logger
	ttls   CacheTTLs
}

func NewAppointmentQueries(repo AppointmentReadStore, cache shared.Cache, logger *slog.Logger, ttls CacheTTLs) AppointmentQueries {
	return &appointmentQueriesImpl{repo: repo, cache: cache, logger: logger, ttls: ttls}
}

func (q *appointmentQueriesImpl) ListForUser(ctx context.Context, userID uuid.UUID) ([]AppointmentView, error) {
	return readThrough(ctx, q.cache, q.logger, shared.UserAppointmentsKey(userID), q.ttls.UserAppointments,
		func(ctx context.Context) ([]AppointmentView, error) {
			list, err := q.repo.ListByUser(ctx, userID)
			if err != nil {
				return nil, err
			}
			return toAppointmentViews(list), nil
		})
}
