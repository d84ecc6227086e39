package queries

//go:generate mockgen -source=admin.go -destination=../../../tests/mock/queries/admin.go -package=queriesmock

import (
	"context"
	"log/slog"

	"doctor-booking/internal/usecase/shared"
)

type AdminQueries interface {
	Dashboard(ctx context.Context) (*AdminDashboard, error)
	Appointments(ctx context.Context) ([]AppointmentView, error)
}

type adminQueriesImpl struct {
	doctors      DoctorReadStore
	users        UserReadStore
	appointments AppointmentReadStore
	cache        shared.Cache
	logger       *slog.Logger
	ttls         CacheTTLs
}

func NewAdminQueries(
	doctors DoctorReadStore,
	users UserReadStore,
	appointments AppointmentReadStore,
	cache shared.Cache,
	logger *slog.Logger,
	ttls CacheTTLs,
) AdminQueries {
	return &adminQueriesImpl{
		doctors:      doctors,
		users:        users,
		appointments: appointments,
		cache:        cache,
		logger:       logger,
		ttls:         ttls,
	}
}

func (q *adminQueriesImpl) Dashboard(ctx context.Context) (*AdminDashboard, error) {
	return readThrough(ctx, q.cache, q.logger, shared.AdminDashboardKey, q.ttls.Dashboard,
		func(ctx context.Context) (*AdminDashboard, error) {
			doctors, err := q.doctors.Count(ctx)
			if err != nil {
				return nil, err
			}
			patients, err := q.users.Count(ctx)
			if err != nil {
				return nil, err
			}
			appointments, err := q.appointments.Count(ctx)
			if err != nil {
				return nil, err
			}
			latest, err := q.appointments.Latest(ctx, latestAppointmentsLimit)
			if err != nil {
				return nil, err
			}
			return &AdminDashboard{
				Doctors:            doctors,
				Appointments:       appointments,
				Patients:           patients,
				LatestAppointments: toAppointmentViews(latest),
			}, nil
		})
}

func (q *adminQueriesImpl) Appointments(ctx context.Context) ([]AppointmentView, error) {
	return readThrough(ctx, q.cache, q.logger, shared.AdminAppointmentsKey, q.ttls.AppointmentList,
		func(ctx context.Context) ([]AppointmentView, error) {
			list, err := q.appointments.ListAll(ctx)
			if err != nil {
				return nil, err
			}
			return toAppointmentViews(list), nil
		})
}
