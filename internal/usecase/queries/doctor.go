package queries

//go:generate mockgen -source=doctor.go -destination=../../../tests/mock/queries/doctor.go -package=queriesmock

import (
	"context"
	"log/slog"

	"doctor-booking/internal/infra"
	"doctor-booking/internal/pkg/errs"
	"doctor-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const latestAppointmentsLimit = 5

type DoctorQueries interface {
	List(ctx context.Context) ([]DoctorView, error)
	Profile(ctx context.Context, doctorID uuid.UUID) (*DoctorProfileView, error)
	// Appointments lists every appointment booked with the doctor, newest first.
	Appointments(ctx context.Context, doctorID uuid.UUID) ([]AppointmentView, error)
	Dashboard(ctx context.Context, doctorID uuid.UUID) (*DoctorDashboard, error)
}

type doctorQueriesImpl struct {
	doctors      DoctorReadStore
	appointments AppointmentReadStore
	cache        shared.Cache
	logger       *slog.Logger
	ttls         CacheTTLs
}

func NewDoctorQueries(
	doctors DoctorReadStore,
	appointments AppointmentReadStore,
	cache shared.Cache,
	logger *slog.Logger,
	ttls CacheTTLs,
) DoctorQueries {
	return &doctorQueriesImpl{
		doctors:      doctors,
		appointments: appointments,
		cache:        cache,
		logger:       logger,
		ttls:         ttls,
	}
}

func (q *doctorQueriesImpl) List(ctx context.Context) ([]DoctorView, error) {
	return readThrough(ctx, q.cache, q.logger, shared.DoctorsListKey, q.ttls.DoctorsList,
		func(ctx context.Context) ([]DoctorView, error) {
			list, err := q.doctors.List(ctx)
			if err != nil {
				return nil, err
			}
			out := make([]DoctorView, 0, len(list))
			for _, d := range list {
				out = append(out, toDoctorView(d))
			}
			return out, nil
		})
}

func (q *doctorQueriesImpl) Profile(ctx context.Context, doctorID uuid.UUID) (*DoctorProfileView, error) {
	return readThrough(ctx, q.cache, q.logger, shared.DoctorProfileKey(doctorID), q.ttls.Profile,
		func(ctx context.Context) (*DoctorProfileView, error) {
			d, err := q.doctors.FindByID(ctx, doctorID)
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, errs.ErrDoctorNotFound
			}
			if err != nil {
				return nil, err
			}
			v := toDoctorProfileView(d)
			return &v, nil
		})
}

func (q *doctorQueriesImpl) Appointments(ctx context.Context, doctorID uuid.UUID) ([]AppointmentView, error) {
	return readThrough(ctx, q.cache, q.logger, shared.DoctorAppointmentsKey(doctorID), q.ttls.AppointmentList,
		func(ctx context.Context) ([]AppointmentView, error) {
			list, err := q.appointments.ListByDoctor(ctx, doctorID)
			if err != nil {
				return nil, err
			}
			return toAppointmentViews(list), nil
		})
}

// Dashboard summarizes a doctor's appointments. Earnings count appointments
// that were completed or paid.
func (q *doctorQueriesImpl) Dashboard(ctx context.Context, doctorID uuid.UUID) (*DoctorDashboard, error) {
	return readThrough(ctx, q.cache, q.logger, shared.DoctorDashboardKey(doctorID), q.ttls.Dashboard,
		func(ctx context.Context) (*DoctorDashboard, error) {
			list, err := q.appointments.ListByDoctor(ctx, doctorID)
			if err != nil {
				return nil, err
			}

			dash := &DoctorDashboard{Appointments: len(list)}
			patients := make(map[uuid.UUID]struct{})
			for _, a := range list {
				if a.Earning() {
					dash.Earnings += a.Amount()
				}
				patients[a.UserID()] = struct{}{}
			}
			dash.Patients = len(patients)

			latest := list
			if len(latest) > latestAppointmentsLimit {
				latest = latest[:latestAppointmentsLimit]
			}
			dash.LatestAppointments = toAppointmentViews(latest)
			return dash, nil
		})
}
