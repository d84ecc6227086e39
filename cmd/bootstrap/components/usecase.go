package components

import (
	"doctor-booking/internal/pkg/clock"
	"doctor-booking/internal/pkg/config"
	"doctor-booking/internal/usecase"
	"doctor-booking/internal/usecase/commands"
	"doctor-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) commands.BookingConfig {
		return commands.BookingConfig{
			LockTTL:      cfg.Booking.LockTTL,
			SlotCacheTTL: cfg.Booking.SlotCacheTTL,
		}
	},
	func(cfg config.Config) queries.CacheTTLs {
		return queries.CacheTTLs{
			UserAppointments: cfg.Cache.UserAppointmentsTTL,
			DoctorsList:      cfg.Cache.DoctorsListTTL,
			Dashboard:        cfg.Cache.DashboardTTL,
			Profile:          cfg.Cache.ProfileTTL,
			AppointmentList:  cfg.Cache.AppointmentListTTL,
		}
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingUseCase,
		commands.NewAppointmentUseCase,
		commands.NewDoctorUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewAppointmentQueries,
		queries.NewDoctorQueries,
		queries.NewAdminQueries,
		queries.NewUserQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
