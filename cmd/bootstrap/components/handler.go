package components

import (
	"doctor-booking/internal/handler"
	"doctor-booking/internal/handler/api"
	"doctor-booking/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAppointmentHandler,
		api.NewDoctorHandler,
		api.NewAdminHandler,
		api.NewPaymentHandler,
		api.NewUserHandler,
		middleware.NewAuthMiddleware,
		func(
			appointments *api.AppointmentHandler,
			doctors *api.DoctorHandler,
			admin *api.AdminHandler,
			payments *api.PaymentHandler,
			users *api.UserHandler,
		) handler.Handlers {
			return handler.Handlers{
				Appointments: appointments,
				Doctors:      doctors,
				Admin:        admin,
				Payments:     payments,
				Users:        users,
			}
		},
	),
	fx.Invoke(handler.NewRouter),
)
