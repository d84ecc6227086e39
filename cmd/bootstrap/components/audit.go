package components

import (
	"doctor-booking/internal/handler"
	"doctor-booking/internal/handler/api"
	"doctor-booking/internal/pkg/clock"
	"doctor-booking/internal/usecase/audit"

	"go.uber.org/fx"
)

var AuditModule = fx.Module("audit",
	AuditPersistenceModule,
	fx.Provide(
		clock.NewRealClock,
		audit.NewReceiver,
		func(r *audit.Receiver) *api.EventHandler { return api.NewEventHandler(r) },
	),
	fx.Invoke(handler.NewAuditRouter),
)
