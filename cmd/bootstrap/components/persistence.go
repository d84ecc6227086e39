package components

import (
	"doctor-booking/internal/infra/db"
	"doctor-booking/internal/infra/repository"
	"doctor-booking/internal/infra/uow"
	"doctor-booking/internal/usecase/audit"
	"doctor-booking/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var baseOption = fx.Provide(
	NewDBTX,
)

// PersistenceModule wires the booking API's record store.
var PersistenceModule = fx.Module("persistence",
	baseOption,
	fx.Provide(
		// UnitOfWork
		uow.NewPostgresUoW,
		// Read side
		fx.Annotate(
			repository.NewAppointmentRepository,
			fx.As(new(queries.AppointmentReadStore)),
		),
		fx.Annotate(
			repository.NewDoctorRepository,
			fx.As(new(queries.DoctorReadStore)),
		),
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(queries.UserReadStore)),
		),
	),
)

// AuditPersistenceModule wires the audit receiver's log table.
var AuditPersistenceModule = fx.Module("persistence/audit",
	baseOption,
	fx.Provide(
		fx.Annotate(
			repository.NewAuditRepository,
			fx.As(new(audit.Repository)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
