package bootstrap

import (
	"doctor-booking/cmd/bootstrap/components"

	"go.uber.org/fx"
)

// Module is the booking API.
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	RedisModule,
	JWTModule,
	components.PersistenceModule,
	components.EventsModule,
	components.UseCaseModule,
	components.HandlerModule,
	ServerModule,
)

// NotifierModule is the notification receiver with its retry worker.
var NotifierModule = fx.Options(
	NotifierConfigModule,
	LoggerModule,
	MongoModule,
	components.NotifierModule,
	WorkerModule,
	ServerModule,
)

// AuditModule is the audit receiver.
var AuditModule = fx.Options(
	AuditConfigModule,
	LoggerModule,
	DBModule,
	components.AuditModule,
	ServerModule,
)
