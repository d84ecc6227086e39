package bootstrap

import (
	"doctor-booking/internal/pkg/config"

	"go.uber.org/fx"
)

// Each service loads its own configuration and exposes the sections shared
// infrastructure providers depend on.

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(c config.Config) config.ServerConfig { return c.Server },
		func(c config.Config) config.DBConfig { return c.DB },
		func(c config.Config) config.RedisConfig { return c.Redis },
		func(c config.Config) config.LogConfig { return c.Log },
		func(c config.Config) config.JWTConfig { return c.JWT },
	),
)

var NotifierConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadNotifierConfig,
		func(c config.NotifierConfig) config.ServerConfig { return c.Server },
		func(c config.NotifierConfig) config.MongoConfig { return c.Mongo },
		func(c config.NotifierConfig) config.SMTPConfig { return c.SMTP },
		func(c config.NotifierConfig) config.LogConfig { return c.Log },
	),
)

var AuditConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadAuditConfig,
		func(c config.AuditConfig) config.ServerConfig { return c.Server },
		func(c config.AuditConfig) config.DBConfig { return c.DB },
		func(c config.AuditConfig) config.LogConfig { return c.Log },
	),
)
