package bootstrap

import (
	"context"
	"log/slog"

	"doctor-booking/internal/infra/cache"
	"doctor-booking/internal/infra/lock"
	"doctor-booking/internal/pkg/config"
	"doctor-booking/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedis,
		fx.Annotate(
			func(client *redis.Client) *cache.Store { return cache.NewStore(client) },
			fx.As(new(shared.Cache)),
		),
		fx.Annotate(
			func(client *redis.Client, logger *slog.Logger) *lock.SlotLock {
				return lock.NewSlotLock(cache.NewStore(client), logger)
			},
			fx.As(new(shared.SlotLocker)),
		),
	),
)

func NewRedis(lc fx.Lifecycle, cfg config.RedisConfig) (*redis.Client, error) {
	client, cleanup, err := cache.Connect(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	return client, nil
}
