package bootstrap

import (
	"context"

	"doctor-booking/internal/infra/outbox"
	"doctor-booking/internal/pkg/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
)

var MongoModule = fx.Module("mongo",
	fx.Provide(
		NewMongo,
		NewOutboxRepository,
	),
)

func NewMongo(lc fx.Lifecycle, cfg config.MongoConfig) (*mongo.Client, error) {
	client, cleanup, err := outbox.Connect(context.Background(), cfg)
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

func NewOutboxRepository(client *mongo.Client, cfg config.MongoConfig) (*outbox.Repository, error) {
	repo := outbox.NewRepository(client, cfg)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()
	if err := repo.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}
