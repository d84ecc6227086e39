package components

import (
	"context"
	"log/slog"

	"doctor-booking/internal/handler"
	"doctor-booking/internal/handler/api"
	"doctor-booking/internal/infra/eventbus"
	"doctor-booking/internal/infra/mailer"
	"doctor-booking/internal/infra/outbox"
	"doctor-booking/internal/pkg/clock"
	"doctor-booking/internal/pkg/config"
	"doctor-booking/internal/usecase/notification"

	"go.uber.org/fx"
)

var NotifierModule = fx.Module("notifier",
	fx.Provide(
		clock.NewRealClock,
		notification.DefaultBuilders,
		fx.Annotate(
			mailer.NewSMTPMailer,
			fx.As(new(notification.Mailer)),
		),
		func(repo *outbox.Repository) notification.OutboxRepository { return repo },
		func(repo notification.OutboxRepository, m notification.Mailer, b notification.Builders, clk clock.Clock, logger *slog.Logger, cfg config.NotifierConfig) *notification.Receiver {
			return notification.NewReceiver(repo, m, b, clk, logger, notification.WithSendTimeout(cfg.SMTP.SendTimeout))
		},
		func(cfg config.NotifierConfig) notification.RetryWorkerConfig {
			return notification.RetryWorkerConfig{
				MaxRetries:  cfg.Retry.MaxAttempts,
				BatchSize:   cfg.Retry.BatchSize,
				SendTimeout: cfg.SMTP.SendTimeout,
			}
		},
		notification.NewRetryWorker,
		func(r *notification.Receiver) *api.EventHandler { return api.NewEventHandler(r) },
		func(w *notification.RetryWorker) *api.OutboxHandler { return api.NewOutboxHandler(w) },
	),
	fx.Invoke(
		handler.NewNotifierRouter,
		StartConsumer,
	),
)

// StartConsumer ingests events from the broker when EVENT_AMQP_URL is set.
func StartConsumer(lc fx.Lifecycle, cfg config.NotifierConfig, receiver *notification.Receiver, logger *slog.Logger) {
	if cfg.AMQP.URL == "" {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	var consumer *eventbus.Consumer

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			c, err := eventbus.NewConsumer(cfg.AMQP, logger)
			if err != nil {
				cancel()
				return err
			}
			consumer = c
			go func() {
				defer close(done)
				if err := consumer.Run(ctx, receiver); err != nil {
					logger.Error("event consumer stopped", "error", err.Error())
				}
			}()
			logger.Info("event consumer started", "queue", cfg.AMQP.Queue)
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return consumer.Close()
		},
	})
}
