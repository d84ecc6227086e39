package bootstrap

import (
	"context"
	"log/slog"

	"doctor-booking/internal/infra/scheduler"
	"doctor-booking/internal/pkg/config"
	"doctor-booking/internal/usecase/notification"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		scheduler.New,
	),
	fx.Invoke(StartRetryWorker),
)

// StartRetryWorker schedules outbox retry sweeps on RETRY_SCHEDULE.
func StartRetryWorker(lc fx.Lifecycle, s *scheduler.Scheduler, worker *notification.RetryWorker, cfg config.NotifierConfig, logger *slog.Logger) error {
	err := s.Add("notification-retry", cfg.Retry.Schedule, func(ctx context.Context) {
		if _, err := worker.Sweep(ctx); err != nil {
			logger.Error("retry sweep failed", "error", err.Error())
		}
	})
	if err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Info("retry worker scheduled", "schedule", cfg.Retry.Schedule, "max_attempts", cfg.Retry.MaxAttempts)
			s.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return s.Stop(ctx)
		},
	})
	return nil
}
