package components

import (
	"context"
	"log/slog"

	"doctor-booking/internal/infra/eventbus"
	"doctor-booking/internal/pkg/config"
	"doctor-booking/internal/usecase/commands"
	"doctor-booking/internal/usecase/events"

	"go.uber.org/fx"
)

var EventsModule = fx.Module("events",
	fx.Provide(
		fx.Annotate(
			NewEventPublisher,
			fx.As(new(commands.EventPublisher)),
		),
	),
)

// NewEventPublisher fans events out to the notification and audit receivers,
// and to the message broker when EVENT_AMQP_URL is set.
func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*events.Publisher, error) {
	ec := cfg.Events
	targets := []events.Target{
		eventbus.NewHTTPTarget("notification", ec.NotificationURL, ec.Timeout, logger),
		eventbus.NewHTTPTarget("audit", ec.AuditURL, ec.Timeout, logger),
	}

	if ec.AMQPURL != "" {
		amqpTarget, err := eventbus.NewAMQPTarget(ec.AMQPURL, ec.AMQPExchange)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				return amqpTarget.Close()
			},
		})
		targets = append(targets, amqpTarget)
	}

	return events.NewPublisher(targets, ec.Timeout, logger), nil
}
