package bootstrap

import (
	"log/slog"

	"doctor-booking/internal/handler/middleware"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		middleware.NewLogger,
		NewSlogLogger,
	),
)

// NewSlogLogger exposes the request logger's handler to the rest of the service.
func NewSlogLogger(l *middleware.Logger) *slog.Logger {
	return l.GetSlogLogger()
}

