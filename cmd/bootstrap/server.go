package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"doctor-booking/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var ServerModule = fx.Module("server",
	fx.Provide(
		NewEngine,
	),
	fx.Invoke(StartServer),
)

func NewEngine() *gin.Engine {
	return gin.New()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg config.ServerConfig, logger *slog.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			gin.EnableJsonDecoderDisallowUnknownFields()
			logger.Info("starting server", "address", srv.Addr, "mode", gin.Mode())
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("server stopped unexpectedly", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping server")
			return srv.Shutdown(ctx)
		},
	})
}
