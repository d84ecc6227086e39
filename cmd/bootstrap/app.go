package bootstrap

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

func init() {
	// Never expose debug output because of a missing env var.
	gin.SetMode(gin.ReleaseMode)

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}
}

// Run starts a service built from opts and blocks until it receives a
// shutdown signal.
func Run(name string, opts ...fx.Option) {
	app := fx.New(opts...)

	if err := app.Start(context.Background()); err != nil {
		slog.Error("failed to start application", "service", name, "error", err)
		os.Exit(1)
	}

	<-app.Done()

	if err := app.Stop(context.Background()); err != nil {
		slog.Error("failed to stop application", "service", name, "error", err)
	}

	slog.Info("application stopped", "service", name)
}
