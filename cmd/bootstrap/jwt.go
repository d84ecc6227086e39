package bootstrap

import (
	"fmt"
	"time"

	"doctor-booking/internal/pkg/config"
	"doctor-booking/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

func NewJWTService(cfg config.JWTConfig) (*jwt.Service, error) {
	duration, err := time.ParseDuration(cfg.Duration)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_DURATION: %w", err)
	}
	return jwt.NewService(cfg.Secret, duration), nil
}
