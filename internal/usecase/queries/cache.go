package queries

import (
	"context"
	"log/slog"
	"time"

	"doctor-booking/internal/usecase/shared"
)

// readThrough serves key from the cache, loading and storing it on a miss.
// Cache failures bypass the cache and never fail the read.
func readThrough[T any](
	ctx context.Context,
	cache shared.Cache,
	log *slog.Logger,
	key string,
	ttl time.Duration,
	load func(ctx context.Context) (T, error),
) (T, error) {
	var cached T
	hit, err := shared.GetJSON(ctx, cache, key, &cached)
	switch {
	case err != nil:
		log.Warn("cache read failed, bypassing", "key", key, "error", err.Error())
		return load(ctx)
	case hit:
		return cached, nil
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}
	if err := shared.SetJSON(ctx, cache, key, v, ttl); err != nil {
		log.Warn("cache write failed", "key", key, "error", err.Error())
	}
	return v, nil
}
