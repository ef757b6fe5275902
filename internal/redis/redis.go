package redis

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/healthlink-platform/healthlink/internal/config"
)

// NewClient connects to Redis, or returns nil when no Redis is configured.
// A failed ping is logged but not fatal: the quota store applies the
// tier-dependent failure policy per request, so a Redis outage at boot must
// not take the checklist-only paths down with it.
func NewClient(ctx context.Context, cfg config.RedisConfig) *redis.Client {
	if !cfg.Configured() {
		slog.Info("redis not configured")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("redis ping failed, continuing", "addr", cfg.Addr(), "error", err)
		return client
	}

	slog.Info("connected to Redis", "addr", cfg.Addr())
	return client
}
