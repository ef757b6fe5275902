package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/healthlink-platform/healthlink/internal/admin"
	"github.com/healthlink-platform/healthlink/internal/ai"
	"github.com/healthlink-platform/healthlink/internal/api"
	"github.com/healthlink-platform/healthlink/internal/config"
	"github.com/healthlink-platform/healthlink/internal/healthquery"
	"github.com/healthlink-platform/healthlink/internal/middleware"
	"github.com/healthlink-platform/healthlink/internal/quota"
	iredis "github.com/healthlink-platform/healthlink/internal/redis"
	"github.com/healthlink-platform/healthlink/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.Log)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Redis. A nil client is allowed; the quota store's tier policy and
	// the rate limiter both degrade without it.
	redisClient := iredis.NewClient(ctx, cfg.Redis)
	if redisClient != nil {
		defer redisClient.Close()
	}

	// The store and limiter treat a nil Cmdable as "not configured"; a nil
	// *redis.Client must not be passed through the interface directly.
	var counter redis.Cmdable
	if redisClient != nil {
		counter = redisClient
	}

	// Quota
	quotaStore := quota.NewRedisStore(counter, cfg.Quota.DailyCap, cfg.App.Env)

	// Generation
	generator := ai.NewOpenAIClient(cfg.OpenAI)

	// Health query
	querySvc := healthquery.NewService(quotaStore, generator)
	queryHandler := healthquery.NewHandler(querySvc)

	// Admin
	adminHandler := admin.NewHandler(quotaStore, cfg.Admin.Password)

	// Per-IP limiter for the metered endpoint
	rateLimiter := middleware.NewRateLimiter(counter, cfg.RateLimit.MaxRequests, cfg.RateLimit.WindowSec)

	// Router
	router := api.NewRouter(redisClient, api.RouterConfig{
		CORSAllowedOrigins: cfg.CORS.AllowedOrigins,
	}, api.HandlerSet{
		Ping:  queryHandler.Ping,
		Query: queryHandler.Query,

		QuotaSnapshot: adminHandler.Snapshot,
		QuotaReset:    adminHandler.Reset,

		QueryRateLimiter: rateLimiter.Middleware,
	})

	// Start server
	srv := server.New(cfg.Server, router)
	if err := srv.Start(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(cfg config.LogConfig) {
	var handler slog.Handler

	opts := &slog.HandlerOptions{}
	switch cfg.Level {
	case "debug":
		opts.Level = slog.LevelDebug
	case "info":
		opts.Level = slog.LevelInfo
	case "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	default:
		opts.Level = slog.LevelInfo
	}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
