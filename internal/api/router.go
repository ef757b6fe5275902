package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	mw "github.com/healthlink-platform/healthlink/internal/middleware"
)

// HandlerSet holds handler functions injected from main.go to avoid import cycles.
type HandlerSet struct {
	// Health query handlers
	Ping  http.HandlerFunc
	Query http.HandlerFunc

	// Admin quota handlers
	QuotaSnapshot http.HandlerFunc
	QuotaReset    http.HandlerFunc

	// Optional per-IP limiter for the query endpoint
	QueryRateLimiter func(http.Handler) http.Handler
}

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	CORSAllowedOrigins []string
}

func NewRouter(rdb *redis.Client, cfg RouterConfig, h HandlerSet) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.RequestID)
	r.Use(mw.SecurityHeaders)
	r.Use(mw.Logging)
	r.Use(mw.Recovery)
	r.Use(mw.Metrics)
	r.Use(cors.Handler(mw.CORS(cfg.CORSAllowedOrigins)))

	// Liveness probe — always 200, no dependency checks
	r.Get("/health/live", func(w http.ResponseWriter, r *http.Request) {
		JSON(w, http.StatusOK, map[string]string{"status": "alive"})
	})

	// Readiness probe — checks Redis when it is configured. The quota
	// store degrades per-request without Redis, so a missing client is
	// "not configured" rather than unhealthy.
	readinessHandler := func(w http.ResponseWriter, r *http.Request) {
		health := map[string]string{
			"status": "healthy",
			"redis":  "healthy",
		}

		status := http.StatusOK

		if rdb == nil {
			health["redis"] = "not configured"
		} else if err := rdb.Ping(r.Context()).Err(); err != nil {
			health["redis"] = "unhealthy"
			health["status"] = "degraded"
			status = http.StatusServiceUnavailable
		}

		JSON(w, status, health)
	}

	r.Get("/health/ready", readinessHandler)
	r.Get("/health", readinessHandler)

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/health-links", func(r chi.Router) {
			r.Get("/query", h.Ping)

			r.Group(func(r chi.Router) {
				if h.QueryRateLimiter != nil {
					r.Use(h.QueryRateLimiter)
				}
				r.Post("/query", h.Query)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/quota", h.QuotaSnapshot)
			r.Post("/quota/reset", h.QuotaReset)
		})
	})

	return r
}
