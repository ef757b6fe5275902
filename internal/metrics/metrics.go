package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthlink_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "healthlink_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	QuotaConsumedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "healthlink_quota_consumed_total",
			Help: "Total daily-cap units consumed by metered requests.",
		},
	)

	QuotaRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthlink_quota_rejected_total",
			Help: "Metered requests rejected before generation.",
		},
		[]string{"reason"}, // exceeded | unavailable
	)

	GenerationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthlink_generations_total",
			Help: "Generation calls by kind and outcome.",
		},
		[]string{"kind", "status"}, // kind: answer | briefing
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		QuotaConsumedTotal,
		QuotaRejectedTotal,
		GenerationsTotal,
	)
}
