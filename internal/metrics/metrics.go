package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// Vault metrics
var (
	// VaultOperationsTotal counts vault operations by secret kind, operation and outcome.
	VaultOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vault_operations_total",
			Help: "Total vault operations by kind, operation and outcome",
		},
		[]string{"kind", "operation", "outcome"},
	)

	AccountErasuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "account_erasures_total",
			Help: "Total account erasure attempts by outcome",
		},
		[]string{"outcome"},
	)
)
