// Package metrics provides Prometheus metrics for projecthub.
package metrics

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "projecthub"
)

// HTTP metrics
var (
	// HTTPRequestsTotal counts HTTP requests by method, route, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration tracks HTTP request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	// HTTPRequestsInFlight tracks concurrent HTTP requests.
	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		},
	)

	// HTTPPanicsTotal counts handler panics turned into 500s.
	HTTPPanicsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "panics_total",
			Help:      "Total handler panics recovered",
		},
	)

	// HTTPRateLimitedTotal counts requests rejected by the rate limiter.
	HTTPRateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Total requests rejected with 429",
		},
	)
)

// Storage metrics
var (
	// DBQueryDuration tracks query latency by operation and table.
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "query_duration_seconds",
			Help:      "Database query latency in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"operation", "table"},
	)

	// DBErrorsTotal counts failed queries. Not-found and conflicts are not errors.
	DBErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "errors_total",
			Help:      "Total failed database operations",
		},
		[]string{"operation", "table"},
	)
)

// Domain metrics
var (
	// MutationsTotal counts successful writes by resource and action.
	MutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "domain",
			Name:      "mutations_total",
			Help:      "Total successful create/update/delete operations",
		},
		[]string{"resource", "action"}, // project|task, create|update|delete
	)
)

// RecordDBQueryDuration records how long a query took.
func RecordDBQueryDuration(operation, table string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

// RecordDBError counts a failed query.
func RecordDBError(operation, table string) {
	DBErrorsTotal.WithLabelValues(operation, table).Inc()
}

// RecordMutation counts a committed write.
func RecordMutation(resource, action string) {
	MutationsTotal.WithLabelValues(resource, action).Inc()
}

// RegisterPoolStats exposes pgxpool statistics as gauges. Registering the
// same pool twice is a no-op.
func RegisterPoolStats(pool *pgxpool.Pool) error {
	gauges := []prometheus.Collector{
		poolGauge("total_conns", "Total connections in the pool", func(s *pgxpool.Stat) float64 {
			return float64(s.TotalConns())
		}, pool),
		poolGauge("acquired_conns", "Connections currently checked out", func(s *pgxpool.Stat) float64 {
			return float64(s.AcquiredConns())
		}, pool),
		poolGauge("idle_conns", "Idle connections in the pool", func(s *pgxpool.Stat) float64 {
			return float64(s.IdleConns())
		}, pool),
		poolGauge("max_conns", "Maximum pool size", func(s *pgxpool.Stat) float64 {
			return float64(s.MaxConns())
		}, pool),
		poolGauge("empty_acquire_total", "Acquires that had to wait for a connection", func(s *pgxpool.Stat) float64 {
			return float64(s.EmptyAcquireCount())
		}, pool),
	}

	for _, g := range gauges {
		if err := prometheus.Register(g); err != nil {
			var already prometheus.AlreadyRegisteredError
			if !errors.As(err, &already) {
				return err
			}
		}
	}
	return nil
}

func poolGauge(name, help string, value func(*pgxpool.Stat) float64, pool *pgxpool.Pool) prometheus.GaugeFunc {
	return prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "db_pool",
			Name:      name,
			Help:      help,
		},
		func() float64 { return value(pool.Stat()) },
	)
}
