package middleware

import (
	"net/http"
	"strconv"
	"time"

	"projecthub/internal/metrics"
)

// Prometheus records HTTP request metrics labelled by route pattern.
func Prometheus(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		wrapped := newResponseWriter(w)
		next.ServeHTTP(wrapped, r)

		path := routePattern(r)
		metrics.HTTPRequestsTotal.WithLabelValues(
			r.Method,
			path,
			strconv.Itoa(wrapped.status),
		).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(
			r.Method,
			path,
		).Observe(time.Since(start).Seconds())
	})
}

// routePattern returns the ServeMux pattern that matched, so IDs don't
// explode label cardinality. The mux sets it on the request in place, which
// only works while no middleware between here and the mux copies r.
// Unmatched requests share one label.
func routePattern(r *http.Request) string {
	if r.Pattern != "" {
		return r.Pattern
	}
	return "unmatched"
}
