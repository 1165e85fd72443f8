package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"projecthub/internal/httputil"
	"projecthub/internal/metrics"
)

// Recovery turns a handler panic into the standard 500 envelope.
// http.ErrAbortHandler is re-raised so net/http can drop the connection.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				metrics.HTTPPanicsTotal.Inc()
				httputil.RequestLogger(r.Context(), logger).Error("handler panicked",
					"panic", rec,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)
				httputil.RespondError(w, http.StatusInternalServerError, "An unexpected error occurred")
			}()

			next.ServeHTTP(w, r)
		})
	}
}
