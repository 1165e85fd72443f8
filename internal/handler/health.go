package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"projecthub/internal/domain/services"
	"projecthub/internal/httputil"
)

// healthTimeout bounds each dependency check.
const healthTimeout = 2 * time.Second

// HealthResponse is the body of a passing health check
type HealthResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthHandler reports whether the API can reach its dependencies
type HealthHandler struct {
	checkers []services.HealthChecker
	logger   *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(logger *slog.Logger, checkers ...services.HealthChecker) *HealthHandler {
	return &HealthHandler{
		checkers: checkers,
		logger:   logger,
	}
}

// Health checks every registered dependency
// GET /api/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	for _, c := range h.checkers {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		err := c.Check(ctx)
		cancel()

		if err != nil {
			h.logger.Warn("health check failed", "checker", c.Name(), "error", err)
			httputil.RespondErrorWithStatus(w, http.StatusServiceUnavailable,
				fmt.Sprintf("%s: %v", c.Name(), err), "error")
			return
		}
	}

	httputil.RespondJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Message:   "API is running",
		Timestamp: time.Now().UTC(),
	})
}
