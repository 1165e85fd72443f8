package handler

import (
	"log/slog"
	"net/http"

	"projecthub/internal/domain/services"
	"projecthub/internal/httputil"
)

// StatisticsHandler serves the aggregate dashboard rollup
type StatisticsHandler struct {
	service services.StatisticsService
	logger  *slog.Logger
}

// NewStatisticsHandler creates a new statistics handler
func NewStatisticsHandler(service services.StatisticsService, logger *slog.Logger) *StatisticsHandler {
	return &StatisticsHandler{
		service: service,
		logger:  logger,
	}
}

// GetStatistics returns project and task counters, average progress and total budget
// GET /api/statistics
func (h *StatisticsHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStatistics(r.Context())
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, stats)
}
