package handler

import (
	"log/slog"
	"net/http"

	"projecthub/internal/domain/services"
)

// Services bundles everything the router dispatches to
type Services struct {
	Projects   services.ProjectService
	Tasks      services.TaskService
	Statistics services.StatisticsService
	Health     []services.HealthChecker
}

// NewRouter registers every API route on a ServeMux (Go 1.22+ patterns)
func NewRouter(svc Services, logger *slog.Logger) *http.ServeMux {
	projectHandler := NewProjectHandler(svc.Projects, logger)
	taskHandler := NewTaskHandler(svc.Tasks, logger)
	statsHandler := NewStatisticsHandler(svc.Statistics, logger)
	healthHandler := NewHealthHandler(logger, svc.Health...)

	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /api/health", healthHandler.Health)

	// Project routes
	mux.HandleFunc("GET /api/projects", projectHandler.ListProjects)
	mux.HandleFunc("POST /api/projects", projectHandler.CreateProject)
	mux.HandleFunc("GET /api/projects/{id}", projectHandler.GetProject)
	mux.HandleFunc("PUT /api/projects/{id}", projectHandler.UpdateProject)
	mux.HandleFunc("DELETE /api/projects/{id}", projectHandler.DeleteProject)

	// Task routes (project-scoped)
	mux.HandleFunc("GET /api/projects/{id}/tasks", taskHandler.ListTasks)
	mux.HandleFunc("POST /api/projects/{id}/tasks", taskHandler.CreateTask)
	mux.HandleFunc("PUT /api/projects/{id}/tasks/{taskID}", taskHandler.UpdateTask)
	mux.HandleFunc("DELETE /api/projects/{id}/tasks/{taskID}", taskHandler.DeleteTask)

	// Statistics
	mux.HandleFunc("GET /api/statistics", statsHandler.GetStatistics)

	return mux
}
