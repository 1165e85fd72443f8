package handler

import (
	"log/slog"
	"net/http"

	"projecthub/internal/domain"
	"projecthub/internal/domain/services"
	"projecthub/internal/httputil"
)

// ProjectHandler handles project HTTP requests
type ProjectHandler struct {
	service services.ProjectService
	logger  *slog.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(service services.ProjectService, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{
		service: service,
		logger:  logger,
	}
}

// ListProjects lists projects with optional status/priority filters and paging
// GET /api/projects?status=&priority=&skip=&limit=
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &services.ListProjectsRequest{
		Status:   query.Get("status"),
		Priority: query.Get("priority"),
	}

	fields := map[string]string{}
	var err error
	if req.Skip, err = httputil.QueryInt(r, "skip"); err != nil {
		fields["skip"] = err.Error()
	}
	if req.Limit, err = httputil.QueryInt(r, "limit"); err != nil {
		fields["limit"] = err.Error()
	}
	if len(fields) > 0 {
		handleError(w, r, h.logger, &domain.ValidationError{Fields: fields})
		return
	}

	projects, err := h.service.ListProjects(r.Context(), req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, projects)
}

// GetProject retrieves a project with its tasks
// GET /api/projects/{id}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	project, err := h.service.GetProject(r.Context(), id)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, project)
}

// CreateProject creates a new project
// POST /api/projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req services.CreateProjectRequest
	if err := decodeBody(w, r, &req); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	project, err := h.service.CreateProject(r.Context(), &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, project)
}

// UpdateProject partially updates a project
// PUT /api/projects/{id}
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	var body updateProjectBody
	if err := decodeBody(w, r, &body); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	if err := h.service.UpdateProject(r.Context(), id, body.toRequest()); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, httputil.MessageResponse{
		Message: "Project updated successfully",
		ID:      id,
	})
}

// DeleteProject deletes a project and its tasks
// DELETE /api/projects/{id}
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	if err := h.service.DeleteProject(r.Context(), id); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, httputil.MessageResponse{
		Message: "Project deleted successfully",
		ID:      id,
	})
}
