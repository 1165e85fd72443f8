package handler

import (
	"log/slog"
	"net/http"

	"projecthub/internal/domain/services"
	"projecthub/internal/httputil"
)

// TaskHandler handles project-scoped task HTTP requests
type TaskHandler struct {
	service services.TaskService
	logger  *slog.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(service services.TaskService, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		service: service,
		logger:  logger,
	}
}

// ListTasks lists a project's tasks
// GET /api/projects/{id}/tasks?status=
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	tasks, err := h.service.ListTasks(r.Context(), projectID, r.URL.Query().Get("status"))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tasks)
}

// CreateTask creates a task in a project
// POST /api/projects/{id}/tasks
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	var req services.CreateTaskRequest
	fieldErrs, err := decodeBodyDeferred(w, r, &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	req.FieldErrors = fieldErrs

	task, err := h.service.CreateTask(r.Context(), projectID, &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, task)
}

// UpdateTask partially updates a task
// PUT /api/projects/{id}/tasks/{taskID}
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	taskID, err := pathID(r, "taskID")
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	var body updateTaskBody
	fieldErrs, err := decodeBodyDeferred(w, r, &body)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	req := body.toRequest()
	req.FieldErrors = fieldErrs

	if err := h.service.UpdateTask(r.Context(), projectID, taskID, req); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, httputil.MessageResponse{
		Message: "Task updated successfully",
		ID:      taskID,
	})
}

// DeleteTask deletes a task from a project
// DELETE /api/projects/{id}/tasks/{taskID}
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	taskID, err := pathID(r, "taskID")
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	if err := h.service.DeleteTask(r.Context(), projectID, taskID); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, httputil.MessageResponse{
		Message: "Task deleted successfully",
		ID:      taskID,
	})
}
