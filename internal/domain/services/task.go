package services

import (
	"context"

	"projecthub/internal/domain/models"
)

// CreateTaskRequest is the raw create payload for a task
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Deadline    *string `json:"deadline"`
	Assignee    *string `json:"assignee"`
	Priority    *string `json:"priority"`

	// FieldErrors holds per-field decode failures (a number sent for the
	// title, say). They are reported with the other validation failures,
	// after the parent project is confirmed to exist.
	FieldErrors map[string]string `json:"-"`
}

// UpdateTaskRequest carries a partial task update
type UpdateTaskRequest struct {
	Title       models.Optional[string]
	Description models.Optional[string]
	Status      models.Optional[string]
	Deadline    models.Optional[string]
	Assignee    models.Optional[string]
	Priority    models.Optional[string]

	// FieldErrors is as in CreateTaskRequest.
	FieldErrors map[string]string
}

// TaskService defines business logic operations for tasks. Every operation
// first confirms the parent project exists.
type TaskService interface {
	CreateTask(ctx context.Context, projectID int64, req *CreateTaskRequest) (*models.Task, error)
	ListTasks(ctx context.Context, projectID int64, status string) ([]models.Task, error)
	UpdateTask(ctx context.Context, projectID, taskID int64, req *UpdateTaskRequest) error
	DeleteTask(ctx context.Context, projectID, taskID int64) error
}
