package repositories

import (
	"context"

	"projecthub/internal/domain/models"
)

// TaskRepository defines data access operations for tasks. Every lookup is
// scoped by project ID so a task can't be reached through the wrong parent.
type TaskRepository interface {
	// Create inserts a task and fills in its ID, defaults and timestamps
	Create(ctx context.Context, task *models.Task) error

	// GetByID retrieves a task belonging to projectID
	GetByID(ctx context.Context, projectID, id int64) (*models.Task, error)

	// ListByProject returns a project's tasks, highest priority first then
	// earliest deadline
	ListByProject(ctx context.Context, projectID int64, filter models.TaskFilter) ([]models.Task, error)

	// ListByProjects groups the tasks of several projects by project ID
	ListByProjects(ctx context.Context, projectIDs []int64) (map[int64][]models.Task, error)

	// Update applies a non-empty patch and bumps updated_at
	Update(ctx context.Context, projectID, id int64, patch *models.TaskPatch) error

	// Delete removes a task belonging to projectID
	Delete(ctx context.Context, projectID, id int64) error
}
