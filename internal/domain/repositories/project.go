package repositories

import (
	"context"

	"projecthub/internal/domain/models"
)

// ProjectRepository defines data access operations for projects
type ProjectRepository interface {
	// Create inserts a project and fills in its ID, defaults and timestamps.
	// Progress is ignored and stored as 0.
	// A duplicate name yields *domain.ConflictError.
	Create(ctx context.Context, project *models.Project) error

	// GetByID retrieves a project by ID without its tasks
	GetByID(ctx context.Context, id int64) (*models.Project, error)

	// Exists returns domain.ErrNotFound when no project has the given ID
	Exists(ctx context.Context, id int64) error

	// List returns projects matching filter, newest first
	List(ctx context.Context, filter models.ProjectFilter) ([]models.Project, error)

	// Update applies a non-empty patch and bumps updated_at
	Update(ctx context.Context, id int64, patch *models.ProjectPatch) error

	// Delete removes a project; its tasks go with it
	Delete(ctx context.Context, id int64) error
}
