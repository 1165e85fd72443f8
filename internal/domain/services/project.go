package services

import (
	"context"

	"projecthub/internal/domain/models"
)

// CreateProjectRequest is the raw create payload. Enum and date fields stay
// strings until the service validates and parses them. Progress is not
// accepted: new projects always start at 0 and move through updates.
type CreateProjectRequest struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Status      *string  `json:"status"`
	Deadline    *string  `json:"deadline"`
	Priority    *string  `json:"priority"`
	Budget      *float64 `json:"budget"`
	Team        []string `json:"team"`
	Category    *string  `json:"category"`
}

// UpdateProjectRequest carries a partial update. Absent fields are left
// untouched; null clears nullable fields.
type UpdateProjectRequest struct {
	Name        models.Optional[string]
	Description models.Optional[string]
	Status      models.Optional[string]
	Progress    models.Optional[int]
	Deadline    models.Optional[string]
	Priority    models.Optional[string]
	Budget      models.Optional[float64]
	Team        models.Optional[[]string]
	Category    models.Optional[string]
}

// ListProjectsRequest carries raw query parameters for a project listing
type ListProjectsRequest struct {
	Status   string
	Priority string
	Skip     *int
	Limit    *int
}

// ProjectService defines business logic operations for projects
type ProjectService interface {
	// CreateProject validates and persists a project, returning it with its (empty) task list
	CreateProject(ctx context.Context, req *CreateProjectRequest) (*models.Project, error)

	// GetProject retrieves a project and its tasks
	GetProject(ctx context.Context, id int64) (*models.Project, error)

	// ListProjects retrieves filtered projects, each with its tasks
	ListProjects(ctx context.Context, req *ListProjectsRequest) ([]models.Project, error)

	// UpdateProject applies a partial update
	UpdateProject(ctx context.Context, id int64, req *UpdateProjectRequest) error

	// DeleteProject deletes a project and all of its tasks
	DeleteProject(ctx context.Context, id int64) error
}
