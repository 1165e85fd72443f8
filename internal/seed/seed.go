// Package seed loads demo projects and tasks through the service layer.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"projecthub/internal/domain"
	"projecthub/internal/domain/models"
	"projecthub/internal/domain/services"
)

// ProjectSeed is one demo project with the tasks created under it.
// Progress, when set, is applied with an update after creation.
type ProjectSeed struct {
	Project  services.CreateProjectRequest
	Progress *int
	Tasks    []services.CreateTaskRequest
}

// Result counts what a Run created or skipped
type Result struct {
	Projects int
	Tasks    int
	Skipped  int
}

// Seeder creates demo data using the same validation as the API
type Seeder struct {
	projects services.ProjectService
	tasks    services.TaskService
	logger   *slog.Logger
}

// NewSeeder creates a new seeder
func NewSeeder(projects services.ProjectService, tasks services.TaskService, logger *slog.Logger) *Seeder {
	return &Seeder{
		projects: projects,
		tasks:    tasks,
		logger:   logger,
	}
}

// Run creates every seed. Projects whose name already exists are skipped
// along with their tasks, so seeding twice is harmless.
func (s *Seeder) Run(ctx context.Context, seeds []ProjectSeed) (Result, error) {
	var result Result

	for _, ps := range seeds {
		req := ps.Project
		project, err := s.projects.CreateProject(ctx, &req)
		if err != nil {
			if errors.Is(err, domain.ErrConflict) {
				s.logger.Info("project exists, skipping", "name", req.Name)
				result.Skipped++
				continue
			}
			return result, fmt.Errorf("seed project %q: %w", req.Name, err)
		}
		result.Projects++

		if ps.Progress != nil {
			update := &services.UpdateProjectRequest{Progress: models.Some(*ps.Progress)}
			if err := s.projects.UpdateProject(ctx, project.ID, update); err != nil {
				return result, fmt.Errorf("seed progress of project %q: %w", req.Name, err)
			}
		}

		for _, tr := range ps.Tasks {
			taskReq := tr
			if _, err := s.tasks.CreateTask(ctx, project.ID, &taskReq); err != nil {
				return result, fmt.Errorf("seed task %q of project %q: %w", tr.Title, req.Name, err)
			}
			result.Tasks++
		}

		s.logger.Info("seeded project",
			"id", project.ID,
			"name", project.Name,
			"tasks", len(ps.Tasks),
		)
	}

	return result, nil
}

func ptr[T any](v T) *T { return &v }

// DemoData returns a small portfolio covering every status and priority
func DemoData() []ProjectSeed {
	return []ProjectSeed{
		{
			Project: services.CreateProjectRequest{
				Name:        "Website Redesign",
				Description: ptr("Refresh the marketing site and move it to the new design system"),
				Status:      ptr("in-progress"),
				Deadline:    ptr("2026-12-15"),
				Priority:    ptr("high"),
				Budget:      ptr(50000.0),
				Team:        []string{"alice", "bob", "carol"},
				Category:    ptr("marketing"),
			},
			Progress: ptr(45),
			Tasks: []services.CreateTaskRequest{
				{Title: "Audit current pages", Status: ptr("completed"), Priority: ptr("medium"), Assignee: ptr("alice")},
				{Title: "Build component library", Status: ptr("in-progress"), Priority: ptr("critical"), Deadline: ptr("2026-11-01"), Assignee: ptr("bob")},
				{Title: "Migrate blog content", Priority: ptr("low"), Deadline: ptr("2026-12-01")},
			},
		},
		{
			Project: services.CreateProjectRequest{
				Name:     "Mobile App Launch",
				Status:   ptr("planning"),
				Deadline: ptr("2027-03-31"),
				Priority: ptr("critical"),
				Budget:   ptr(120000.0),
				Team:     []string{"dave", "erin"},
				Category: ptr("product"),
			},
			Tasks: []services.CreateTaskRequest{
				{Title: "Write product requirements", Priority: ptr("high"), Assignee: ptr("dave")},
				{Title: "Pick push notification vendor", Priority: ptr("medium")},
			},
		},
		{
			Project: services.CreateProjectRequest{
				Name:        "Data Warehouse Migration",
				Description: ptr("Move reporting off the legacy warehouse"),
				Status:      ptr("completed"),
				Priority:    ptr("medium"),
				Budget:      ptr(30000.0),
				Category:    ptr("infrastructure"),
			},
			Progress: ptr(100),
			Tasks: []services.CreateTaskRequest{
				{Title: "Export historical tables", Status: ptr("completed"), Priority: ptr("high")},
				{Title: "Switch dashboards to new source", Status: ptr("completed"), Priority: ptr("medium")},
			},
		},
		{
			Project: services.CreateProjectRequest{
				Name:     "Office Move",
				Priority: ptr("low"),
			},
		},
	}
}
