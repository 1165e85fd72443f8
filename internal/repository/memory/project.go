package memory

import (
	"context"
	"fmt"
	"sort"

	"projecthub/internal/domain"
	"projecthub/internal/domain/models"
	"projecthub/internal/domain/repositories"
)

// ProjectRepository implements repositories.ProjectRepository in memory
type ProjectRepository struct {
	store *Store
}

// NewProjectRepository creates a project repository backed by store
func NewProjectRepository(store *Store) repositories.ProjectRepository {
	return &ProjectRepository{store: store}
}

func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	s := r.store
	return s.with(ctx, func() error {
		if err := s.checkNameFree(project.Name, 0); err != nil {
			return err
		}

		p := cloneProject(*project)
		p.ID = s.nextProjectID
		p.Progress = 0
		if p.Status == "" {
			p.Status = models.ProjectStatusPlanning
		}
		if p.Priority == "" {
			p.Priority = models.PriorityMedium
		}
		p.CreatedAt = s.Now()
		p.UpdatedAt = p.CreatedAt

		s.nextProjectID++
		s.projects[p.ID] = p

		*project = withEmptyCollections(cloneProject(p))
		return nil
	})
}

func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*models.Project, error) {
	var out *models.Project
	err := r.store.with(ctx, func() error {
		p, ok := r.store.projects[id]
		if !ok {
			return domain.NewNotFound("project", id)
		}
		cp := withEmptyCollections(cloneProject(p))
		out = &cp
		return nil
	})
	return out, err
}

func (r *ProjectRepository) Exists(ctx context.Context, id int64) error {
	return r.store.with(ctx, func() error {
		if _, ok := r.store.projects[id]; !ok {
			return domain.NewNotFound("project", id)
		}
		return nil
	})
}

func (r *ProjectRepository) List(ctx context.Context, filter models.ProjectFilter) ([]models.Project, error) {
	projects := []models.Project{}
	err := r.store.with(ctx, func() error {
		for _, p := range r.store.projects {
			if filter.Status != nil && p.Status != *filter.Status {
				continue
			}
			if filter.Priority != nil && p.Priority != *filter.Priority {
				continue
			}
			projects = append(projects, withEmptyCollections(cloneProject(p)))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(projects, func(i, j int) bool {
		if !projects[i].CreatedAt.Equal(projects[j].CreatedAt) {
			return projects[i].CreatedAt.After(projects[j].CreatedAt)
		}
		return projects[i].ID > projects[j].ID
	})

	start := min(filter.Skip, len(projects))
	end := len(projects)
	if filter.Limit > 0 {
		end = min(start+filter.Limit, len(projects))
	}
	return projects[start:end], nil
}

func (r *ProjectRepository) Update(ctx context.Context, id int64, patch *models.ProjectPatch) error {
	s := r.store
	return s.with(ctx, func() error {
		p, ok := s.projects[id]
		if !ok {
			return domain.NewNotFound("project", id)
		}
		if patch.IsEmpty() {
			return nil
		}

		if patch.Name != nil {
			if err := s.checkNameFree(*patch.Name, id); err != nil {
				return err
			}
			p.Name = *patch.Name
		}
		if patch.ClearDescription {
			p.Description = nil
		} else if patch.Description != nil {
			p.Description = cloneString(patch.Description)
		}
		if patch.Status != nil {
			p.Status = *patch.Status
		}
		if patch.Progress != nil {
			p.Progress = *patch.Progress
		}
		if patch.ClearDeadline {
			p.Deadline = nil
		} else if patch.Deadline != nil {
			d := *patch.Deadline
			p.Deadline = &d
		}
		if patch.Priority != nil {
			p.Priority = *patch.Priority
		}
		if patch.ClearBudget {
			p.Budget = nil
		} else if patch.Budget != nil {
			b := *patch.Budget
			p.Budget = &b
		}
		if patch.ClearTeam {
			p.Team = nil
		} else if patch.Team != nil {
			p.Team = append([]string{}, (*patch.Team)...)
		}
		if patch.ClearCategory {
			p.Category = nil
		} else if patch.Category != nil {
			p.Category = cloneString(patch.Category)
		}

		p.UpdatedAt = s.Now()
		s.projects[id] = p
		return nil
	})
}

// Delete removes the project and, like ON DELETE CASCADE, its tasks
func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	s := r.store
	return s.with(ctx, func() error {
		if _, ok := s.projects[id]; !ok {
			return domain.NewNotFound("project", id)
		}
		delete(s.projects, id)
		for tid, t := range s.tasks {
			if t.ProjectID == id {
				delete(s.tasks, tid)
			}
		}
		return nil
	})
}

// checkNameFree enforces the unique name constraint. Callers hold the lock.
func (s *Store) checkNameFree(name string, exceptID int64) error {
	for id, p := range s.projects {
		if id != exceptID && p.Name == name {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("project with name '%s' already exists", name),
				ResourceType: "project",
				Field:        "name",
			}
		}
	}
	return nil
}

func withEmptyCollections(p models.Project) models.Project {
	if p.Team == nil {
		p.Team = []string{}
	}
	p.Tasks = []models.Task{}
	return p
}
