package memory

import (
	"context"
	"sort"

	"projecthub/internal/domain"
	"projecthub/internal/domain/models"
	"projecthub/internal/domain/repositories"
)

// TaskRepository implements repositories.TaskRepository in memory
type TaskRepository struct {
	store *Store
}

// NewTaskRepository creates a task repository backed by store
func NewTaskRepository(store *Store) repositories.TaskRepository {
	return &TaskRepository{store: store}
}

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	s := r.store
	return s.with(ctx, func() error {
		// Foreign key
		if _, ok := s.projects[task.ProjectID]; !ok {
			return domain.NewNotFound("project", task.ProjectID)
		}

		t := cloneTask(*task)
		t.ID = s.nextTaskID
		if t.Status == "" {
			t.Status = models.TaskStatusPending
		}
		if t.Priority == "" {
			t.Priority = models.PriorityMedium
		}
		t.CreatedAt = s.Now()
		t.UpdatedAt = t.CreatedAt

		s.nextTaskID++
		s.tasks[t.ID] = t

		*task = cloneTask(t)
		return nil
	})
}

func (r *TaskRepository) GetByID(ctx context.Context, projectID, id int64) (*models.Task, error) {
	var out *models.Task
	err := r.store.with(ctx, func() error {
		t, ok := r.store.tasks[id]
		if !ok || t.ProjectID != projectID {
			return domain.NewNotFound("task", id)
		}
		ct := cloneTask(t)
		out = &ct
		return nil
	})
	return out, err
}

func (r *TaskRepository) ListByProject(ctx context.Context, projectID int64, filter models.TaskFilter) ([]models.Task, error) {
	tasks := []models.Task{}
	err := r.store.with(ctx, func() error {
		for _, t := range r.store.tasks {
			if t.ProjectID != projectID {
				continue
			}
			if filter.Status != nil && t.Status != *filter.Status {
				continue
			}
			tasks = append(tasks, cloneTask(t))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortTasks(tasks)
	return tasks, nil
}

func (r *TaskRepository) ListByProjects(ctx context.Context, projectIDs []int64) (map[int64][]models.Task, error) {
	wanted := make(map[int64]bool, len(projectIDs))
	for _, id := range projectIDs {
		wanted[id] = true
	}

	grouped := make(map[int64][]models.Task, len(projectIDs))
	err := r.store.with(ctx, func() error {
		for _, t := range r.store.tasks {
			if wanted[t.ProjectID] {
				grouped[t.ProjectID] = append(grouped[t.ProjectID], cloneTask(t))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, tasks := range grouped {
		sortTasks(tasks)
	}
	return grouped, nil
}

func (r *TaskRepository) Update(ctx context.Context, projectID, id int64, patch *models.TaskPatch) error {
	s := r.store
	return s.with(ctx, func() error {
		t, ok := s.tasks[id]
		if !ok || t.ProjectID != projectID {
			return domain.NewNotFound("task", id)
		}
		if patch.IsEmpty() {
			return nil
		}

		if patch.Title != nil {
			t.Title = *patch.Title
		}
		if patch.ClearDescription {
			t.Description = nil
		} else if patch.Description != nil {
			t.Description = cloneString(patch.Description)
		}
		if patch.Status != nil {
			t.Status = *patch.Status
		}
		if patch.ClearDeadline {
			t.Deadline = nil
		} else if patch.Deadline != nil {
			d := *patch.Deadline
			t.Deadline = &d
		}
		if patch.ClearAssignee {
			t.Assignee = nil
		} else if patch.Assignee != nil {
			t.Assignee = cloneString(patch.Assignee)
		}
		if patch.Priority != nil {
			t.Priority = *patch.Priority
		}

		t.UpdatedAt = s.Now()
		s.tasks[id] = t
		return nil
	})
}

func (r *TaskRepository) Delete(ctx context.Context, projectID, id int64) error {
	s := r.store
	return s.with(ctx, func() error {
		t, ok := s.tasks[id]
		if !ok || t.ProjectID != projectID {
			return domain.NewNotFound("task", id)
		}
		delete(s.tasks, id)
		return nil
	})
}

// sortTasks orders by priority rank descending, then deadline ascending with
// undated tasks last, then id.
func sortTasks(tasks []models.Task) {
	sort.Slice(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if a.Priority.Rank() != b.Priority.Rank() {
			return a.Priority.Rank() > b.Priority.Rank()
		}
		switch {
		case a.Deadline != nil && b.Deadline != nil:
			if !a.Deadline.Time().Equal(b.Deadline.Time()) {
				return a.Deadline.Before(*b.Deadline)
			}
		case a.Deadline != nil:
			return true
		case b.Deadline != nil:
			return false
		}
		return a.ID < b.ID
	})
}
