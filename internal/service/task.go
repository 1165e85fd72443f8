package service

import (
	"context"
	"log/slog"

	"projecthub/internal/domain"
	"projecthub/internal/domain/models"
	"projecthub/internal/domain/repositories"
	"projecthub/internal/domain/services"
	"projecthub/internal/metrics"
)

// taskService implements the TaskService interface
type taskService struct {
	projectRepo repositories.ProjectRepository
	taskRepo    repositories.TaskRepository
	txManager   repositories.TransactionManager
	logger      *slog.Logger
}

// NewTaskService creates a new task service
func NewTaskService(
	projectRepo repositories.ProjectRepository,
	taskRepo repositories.TaskRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.TaskService {
	return &taskService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// CreateTask creates a task under an existing project. A missing project
// is reported before any payload validation.
func (s *taskService) CreateTask(ctx context.Context, projectID int64, req *services.CreateTaskRequest) (*models.Task, error) {
	var task *models.Task
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.projectRepo.Exists(ctx, projectID); err != nil {
			return err
		}

		t, err := newTask(projectID, req)
		if err != nil {
			return err
		}
		if err := s.taskRepo.Create(ctx, t); err != nil {
			return err
		}
		task = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("task created",
		"id", task.ID,
		"project_id", projectID,
		"title", task.Title,
	)
	metrics.RecordMutation("task", "create")

	return task, nil
}

// ListTasks lists a project's tasks, optionally filtered by status
func (s *taskService) ListTasks(ctx context.Context, projectID int64, status string) ([]models.Task, error) {
	var tasks []models.Task
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.projectRepo.Exists(ctx, projectID); err != nil {
			return err
		}

		var filter models.TaskFilter
		if status != "" {
			st, err := models.ParseTaskStatus(status)
			if err != nil {
				return domain.NewFieldError("status", err.Error())
			}
			filter.Status = &st
		}

		list, err := s.taskRepo.ListByProject(ctx, projectID, filter)
		if err != nil {
			return err
		}
		tasks = list
		return nil
	})
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

// UpdateTask applies a partial update to a task of the given project
func (s *taskService) UpdateTask(ctx context.Context, projectID, taskID int64, req *services.UpdateTaskRequest) error {
	var noop bool
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.projectRepo.Exists(ctx, projectID); err != nil {
			return err
		}

		patch, err := buildTaskPatch(req)
		if err != nil {
			return err
		}

		if _, err := s.taskRepo.GetByID(ctx, projectID, taskID); err != nil {
			return err
		}
		noop = patch.IsEmpty()
		return s.taskRepo.Update(ctx, projectID, taskID, patch)
	})
	if err != nil {
		return err
	}

	s.logger.Info("task updated",
		"id", taskID,
		"project_id", projectID,
		"noop", noop,
	)
	metrics.RecordMutation("task", "update")

	return nil
}

// DeleteTask deletes a task only if it belongs to the given project
func (s *taskService) DeleteTask(ctx context.Context, projectID, taskID int64) error {
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.projectRepo.Exists(ctx, projectID); err != nil {
			return err
		}
		return s.taskRepo.Delete(ctx, projectID, taskID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("task deleted",
		"id", taskID,
		"project_id", projectID,
	)
	metrics.RecordMutation("task", "delete")

	return nil
}

// newTask validates a create request and builds the task to insert
func newTask(projectID int64, req *services.CreateTaskRequest) (*models.Task, error) {
	fields := taskFields{
		Title:       trimmed(&req.Title),
		Description: req.Description,
		Status:      req.Status,
		Deadline:    req.Deadline,
		Assignee:    req.Assignee,
		Priority:    req.Priority,
	}
	if err := mergeValidation(req.FieldErrors, validateTaskFields(&fields, true)); err != nil {
		return nil, err
	}

	task := &models.Task{
		ProjectID:   projectID,
		Title:       *fields.Title,
		Description: req.Description,
		Status:      models.TaskStatusPending,
		Assignee:    req.Assignee,
		Priority:    models.PriorityMedium,
	}
	if req.Status != nil {
		task.Status = models.TaskStatus(*req.Status)
	}
	if req.Priority != nil {
		task.Priority = models.Priority(*req.Priority)
	}
	deadline, err := parseDatePtr(req.Deadline)
	if err != nil {
		return nil, domain.NewFieldError("deadline", err.Error())
	}
	task.Deadline = deadline

	return task, nil
}

// buildTaskPatch validates an update request and normalizes it into a patch
func buildTaskPatch(req *services.UpdateTaskRequest) (*models.TaskPatch, error) {
	nullFields := nullFieldErrors(map[string]bool{
		"title":    req.Title.IsNull(),
		"status":   req.Status.IsNull(),
		"priority": req.Priority.IsNull(),
	})
	for field, reason := range req.FieldErrors {
		nullFields[field] = reason
	}

	fields := taskFields{
		Title:       trimmed(optionalValue(req.Title)),
		Description: optionalValue(req.Description),
		Status:      optionalValue(req.Status),
		Deadline:    optionalValue(req.Deadline),
		Assignee:    optionalValue(req.Assignee),
		Priority:    optionalValue(req.Priority),
	}
	if err := mergeValidation(nullFields, validateTaskFields(&fields, false)); err != nil {
		return nil, err
	}

	patch := &models.TaskPatch{
		Title:            fields.Title,
		Description:      fields.Description,
		Assignee:         fields.Assignee,
		ClearDescription: req.Description.IsNull(),
		ClearDeadline:    req.Deadline.IsNull(),
		ClearAssignee:    req.Assignee.IsNull(),
	}
	if fields.Status != nil {
		status := models.TaskStatus(*fields.Status)
		patch.Status = &status
	}
	if fields.Priority != nil {
		priority := models.Priority(*fields.Priority)
		patch.Priority = &priority
	}
	deadline, err := parseDatePtr(fields.Deadline)
	if err != nil {
		return nil, domain.NewFieldError("deadline", err.Error())
	}
	patch.Deadline = deadline

	return patch, nil
}
