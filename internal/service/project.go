package service

import (
	"context"
	"log/slog"

	"projecthub/internal/config"
	"projecthub/internal/domain"
	"projecthub/internal/domain/models"
	"projecthub/internal/domain/repositories"
	"projecthub/internal/domain/services"
	"projecthub/internal/metrics"
)

// projectService implements the ProjectService interface
type projectService struct {
	projectRepo repositories.ProjectRepository
	taskRepo    repositories.TaskRepository
	txManager   repositories.TransactionManager
	logger      *slog.Logger
}

// NewProjectService creates a new project service
func NewProjectService(
	projectRepo repositories.ProjectRepository,
	taskRepo repositories.TaskRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// CreateProject creates a new project
func (s *projectService) CreateProject(ctx context.Context, req *services.CreateProjectRequest) (*models.Project, error) {
	fields := projectFields{
		Name:        trimmed(&req.Name),
		Description: req.Description,
		Status:      req.Status,
		Deadline:    req.Deadline,
		Priority:    req.Priority,
		Budget:      req.Budget,
		Category:    req.Category,
	}
	if req.Team != nil {
		fields.Team = &req.Team
	}
	if err := validateProjectFields(&fields, true); err != nil {
		return nil, toValidationError(err)
	}

	project := &models.Project{
		Name:        *fields.Name,
		Description: req.Description,
		Status:      models.ProjectStatusPlanning,
		Priority:    models.PriorityMedium,
		Budget:      req.Budget,
		Team:        req.Team,
		Category:    req.Category,
	}
	if req.Status != nil {
		project.Status = models.ProjectStatus(*req.Status)
	}
	if req.Priority != nil {
		project.Priority = models.Priority(*req.Priority)
	}
	deadline, err := parseDatePtr(req.Deadline)
	if err != nil {
		return nil, domain.NewFieldError("deadline", err.Error())
	}
	project.Deadline = deadline

	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		return s.projectRepo.Create(ctx, project)
	})
	if err != nil {
		return nil, err
	}
	project.Tasks = []models.Task{}

	s.logger.Info("project created",
		"id", project.ID,
		"name", project.Name,
	)
	metrics.RecordMutation("project", "create")

	return project, nil
}

// GetProject retrieves a project with its tasks, read in one transaction
func (s *projectService) GetProject(ctx context.Context, id int64) (*models.Project, error) {
	var project *models.Project
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		p, err := s.projectRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		tasks, err := s.taskRepo.ListByProject(ctx, id, models.TaskFilter{})
		if err != nil {
			return err
		}
		p.Tasks = tasks
		project = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return project, nil
}

// ListProjects retrieves filtered projects, each enriched with its tasks
func (s *projectService) ListProjects(ctx context.Context, req *services.ListProjectsRequest) ([]models.Project, error) {
	filter, err := parseProjectFilter(req)
	if err != nil {
		return nil, err
	}

	var projects []models.Project
	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		list, err := s.projectRepo.List(ctx, filter)
		if err != nil {
			return err
		}

		ids := make([]int64, len(list))
		for i := range list {
			ids[i] = list[i].ID
		}
		grouped, err := s.taskRepo.ListByProjects(ctx, ids)
		if err != nil {
			return err
		}

		for i := range list {
			if tasks, ok := grouped[list[i].ID]; ok {
				list[i].Tasks = tasks
			} else {
				list[i].Tasks = []models.Task{}
			}
		}
		projects = list
		return nil
	})
	if err != nil {
		return nil, err
	}

	return projects, nil
}

// UpdateProject applies a partial update. Validation runs before any
// storage access; an empty patch only confirms the project exists.
func (s *projectService) UpdateProject(ctx context.Context, id int64, req *services.UpdateProjectRequest) error {
	patch, err := buildProjectPatch(req)
	if err != nil {
		return err
	}

	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.projectRepo.Exists(ctx, id); err != nil {
			return err
		}
		return s.projectRepo.Update(ctx, id, patch)
	})
	if err != nil {
		return err
	}

	s.logger.Info("project updated",
		"id", id,
		"noop", patch.IsEmpty(),
	)
	metrics.RecordMutation("project", "update")

	return nil
}

// DeleteProject deletes a project; its tasks are removed with it
func (s *projectService) DeleteProject(ctx context.Context, id int64) error {
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		return s.projectRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("project deleted", "id", id)
	metrics.RecordMutation("project", "delete")

	return nil
}

// buildProjectPatch validates an update request and normalizes it into a patch
func buildProjectPatch(req *services.UpdateProjectRequest) (*models.ProjectPatch, error) {
	nullFields := nullFieldErrors(map[string]bool{
		"name":     req.Name.IsNull(),
		"status":   req.Status.IsNull(),
		"progress": req.Progress.IsNull(),
		"priority": req.Priority.IsNull(),
	})

	fields := projectFields{
		Name:        trimmed(optionalValue(req.Name)),
		Description: optionalValue(req.Description),
		Status:      optionalValue(req.Status),
		Progress:    optionalValue(req.Progress),
		Deadline:    optionalValue(req.Deadline),
		Priority:    optionalValue(req.Priority),
		Budget:      optionalValue(req.Budget),
		Team:        optionalValue(req.Team),
		Category:    optionalValue(req.Category),
	}
	if err := mergeValidation(nullFields, validateProjectFields(&fields, false)); err != nil {
		return nil, err
	}

	patch := &models.ProjectPatch{
		Name:             fields.Name,
		Description:      fields.Description,
		Progress:         fields.Progress,
		Budget:           fields.Budget,
		Category:         fields.Category,
		ClearDescription: req.Description.IsNull(),
		ClearDeadline:    req.Deadline.IsNull(),
		ClearBudget:      req.Budget.IsNull(),
		ClearTeam:        req.Team.IsNull(),
		ClearCategory:    req.Category.IsNull(),
	}
	if fields.Status != nil {
		status := models.ProjectStatus(*fields.Status)
		patch.Status = &status
	}
	if fields.Priority != nil {
		priority := models.Priority(*fields.Priority)
		patch.Priority = &priority
	}
	if fields.Team != nil {
		team := append([]string{}, (*fields.Team)...)
		patch.Team = &team
	}
	deadline, err := parseDatePtr(fields.Deadline)
	if err != nil {
		return nil, domain.NewFieldError("deadline", err.Error())
	}
	patch.Deadline = deadline

	return patch, nil
}

// parseProjectFilter validates listing query parameters
func parseProjectFilter(req *services.ListProjectsRequest) (models.ProjectFilter, error) {
	filter := models.ProjectFilter{Limit: config.DefaultPageLimit}
	fields := map[string]string{}

	if req.Status != "" {
		status, err := models.ParseProjectStatus(req.Status)
		if err != nil {
			fields["status"] = err.Error()
		} else {
			filter.Status = &status
		}
	}
	if req.Priority != "" {
		priority, err := models.ParsePriority(req.Priority)
		if err != nil {
			fields["priority"] = err.Error()
		} else {
			filter.Priority = &priority
		}
	}
	if req.Skip != nil {
		if *req.Skip < 0 {
			fields["skip"] = "must be no less than 0"
		} else {
			filter.Skip = *req.Skip
		}
	}
	if req.Limit != nil {
		if *req.Limit < 1 || *req.Limit > config.MaxPageLimit {
			fields["limit"] = "must be between 1 and 1000"
		} else {
			filter.Limit = *req.Limit
		}
	}

	if len(fields) > 0 {
		return models.ProjectFilter{}, &domain.ValidationError{Fields: fields}
	}
	return filter, nil
}
