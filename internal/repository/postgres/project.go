package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"projecthub/internal/domain"
	"projecthub/internal/domain/models"
	"projecthub/internal/domain/repositories"
)

const projectColumns = `id, name, description, status, progress, deadline, priority, budget, team, category, created_at, updated_at`

// PostgresProjectRepository implements the ProjectRepository interface
type PostgresProjectRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(config *RepositoryConfig) repositories.ProjectRepository {
	return &PostgresProjectRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a project. Empty status and priority fall back to the
// column defaults; progress always starts at 0.
func (r *PostgresProjectRepository) Create(ctx context.Context, project *models.Project) (err error) {
	defer func(start time.Time) { observe("create", r.tables.Projects, start, err) }(time.Now())

	team, err := teamParam(project.Team)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (name, description, status, progress, deadline, priority, budget, team, category)
		VALUES ($1, $2, COALESCE($3, 'planning'), 0, $4, COALESCE($5, 'medium'), $6, $7, $8)
		RETURNING %s
	`, r.tables.Projects, projectColumns)

	executor := GetExecutor(ctx, r.pool)
	row := executor.QueryRow(ctx, query,
		project.Name,
		project.Description,
		nullIfEmpty(string(project.Status)),
		dateParam(project.Deadline),
		nullIfEmpty(string(project.Priority)),
		project.Budget,
		team,
		project.Category,
	)

	created, err := scanProject(row)
	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("project with name '%s' already exists", project.Name),
				ResourceType: "project",
				Field:        "name",
			}
		}
		if IsPgCheckViolation(err) {
			return checkViolationError(err)
		}
		return fmt.Errorf("create project: %w", err)
	}

	*project = *created
	return nil
}

// GetByID retrieves a project by ID
func (r *PostgresProjectRepository) GetByID(ctx context.Context, id int64) (_ *models.Project, err error) {
	defer func(start time.Time) { observe("get", r.tables.Projects, start, err) }(time.Now())

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, projectColumns, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	project, err := scanProject(executor.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, domain.NewNotFound("project", id)
		}
		return nil, fmt.Errorf("get project: %w", err)
	}

	return project, nil
}

// Exists checks that a project is present
func (r *PostgresProjectRepository) Exists(ctx context.Context, id int64) (err error) {
	defer func(start time.Time) { observe("exists", r.tables.Projects, start, err) }(time.Now())

	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, r.tables.Projects)

	var exists bool
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return fmt.Errorf("check project: %w", err)
	}
	if !exists {
		return domain.NewNotFound("project", id)
	}
	return nil
}

// List retrieves projects matching the filter, newest first
func (r *PostgresProjectRepository) List(ctx context.Context, filter models.ProjectFilter) (_ []models.Project, err error) {
	defer func(start time.Time) { observe("list", r.tables.Projects, start, err) }(time.Now())

	var conditions []string
	var args []any

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Priority != nil {
		args = append(args, string(*filter.Priority))
		conditions = append(conditions, fmt.Sprintf("priority = $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	args = append(args, filter.Limit, filter.Skip)
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		%s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, projectColumns, r.tables.Projects, where, len(args)-1, len(args))

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, *project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}

	return projects, nil
}

// Update applies the supplied fields only and bumps updated_at
func (r *PostgresProjectRepository) Update(ctx context.Context, id int64, patch *models.ProjectPatch) (err error) {
	defer func(start time.Time) { observe("update", r.tables.Projects, start, err) }(time.Now())

	var b setBuilder
	if patch.Name != nil {
		b.set("name", *patch.Name)
	}
	switch {
	case patch.ClearDescription:
		b.setNull("description")
	case patch.Description != nil:
		b.set("description", *patch.Description)
	}
	if patch.Status != nil {
		b.set("status", string(*patch.Status))
	}
	if patch.Progress != nil {
		b.set("progress", *patch.Progress)
	}
	switch {
	case patch.ClearDeadline:
		b.setNull("deadline")
	case patch.Deadline != nil:
		b.set("deadline", dateParam(patch.Deadline))
	}
	if patch.Priority != nil {
		b.set("priority", string(*patch.Priority))
	}
	switch {
	case patch.ClearBudget:
		b.setNull("budget")
	case patch.Budget != nil:
		b.set("budget", *patch.Budget)
	}
	switch {
	case patch.ClearTeam:
		b.setNull("team")
	case patch.Team != nil:
		team, err := teamParam(*patch.Team)
		if err != nil {
			return err
		}
		b.set("team", team)
	}
	switch {
	case patch.ClearCategory:
		b.setNull("category")
	case patch.Category != nil:
		b.set("category", *patch.Category)
	}

	if b.empty() {
		return nil
	}

	query := b.build(r.tables.Projects, "id = "+b.arg(id))

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, b.args...)
	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("project with name '%s' already exists", deref(patch.Name)),
				ResourceType: "project",
				Field:        "name",
			}
		}
		if IsPgCheckViolation(err) {
			return checkViolationError(err)
		}
		return fmt.Errorf("update project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.NewNotFound("project", id)
	}

	return nil
}

// Delete removes a project. The tasks foreign key cascades.
func (r *PostgresProjectRepository) Delete(ctx context.Context, id int64) (err error) {
	defer func(start time.Time) { observe("delete", r.tables.Projects, start, err) }(time.Now())

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.NewNotFound("project", id)
	}

	return nil
}

// scanProject reads one row selected with projectColumns
func scanProject(row pgx.Row) (*models.Project, error) {
	var (
		p        models.Project
		status   string
		priority string
		deadline pgtype.Date
		team     []byte
	)

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&status,
		&p.Progress,
		&deadline,
		&priority,
		&p.Budget,
		&team,
		&p.Category,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Status = models.ProjectStatus(status)
	p.Priority = models.Priority(priority)
	p.Deadline = dateFromPg(deadline)
	if p.Team, err = teamFromPg(team); err != nil {
		return nil, err
	}
	p.Tasks = []models.Task{}

	return &p, nil
}

// nullIfEmpty lets an unset enum fall through to the column default
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
