package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"projecthub/internal/domain"
	"projecthub/internal/domain/models"
	"projecthub/internal/domain/repositories"
)

const taskColumns = `id, project_id, title, description, status, deadline, assignee, priority, created_at, updated_at`

// taskOrder sorts by priority rank (critical first), then earliest deadline.
// Undated tasks sort last; id breaks ties so the order is stable.
const taskOrder = `
	ORDER BY CASE priority
		WHEN 'critical' THEN 4
		WHEN 'high' THEN 3
		WHEN 'medium' THEN 2
		ELSE 1
	END DESC, deadline ASC NULLS LAST, id ASC`

// PostgresTaskRepository implements the TaskRepository interface
type PostgresTaskRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(config *RepositoryConfig) repositories.TaskRepository {
	return &PostgresTaskRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a task under its project
func (r *PostgresTaskRepository) Create(ctx context.Context, task *models.Task) (err error) {
	defer func(start time.Time) { observe("create", r.tables.Tasks, start, err) }(time.Now())

	query := fmt.Sprintf(`
		INSERT INTO %s (project_id, title, description, status, deadline, assignee, priority)
		VALUES ($1, $2, $3, COALESCE($4, 'pending'), $5, $6, COALESCE($7, 'medium'))
		RETURNING %s
	`, r.tables.Tasks, taskColumns)

	executor := GetExecutor(ctx, r.pool)
	created, err := scanTask(executor.QueryRow(ctx, query,
		task.ProjectID,
		task.Title,
		task.Description,
		nullIfEmpty(string(task.Status)),
		dateParam(task.Deadline),
		task.Assignee,
		nullIfEmpty(string(task.Priority)),
	))
	if err != nil {
		if IsPgForeignKeyError(err) {
			return domain.NewNotFound("project", task.ProjectID)
		}
		if IsPgCheckViolation(err) {
			return checkViolationError(err)
		}
		return fmt.Errorf("create task: %w", err)
	}

	*task = *created
	return nil
}

// GetByID retrieves a task scoped to its project
func (r *PostgresTaskRepository) GetByID(ctx context.Context, projectID, id int64) (_ *models.Task, err error) {
	defer func(start time.Time) { observe("get", r.tables.Tasks, start, err) }(time.Now())

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 AND project_id = $2`, taskColumns, r.tables.Tasks)

	executor := GetExecutor(ctx, r.pool)
	task, err := scanTask(executor.QueryRow(ctx, query, id, projectID))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, domain.NewNotFound("task", id)
		}
		return nil, fmt.Errorf("get task: %w", err)
	}

	return task, nil
}

// ListByProject retrieves a project's tasks
func (r *PostgresTaskRepository) ListByProject(ctx context.Context, projectID int64, filter models.TaskFilter) (_ []models.Task, err error) {
	defer func(start time.Time) { observe("list", r.tables.Tasks, start, err) }(time.Now())

	args := []any{projectID}
	where := "WHERE project_id = $1"
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		where += " AND status = $2"
	}

	query := fmt.Sprintf(`SELECT %s FROM %s %s %s`, taskColumns, r.tables.Tasks, where, taskOrder)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}

	return tasks, nil
}

// ListByProjects fetches the tasks of several projects in one query
func (r *PostgresTaskRepository) ListByProjects(ctx context.Context, projectIDs []int64) (_ map[int64][]models.Task, err error) {
	defer func(start time.Time) { observe("list_many", r.tables.Tasks, start, err) }(time.Now())

	grouped := make(map[int64][]models.Task, len(projectIDs))
	if len(projectIDs) == 0 {
		return grouped, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE project_id = ANY($1) %s`, taskColumns, r.tables.Tasks, taskOrder)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, projectIDs)
	if err != nil {
		return nil, fmt.Errorf("list tasks for projects: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		grouped[task.ProjectID] = append(grouped[task.ProjectID], *task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}

	return grouped, nil
}

// Update applies the supplied fields to a task scoped by project
func (r *PostgresTaskRepository) Update(ctx context.Context, projectID, id int64, patch *models.TaskPatch) (err error) {
	defer func(start time.Time) { observe("update", r.tables.Tasks, start, err) }(time.Now())

	var b setBuilder
	if patch.Title != nil {
		b.set("title", *patch.Title)
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
	switch {
	case patch.ClearDeadline:
		b.setNull("deadline")
	case patch.Deadline != nil:
		b.set("deadline", dateParam(patch.Deadline))
	}
	switch {
	case patch.ClearAssignee:
		b.setNull("assignee")
	case patch.Assignee != nil:
		b.set("assignee", *patch.Assignee)
	}
	if patch.Priority != nil {
		b.set("priority", string(*patch.Priority))
	}

	if b.empty() {
		return nil
	}

	where := fmt.Sprintf("id = %s AND project_id = %s", b.arg(id), b.arg(projectID))
	query := b.build(r.tables.Tasks, where)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, b.args...)
	if err != nil {
		if IsPgCheckViolation(err) {
			return checkViolationError(err)
		}
		return fmt.Errorf("update task: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.NewNotFound("task", id)
	}

	return nil
}

// Delete removes a task only if it belongs to projectID
func (r *PostgresTaskRepository) Delete(ctx context.Context, projectID, id int64) (err error) {
	defer func(start time.Time) { observe("delete", r.tables.Tasks, start, err) }(time.Now())

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND project_id = $2`, r.tables.Tasks)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, projectID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.NewNotFound("task", id)
	}

	return nil
}

// scanTask reads one row selected with taskColumns
func scanTask(row pgx.Row) (*models.Task, error) {
	var (
		t        models.Task
		status   string
		priority string
		deadline pgtype.Date
	)

	err := row.Scan(
		&t.ID,
		&t.ProjectID,
		&t.Title,
		&t.Description,
		&status,
		&deadline,
		&t.Assignee,
		&priority,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Status = models.TaskStatus(status)
	t.Priority = models.Priority(priority)
	t.Deadline = dateFromPg(deadline)

	return &t, nil
}
