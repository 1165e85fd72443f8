package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"projecthub/internal/domain/models"
	"projecthub/internal/domain/repositories"
)

// PostgresStatisticsRepository implements the StatisticsRepository interface
type PostgresStatisticsRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewStatisticsRepository creates a new statistics repository
func NewStatisticsRepository(config *RepositoryConfig) repositories.StatisticsRepository {
	return &PostgresStatisticsRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Collect aggregates both tables in a single statement
func (r *PostgresStatisticsRepository) Collect(ctx context.Context) (_ *models.ProjectStats, err error) {
	defer func(start time.Time) { observe("stats", r.tables.Projects, start, err) }(time.Now())

	query := fmt.Sprintf(`
		WITH p AS (
			SELECT
				COUNT(*) AS total,
				COUNT(*) FILTER (WHERE status = 'planning') AS planning,
				COUNT(*) FILTER (WHERE status = 'in-progress') AS in_progress,
				COUNT(*) FILTER (WHERE status = 'completed') AS completed,
				COALESCE(AVG(progress), 0)::float8 AS avg_progress,
				COALESCE(SUM(budget), 0)::float8 AS total_budget
			FROM %s
		), t AS (
			SELECT
				COUNT(*) AS total,
				COUNT(*) FILTER (WHERE status = 'pending') AS pending,
				COUNT(*) FILTER (WHERE status = 'in-progress') AS in_progress,
				COUNT(*) FILTER (WHERE status = 'completed') AS completed
			FROM %s
		)
		SELECT p.total, p.planning, p.in_progress, p.completed, p.avg_progress, p.total_budget,
		       t.total, t.pending, t.in_progress, t.completed
		FROM p CROSS JOIN t
	`, r.tables.Projects, r.tables.Tasks)

	var stats models.ProjectStats
	executor := GetExecutor(ctx, r.pool)
	err = executor.QueryRow(ctx, query).Scan(
		&stats.TotalProjects,
		&stats.PlanningProjects,
		&stats.InProgressProjects,
		&stats.CompletedProjects,
		&stats.AverageProgress,
		&stats.TotalBudget,
		&stats.TotalTasks,
		&stats.PendingTasks,
		&stats.InProgressTasks,
		&stats.CompletedTasks,
	)
	if err != nil {
		return nil, fmt.Errorf("collect statistics: %w", err)
	}

	return &stats, nil
}
