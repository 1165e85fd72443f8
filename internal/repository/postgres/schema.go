package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"projecthub/internal/domain/repositories"
)

// EnsureSchema creates the projects and tasks tables and their indexes if
// they don't exist. It is idempotent and safe to run on every startup.
func EnsureSchema(ctx context.Context, db repositories.DBTX, tables *TableNames, logger *slog.Logger) error {
	createProjects := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %[1]s (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT,
			status VARCHAR(20) NOT NULL DEFAULT 'planning',
			progress INTEGER NOT NULL DEFAULT 0,
			deadline DATE,
			priority VARCHAR(20) NOT NULL DEFAULT 'medium',
			budget NUMERIC(15, 2),
			team JSONB,
			category VARCHAR(100),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT %[1]s_name_key UNIQUE (name),
			CONSTRAINT %[1]s_status_check CHECK (status IN ('planning', 'in-progress', 'completed')),
			CONSTRAINT %[1]s_progress_check CHECK (progress BETWEEN 0 AND 100),
			CONSTRAINT %[1]s_priority_check CHECK (priority IN ('low', 'medium', 'high', 'critical')),
			CONSTRAINT %[1]s_budget_check CHECK (budget IS NULL OR (budget >= 0 AND budget <= 10000000))
		)
	`, tables.Projects)

	createTasks := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %[1]s (
			id BIGSERIAL PRIMARY KEY,
			project_id BIGINT NOT NULL REFERENCES %[2]s(id) ON DELETE CASCADE,
			title VARCHAR(255) NOT NULL,
			description TEXT,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			deadline DATE,
			assignee VARCHAR(255),
			priority VARCHAR(20) NOT NULL DEFAULT 'medium',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT %[1]s_status_check CHECK (status IN ('pending', 'in-progress', 'completed')),
			CONSTRAINT %[1]s_priority_check CHECK (priority IN ('low', 'medium', 'high', 'critical'))
		)
	`, tables.Tasks, tables.Projects)

	statements := []string{
		createProjects,
		createTasks,
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%[1]sprojects_status ON %[2]s(status)`, tables.Prefix, tables.Projects),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%[1]sprojects_priority ON %[2]s(priority)`, tables.Prefix, tables.Projects),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%[1]sprojects_created_at ON %[2]s(created_at DESC)`, tables.Prefix, tables.Projects),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%[1]stasks_project_id ON %[2]s(project_id)`, tables.Prefix, tables.Tasks),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%[1]stasks_status ON %[2]s(status)`, tables.Prefix, tables.Tasks),
	}

	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	logger.Debug("schema ensured", "projects", tables.Projects, "tasks", tables.Tasks)
	return nil
}

// DropSchema drops both tables, children first.
func DropSchema(ctx context.Context, db repositories.DBTX, tables *TableNames, logger *slog.Logger) error {
	for _, table := range []string{tables.Tasks, tables.Projects} {
		if _, err := db.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
		logger.Info("dropped table", "table", table)
	}
	return nil
}

// ClearData removes every row but keeps the schema. Identity sequences restart.
func ClearData(ctx context.Context, db repositories.DBTX, tables *TableNames) error {
	query := fmt.Sprintf("TRUNCATE %s, %s RESTART IDENTITY", tables.Tasks, tables.Projects)
	if _, err := db.Exec(ctx, query); err != nil {
		return fmt.Errorf("clear data: %w", err)
	}
	return nil
}
