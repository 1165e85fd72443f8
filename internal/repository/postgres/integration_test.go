package postgres

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projecthub/internal/domain"
	"projecthub/internal/domain/models"
	"projecthub/internal/domain/repositories"
)

// testEnv holds repositories over freshly created, uniquely prefixed tables.
type testEnv struct {
	projects repositories.ProjectRepository
	tasks    repositories.TaskRepository
	stats    repositories.StatisticsRepository
	tx       repositories.TransactionManager
}

// newTestEnv connects to PROJECTHUB_TEST_DATABASE_URL. Tests are skipped
// when it is unset.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	url := os.Getenv("PROJECTHUB_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("PROJECTHUB_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	pool, err := CreateConnectionPool(ctx, url, PoolOptions{MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	tables := NewTableNames(fmt.Sprintf("it_%d_", time.Now().UnixNano()))
	require.NoError(t, EnsureSchema(ctx, pool, tables, logger))
	t.Cleanup(func() {
		_ = DropSchema(context.Background(), pool, tables, logger)
	})

	cfg := &RepositoryConfig{Pool: pool, Tables: tables, Logger: logger}
	return &testEnv{
		projects: NewProjectRepository(cfg),
		tasks:    NewTaskRepository(cfg),
		stats:    NewStatisticsRepository(cfg),
		tx:       NewTransactionManager(pool, logger),
	}
}

func TestProjectRepository_Integration(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	budget := 2500.5
	p := &models.Project{
		Name:     "Integration",
		Status:   models.ProjectStatusInProgress,
		Progress: 40,
		Priority: models.PriorityHigh,
		Budget:   &budget,
		Team:     []string{"alice", "bob"},
	}
	require.NoError(t, env.projects.Create(ctx, p))
	assert.NotZero(t, p.ID)
	assert.Equal(t, 0, p.Progress, "progress always starts at zero")
	assert.False(t, p.CreatedAt.IsZero())

	got, err := env.projects.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Integration", got.Name)
	assert.Equal(t, []string{"alice", "bob"}, got.Team)
	require.NotNil(t, got.Budget)
	assert.InDelta(t, 2500.5, *got.Budget, 0.001)
	assert.Nil(t, got.Deadline)

	err = env.projects.Create(ctx, &models.Project{Name: "Integration"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	deadline := models.NewDate(2030, time.January, 15)
	renamed := "Renamed"
	progress := 40
	require.NoError(t, env.projects.Update(ctx, p.ID, &models.ProjectPatch{
		Name:        &renamed,
		Progress:    &progress,
		Deadline:    &deadline,
		ClearBudget: true,
		ClearTeam:   true,
	}))

	got, err = env.projects.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	require.NotNil(t, got.Deadline)
	assert.Equal(t, deadline, *got.Deadline)
	assert.Nil(t, got.Budget)
	assert.Equal(t, []string{}, got.Team)
	assert.Equal(t, 40, got.Progress)

	require.NoError(t, env.projects.Update(ctx, p.ID, &models.ProjectPatch{}), "empty patch issues no statement")
	unchanged, err := env.projects.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, got.UpdatedAt, unchanged.UpdatedAt)

	status := models.ProjectStatusInProgress
	list, err := env.projects.List(ctx, models.ProjectFilter{Status: &status, Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, p.ID, list[0].ID)

	assert.ErrorIs(t, env.projects.Update(ctx, p.ID+1000, &models.ProjectPatch{Name: &renamed}), domain.ErrNotFound)
}

func TestTaskRepository_Integration(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := &models.Project{Name: "Tasks"}
	require.NoError(t, env.projects.Create(ctx, p))

	early := models.NewDate(2030, time.March, 1)
	late := models.NewDate(2030, time.June, 1)
	for _, task := range []*models.Task{
		{ProjectID: p.ID, Title: "low", Priority: models.PriorityLow, Status: models.TaskStatusPending},
		{ProjectID: p.ID, Title: "high late", Priority: models.PriorityHigh, Status: models.TaskStatusPending, Deadline: &late},
		{ProjectID: p.ID, Title: "high early", Priority: models.PriorityHigh, Status: models.TaskStatusCompleted, Deadline: &early},
		{ProjectID: p.ID, Title: "critical", Priority: models.PriorityCritical, Status: models.TaskStatusPending},
	} {
		require.NoError(t, env.tasks.Create(ctx, task))
	}

	tasks, err := env.tasks.ListByProject(ctx, p.ID, models.TaskFilter{})
	require.NoError(t, err)
	titles := make([]string, len(tasks))
	for i, task := range tasks {
		titles[i] = task.Title
	}
	assert.Equal(t, []string{"critical", "high early", "high late", "low"}, titles)

	completed := models.TaskStatusCompleted
	done, err := env.tasks.ListByProject(ctx, p.ID, models.TaskFilter{Status: &completed})
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, "high early", done[0].Title)

	require.NoError(t, env.tasks.Update(ctx, p.ID, done[0].ID, &models.TaskPatch{}))
	same, err := env.tasks.GetByID(ctx, p.ID, done[0].ID)
	require.NoError(t, err)
	assert.Equal(t, done[0].UpdatedAt, same.UpdatedAt)

	other := &models.Project{Name: "Other"}
	require.NoError(t, env.projects.Create(ctx, other))
	_, err = env.tasks.GetByID(ctx, other.ID, tasks[0].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "task must not be visible through another project")

	err = env.tasks.Create(ctx, &models.Task{ProjectID: p.ID + 1000, Title: "orphan", Priority: models.PriorityLow, Status: models.TaskStatusPending})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	stats, err := env.stats.Collect(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalProjects)
	assert.Equal(t, int64(4), stats.TotalTasks)
	assert.Equal(t, int64(3), stats.PendingTasks)
	assert.Equal(t, int64(1), stats.CompletedTasks)

	require.NoError(t, env.projects.Delete(ctx, p.ID))
	grouped, err := env.tasks.ListByProjects(ctx, []int64{p.ID})
	require.NoError(t, err)
	assert.Empty(t, grouped[p.ID], "tasks should cascade with their project")
}

func TestTransactionManager_Integration(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := env.tx.ExecTx(ctx, func(ctx context.Context) error {
		if err := env.projects.Create(ctx, &models.Project{Name: "Rolled back"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	list, err := env.projects.List(ctx, models.ProjectFilter{Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, list)
}
