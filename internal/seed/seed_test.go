package seed

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projecthub/internal/domain/services"
	"projecthub/internal/repository/memory"
	"projecthub/internal/service"
)

func newServices() (services.ProjectService, services.TaskService) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore()
	projectRepo := memory.NewProjectRepository(store)
	taskRepo := memory.NewTaskRepository(store)
	tx := memory.NewTransactionManager(store)
	return service.NewProjectService(projectRepo, taskRepo, tx, logger),
		service.NewTaskService(projectRepo, taskRepo, tx, logger)
}

func TestSeeder_RunIsRepeatable(t *testing.T) {
	ctx := context.Background()
	projects, tasks := newServices()
	seeder := NewSeeder(projects, tasks, slog.New(slog.NewTextHandler(io.Discard, nil)))

	data := DemoData()
	wantTasks := 0
	for _, ps := range data {
		wantTasks += len(ps.Tasks)
	}

	first, err := seeder.Run(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, Result{Projects: len(data), Tasks: wantTasks}, first)

	second, err := seeder.Run(ctx, DemoData())
	require.NoError(t, err)
	assert.Equal(t, Result{Skipped: len(data)}, second)

	list, err := projects.ListProjects(ctx, &services.ListProjectsRequest{})
	require.NoError(t, err)
	assert.Len(t, list, len(data))
}

func TestSeeder_InvalidSeedFails(t *testing.T) {
	projects, tasks := newServices()
	seeder := NewSeeder(projects, tasks, slog.New(slog.NewTextHandler(io.Discard, nil)))

	result, err := seeder.Run(context.Background(), []ProjectSeed{
		{Project: services.CreateProjectRequest{Name: "Valid project"}},
		{Project: services.CreateProjectRequest{Name: "x"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `seed project "x"`)
	assert.Equal(t, 1, result.Projects)
}
