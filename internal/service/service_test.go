package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"projecthub/internal/domain"
	"projecthub/internal/domain/models"
	"projecthub/internal/domain/services"
	"projecthub/internal/repository/memory"
)

type fixture struct {
	projects services.ProjectService
	tasks    services.TaskService
	stats    services.StatisticsService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore()
	projectRepo := memory.NewProjectRepository(store)
	taskRepo := memory.NewTaskRepository(store)
	txManager := memory.NewTransactionManager(store)

	return &fixture{
		projects: NewProjectService(projectRepo, taskRepo, txManager, logger),
		tasks:    NewTaskService(projectRepo, taskRepo, txManager, logger),
		stats:    NewStatisticsService(memory.NewStatisticsRepository(store), txManager, logger),
	}
}

func (f *fixture) createProject(t *testing.T, name string) *models.Project {
	t.Helper()
	p, err := f.projects.CreateProject(context.Background(), &services.CreateProjectRequest{Name: name})
	require.NoError(t, err)
	return p
}

func ptr[T any](v T) *T { return &v }

// fieldErrors asserts err is a validation failure and returns its field map.
func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	return verr.Fields
}
