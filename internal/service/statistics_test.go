package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projecthub/internal/domain/models"
	"projecthub/internal/domain/services"
)

func TestStatisticsEmpty(t *testing.T) {
	f := newFixture(t)

	stats, err := f.stats.GetStatistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.ProjectStats{}, *stats)
}

func TestStatisticsRollup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p1, err := f.projects.CreateProject(ctx, &services.CreateProjectRequest{Name: "One", Status: ptr("in-progress"), Budget: ptr(1000.5)})
	require.NoError(t, err)
	p2, err := f.projects.CreateProject(ctx, &services.CreateProjectRequest{Name: "Two", Status: ptr("completed"), Budget: ptr(499.5)})
	require.NoError(t, err)
	p3, err := f.projects.CreateProject(ctx, &services.CreateProjectRequest{Name: "Three"})
	require.NoError(t, err)

	for id, progress := range map[int64]int{p1.ID: 30, p2.ID: 100, p3.ID: 20} {
		require.NoError(t, f.projects.UpdateProject(ctx, id, &services.UpdateProjectRequest{Progress: models.Some(progress)}))
	}

	for _, status := range []string{"pending", "in-progress", "completed", "completed"} {
		_, err := f.tasks.CreateTask(ctx, p1.ID, &services.CreateTaskRequest{Title: "Task " + status, Status: ptr(status)})
		require.NoError(t, err)
	}

	stats, err := f.stats.GetStatistics(ctx)
	require.NoError(t, err)

	assert.Equal(t, models.ProjectStats{
		TotalProjects:      3,
		PlanningProjects:   1,
		InProgressProjects: 1,
		CompletedProjects:  1,
		TotalTasks:         4,
		PendingTasks:       1,
		InProgressTasks:    1,
		CompletedTasks:     2,
		AverageProgress:    50,
		TotalBudget:        1500,
	}, *stats)
}
