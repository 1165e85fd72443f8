package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projecthub/internal/domain"
	"projecthub/internal/domain/models"
	"projecthub/internal/domain/services"
)

func TestCreateTaskDefaults(t *testing.T) {
	f := newFixture(t)
	p := f.createProject(t, "Tasks home")

	task, err := f.tasks.CreateTask(context.Background(), p.ID, &services.CreateTaskRequest{Title: " Write docs "})
	require.NoError(t, err)

	assert.Equal(t, p.ID, task.ProjectID)
	assert.Equal(t, "Write docs", task.Title)
	assert.Equal(t, models.TaskStatusPending, task.Status)
	assert.Equal(t, models.PriorityMedium, task.Priority)
	assert.Nil(t, task.Assignee)
	assert.NotZero(t, task.ID)
}

func TestCreateTaskMissingProjectWinsOverValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.tasks.CreateTask(context.Background(), 42, &services.CreateTaskRequest{Title: "x", Status: ptr("bogus")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateTaskValidation(t *testing.T) {
	f := newFixture(t)
	p := f.createProject(t, "Validation")

	tests := []struct {
		name  string
		req   services.CreateTaskRequest
		field string
	}{
		{name: "missing title", req: services.CreateTaskRequest{}, field: "title"},
		{name: "short title", req: services.CreateTaskRequest{Title: "ab"}, field: "title"},
		{name: "project-only status", req: services.CreateTaskRequest{Title: "Valid", Status: ptr("planning")}, field: "status"},
		{name: "bad priority", req: services.CreateTaskRequest{Title: "Valid", Priority: ptr("HIGH")}, field: "priority"},
		{name: "bad deadline", req: services.CreateTaskRequest{Title: "Valid", Deadline: ptr("31/12/2025")}, field: "deadline"},
		{name: "long description", req: services.CreateTaskRequest{Title: "Valid", Description: ptr(strings.Repeat("d", 1001))}, field: "description"},
		{name: "long assignee", req: services.CreateTaskRequest{Title: "Valid", Assignee: ptr(strings.Repeat("a", 256))}, field: "assignee"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := f.tasks.CreateTask(context.Background(), p.ID, &req)
			assert.Contains(t, fieldErrors(t, err), tt.field)
		})
	}
}

func TestListTasksOrderingAndFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createProject(t, "Ordering")

	create := func(title, priority, status string, deadline *string) {
		_, err := f.tasks.CreateTask(ctx, p.ID, &services.CreateTaskRequest{
			Title:    title,
			Priority: ptr(priority),
			Status:   ptr(status),
			Deadline: deadline,
		})
		require.NoError(t, err)
	}
	create("Low undated", "low", "pending", nil)
	create("High later", "high", "pending", ptr("2025-06-01"))
	create("High sooner", "high", "completed", ptr("2025-03-01"))
	create("High undated", "high", "pending", nil)
	create("Critical", "critical", "in-progress", nil)

	tasks, err := f.tasks.ListTasks(ctx, p.ID, "")
	require.NoError(t, err)

	var titles []string
	for _, task := range tasks {
		titles = append(titles, task.Title)
	}
	assert.Equal(t, []string{"Critical", "High sooner", "High later", "High undated", "Low undated"}, titles)

	pending, err := f.tasks.ListTasks(ctx, p.ID, "pending")
	require.NoError(t, err)
	assert.Len(t, pending, 3)

	_, err = f.tasks.ListTasks(ctx, p.ID, "blocked")
	assert.Contains(t, fieldErrors(t, err), "status")

	_, err = f.tasks.ListTasks(ctx, 999, "blocked")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateTask(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createProject(t, "Updates")

	task, err := f.tasks.CreateTask(ctx, p.ID, &services.CreateTaskRequest{
		Title:    "Original",
		Assignee: ptr("alice"),
		Deadline: ptr("2025-01-31"),
	})
	require.NoError(t, err)

	err = f.tasks.UpdateTask(ctx, p.ID, task.ID, &services.UpdateTaskRequest{
		Status:   models.Some("completed"),
		Assignee: models.Null[string](),
	})
	require.NoError(t, err)

	tasks, err := f.tasks.ListTasks(ctx, p.ID, "completed")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Original", tasks[0].Title)
	assert.Nil(t, tasks[0].Assignee)
	require.NotNil(t, tasks[0].Deadline)
	assert.Equal(t, "2025-01-31", tasks[0].Deadline.String())
}

func TestUpdateTaskErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.createProject(t, "Owner")
	b := f.createProject(t, "Stranger")

	task, err := f.tasks.CreateTask(ctx, a.ID, &services.CreateTaskRequest{Title: "Owned"})
	require.NoError(t, err)

	err = f.tasks.UpdateTask(ctx, b.ID, task.ID, &services.UpdateTaskRequest{Title: models.Some("Stolen")})
	assert.ErrorIs(t, err, domain.ErrNotFound, "task must belong to the project in the path")

	err = f.tasks.UpdateTask(ctx, 999, task.ID, &services.UpdateTaskRequest{Title: models.Null[string]()})
	assert.ErrorIs(t, err, domain.ErrNotFound, "missing project reported before payload")

	err = f.tasks.UpdateTask(ctx, a.ID, task.ID, &services.UpdateTaskRequest{Title: models.Null[string]()})
	assert.Equal(t, "cannot be null", fieldErrors(t, err)["title"])

	err = f.tasks.UpdateTask(ctx, a.ID, 999, &services.UpdateTaskRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteTask(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.createProject(t, "Keeper")
	b := f.createProject(t, "Other")

	task, err := f.tasks.CreateTask(ctx, a.ID, &services.CreateTaskRequest{Title: "Remove me"})
	require.NoError(t, err)

	assert.ErrorIs(t, f.tasks.DeleteTask(ctx, b.ID, task.ID), domain.ErrNotFound)
	require.NoError(t, f.tasks.DeleteTask(ctx, a.ID, task.ID))
	assert.ErrorIs(t, f.tasks.DeleteTask(ctx, a.ID, task.ID), domain.ErrNotFound)
}

func TestUpdateTaskEmptyPatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createProject(t, "Idle")

	task, err := f.tasks.CreateTask(ctx, p.ID, &services.CreateTaskRequest{
		Title:    "Untouched",
		Priority: ptr("high"),
		Assignee: ptr("bob"),
	})
	require.NoError(t, err)

	require.NoError(t, f.tasks.UpdateTask(ctx, p.ID, task.ID, &services.UpdateTaskRequest{}))

	tasks, err := f.tasks.ListTasks(ctx, p.ID, "")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	got := tasks[0]
	assert.Equal(t, task.UpdatedAt, got.UpdatedAt)
	assert.Equal(t, task.Title, got.Title)
	assert.Equal(t, task.Status, got.Status)
	assert.Equal(t, task.Priority, got.Priority)
	assert.Equal(t, task.Assignee, got.Assignee)
	assert.Equal(t, task.Description, got.Description)
	assert.Equal(t, task.Deadline, got.Deadline)
}

func TestTaskDecodeFailuresReportedAfterProjectCheck(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createProject(t, "Typed")
	decodeErrs := map[string]string{"title": "must be of type string"}

	_, err := f.tasks.CreateTask(ctx, 999, &services.CreateTaskRequest{FieldErrors: decodeErrs})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.tasks.CreateTask(ctx, p.ID, &services.CreateTaskRequest{FieldErrors: decodeErrs})
	assert.Equal(t, "must be of type string", fieldErrors(t, err)["title"])

	task, err := f.tasks.CreateTask(ctx, p.ID, &services.CreateTaskRequest{Title: "Real"})
	require.NoError(t, err)

	err = f.tasks.UpdateTask(ctx, 999, task.ID, &services.UpdateTaskRequest{FieldErrors: decodeErrs})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = f.tasks.UpdateTask(ctx, p.ID, task.ID, &services.UpdateTaskRequest{FieldErrors: decodeErrs})
	assert.Equal(t, "must be of type string", fieldErrors(t, err)["title"])
}
