package handler

import (
	"projecthub/internal/domain/services"
	"projecthub/internal/httputil"
)

// updateProjectBody is the wire form of a project update. Each field
// distinguishes absent, null and a value.
type updateProjectBody struct {
	Name        httputil.Optional[string]   `json:"name"`
	Description httputil.Optional[string]   `json:"description"`
	Status      httputil.Optional[string]   `json:"status"`
	Progress    httputil.Optional[int]      `json:"progress"`
	Deadline    httputil.Optional[string]   `json:"deadline"`
	Priority    httputil.Optional[string]   `json:"priority"`
	Budget      httputil.Optional[float64]  `json:"budget"`
	Team        httputil.Optional[[]string] `json:"team"`
	Category    httputil.Optional[string]   `json:"category"`
}

func (b *updateProjectBody) toRequest() *services.UpdateProjectRequest {
	return &services.UpdateProjectRequest{
		Name:        toOptional(b.Name),
		Description: toOptional(b.Description),
		Status:      toOptional(b.Status),
		Progress:    toOptional(b.Progress),
		Deadline:    toOptional(b.Deadline),
		Priority:    toOptional(b.Priority),
		Budget:      toOptional(b.Budget),
		Team:        toOptional(b.Team),
		Category:    toOptional(b.Category),
	}
}

// updateTaskBody is the wire form of a task update
type updateTaskBody struct {
	Title       httputil.Optional[string] `json:"title"`
	Description httputil.Optional[string] `json:"description"`
	Status      httputil.Optional[string] `json:"status"`
	Deadline    httputil.Optional[string] `json:"deadline"`
	Assignee    httputil.Optional[string] `json:"assignee"`
	Priority    httputil.Optional[string] `json:"priority"`
}

func (b *updateTaskBody) toRequest() *services.UpdateTaskRequest {
	return &services.UpdateTaskRequest{
		Title:       toOptional(b.Title),
		Description: toOptional(b.Description),
		Status:      toOptional(b.Status),
		Deadline:    toOptional(b.Deadline),
		Assignee:    toOptional(b.Assignee),
		Priority:    toOptional(b.Priority),
	}
}
