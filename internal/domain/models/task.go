package models

import "time"

// Task is a unit of work owned by exactly one project.
type Task struct {
	ID          int64      `json:"id" db:"id"`
	ProjectID   int64      `json:"project_id" db:"project_id"`
	Title       string     `json:"title" db:"title"`
	Description *string    `json:"description" db:"description"`
	Status      TaskStatus `json:"status" db:"status"`
	Deadline    *Date      `json:"deadline" db:"deadline"`
	Assignee    *string    `json:"assignee" db:"assignee"`
	Priority    Priority   `json:"priority" db:"priority"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// TaskFilter narrows a project-scoped task listing.
type TaskFilter struct {
	Status *TaskStatus
}

// TaskPatch is a normalized partial update for a task.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *TaskStatus
	Deadline    *Date
	Assignee    *string
	Priority    *Priority

	ClearDescription bool
	ClearDeadline    bool
	ClearAssignee    bool
}

// IsEmpty reports whether the patch changes nothing.
func (p *TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Deadline == nil && p.Assignee == nil && p.Priority == nil &&
		!p.ClearDescription && !p.ClearDeadline && !p.ClearAssignee
}
