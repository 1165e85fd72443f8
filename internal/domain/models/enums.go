package models

import "fmt"

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectStatusPlanning   ProjectStatus = "planning"
	ProjectStatusInProgress ProjectStatus = "in-progress"
	ProjectStatusCompleted  ProjectStatus = "completed"
)

// ProjectStatuses lists every accepted project status in display order.
var ProjectStatuses = []ProjectStatus{
	ProjectStatusPlanning,
	ProjectStatusInProgress,
	ProjectStatusCompleted,
}

// Valid reports whether s is one of the known project statuses.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusInProgress, ProjectStatusCompleted:
		return true
	}
	return false
}

// ParseProjectStatus converts raw input into a ProjectStatus.
func ParseProjectStatus(raw string) (ProjectStatus, error) {
	s := ProjectStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("must be one of: planning, in-progress, completed")
	}
	return s, nil
}

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// TaskStatuses lists every accepted task status.
var TaskStatuses = []TaskStatus{
	TaskStatusPending,
	TaskStatusInProgress,
	TaskStatusCompleted,
}

// Valid reports whether s is one of the known task statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// ParseTaskStatus converts raw input into a TaskStatus.
func ParseTaskStatus(raw string) (TaskStatus, error) {
	s := TaskStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("must be one of: pending, in-progress, completed")
	}
	return s, nil
}

// Priority is shared by projects and tasks.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Priorities lists every accepted priority from lowest to highest.
var Priorities = []Priority{
	PriorityLow,
	PriorityMedium,
	PriorityHigh,
	PriorityCritical,
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	return p.Rank() > 0
}

// Rank orders priorities: low=1 .. critical=4. Unknown values rank 0.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	case PriorityCritical:
		return 4
	}
	return 0
}

// ParsePriority converts raw input into a Priority.
func ParsePriority(raw string) (Priority, error) {
	p := Priority(raw)
	if !p.Valid() {
		return "", fmt.Errorf("must be one of: low, medium, high, critical")
	}
	return p, nil
}
