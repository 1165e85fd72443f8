package models

import (
	"encoding/json"
	"time"
)

// Project is the top-level unit of work. Tasks is populated on every read.
type Project struct {
	ID          int64         `json:"id" db:"id"`
	Name        string        `json:"name" db:"name"`
	Description *string       `json:"description" db:"description"`
	Status      ProjectStatus `json:"status" db:"status"`
	Progress    int           `json:"progress" db:"progress"`
	Deadline    *Date         `json:"deadline" db:"deadline"`
	Priority    Priority      `json:"priority" db:"priority"`
	Budget      *float64      `json:"budget" db:"budget"`
	Team        []string      `json:"team" db:"team"`
	Category    *string       `json:"category" db:"category"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`
	Tasks       []Task        `json:"tasks"`
}

// MarshalJSON keeps team and tasks as arrays on the wire even when unset.
func (p Project) MarshalJSON() ([]byte, error) {
	type alias Project
	out := alias(p)
	if out.Team == nil {
		out.Team = []string{}
	}
	if out.Tasks == nil {
		out.Tasks = []Task{}
	}
	return json.Marshal(out)
}

// ProjectFilter narrows a project listing. Zero values mean "no filter".
type ProjectFilter struct {
	Status   *ProjectStatus
	Priority *Priority
	Skip     int
	Limit    int
}

// ProjectPatch is a normalized partial update. A nil field is left
// unchanged; for nullable columns the Clear* flags set the column to NULL.
type ProjectPatch struct {
	Name        *string
	Description *string
	Status      *ProjectStatus
	Progress    *int
	Deadline    *Date
	Priority    *Priority
	Budget      *float64
	Team        *[]string
	Category    *string

	ClearDescription bool
	ClearDeadline    bool
	ClearBudget      bool
	ClearTeam        bool
	ClearCategory    bool
}

// IsEmpty reports whether the patch changes nothing.
func (p *ProjectPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Status == nil &&
		p.Progress == nil && p.Deadline == nil && p.Priority == nil &&
		p.Budget == nil && p.Team == nil && p.Category == nil &&
		!p.ClearDescription && !p.ClearDeadline && !p.ClearBudget &&
		!p.ClearTeam && !p.ClearCategory
}
