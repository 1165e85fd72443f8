package config

const (
	// MinNameLength applies to project names and task titles after trimming.
	MinNameLength = 3

	// MaxProjectNameLength fits the VARCHAR(255) name column.
	MaxProjectNameLength = 255

	// MaxProjectDescriptionLength bounds free-form project descriptions.
	MaxProjectDescriptionLength = 2000

	// MaxCategoryLength fits the VARCHAR(100) category column.
	MaxCategoryLength = 100

	// MaxTeamSize is the largest accepted team list.
	MaxTeamSize = 100

	// MaxBudget is the inclusive upper bound for a project budget.
	// NUMERIC(15,2) could hold more; the cap is a business rule.
	MaxBudget = 10_000_000

	// MaxProgress is the inclusive upper bound for project progress.
	MaxProgress = 100

	// MaxTaskTitleLength fits the VARCHAR(255) title column.
	MaxTaskTitleLength = 255

	// MaxTaskDescriptionLength bounds task descriptions.
	MaxTaskDescriptionLength = 1000

	// MaxAssigneeLength fits the VARCHAR(255) assignee column.
	MaxAssigneeLength = 255

	// DefaultPageLimit and MaxPageLimit bound project listings.
	DefaultPageLimit = 100
	MaxPageLimit     = 1000
)
