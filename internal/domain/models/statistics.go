package models

// ProjectStats is the aggregate rollup served by GET /api/statistics.
type ProjectStats struct {
	TotalProjects      int64   `json:"total_projects"`
	PlanningProjects   int64   `json:"planning_projects"`
	InProgressProjects int64   `json:"in_progress_projects"`
	CompletedProjects  int64   `json:"completed_projects"`
	TotalTasks         int64   `json:"total_tasks"`
	PendingTasks       int64   `json:"pending_tasks"`
	InProgressTasks    int64   `json:"in_progress_tasks"`
	CompletedTasks     int64   `json:"completed_tasks"`
	AverageProgress    float64 `json:"average_progress"`
	TotalBudget        float64 `json:"total_budget"`
}
