package memory

import (
	"context"

	"projecthub/internal/domain/models"
	"projecthub/internal/domain/repositories"
)

// StatisticsRepository implements repositories.StatisticsRepository in memory
type StatisticsRepository struct {
	store *Store
}

// NewStatisticsRepository creates a statistics repository backed by store
func NewStatisticsRepository(store *Store) repositories.StatisticsRepository {
	return &StatisticsRepository{store: store}
}

func (r *StatisticsRepository) Collect(ctx context.Context) (*models.ProjectStats, error) {
	var stats models.ProjectStats
	err := r.store.with(ctx, func() error {
		var progressSum int
		for _, p := range r.store.projects {
			stats.TotalProjects++
			progressSum += p.Progress
			if p.Budget != nil {
				stats.TotalBudget += *p.Budget
			}
			switch p.Status {
			case models.ProjectStatusPlanning:
				stats.PlanningProjects++
			case models.ProjectStatusInProgress:
				stats.InProgressProjects++
			case models.ProjectStatusCompleted:
				stats.CompletedProjects++
			}
		}
		if stats.TotalProjects > 0 {
			stats.AverageProgress = float64(progressSum) / float64(stats.TotalProjects)
		}

		for _, t := range r.store.tasks {
			stats.TotalTasks++
			switch t.Status {
			case models.TaskStatusPending:
				stats.PendingTasks++
			case models.TaskStatusInProgress:
				stats.InProgressTasks++
			case models.TaskStatusCompleted:
				stats.CompletedTasks++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
