package repositories

import (
	"context"

	"projecthub/internal/domain/models"
)

// StatisticsRepository computes aggregate rollups over projects and tasks
type StatisticsRepository interface {
	// Collect reads every counter from one consistent snapshot. Averages and
	// sums over empty tables are reported as 0.
	Collect(ctx context.Context) (*models.ProjectStats, error)
}
