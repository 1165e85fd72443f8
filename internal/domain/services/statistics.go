package services

import (
	"context"

	"projecthub/internal/domain/models"
)

// StatisticsService computes the dashboard rollup
type StatisticsService interface {
	GetStatistics(ctx context.Context) (*models.ProjectStats, error)
}
