package service

import (
	"context"
	"log/slog"

	"projecthub/internal/domain/models"
	"projecthub/internal/domain/repositories"
	"projecthub/internal/domain/services"
)

// statisticsService implements the StatisticsService interface
type statisticsService struct {
	statsRepo repositories.StatisticsRepository
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewStatisticsService creates a new statistics service. txManager should
// provide snapshot isolation so every counter reflects the same instant.
func NewStatisticsService(
	statsRepo repositories.StatisticsRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.StatisticsService {
	return &statisticsService{
		statsRepo: statsRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// GetStatistics computes the rollup over all projects and tasks
func (s *statisticsService) GetStatistics(ctx context.Context) (*models.ProjectStats, error) {
	var stats *models.ProjectStats
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		collected, err := s.statsRepo.Collect(ctx)
		if err != nil {
			return err
		}
		stats = collected
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("statistics computed",
		"total_projects", stats.TotalProjects,
		"total_tasks", stats.TotalTasks,
	)

	return stats, nil
}
