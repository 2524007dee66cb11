package services

import (
	"context"

	"github.com/drishti/command-center-backend/internal/core/domain"
	"github.com/drishti/command-center-backend/internal/core/ports"
)

// StatsService serves the dashboard overview aggregate.
type StatsService struct {
	statsRepo ports.StatsRepository
}

var _ ports.StatsService = (*StatsService)(nil)

// NewStatsService creates a new stats service.
func NewStatsService(statsRepo ports.StatsRepository) ports.StatsService {
	return &StatsService{statsRepo: statsRepo}
}

// Overview returns the current aggregate numbers.
func (s *StatsService) Overview(ctx context.Context) (*domain.CrowdStats, error) {
	return s.statsRepo.CrowdStats(ctx)
}
