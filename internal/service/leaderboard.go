package service

import (
	"context"
	"fmt"

	"forgefit_backend/internal/model"
)

const (
	defaultLeaderboardLimit = 100
	maxLeaderboardLimit     = 100
)

type LeaderboardService struct {
	repo LeaderboardRepository
}

func NewLeaderboardService(repo LeaderboardRepository) *LeaderboardService {
	return &LeaderboardService{
		repo: repo,
	}
}

// GetLeaderboard returns the top entries for "xp" or "streak", ranked
// 1-based at read time. Ties order stably by user id.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, metric string, limit int) ([]*model.LeaderboardEntry, error) {
	m := model.LeaderboardMetric(metric)
	if m != model.LeaderboardMetricXP && m != model.LeaderboardMetricStreak {
		return nil, ErrInvalidMetric
	}

	if limit <= 0 || limit > maxLeaderboardLimit {
		limit = defaultLeaderboardLimit
	}

	entries, err := s.repo.GetLeaderboard(ctx, m, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	for i, entry := range entries {
		entry.Rank = i + 1
	}

	return entries, nil
}
