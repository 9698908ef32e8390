package service

import (
	"context"
	"errors"
	"fmt"

	"forgefit_backend/internal/model"
	"forgefit_backend/internal/repository"
	"forgefit_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultHistoryLimit = 50

// Level badges awarded when a grant crosses the corresponding level.
var levelBadges = map[int]string{
	10: BadgeLevel10,
	25: BadgeLevel25,
}

type ProgressionService struct {
	repo   ProgressionRepository
	badges BadgeServiceI
}

func NewProgressionService(repo ProgressionRepository, badges BadgeServiceI) *ProgressionService {
	return &ProgressionService{
		repo:   repo,
		badges: badges,
	}
}

// GrantXP credits amount XP to the user and recomputes the level from the
// new total. The repository serializes concurrent grants per user; the old
// level is re-derived from the pre-grant total so leveledUp never depends on
// a stale read.
func (s *ProgressionService) GrantXP(ctx context.Context, userID uuid.UUID, actionType string, amount int) (*model.XPGrantResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidXPAmount
	}
	if actionType == "" {
		return nil, ErrInvalidActionType
	}

	newTotalXP, newLevel, err := s.repo.ApplyXPGrant(ctx, userID, actionType, amount, func(totalXP int) int {
		return ResolveLevel(totalXP).Level
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to apply xp grant: %w", err)
	}

	oldLevel := ResolveLevel(newTotalXP - amount).Level

	err = s.repo.UpsertLeaderboardEntry(ctx, userID, model.LeaderboardMetricXP, newTotalXP, newLevel)
	if err != nil {
		logger.Logger().Error("xp granted but leaderboard projection failed, needs reconciliation",
			zap.String("user_id", userID.String()),
			zap.Int("new_total_xp", newTotalXP),
			zap.Error(err))
	}

	if newLevel > oldLevel {
		s.awardLevelBadges(ctx, userID, oldLevel, newLevel)
	}

	return &model.XPGrantResult{
		XPGained:   amount,
		NewTotalXP: newTotalXP,
		NewLevel:   newLevel,
		LeveledUp:  newLevel > oldLevel,
		LevelTitle: LevelTitle(newLevel),
	}, nil
}

func (s *ProgressionService) awardLevelBadges(ctx context.Context, userID uuid.UUID, oldLevel, newLevel int) {
	for threshold, badgeID := range levelBadges {
		if oldLevel < threshold && newLevel >= threshold {
			if _, err := s.badges.AwardBadge(ctx, userID, badgeID); err != nil {
				logger.Logger().Error("failed to award level badge",
					zap.String("user_id", userID.String()),
					zap.String("badge_id", badgeID),
					zap.Error(err))
			}
		}
	}
}

func (s *ProgressionService) GetXPHistory(ctx context.Context, userID uuid.UUID, limit int) ([]*model.XPAction, error) {
	if limit <= 0 || limit > defaultHistoryLimit {
		limit = defaultHistoryLimit
	}

	actions, err := s.repo.GetXPActions(ctx, userID, limit)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get xp history: %w", err)
	}

	return actions, nil
}
