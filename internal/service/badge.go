package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"forgefit_backend/internal/model"
	"forgefit_backend/internal/repository"

	"github.com/google/uuid"
)

const (
	BadgeFirstWorkout = "first_workout"
	BadgeWeekStreak   = "week_streak"
	BadgeMonthStreak  = "month_streak"
	BadgeLevel10      = "level_10"
	BadgeLevel25      = "level_25"
	BadgeQuestMachine = "quest_machine"
)

// badgeCatalog is the static achievement catalog, keyed by badge id.
// badgeOrder fixes the listing order.
var badgeCatalog = map[string]model.Badge{
	BadgeFirstWorkout: {BadgeID: BadgeFirstWorkout, Name: "First Steps", Tier: "bronze", Description: "Log your first activity"},
	BadgeWeekStreak:   {BadgeID: BadgeWeekStreak, Name: "Week Warrior", Tier: "silver", Description: "Reach a 7-day activity streak"},
	BadgeMonthStreak:  {BadgeID: BadgeMonthStreak, Name: "Iron Month", Tier: "gold", Description: "Reach a 30-day activity streak"},
	BadgeLevel10:      {BadgeID: BadgeLevel10, Name: "Double Digits", Tier: "silver", Description: "Reach level 10"},
	BadgeLevel25:      {BadgeID: BadgeLevel25, Name: "Quarter Century", Tier: "gold", Description: "Reach level 25"},
	BadgeQuestMachine: {BadgeID: BadgeQuestMachine, Name: "Quest Machine", Tier: "silver", Description: "Complete every daily quest in a single day"},
}

var badgeOrder = []string{
	BadgeFirstWorkout,
	BadgeWeekStreak,
	BadgeMonthStreak,
	BadgeLevel10,
	BadgeLevel25,
	BadgeQuestMachine,
}

type BadgeService struct {
	repo BadgeRepository
}

func NewBadgeService(repo BadgeRepository) *BadgeService {
	return &BadgeService{
		repo: repo,
	}
}

// ListBadges returns every catalog entry annotated with the user's unlock
// state, plus the unlocked count.
func (s *BadgeService) ListBadges(ctx context.Context, userID uuid.UUID) ([]*model.UserBadge, int, error) {
	unlocks, err := s.repo.GetBadgeUnlocks(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, 0, ErrUserNotFound
		}
		return nil, 0, fmt.Errorf("failed to get badge unlocks: %w", err)
	}

	unlockedAt := make(map[string]time.Time, len(unlocks))
	for _, u := range unlocks {
		unlockedAt[u.BadgeID] = u.UnlockedAt
	}

	badges := make([]*model.UserBadge, 0, len(badgeOrder))
	totalUnlocked := 0
	for _, id := range badgeOrder {
		ub := &model.UserBadge{Badge: badgeCatalog[id]}
		if at, ok := unlockedAt[id]; ok {
			ub.Unlocked = true
			t := at
			ub.UnlockedAt = &t
			totalUnlocked++
		}
		badges = append(badges, ub)
	}

	return badges, totalUnlocked, nil
}

// AwardBadge unlocks a catalog badge for the user. Awarding an already
// unlocked badge is an idempotent success; the original unlock timestamp is
// kept.
func (s *BadgeService) AwardBadge(ctx context.Context, userID uuid.UUID, badgeID string) (*model.Badge, error) {
	badge, ok := badgeCatalog[badgeID]
	if !ok {
		return nil, ErrUnknownBadge
	}

	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	err := s.repo.InsertBadgeUnlock(ctx, &model.BadgeUnlock{
		UserID:     userID,
		BadgeID:    badgeID,
		UnlockedAt: time.Now().UTC(),
	})
	if err != nil && !errors.Is(err, repository.ErrAlreadyUnlocked) {
		return nil, fmt.Errorf("failed to insert badge unlock: %w", err)
	}

	return &badge, nil
}
