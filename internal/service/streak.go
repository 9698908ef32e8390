package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"forgefit_backend/internal/model"
	"forgefit_backend/internal/repository"
	"forgefit_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Per-day streak XP by tier.
const (
	streakXPBase   = 10  // streak below 7 days
	streakXPWeek   = 50  // 7-29 days
	streakXPMonth  = 200 // 30 days and up
	weekStreakLen  = 7
	monthStreakLen = 30
)

type StreakService struct {
	repo        StreakRepository
	progression ProgressionServiceI
	badges      BadgeServiceI
}

func NewStreakService(repo StreakRepository, progression ProgressionServiceI, badges BadgeServiceI) *StreakService {
	return &StreakService{
		repo:        repo,
		progression: progression,
		badges:      badges,
	}
}

func streakXPFor(streak int) int {
	switch {
	case streak >= monthStreakLen:
		return streakXPMonth
	case streak >= weekStreakLen:
		return streakXPWeek
	default:
		return streakXPBase
	}
}

// RegisterActivity records one day of activity and maintains the
// consecutive-day streak. Calling it twice on the same calendar day is a
// no-op; an activity date in the future of today is treated as clock skew
// and ignored rather than ever decrementing the streak.
func (s *StreakService) RegisterActivity(ctx context.Context, userID uuid.UUID) (*model.ActivityResult, error) {
	day := today()

	var alreadyLogged, anomalous, firstEver bool

	user, err := s.repo.ApplyActivity(ctx, userID, func(u *model.User) (int, int, time.Time, bool) {
		current := u.CurrentStreak

		if u.LastActivityDate == nil {
			firstEver = true
			current = 1
		} else {
			last := u.LastActivityDate.UTC()
			last = time.Date(last.Year(), last.Month(), last.Day(), 0, 0, 0, 0, time.UTC)
			delta := int(day.Sub(last).Hours() / 24)

			switch {
			case delta == 0:
				alreadyLogged = true
				return 0, 0, time.Time{}, false
			case delta == 1:
				current++
			case delta > 1:
				current = 1
			default:
				anomalous = true
				return 0, 0, time.Time{}, false
			}
		}

		longest := u.LongestStreak
		if current > longest {
			longest = current
		}

		return current, longest, day, true
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to apply activity: %w", err)
	}

	if alreadyLogged {
		return &model.ActivityResult{
			AlreadyLogged: true,
			CurrentStreak: user.CurrentStreak,
			LongestStreak: user.LongestStreak,
		}, nil
	}
	if anomalous {
		logger.Logger().Warn("activity date behind last recorded activity, ignoring",
			zap.String("user_id", userID.String()),
			zap.Timep("last_activity_date", user.LastActivityDate))
		return &model.ActivityResult{
			CurrentStreak: user.CurrentStreak,
			LongestStreak: user.LongestStreak,
		}, nil
	}

	err = s.repo.UpsertLeaderboardEntry(ctx, userID, model.LeaderboardMetricStreak, user.LongestStreak, user.CurrentLevel)
	if err != nil {
		logger.Logger().Error("streak updated but leaderboard projection failed, needs reconciliation",
			zap.String("user_id", userID.String()),
			zap.Error(err))
	}

	s.awardStreakBadges(ctx, userID, user.CurrentStreak, firstEver)

	xp := streakXPFor(user.CurrentStreak)
	grant, err := s.progression.GrantXP(ctx, userID, "daily_streak", xp)
	if err != nil {
		// Streak state is already durable; only the XP grant needs replay.
		logger.Logger().Error("streak recorded but xp grant failed, needs reconciliation",
			zap.String("user_id", userID.String()),
			zap.Int("xp", xp),
			zap.Error(err))
		return nil, fmt.Errorf("streak recorded but xp grant failed: %w", err)
	}

	return &model.ActivityResult{
		CurrentStreak: user.CurrentStreak,
		LongestStreak: user.LongestStreak,
		XPAwarded:     grant.XPGained,
	}, nil
}

// awardStreakBadges fires only on exact threshold transitions, so a streak
// that is merely above a tier does not re-award its badge.
func (s *StreakService) awardStreakBadges(ctx context.Context, userID uuid.UUID, currentStreak int, firstEver bool) {
	award := func(badgeID string) {
		if _, err := s.badges.AwardBadge(ctx, userID, badgeID); err != nil {
			logger.Logger().Error("failed to award streak badge",
				zap.String("user_id", userID.String()),
				zap.String("badge_id", badgeID),
				zap.Error(err))
		}
	}

	if firstEver {
		award(BadgeFirstWorkout)
	}
	if currentStreak == weekStreakLen {
		award(BadgeWeekStreak)
	}
	if currentStreak == monthStreakLen {
		award(BadgeMonthStreak)
	}
}
