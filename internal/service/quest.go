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

// Quest templates are static catalogs; instances are generated from them
// lazily on first access per period.
var dailyQuestTemplates = []model.QuestTemplate{
	{QuestType: "complete_workout", Description: "Complete today's training session", XPReward: 50},
	{QuestType: "log_nutrition", Description: "Log all your meals for the day", XPReward: 30},
	{QuestType: "hit_step_goal", Description: "Hit your daily step goal", XPReward: 40},
	{QuestType: "log_weight", Description: "Record your morning weigh-in", XPReward: 20},
}

var weeklyQuestTemplates = []model.QuestTemplate{
	{QuestType: "weekly_workouts", Description: "Complete 4 workouts this week", XPReward: 200, TargetValue: 4},
	{QuestType: "weekly_active_days", Description: "Be active on 5 different days", XPReward: 150, TargetValue: 5},
	{QuestType: "weekly_protein_goals", Description: "Hit your protein goal 5 times", XPReward: 120, TargetValue: 5},
}

type QuestService struct {
	repo        QuestRepository
	progression ProgressionServiceI
	badges      BadgeServiceI
}

func NewQuestService(repo QuestRepository, progression ProgressionServiceI, badges BadgeServiceI) *QuestService {
	return &QuestService{
		repo:        repo,
		progression: progression,
		badges:      badges,
	}
}

// today returns the current UTC calendar date at midnight.
func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// weekStartOf shifts a date back to its most recent Monday. Sunday counts as
// six days after the prior Monday, not the start of a new week.
func weekStartOf(date time.Time) time.Time {
	offset := (int(date.Weekday()) + 6) % 7
	return date.AddDate(0, 0, -offset)
}

func (s *QuestService) GetQuests(ctx context.Context, userID uuid.UUID) (daily, weekly []*model.Quest, err error) {
	day := today()
	week := weekStartOf(day)

	if err := s.repo.EnsureQuests(ctx, userID, model.QuestKindDaily, day, dailyQuestTemplates); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("failed to generate daily quests: %w", err)
	}
	if err := s.repo.EnsureQuests(ctx, userID, model.QuestKindWeekly, week, weeklyQuestTemplates); err != nil {
		return nil, nil, fmt.Errorf("failed to generate weekly quests: %w", err)
	}

	daily, err = s.repo.GetQuestsByPeriod(ctx, userID, model.QuestKindDaily, day)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get daily quests: %w", err)
	}
	weekly, err = s.repo.GetQuestsByPeriod(ctx, userID, model.QuestKindWeekly, week)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get weekly quests: %w", err)
	}

	return daily, weekly, nil
}

func (s *QuestService) CompleteQuest(ctx context.Context, userID, questID uuid.UUID, kind model.QuestKind) (*model.QuestCompletionResult, error) {
	quest, err := s.repo.GetQuestByID(ctx, userID, questID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrQuestNotFound
		}
		return nil, fmt.Errorf("failed to get quest: %w", err)
	}

	if quest.Kind != kind {
		return nil, ErrQuestNotFound
	}
	if quest.IsCompleted {
		return nil, ErrQuestAlreadyCompleted
	}
	if quest.TargetValue != nil && quest.CurrentValue < *quest.TargetValue {
		return nil, ErrQuestTargetNotReached
	}

	now := time.Now().UTC()
	err = s.repo.CompleteQuest(ctx, userID, questID, now)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAlreadyCompleted):
			return nil, ErrQuestAlreadyCompleted
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrQuestNotFound
		default:
			return nil, fmt.Errorf("failed to complete quest: %w", err)
		}
	}

	quest.IsCompleted = true
	quest.CompletedAt = &now

	grant, err := s.progression.GrantXP(ctx, userID, "quest_"+string(kind), quest.XPReward)
	if err != nil {
		// The completion is already durable; this grant must be replayed.
		logger.Logger().Error("quest completed but xp grant failed, needs reconciliation",
			zap.String("user_id", userID.String()),
			zap.String("quest_id", questID.String()),
			zap.Int("xp_reward", quest.XPReward),
			zap.Error(err))
		return nil, fmt.Errorf("quest completed but xp grant failed: %w", err)
	}

	if kind == model.QuestKindDaily {
		s.awardDailySweepBadge(ctx, userID, quest.Period)
	}

	return &model.QuestCompletionResult{
		Quest:      quest,
		XPAwarded:  grant.XPGained,
		LeveledUp:  grant.LeveledUp,
		NewLevel:   grant.NewLevel,
		LevelTitle: grant.LevelTitle,
	}, nil
}

// awardDailySweepBadge unlocks the quest badge once a user has completed
// every daily quest of a single day.
func (s *QuestService) awardDailySweepBadge(ctx context.Context, userID uuid.UUID, period time.Time) {
	quests, err := s.repo.GetQuestsByPeriod(ctx, userID, model.QuestKindDaily, period)
	if err != nil {
		logger.Logger().Warn("failed to check daily quest sweep",
			zap.String("user_id", userID.String()), zap.Error(err))
		return
	}

	for _, q := range quests {
		if !q.IsCompleted {
			return
		}
	}

	if _, err := s.badges.AwardBadge(ctx, userID, BadgeQuestMachine); err != nil {
		logger.Logger().Error("failed to award quest badge",
			zap.String("user_id", userID.String()), zap.Error(err))
	}
}

// IncrementProgress advances a weekly counter quest on behalf of the owning
// activity. Daily periods have no counter quests, so only the current week
// is targeted.
func (s *QuestService) IncrementProgress(ctx context.Context, userID uuid.UUID, questType string, delta int) error {
	if delta <= 0 {
		return ErrInvalidProgressDelta
	}

	week := weekStartOf(today())
	err := s.repo.IncrementQuestProgress(ctx, userID, questType, week, delta)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrQuestNotFound
		}
		return fmt.Errorf("failed to increment quest progress: %w", err)
	}

	return nil
}
