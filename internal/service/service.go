package service

import (
	"context"
	"errors"
	"time"

	"forgefit_backend/internal/model"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUserAlreadyExists     = errors.New("user already exists")
	ErrInvalidXPAmount       = errors.New("xp amount must be positive")
	ErrInvalidActionType     = errors.New("action type is required")
	ErrInvalidProgressDelta  = errors.New("progress delta must be positive")
	ErrQuestNotFound         = errors.New("quest not found")
	ErrQuestAlreadyCompleted = errors.New("quest already completed")
	ErrQuestTargetNotReached = errors.New("quest target not reached")
	ErrUnknownBadge          = errors.New("unknown badge id")
	ErrInvalidMetric         = errors.New("unknown leaderboard metric")
)

type Service struct {
	*UserService
	*ProgressionService
	*QuestService
	*StreakService
	*BadgeService
	*LeaderboardService
}

func NewService(
	userService *UserService,
	progressionService *ProgressionService,
	questService *QuestService,
	streakService *StreakService,
	badgeService *BadgeService,
	leaderboardService *LeaderboardService,
) *Service {
	return &Service{
		UserService:        userService,
		ProgressionService: progressionService,
		QuestService:       questService,
		StreakService:      streakService,
		BadgeService:       badgeService,
		LeaderboardService: leaderboardService,
	}
}

type UserServiceI interface {
	RegisterUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, userID uuid.UUID) (*model.User, *model.LevelInfo, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, userID uuid.UUID) (*model.User, error)
}

type ProgressionServiceI interface {
	GrantXP(ctx context.Context, userID uuid.UUID, actionType string, amount int) (*model.XPGrantResult, error)
	GetXPHistory(ctx context.Context, userID uuid.UUID, limit int) ([]*model.XPAction, error)
}

type ProgressionRepository interface {
	ApplyXPGrant(ctx context.Context, userID uuid.UUID, actionType string, amount int, levelFor func(totalXP int) int) (newTotalXP, newLevel int, err error)
	GetXPActions(ctx context.Context, userID uuid.UUID, limit int) ([]*model.XPAction, error)
	UpsertLeaderboardEntry(ctx context.Context, userID uuid.UUID, metric model.LeaderboardMetric, metricValue, level int) error
}

type QuestServiceI interface {
	GetQuests(ctx context.Context, userID uuid.UUID) (daily, weekly []*model.Quest, err error)
	CompleteQuest(ctx context.Context, userID, questID uuid.UUID, kind model.QuestKind) (*model.QuestCompletionResult, error)
	IncrementProgress(ctx context.Context, userID uuid.UUID, questType string, delta int) error
}

type QuestRepository interface {
	EnsureQuests(ctx context.Context, userID uuid.UUID, kind model.QuestKind, period time.Time, templates []model.QuestTemplate) error
	GetQuestsByPeriod(ctx context.Context, userID uuid.UUID, kind model.QuestKind, period time.Time) ([]*model.Quest, error)
	GetQuestByID(ctx context.Context, userID, questID uuid.UUID) (*model.Quest, error)
	CompleteQuest(ctx context.Context, userID, questID uuid.UUID, completedAt time.Time) error
	IncrementQuestProgress(ctx context.Context, userID uuid.UUID, questType string, period time.Time, delta int) error
}

type StreakServiceI interface {
	RegisterActivity(ctx context.Context, userID uuid.UUID) (*model.ActivityResult, error)
}

type StreakRepository interface {
	ApplyActivity(ctx context.Context, userID uuid.UUID, compute func(u *model.User) (currentStreak, longestStreak int, activityDate time.Time, changed bool)) (*model.User, error)
	UpsertLeaderboardEntry(ctx context.Context, userID uuid.UUID, metric model.LeaderboardMetric, metricValue, level int) error
}

type BadgeServiceI interface {
	ListBadges(ctx context.Context, userID uuid.UUID) ([]*model.UserBadge, int, error)
	AwardBadge(ctx context.Context, userID uuid.UUID, badgeID string) (*model.Badge, error)
}

type BadgeRepository interface {
	GetUserByID(ctx context.Context, userID uuid.UUID) (*model.User, error)
	GetBadgeUnlocks(ctx context.Context, userID uuid.UUID) ([]*model.BadgeUnlock, error)
	InsertBadgeUnlock(ctx context.Context, unlock *model.BadgeUnlock) error
}

type LeaderboardServiceI interface {
	GetLeaderboard(ctx context.Context, metric string, limit int) ([]*model.LeaderboardEntry, error)
}

type LeaderboardRepository interface {
	GetLeaderboard(ctx context.Context, metric model.LeaderboardMetric, limit int) ([]*model.LeaderboardEntry, error)
}
