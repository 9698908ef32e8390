package mocks

import (
	"context"
	"time"

	"forgefit_backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type MockProgressionRepository struct {
	mock.Mock
}

func (m *MockProgressionRepository) ApplyXPGrant(ctx context.Context, userID uuid.UUID, actionType string, amount int, levelFor func(totalXP int) int) (int, int, error) {
	args := m.Called(ctx, userID, actionType, amount, levelFor)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockProgressionRepository) GetXPActions(ctx context.Context, userID uuid.UUID, limit int) ([]*model.XPAction, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.XPAction), args.Error(1)
}

func (m *MockProgressionRepository) UpsertLeaderboardEntry(ctx context.Context, userID uuid.UUID, metric model.LeaderboardMetric, metricValue, level int) error {
	args := m.Called(ctx, userID, metric, metricValue, level)
	return args.Error(0)
}

type MockQuestRepository struct {
	mock.Mock
}

func (m *MockQuestRepository) EnsureQuests(ctx context.Context, userID uuid.UUID, kind model.QuestKind, period time.Time, templates []model.QuestTemplate) error {
	args := m.Called(ctx, userID, kind, period, templates)
	return args.Error(0)
}

func (m *MockQuestRepository) GetQuestsByPeriod(ctx context.Context, userID uuid.UUID, kind model.QuestKind, period time.Time) ([]*model.Quest, error) {
	args := m.Called(ctx, userID, kind, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Quest), args.Error(1)
}

func (m *MockQuestRepository) GetQuestByID(ctx context.Context, userID, questID uuid.UUID) (*model.Quest, error) {
	args := m.Called(ctx, userID, questID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Quest), args.Error(1)
}

func (m *MockQuestRepository) CompleteQuest(ctx context.Context, userID, questID uuid.UUID, completedAt time.Time) error {
	args := m.Called(ctx, userID, questID, completedAt)
	return args.Error(0)
}

func (m *MockQuestRepository) IncrementQuestProgress(ctx context.Context, userID uuid.UUID, questType string, period time.Time, delta int) error {
	args := m.Called(ctx, userID, questType, period, delta)
	return args.Error(0)
}

type MockStreakRepository struct {
	mock.Mock
}

// ApplyActivity mirrors the real repository: it feeds the configured user
// record to compute and applies the result, so streak math in the service
// is exercised for real.
func (m *MockStreakRepository) ApplyActivity(ctx context.Context, userID uuid.UUID, compute func(u *model.User) (int, int, time.Time, bool)) (*model.User, error) {
	args := m.Called(ctx, userID, compute)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	user := *args.Get(0).(*model.User)
	currentStreak, longestStreak, activityDate, changed := compute(&user)
	if changed {
		user.CurrentStreak = currentStreak
		user.LongestStreak = longestStreak
		user.LastActivityDate = &activityDate
	}
	return &user, args.Error(1)
}

func (m *MockStreakRepository) UpsertLeaderboardEntry(ctx context.Context, userID uuid.UUID, metric model.LeaderboardMetric, metricValue, level int) error {
	args := m.Called(ctx, userID, metric, metricValue, level)
	return args.Error(0)
}

type MockBadgeRepository struct {
	mock.Mock
}

func (m *MockBadgeRepository) GetUserByID(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockBadgeRepository) GetBadgeUnlocks(ctx context.Context, userID uuid.UUID) ([]*model.BadgeUnlock, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.BadgeUnlock), args.Error(1)
}

func (m *MockBadgeRepository) InsertBadgeUnlock(ctx context.Context, unlock *model.BadgeUnlock) error {
	args := m.Called(ctx, unlock)
	return args.Error(0)
}

type MockLeaderboardRepository struct {
	mock.Mock
}

func (m *MockLeaderboardRepository) GetLeaderboard(ctx context.Context, metric model.LeaderboardMetric, limit int) ([]*model.LeaderboardEntry, error) {
	args := m.Called(ctx, metric, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.LeaderboardEntry), args.Error(1)
}

type MockProgressionService struct {
	mock.Mock
}

func (m *MockProgressionService) GrantXP(ctx context.Context, userID uuid.UUID, actionType string, amount int) (*model.XPGrantResult, error) {
	args := m.Called(ctx, userID, actionType, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.XPGrantResult), args.Error(1)
}

func (m *MockProgressionService) GetXPHistory(ctx context.Context, userID uuid.UUID, limit int) ([]*model.XPAction, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.XPAction), args.Error(1)
}

type MockBadgeService struct {
	mock.Mock
}

func (m *MockBadgeService) ListBadges(ctx context.Context, userID uuid.UUID) ([]*model.UserBadge, int, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*model.UserBadge), args.Int(1), args.Error(2)
}

func (m *MockBadgeService) AwardBadge(ctx context.Context, userID uuid.UUID, badgeID string) (*model.Badge, error) {
	args := m.Called(ctx, userID, badgeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Badge), args.Error(1)
}
