package service

import (
	"context"
	"testing"
	"time"

	"forgefit_backend/internal/model"
	"forgefit_backend/internal/repository"
	"forgefit_backend/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func daysAgo(n int) *time.Time {
	d := today().AddDate(0, 0, -n)
	return &d
}

func TestStreakService_RegisterActivity(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		user           *model.User
		mockSetup      func(repo *mocks.MockStreakRepository, prog *mocks.MockProgressionService, badges *mocks.MockBadgeService)
		expectedError  error
		expectedResult *model.ActivityResult
	}{
		{
			name: "first ever activity",
			user: &model.User{ID: userID, CurrentLevel: 1},
			mockSetup: func(repo *mocks.MockStreakRepository, prog *mocks.MockProgressionService, badges *mocks.MockBadgeService) {
				repo.On("UpsertLeaderboardEntry", mock.Anything, userID, model.LeaderboardMetricStreak, 1, 1).
					Return(nil)
				badges.On("AwardBadge", mock.Anything, userID, BadgeFirstWorkout).
					Return(&model.Badge{BadgeID: BadgeFirstWorkout}, nil)
				prog.On("GrantXP", mock.Anything, userID, "daily_streak", streakXPBase).
					Return(&model.XPGrantResult{XPGained: streakXPBase}, nil)
			},
			expectedResult: &model.ActivityResult{CurrentStreak: 1, LongestStreak: 1, XPAwarded: streakXPBase},
		},
		{
			name: "same day is idempotent",
			user: &model.User{ID: userID, CurrentLevel: 2, CurrentStreak: 4, LongestStreak: 9, LastActivityDate: daysAgo(0)},
			mockSetup: func(repo *mocks.MockStreakRepository, prog *mocks.MockProgressionService, badges *mocks.MockBadgeService) {
			},
			expectedResult: &model.ActivityResult{AlreadyLogged: true, CurrentStreak: 4, LongestStreak: 9},
		},
		{
			name: "consecutive day extends streak",
			user: &model.User{ID: userID, CurrentLevel: 2, CurrentStreak: 1, LongestStreak: 1, LastActivityDate: daysAgo(1)},
			mockSetup: func(repo *mocks.MockStreakRepository, prog *mocks.MockProgressionService, badges *mocks.MockBadgeService) {
				repo.On("UpsertLeaderboardEntry", mock.Anything, userID, model.LeaderboardMetricStreak, 2, 2).
					Return(nil)
				prog.On("GrantXP", mock.Anything, userID, "daily_streak", streakXPBase).
					Return(&model.XPGrantResult{XPGained: streakXPBase}, nil)
			},
			expectedResult: &model.ActivityResult{CurrentStreak: 2, LongestStreak: 2, XPAwarded: streakXPBase},
		},
		{
			name: "gap resets streak, longest preserved",
			user: &model.User{ID: userID, CurrentLevel: 3, CurrentStreak: 5, LongestStreak: 9, LastActivityDate: daysAgo(5)},
			mockSetup: func(repo *mocks.MockStreakRepository, prog *mocks.MockProgressionService, badges *mocks.MockBadgeService) {
				repo.On("UpsertLeaderboardEntry", mock.Anything, userID, model.LeaderboardMetricStreak, 9, 3).
					Return(nil)
				prog.On("GrantXP", mock.Anything, userID, "daily_streak", streakXPBase).
					Return(&model.XPGrantResult{XPGained: streakXPBase}, nil)
			},
			expectedResult: &model.ActivityResult{CurrentStreak: 1, LongestStreak: 9, XPAwarded: streakXPBase},
		},
		{
			name: "reaching exactly 7 awards week badge and tier xp",
			user: &model.User{ID: userID, CurrentLevel: 4, CurrentStreak: 6, LongestStreak: 6, LastActivityDate: daysAgo(1)},
			mockSetup: func(repo *mocks.MockStreakRepository, prog *mocks.MockProgressionService, badges *mocks.MockBadgeService) {
				repo.On("UpsertLeaderboardEntry", mock.Anything, userID, model.LeaderboardMetricStreak, 7, 4).
					Return(nil)
				badges.On("AwardBadge", mock.Anything, userID, BadgeWeekStreak).
					Return(&model.Badge{BadgeID: BadgeWeekStreak}, nil)
				prog.On("GrantXP", mock.Anything, userID, "daily_streak", streakXPWeek).
					Return(&model.XPGrantResult{XPGained: streakXPWeek}, nil)
			},
			expectedResult: &model.ActivityResult{CurrentStreak: 7, LongestStreak: 7, XPAwarded: streakXPWeek},
		},
		{
			name: "day 8 stays in week tier without re-awarding",
			user: &model.User{ID: userID, CurrentLevel: 4, CurrentStreak: 7, LongestStreak: 7, LastActivityDate: daysAgo(1)},
			mockSetup: func(repo *mocks.MockStreakRepository, prog *mocks.MockProgressionService, badges *mocks.MockBadgeService) {
				repo.On("UpsertLeaderboardEntry", mock.Anything, userID, model.LeaderboardMetricStreak, 8, 4).
					Return(nil)
				prog.On("GrantXP", mock.Anything, userID, "daily_streak", streakXPWeek).
					Return(&model.XPGrantResult{XPGained: streakXPWeek}, nil)
			},
			expectedResult: &model.ActivityResult{CurrentStreak: 8, LongestStreak: 8, XPAwarded: streakXPWeek},
		},
		{
			name: "reaching exactly 30 awards month badge and tier xp",
			user: &model.User{ID: userID, CurrentLevel: 8, CurrentStreak: 29, LongestStreak: 29, LastActivityDate: daysAgo(1)},
			mockSetup: func(repo *mocks.MockStreakRepository, prog *mocks.MockProgressionService, badges *mocks.MockBadgeService) {
				repo.On("UpsertLeaderboardEntry", mock.Anything, userID, model.LeaderboardMetricStreak, 30, 8).
					Return(nil)
				badges.On("AwardBadge", mock.Anything, userID, BadgeMonthStreak).
					Return(&model.Badge{BadgeID: BadgeMonthStreak}, nil)
				prog.On("GrantXP", mock.Anything, userID, "daily_streak", streakXPMonth).
					Return(&model.XPGrantResult{XPGained: streakXPMonth}, nil)
			},
			expectedResult: &model.ActivityResult{CurrentStreak: 30, LongestStreak: 30, XPAwarded: streakXPMonth},
		},
		{
			name: "future activity date is ignored",
			user: &model.User{ID: userID, CurrentLevel: 2, CurrentStreak: 3, LongestStreak: 5, LastActivityDate: daysAgo(-1)},
			mockSetup: func(repo *mocks.MockStreakRepository, prog *mocks.MockProgressionService, badges *mocks.MockBadgeService) {
			},
			expectedResult: &model.ActivityResult{CurrentStreak: 3, LongestStreak: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mocks.MockStreakRepository{}
			mockProg := &mocks.MockProgressionService{}
			mockBadges := &mocks.MockBadgeService{}
			service := NewStreakService(mockRepo, mockProg, mockBadges)

			mockRepo.On("ApplyActivity", mock.Anything, userID, mock.Anything).
				Return(tt.user, nil)
			tt.mockSetup(mockRepo, mockProg, mockBadges)

			result, err := service.RegisterActivity(context.Background(), userID)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedResult, result)
			}

			mockRepo.AssertExpectations(t)
			mockProg.AssertExpectations(t)
			mockBadges.AssertExpectations(t)
		})
	}
}

func TestStreakService_RegisterActivity_UserNotFound(t *testing.T) {
	userID := uuid.New()
	mockRepo := &mocks.MockStreakRepository{}
	service := NewStreakService(mockRepo, &mocks.MockProgressionService{}, &mocks.MockBadgeService{})

	mockRepo.On("ApplyActivity", mock.Anything, userID, mock.Anything).
		Return(nil, repository.ErrNotFound)

	_, err := service.RegisterActivity(context.Background(), userID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// Three consecutive days, then a gap: streaks go 1, 2, 3, then reset to 1
// while the longest streak holds.
func TestStreakService_SequenceProperty(t *testing.T) {
	userID := uuid.New()

	steps := []struct {
		user            *model.User
		expectedStreak  int
		expectedLongest int
	}{
		{&model.User{ID: userID, CurrentLevel: 1}, 1, 1},
		{&model.User{ID: userID, CurrentLevel: 1, CurrentStreak: 1, LongestStreak: 1, LastActivityDate: daysAgo(1)}, 2, 2},
		{&model.User{ID: userID, CurrentLevel: 1, CurrentStreak: 2, LongestStreak: 2, LastActivityDate: daysAgo(1)}, 3, 3},
		{&model.User{ID: userID, CurrentLevel: 1, CurrentStreak: 3, LongestStreak: 3, LastActivityDate: daysAgo(3)}, 1, 3},
	}

	longestSeen := 0
	for i, step := range steps {
		mockRepo := &mocks.MockStreakRepository{}
		mockProg := &mocks.MockProgressionService{}
		mockBadges := &mocks.MockBadgeService{}
		service := NewStreakService(mockRepo, mockProg, mockBadges)

		mockRepo.On("ApplyActivity", mock.Anything, userID, mock.Anything).
			Return(step.user, nil)
		mockRepo.On("UpsertLeaderboardEntry", mock.Anything, userID, model.LeaderboardMetricStreak, step.expectedLongest, 1).
			Return(nil)
		if step.user.LastActivityDate == nil {
			mockBadges.On("AwardBadge", mock.Anything, userID, BadgeFirstWorkout).
				Return(&model.Badge{BadgeID: BadgeFirstWorkout}, nil)
		}
		mockProg.On("GrantXP", mock.Anything, userID, "daily_streak", streakXPBase).
			Return(&model.XPGrantResult{XPGained: streakXPBase}, nil)

		result, err := service.RegisterActivity(context.Background(), userID)
		assert.NoError(t, err, "step %d", i)
		assert.Equal(t, step.expectedStreak, result.CurrentStreak, "step %d", i)
		assert.Equal(t, step.expectedLongest, result.LongestStreak, "step %d", i)
		assert.GreaterOrEqual(t, result.LongestStreak, longestSeen, "longest decreased at step %d", i)
		longestSeen = result.LongestStreak
	}
}
