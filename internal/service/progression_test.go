package service

import (
	"context"
	"testing"

	"forgefit_backend/internal/model"
	"forgefit_backend/internal/repository"
	"forgefit_backend/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestProgressionService_GrantXP(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		actionType     string
		amount         int
		mockSetup      func(repo *mocks.MockProgressionRepository, badges *mocks.MockBadgeService)
		expectedError  error
		expectedResult *model.XPGrantResult
	}{
		{
			name:          "non-positive amount",
			actionType:    "workout",
			amount:        0,
			mockSetup:     func(repo *mocks.MockProgressionRepository, badges *mocks.MockBadgeService) {},
			expectedError: ErrInvalidXPAmount,
		},
		{
			name:          "negative amount",
			actionType:    "workout",
			amount:        -50,
			mockSetup:     func(repo *mocks.MockProgressionRepository, badges *mocks.MockBadgeService) {},
			expectedError: ErrInvalidXPAmount,
		},
		{
			name:          "missing action type",
			actionType:    "",
			amount:        100,
			mockSetup:     func(repo *mocks.MockProgressionRepository, badges *mocks.MockBadgeService) {},
			expectedError: ErrInvalidActionType,
		},
		{
			name:       "user not found",
			actionType: "workout",
			amount:     500,
			mockSetup: func(repo *mocks.MockProgressionRepository, badges *mocks.MockBadgeService) {
				repo.On("ApplyXPGrant", mock.Anything, userID, "workout", 500, mock.Anything).
					Return(0, 0, repository.ErrNotFound)
			},
			expectedError: ErrUserNotFound,
		},
		{
			name:       "first grant levels up",
			actionType: "workout",
			amount:     500,
			mockSetup: func(repo *mocks.MockProgressionRepository, badges *mocks.MockBadgeService) {
				repo.On("ApplyXPGrant", mock.Anything, userID, "workout", 500, mock.Anything).
					Return(500, 2, nil)
				repo.On("UpsertLeaderboardEntry", mock.Anything, userID, model.LeaderboardMetricXP, 500, 2).
					Return(nil)
			},
			expectedResult: &model.XPGrantResult{
				XPGained:   500,
				NewTotalXP: 500,
				NewLevel:   2,
				LeveledUp:  true,
				LevelTitle: "Beginner Iron",
			},
		},
		{
			name:       "second grant reaches level 3",
			actionType: "workout",
			amount:     700,
			mockSetup: func(repo *mocks.MockProgressionRepository, badges *mocks.MockBadgeService) {
				repo.On("ApplyXPGrant", mock.Anything, userID, "workout", 700, mock.Anything).
					Return(1200, 3, nil)
				repo.On("UpsertLeaderboardEntry", mock.Anything, userID, model.LeaderboardMetricXP, 1200, 3).
					Return(nil)
			},
			expectedResult: &model.XPGrantResult{
				XPGained:   700,
				NewTotalXP: 1200,
				NewLevel:   3,
				LeveledUp:  true,
				LevelTitle: "Beginner Iron",
			},
		},
		{
			name:       "no level up within same band",
			actionType: "log_meal",
			amount:     100,
			mockSetup: func(repo *mocks.MockProgressionRepository, badges *mocks.MockBadgeService) {
				repo.On("ApplyXPGrant", mock.Anything, userID, "log_meal", 100, mock.Anything).
					Return(100, 1, nil)
				repo.On("UpsertLeaderboardEntry", mock.Anything, userID, model.LeaderboardMetricXP, 100, 1).
					Return(nil)
			},
			expectedResult: &model.XPGrantResult{
				XPGained:   100,
				NewTotalXP: 100,
				NewLevel:   1,
				LeveledUp:  false,
				LevelTitle: "Beginner Iron",
			},
		},
		{
			name:       "crossing level 10 awards badge",
			actionType: "workout",
			amount:     3000,
			mockSetup: func(repo *mocks.MockProgressionRepository, badges *mocks.MockBadgeService) {
				repo.On("ApplyXPGrant", mock.Anything, userID, "workout", 3000, mock.Anything).
					Return(12000, 10, nil)
				repo.On("UpsertLeaderboardEntry", mock.Anything, userID, model.LeaderboardMetricXP, 12000, 10).
					Return(nil)
				badges.On("AwardBadge", mock.Anything, userID, BadgeLevel10).
					Return(&model.Badge{BadgeID: BadgeLevel10}, nil)
			},
			expectedResult: &model.XPGrantResult{
				XPGained:   3000,
				NewTotalXP: 12000,
				NewLevel:   10,
				LeveledUp:  true,
				LevelTitle: "Steel Seeker",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mocks.MockProgressionRepository{}
			mockBadges := &mocks.MockBadgeService{}
			service := NewProgressionService(mockRepo, mockBadges)

			tt.mockSetup(mockRepo, mockBadges)

			result, err := service.GrantXP(context.Background(), userID, tt.actionType, tt.amount)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedResult, result)
			}

			mockRepo.AssertExpectations(t)
			mockBadges.AssertExpectations(t)
		})
	}
}

func TestProgressionService_GrantXP_OrderIndependent(t *testing.T) {
	grants := [][2]int{{300, 200}, {200, 300}}
	finals := make([]int, 0, 2)

	for _, pair := range grants {
		userID := uuid.New()
		mockRepo := &mocks.MockProgressionRepository{}
		mockBadges := &mocks.MockBadgeService{}
		service := NewProgressionService(mockRepo, mockBadges)

		total := 0
		for _, amount := range pair {
			total += amount
			mockRepo.On("ApplyXPGrant", mock.Anything, userID, "workout", amount, mock.Anything).
				Return(total, ResolveLevel(total).Level, nil).Once()
			mockRepo.On("UpsertLeaderboardEntry", mock.Anything, userID, model.LeaderboardMetricXP, total, ResolveLevel(total).Level).
				Return(nil).Once()
		}

		var last *model.XPGrantResult
		for _, amount := range pair {
			result, err := service.GrantXP(context.Background(), userID, "workout", amount)
			assert.NoError(t, err)
			last = result
		}

		finals = append(finals, last.NewTotalXP)
		mockRepo.AssertExpectations(t)
	}

	assert.Equal(t, finals[0], finals[1])
}

func TestProgressionService_GetXPHistory(t *testing.T) {
	userID := uuid.New()

	t.Run("user not found", func(t *testing.T) {
		mockRepo := &mocks.MockProgressionRepository{}
		service := NewProgressionService(mockRepo, &mocks.MockBadgeService{})

		mockRepo.On("GetXPActions", mock.Anything, userID, defaultHistoryLimit).
			Return(nil, repository.ErrNotFound)

		_, err := service.GetXPHistory(context.Background(), userID, 0)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("limit clamped", func(t *testing.T) {
		mockRepo := &mocks.MockProgressionRepository{}
		service := NewProgressionService(mockRepo, &mocks.MockBadgeService{})

		actions := []*model.XPAction{{UserID: userID, ActionType: "workout", XPGained: 50}}
		mockRepo.On("GetXPActions", mock.Anything, userID, defaultHistoryLimit).
			Return(actions, nil)

		got, err := service.GetXPHistory(context.Background(), userID, 5000)
		assert.NoError(t, err)
		assert.Equal(t, actions, got)
		mockRepo.AssertExpectations(t)
	})
}
