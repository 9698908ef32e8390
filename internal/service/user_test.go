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

func TestUserService_RegisterUser(t *testing.T) {
	t.Run("zeroes progression fields", func(t *testing.T) {
		mockRepo := &mocks.MockUserRepository{}
		service := NewUserService(mockRepo)

		mockRepo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.ID != uuid.Nil &&
				u.TotalXP == 0 &&
				u.CurrentLevel == 1 &&
				u.CurrentStreak == 0 &&
				u.LongestStreak == 0 &&
				u.LastActivityDate == nil &&
				!u.RegistrationDate.IsZero()
		})).Return(nil)

		err := service.RegisterUser(context.Background(), &model.User{Username: "ada"})
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("duplicate user", func(t *testing.T) {
		mockRepo := &mocks.MockUserRepository{}
		service := NewUserService(mockRepo)

		mockRepo.On("CreateUser", mock.Anything, mock.Anything).
			Return(repository.ErrAlreadyExists)

		err := service.RegisterUser(context.Background(), &model.User{Username: "ada"})
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})
}

func TestUserService_GetUser(t *testing.T) {
	userID := uuid.New()

	t.Run("not found", func(t *testing.T) {
		mockRepo := &mocks.MockUserRepository{}
		service := NewUserService(mockRepo)

		mockRepo.On("GetUserByID", mock.Anything, userID).
			Return(nil, repository.ErrNotFound)

		_, _, err := service.GetUser(context.Background(), userID)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("resolves level info from total xp", func(t *testing.T) {
		mockRepo := &mocks.MockUserRepository{}
		service := NewUserService(mockRepo)

		mockRepo.On("GetUserByID", mock.Anything, userID).
			Return(&model.User{ID: userID, TotalXP: 1200, CurrentLevel: 3}, nil)

		user, info, err := service.GetUser(context.Background(), userID)
		assert.NoError(t, err)
		assert.Equal(t, 1200, user.TotalXP)
		assert.Equal(t, 3, info.Level)
		assert.Equal(t, "Beginner Iron", info.Title)
	})
}
