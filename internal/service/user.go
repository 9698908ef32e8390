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

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

// RegisterUser creates the user with a zeroed progression record: no XP,
// level 1, no streak, no activity date.
func (s *UserService) RegisterUser(ctx context.Context, user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.TotalXP = 0
	user.CurrentLevel = ResolveLevel(0).Level
	user.CurrentStreak = 0
	user.LongestStreak = 0
	user.LastActivityDate = nil
	if user.RegistrationDate.IsZero() {
		user.RegistrationDate = time.Now().UTC()
	}

	err := s.repo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*model.User, *model.LevelInfo, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}

	info := ResolveLevel(user.TotalXP)
	return user, &info, nil
}
