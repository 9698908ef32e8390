package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"forgefit_backend/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type User struct {
	ID               uuid.UUID  `db:"id"`
	Username         string     `db:"username"`
	Email            string     `db:"email"`
	IsPremium        bool       `db:"is_premium"`
	TotalXP          int        `db:"total_xp"`
	CurrentLevel     int        `db:"current_level"`
	CurrentStreak    int        `db:"current_streak"`
	LongestStreak    int        `db:"longest_streak"`
	LastActivityDate *time.Time `db:"last_activity_date"`
	RegistrationDate time.Time  `db:"registration_date"`
}

func (u *User) toModel() *model.User {
	return &model.User{
		ID:               u.ID,
		Username:         u.Username,
		Email:            u.Email,
		IsPremium:        u.IsPremium,
		TotalXP:          u.TotalXP,
		CurrentLevel:     u.CurrentLevel,
		CurrentStreak:    u.CurrentStreak,
		LongestStreak:    u.LongestStreak,
		LastActivityDate: u.LastActivityDate,
		RegistrationDate: u.RegistrationDate,
	}
}

func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		query, args, err := squirrel.
			Insert("users").
			SetMap(map[string]interface{}{
				"id":                user.ID,
				"username":          user.Username,
				"email":             user.Email,
				"is_premium":        user.IsPremium,
				"total_xp":          user.TotalXP,
				"current_level":     user.CurrentLevel,
				"current_streak":    user.CurrentStreak,
				"longest_streak":    user.LongestStreak,
				"registration_date": user.RegistrationDate,
			}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build user insert query: %w", err)
		}

		_, err = tx.ExecContext(ctx, query, args...)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyExists
			}
			return fmt.Errorf("failed to insert user: %w", err)
		}

		for _, metric := range []model.LeaderboardMetric{
			model.LeaderboardMetricXP,
			model.LeaderboardMetricStreak,
		} {
			entryQuery, entryArgs, err := squirrel.
				Insert("leaderboard_entries").
				SetMap(map[string]interface{}{
					"user_id":      user.ID,
					"metric":       string(metric),
					"metric_value": 0,
					"level":        user.CurrentLevel,
				}).
				Suffix("ON CONFLICT (user_id, metric) DO NOTHING").
				PlaceholderFormat(squirrel.Dollar).
				ToSql()
			if err != nil {
				return fmt.Errorf("failed to build leaderboard seed query: %w", err)
			}

			_, err = tx.ExecContext(ctx, entryQuery, entryArgs...)
			if err != nil {
				return fmt.Errorf("failed to seed leaderboard entry: %w", err)
			}
		}

		return nil
	})
}

func (r *Repository) GetUserByID(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	var user User
	query, args, err := squirrel.
		Select("*").
		From("users").
		Where(squirrel.Eq{"id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &user, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return user.toModel(), nil
}

// getUserForUpdate locks the user row for the duration of the enclosing
// transaction. All progression writes go through this lock so concurrent
// grants for the same user serialize instead of losing updates.
func (r *Repository) getUserForUpdate(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID) (*model.User, error) {
	var user User
	query, args, err := squirrel.
		Select("*").
		From("users").
		Where(squirrel.Eq{"id": userID}).
		Suffix("FOR UPDATE").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = tx.GetContext(ctx, &user, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return user.toModel(), nil
}
