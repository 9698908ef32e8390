package repository

import (
	"context"
	"fmt"
	"time"

	"forgefit_backend/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type xpAction struct {
	ID         uuid.UUID `db:"id"`
	UserID     uuid.UUID `db:"user_id"`
	ActionType string    `db:"action_type"`
	XPGained   int       `db:"xp_gained"`
	CreatedAt  time.Time `db:"created_at"`
}

// ApplyXPGrant adds amount to the user's total XP, stores the level derived
// by levelFor from the new total, and appends the ledger row, all inside one
// transaction holding the user row lock. total_xp and current_level are never
// written independently of each other.
func (r *Repository) ApplyXPGrant(ctx context.Context, userID uuid.UUID, actionType string, amount int, levelFor func(totalXP int) int) (newTotalXP int, newLevel int, err error) {
	err = r.Transaction(ctx, func(tx *sqlx.Tx) error {
		user, err := r.getUserForUpdate(ctx, tx, userID)
		if err != nil {
			return err
		}

		newTotalXP = user.TotalXP + amount
		newLevel = levelFor(newTotalXP)

		updateQuery, updateArgs, err := squirrel.
			Update("users").
			SetMap(map[string]interface{}{
				"total_xp":      newTotalXP,
				"current_level": newLevel,
			}).
			Where(squirrel.Eq{"id": userID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build xp update query: %w", err)
		}

		_, err = tx.ExecContext(ctx, updateQuery, updateArgs...)
		if err != nil {
			return fmt.Errorf("failed to update user xp: %w", err)
		}

		actionQuery, actionArgs, err := squirrel.
			Insert("xp_actions").
			SetMap(map[string]interface{}{
				"id":          uuid.New(),
				"user_id":     userID,
				"action_type": actionType,
				"xp_gained":   amount,
				"created_at":  time.Now().UTC(),
			}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build xp action insert query: %w", err)
		}

		_, err = tx.ExecContext(ctx, actionQuery, actionArgs...)
		if err != nil {
			return fmt.Errorf("failed to insert xp action: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	return newTotalXP, newLevel, nil
}

// ApplyActivity locks the user row, lets compute derive the new streak state
// from the current record, and persists it when compute reports a change.
// The updated (or unchanged) user record is returned.
func (r *Repository) ApplyActivity(ctx context.Context, userID uuid.UUID, compute func(u *model.User) (currentStreak, longestStreak int, activityDate time.Time, changed bool)) (*model.User, error) {
	var result *model.User

	err := r.Transaction(ctx, func(tx *sqlx.Tx) error {
		user, err := r.getUserForUpdate(ctx, tx, userID)
		if err != nil {
			return err
		}

		currentStreak, longestStreak, activityDate, changed := compute(user)
		if !changed {
			result = user
			return nil
		}

		updateQuery, updateArgs, err := squirrel.
			Update("users").
			SetMap(map[string]interface{}{
				"current_streak":     currentStreak,
				"longest_streak":     longestStreak,
				"last_activity_date": activityDate,
			}).
			Where(squirrel.Eq{"id": userID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build streak update query: %w", err)
		}

		_, err = tx.ExecContext(ctx, updateQuery, updateArgs...)
		if err != nil {
			return fmt.Errorf("failed to update streak: %w", err)
		}

		user.CurrentStreak = currentStreak
		user.LongestStreak = longestStreak
		user.LastActivityDate = &activityDate
		result = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *Repository) GetXPActions(ctx context.Context, userID uuid.UUID, limit int) ([]*model.XPAction, error) {
	if _, err := r.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	query, args, err := squirrel.
		Select("id", "user_id", "action_type", "xp_gained", "created_at").
		From("xp_actions").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var actions []xpAction
	err = r.db.SelectContext(ctx, &actions, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get xp actions: %w", err)
	}

	out := make([]*model.XPAction, len(actions))
	for i, a := range actions {
		out[i] = &model.XPAction{
			ID:         a.ID,
			UserID:     a.UserID,
			ActionType: a.ActionType,
			XPGained:   a.XPGained,
			CreatedAt:  a.CreatedAt,
		}
	}

	return out, nil
}
