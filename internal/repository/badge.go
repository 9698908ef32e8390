package repository

import (
	"context"
	"fmt"
	"time"

	"forgefit_backend/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type badgeUnlock struct {
	UserID     uuid.UUID `db:"user_id"`
	BadgeID    string    `db:"badge_id"`
	UnlockedAt time.Time `db:"unlocked_at"`
}

func (r *Repository) GetBadgeUnlocks(ctx context.Context, userID uuid.UUID) ([]*model.BadgeUnlock, error) {
	if _, err := r.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	query, args, err := squirrel.
		Select("user_id", "badge_id", "unlocked_at").
		From("user_badges").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("unlocked_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var unlocks []badgeUnlock
	err = r.db.SelectContext(ctx, &unlocks, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get badge unlocks: %w", err)
	}

	out := make([]*model.BadgeUnlock, len(unlocks))
	for i, u := range unlocks {
		out[i] = &model.BadgeUnlock{
			UserID:     u.UserID,
			BadgeID:    u.BadgeID,
			UnlockedAt: u.UnlockedAt,
		}
	}

	return out, nil
}

// InsertBadgeUnlock records an unlock at most once per (user, badge).
// A pre-existing record keeps its original timestamp; the caller receives
// ErrAlreadyUnlocked and treats it as an idempotent success.
func (r *Repository) InsertBadgeUnlock(ctx context.Context, unlock *model.BadgeUnlock) error {
	query, args, err := squirrel.
		Insert("user_badges").
		SetMap(map[string]interface{}{
			"user_id":     unlock.UserID,
			"badge_id":    unlock.BadgeID,
			"unlocked_at": unlock.UnlockedAt,
		}).
		Suffix("ON CONFLICT (user_id, badge_id) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrAlreadyUnlocked
	}

	return nil
}
