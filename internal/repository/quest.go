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
)

type quest struct {
	ID           uuid.UUID  `db:"id"`
	UserID       uuid.UUID  `db:"user_id"`
	Kind         string     `db:"kind"`
	QuestType    string     `db:"quest_type"`
	Description  string     `db:"description"`
	Period       time.Time  `db:"period"`
	CurrentValue int        `db:"current_value"`
	TargetValue  *int       `db:"target_value"`
	XPReward     int        `db:"xp_reward"`
	IsCompleted  bool       `db:"is_completed"`
	CompletedAt  *time.Time `db:"completed_at"`
}

func (q *quest) toModel() *model.Quest {
	return &model.Quest{
		ID:           q.ID,
		UserID:       q.UserID,
		Kind:         model.QuestKind(q.Kind),
		QuestType:    q.QuestType,
		Description:  q.Description,
		Period:       q.Period,
		CurrentValue: q.CurrentValue,
		TargetValue:  q.TargetValue,
		XPReward:     q.XPReward,
		IsCompleted:  q.IsCompleted,
		CompletedAt:  q.CompletedAt,
	}
}

// EnsureQuests inserts any missing quest instances for the given period.
// The unique key on (user_id, period, quest_type) makes concurrent
// generation for the same user collapse into a single instance set.
func (r *Repository) EnsureQuests(ctx context.Context, userID uuid.UUID, kind model.QuestKind, period time.Time, templates []model.QuestTemplate) error {
	if _, err := r.GetUserByID(ctx, userID); err != nil {
		return err
	}

	for _, tpl := range templates {
		setMap := map[string]interface{}{
			"id":            uuid.New(),
			"user_id":       userID,
			"kind":          string(kind),
			"quest_type":    tpl.QuestType,
			"description":   tpl.Description,
			"period":        period,
			"current_value": 0,
			"xp_reward":     tpl.XPReward,
			"is_completed":  false,
		}
		if tpl.TargetValue > 0 {
			setMap["target_value"] = tpl.TargetValue
		}

		query, args, err := squirrel.
			Insert("quests").
			SetMap(setMap).
			Suffix("ON CONFLICT (user_id, period, quest_type) DO NOTHING").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build quest insert query: %w", err)
		}

		_, err = r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to insert quest %s: %w", tpl.QuestType, err)
		}
	}

	return nil
}

func (r *Repository) GetQuestsByPeriod(ctx context.Context, userID uuid.UUID, kind model.QuestKind, period time.Time) ([]*model.Quest, error) {
	query, args, err := squirrel.
		Select("id", "user_id", "kind", "quest_type", "description", "period",
			"current_value", "target_value", "xp_reward", "is_completed", "completed_at").
		From("quests").
		Where(squirrel.Eq{
			"user_id": userID,
			"kind":    string(kind),
			"period":  period,
		}).
		OrderBy("quest_type ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var quests []quest
	err = r.db.SelectContext(ctx, &quests, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get quests: %w", err)
	}

	out := make([]*model.Quest, len(quests))
	for i := range quests {
		out[i] = quests[i].toModel()
	}

	return out, nil
}

func (r *Repository) GetQuestByID(ctx context.Context, userID, questID uuid.UUID) (*model.Quest, error) {
	var q quest
	query, args, err := squirrel.
		Select("id", "user_id", "kind", "quest_type", "description", "period",
			"current_value", "target_value", "xp_reward", "is_completed", "completed_at").
		From("quests").
		Where(squirrel.Eq{"id": questID, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &q, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return q.toModel(), nil
}

// CompleteQuest flips the completion flag exactly once. The guarded UPDATE
// makes concurrent completions race safely; the loser observes zero rows and
// is told the quest was already completed.
func (r *Repository) CompleteQuest(ctx context.Context, userID, questID uuid.UUID, completedAt time.Time) error {
	query, args, err := squirrel.
		Update("quests").
		SetMap(map[string]interface{}{
			"is_completed": true,
			"completed_at": completedAt,
		}).
		Where(squirrel.Eq{
			"id":           questID,
			"user_id":      userID,
			"is_completed": false,
		}).
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
		existing, err := r.GetQuestByID(ctx, userID, questID)
		if err != nil {
			return err
		}
		if existing.IsCompleted {
			return ErrAlreadyCompleted
		}
		return ErrNotFound
	}

	return nil
}

// IncrementQuestProgress advances the counter of a not-yet-completed quest
// instance. Owning activities (workout logging etc.) call this; completion
// itself never changes current_value.
func (r *Repository) IncrementQuestProgress(ctx context.Context, userID uuid.UUID, questType string, period time.Time, delta int) error {
	query, args, err := squirrel.
		Update("quests").
		Set("current_value", squirrel.Expr("current_value + ?", delta)).
		Where(squirrel.Eq{
			"user_id":      userID,
			"quest_type":   questType,
			"period":       period,
			"is_completed": false,
		}).
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
		return ErrNotFound
	}

	return nil
}
