package repository

import (
	"context"
	"fmt"

	"forgefit_backend/internal/model"
	"forgefit_backend/pkg/logger"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type leaderboardRow struct {
	UserID      uuid.UUID `db:"user_id"`
	Username    string    `db:"username"`
	MetricValue int       `db:"metric_value"`
	Level       int       `db:"current_level"`
	IsPremium   bool      `db:"is_premium"`
}

func leaderboardKey(metric model.LeaderboardMetric) string {
	return "leaderboard:" + string(metric)
}

// UpsertLeaderboardEntry writes the durable Postgres row and mirrors the
// score into the Redis sorted set. Redis is a projection of the table;
// a failed ZADD is logged and the write still counts.
func (r *Repository) UpsertLeaderboardEntry(ctx context.Context, userID uuid.UUID, metric model.LeaderboardMetric, metricValue, level int) error {
	query, args, err := squirrel.
		Insert("leaderboard_entries").
		SetMap(map[string]interface{}{
			"user_id":      userID,
			"metric":       string(metric),
			"metric_value": metricValue,
			"level":        level,
		}).
		Suffix("ON CONFLICT (user_id, metric) DO UPDATE SET metric_value = EXCLUDED.metric_value, level = EXCLUDED.level").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build leaderboard upsert query: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to upsert leaderboard entry: %w", err)
	}

	err = r.rdb.ZAdd(ctx, leaderboardKey(metric), redis.Z{
		Score:  float64(metricValue),
		Member: userID.String(),
	}).Err()
	if err != nil {
		logger.Logger().Warn("failed to update leaderboard cache",
			zap.String("metric", string(metric)),
			zap.String("user_id", userID.String()),
			zap.Error(err))
	}

	return nil
}

// GetLeaderboard returns the top entries for a metric, best first. The Redis
// sorted set is the fast path; any cache failure falls back to the
// leaderboard_entries table. Ranks are assigned by the caller.
func (r *Repository) GetLeaderboard(ctx context.Context, metric model.LeaderboardMetric, limit int) ([]*model.LeaderboardEntry, error) {
	entries, err := r.getLeaderboardFromCache(ctx, metric, limit)
	if err == nil {
		return entries, nil
	}
	logger.Logger().Warn("leaderboard cache read failed, falling back to database",
		zap.String("metric", string(metric)),
		zap.Error(err))

	return r.getLeaderboardFromDB(ctx, metric, limit)
}

func (r *Repository) getLeaderboardFromCache(ctx context.Context, metric model.LeaderboardMetric, limit int) ([]*model.LeaderboardEntry, error) {
	zs, err := r.rdb.ZRevRangeWithScores(ctx, leaderboardKey(metric), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	if len(zs) == 0 {
		return nil, fmt.Errorf("leaderboard cache empty for metric %s", metric)
	}

	ids := make([]uuid.UUID, 0, len(zs))
	for _, z := range zs {
		id, err := uuid.Parse(z.Member.(string))
		if err != nil {
			return nil, fmt.Errorf("bad member in leaderboard cache: %w", err)
		}
		ids = append(ids, id)
	}

	query, args, err := squirrel.
		Select("id", "username", "is_premium", "current_level").
		From("users").
		Where(squirrel.Eq{"id": ids}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var users []User
	err = r.db.SelectContext(ctx, &users, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard users: %w", err)
	}

	byID := make(map[uuid.UUID]User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	entries := make([]*model.LeaderboardEntry, 0, len(zs))
	for _, z := range zs {
		id, _ := uuid.Parse(z.Member.(string))
		u, ok := byID[id]
		if !ok {
			continue
		}
		entries = append(entries, &model.LeaderboardEntry{
			UserID:      id,
			Username:    u.Username,
			MetricValue: int(z.Score),
			Level:       u.CurrentLevel,
			IsPremium:   u.IsPremium,
		})
	}

	return entries, nil
}

func (r *Repository) getLeaderboardFromDB(ctx context.Context, metric model.LeaderboardMetric, limit int) ([]*model.LeaderboardEntry, error) {
	query, args, err := squirrel.
		Select("le.user_id", "u.username", "le.metric_value", "u.current_level", "u.is_premium").
		From("leaderboard_entries le").
		Join("users u ON u.id = le.user_id").
		Where(squirrel.Eq{"le.metric": string(metric)}).
		OrderBy("le.metric_value DESC", "le.user_id ASC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []leaderboardRow
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	entries := make([]*model.LeaderboardEntry, len(rows))
	for i, row := range rows {
		entries[i] = &model.LeaderboardEntry{
			UserID:      row.UserID,
			Username:    row.Username,
			MetricValue: row.MetricValue,
			Level:       row.Level,
			IsPremium:   row.IsPremium,
		}
	}

	return entries, nil
}
