package model

import "github.com/google/uuid"

type LeaderboardMetric string

const (
	LeaderboardMetricXP     LeaderboardMetric = "xp"
	LeaderboardMetricStreak LeaderboardMetric = "streak"
)

// LeaderboardEntry is one ranked row. Rank is assigned at read time and
// never stored.
type LeaderboardEntry struct {
	Rank        int
	UserID      uuid.UUID
	Username    string
	MetricValue int
	Level       int
	IsPremium   bool
}
