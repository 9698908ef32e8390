package model

import (
	"time"

	"github.com/google/uuid"
)

// XPAction is one append-only ledger entry. Rows are never mutated or
// deleted after insert.
type XPAction struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	ActionType string
	XPGained   int
	CreatedAt  time.Time
}

// LevelInfo is the resolved view of a total-XP value.
type LevelInfo struct {
	Level           int
	ProgressXP      int
	RequiredXP      int
	ProgressPercent int
	Title           string
}

type XPGrantResult struct {
	XPGained   int
	NewTotalXP int
	NewLevel   int
	LeveledUp  bool
	LevelTitle string
}

type ActivityResult struct {
	AlreadyLogged bool
	CurrentStreak int
	LongestStreak int
	XPAwarded     int
}
