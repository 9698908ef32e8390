package model

import (
	"time"

	"github.com/google/uuid"
)

type QuestKind string

const (
	QuestKindDaily  QuestKind = "daily"
	QuestKindWeekly QuestKind = "weekly"
)

// Quest is one generated instance of a quest template, unique per
// (user, period, quest type). Period is the calendar date for daily
// quests and the Monday week-start date for weekly quests.
type Quest struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Kind         QuestKind
	QuestType    string
	Description  string
	Period       time.Time
	CurrentValue int
	TargetValue  *int
	XPReward     int
	IsCompleted  bool
	CompletedAt  *time.Time
}

// QuestTemplate is a static catalog entry quests are generated from.
type QuestTemplate struct {
	QuestType   string
	Description string
	XPReward    int
	TargetValue int
}

type QuestCompletionResult struct {
	Quest      *Quest
	XPAwarded  int
	LeveledUp  bool
	NewLevel   int
	LevelTitle string
}
