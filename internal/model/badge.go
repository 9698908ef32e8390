package model

import (
	"time"

	"github.com/google/uuid"
)

type Badge struct {
	BadgeID     string
	Name        string
	Tier        string
	Description string
}

// BadgeUnlock records a badge a user has earned. Unique per
// (user, badge), immutable once created.
type BadgeUnlock struct {
	UserID     uuid.UUID
	BadgeID    string
	UnlockedAt time.Time
}

// UserBadge is a catalog entry annotated with the user's unlock state.
type UserBadge struct {
	Badge
	Unlocked   bool
	UnlockedAt *time.Time
}
