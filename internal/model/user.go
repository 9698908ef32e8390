package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID               uuid.UUID
	Username         string
	Email            string
	IsPremium        bool
	TotalXP          int
	CurrentLevel     int
	CurrentStreak    int
	LongestStreak    int
	LastActivityDate *time.Time
	RegistrationDate time.Time
}
