package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveLevel_Boundaries(t *testing.T) {
	tests := []struct {
		name          string
		totalXP       int
		expectedLevel int
		expectedTitle string
	}{
		{name: "zero xp", totalXP: 0, expectedLevel: 1, expectedTitle: "Beginner Iron"},
		{name: "just below level 2", totalXP: 499, expectedLevel: 1, expectedTitle: "Beginner Iron"},
		{name: "exactly level 2", totalXP: 500, expectedLevel: 2, expectedTitle: "Beginner Iron"},
		{name: "exactly level 3", totalXP: 1200, expectedLevel: 3, expectedTitle: "Beginner Iron"},
		{name: "just below level 3", totalXP: 1199, expectedLevel: 2, expectedTitle: "Beginner Iron"},
		{name: "level 6 title changes", totalXP: 4500, expectedLevel: 6, expectedTitle: "Steel Seeker"},
		{name: "level 10", totalXP: 11700, expectedLevel: 10, expectedTitle: "Steel Seeker"},
		{name: "level 11", totalXP: 14000, expectedLevel: 11, expectedTitle: "Iron Warrior"},
		{name: "last tabulated level", totalXP: 43700, expectedLevel: 20, expectedTitle: "Iron Warrior"},
		{name: "first extrapolated level", totalXP: 48700, expectedLevel: 21, expectedTitle: "Titan Mode"},
		{name: "deep extrapolation", totalXP: 43700 + 31*xpPerLevelBeyondTable, expectedLevel: 51, expectedTitle: "Legend Tier"},
		{name: "negative clamps to zero", totalXP: -5, expectedLevel: 1, expectedTitle: "Beginner Iron"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ResolveLevel(tt.totalXP)
			assert.Equal(t, tt.expectedLevel, info.Level)
			assert.Equal(t, tt.expectedTitle, info.Title)
		})
	}
}

func TestResolveLevel_ThresholdIncrementsByOne(t *testing.T) {
	for i := 1; i < len(levelThresholds); i++ {
		below := ResolveLevel(levelThresholds[i] - 1)
		at := ResolveLevel(levelThresholds[i])

		assert.Equal(t, i, below.Level, "below threshold %d", levelThresholds[i])
		assert.Equal(t, i+1, at.Level, "at threshold %d", levelThresholds[i])
	}
}

func TestResolveLevel_Monotonic(t *testing.T) {
	prev := ResolveLevel(0).Level
	for xp := 0; xp <= 120000; xp += 37 {
		level := ResolveLevel(xp).Level
		assert.GreaterOrEqual(t, level, prev, "level regressed at xp=%d", xp)
		prev = level
	}
}

func TestResolveLevel_Progress(t *testing.T) {
	info := ResolveLevel(750)
	assert.Equal(t, 2, info.Level)
	assert.Equal(t, 250, info.ProgressXP)
	assert.Equal(t, 700, info.RequiredXP)
	assert.Equal(t, 35, info.ProgressPercent)

	for xp := 0; xp <= 120000; xp += 113 {
		p := ResolveLevel(xp).ProgressPercent
		assert.GreaterOrEqual(t, p, 0)
		assert.LessOrEqual(t, p, 100)
	}
}

func TestLevelTitle_Tiers(t *testing.T) {
	tests := []struct {
		level int
		title string
	}{
		{1, "Beginner Iron"},
		{5, "Beginner Iron"},
		{6, "Steel Seeker"},
		{10, "Steel Seeker"},
		{11, "Iron Warrior"},
		{20, "Iron Warrior"},
		{21, "Titan Mode"},
		{30, "Titan Mode"},
		{31, "Apex Physique"},
		{50, "Apex Physique"},
		{51, "Legend Tier"},
		{300, "Legend Tier"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.title, LevelTitle(tt.level), "level %d", tt.level)
	}
}
