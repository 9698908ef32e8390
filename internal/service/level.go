package service

import "forgefit_backend/internal/model"

// levelThresholds is the single source of truth for level math: entry i is
// the cumulative XP required for level i+1. Every level computation in the
// engine (grant path and progress display alike) derives from this table.
var levelThresholds = []int{
	0,     // level 1
	500,   // level 2
	1200,  // level 3
	2100,  // level 4
	3200,  // level 5
	4500,  // level 6
	6000,  // level 7
	7700,  // level 8
	9600,  // level 9
	11700, // level 10
	14000, // level 11
	16500, // level 12
	19200, // level 13
	22100, // level 14
	25200, // level 15
	28500, // level 16
	32000, // level 17
	35700, // level 18
	39600, // level 19
	43700, // level 20
}

// xpPerLevelBeyondTable is the canonical extrapolation step past the last
// tabulated threshold: every further level costs this much XP.
const xpPerLevelBeyondTable = 5000

// ResolveLevel maps a total-XP value to its level and progress metrics.
// Pure: no state, no clock.
func ResolveLevel(totalXP int) model.LevelInfo {
	if totalXP < 0 {
		totalXP = 0
	}

	level := 1
	for i := len(levelThresholds) - 1; i >= 0; i-- {
		if totalXP >= levelThresholds[i] {
			level = i + 1
			break
		}
	}

	var floor, next int
	if level == len(levelThresholds) {
		last := levelThresholds[len(levelThresholds)-1]
		level += (totalXP - last) / xpPerLevelBeyondTable
		floor = last + (level-len(levelThresholds))*xpPerLevelBeyondTable
		next = floor + xpPerLevelBeyondTable
	} else {
		floor = levelThresholds[level-1]
		next = levelThresholds[level]
	}

	progressXP := totalXP - floor
	requiredXP := next - floor
	percent := progressXP * 100 / requiredXP
	if percent > 100 {
		percent = 100
	}

	return model.LevelInfo{
		Level:           level,
		ProgressXP:      progressXP,
		RequiredXP:      requiredXP,
		ProgressPercent: percent,
		Title:           LevelTitle(level),
	}
}

func LevelTitle(level int) string {
	switch {
	case level <= 5:
		return "Beginner Iron"
	case level <= 10:
		return "Steel Seeker"
	case level <= 20:
		return "Iron Warrior"
	case level <= 30:
		return "Titan Mode"
	case level <= 50:
		return "Apex Physique"
	default:
		return "Legend Tier"
	}
}
