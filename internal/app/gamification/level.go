package gamification

import (
	"fmt"

	"github.com/pomoflow/pomoflow/internal/domain"
)

// Past the top of the table the next threshold is extrapolated as
// 1.5× the highest defined one — a soft cap, no hard max level.
const maxLevelFallback = 1.5

// DefaultLevelTable returns the standard pomoflow level curve.
// Roughly: level 2 after ~2 focused hours, level 10 after ~2 weeks of
// daily 25-minute cycles.
func DefaultLevelTable() domain.LevelTable {
	return domain.LevelTable{
		{Level: 1, XPRequired: 0},
		{Level: 2, XPRequired: 100},
		{Level: 3, XPRequired: 300},
		{Level: 4, XPRequired: 600},
		{Level: 5, XPRequired: 1000},
		{Level: 6, XPRequired: 1500},
		{Level: 7, XPRequired: 2200},
		{Level: 8, XPRequired: 3000},
		{Level: 9, XPRequired: 4000},
		{Level: 10, XPRequired: 5500},
	}
}

// ValidateLevelTable rejects empty or non-ascending tables. A bad table
// is a programmer error; this runs once at service construction.
func ValidateLevelTable(t domain.LevelTable) error {
	if len(t) == 0 {
		return domain.ErrLevelTableEmpty
	}
	if t[0].XPRequired != 0 {
		return fmt.Errorf("%w: first level must require 0 XP", domain.ErrLevelTableUnordered)
	}
	for i := 1; i < len(t); i++ {
		if t[i].Level <= t[i-1].Level || t[i].XPRequired <= t[i-1].XPRequired {
			return fmt.Errorf("%w: entry %d", domain.ErrLevelTableUnordered, i)
		}
	}
	return nil
}

// LevelForXP returns the highest level whose threshold is at or below
// xp. Falls back to the first level if xp is below every threshold
// (unreachable with a valid table, since level 1 requires 0).
func LevelForXP(t domain.LevelTable, xp int64) int {
	level := t[0].Level
	for _, step := range t {
		if xp >= step.XPRequired {
			level = step.Level
		}
	}
	return level
}

// NextLevelXP returns the cumulative XP threshold of level+1.
// Beyond the table it extrapolates 1.5× the top threshold.
func NextLevelXP(t domain.LevelTable, level int) int64 {
	for _, step := range t {
		if step.Level == level+1 {
			return step.XPRequired
		}
	}
	return int64(maxLevelFallback * float64(t[len(t)-1].XPRequired))
}

// LevelProgress returns the fraction of the way from level's threshold
// to the next one, clamped to [0, 1].
func LevelProgress(t domain.LevelTable, xp int64, level int) float64 {
	var base int64
	for _, step := range t {
		if step.Level == level {
			base = step.XPRequired
			break
		}
	}

	next := NextLevelXP(t, level)
	span := next - base
	if span <= 0 {
		return 1.0 // Max-level fallback collapsed the span
	}

	progress := float64(xp-base) / float64(span)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}
