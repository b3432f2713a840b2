// Package gamification implements the pomoflow progression engine:
// streaks, XP, levels, and achievements earned by completing focus
// cycles. The calculators are pure functions over immutable snapshots;
// Service orchestrates them against the persisted state.
package gamification

import (
	"time"

	"github.com/pomoflow/pomoflow/internal/domain"
)

// DateKey returns the calendar-date key ("YYYY-MM-DD") for t, in t's
// location. All streak and period math uses one consistent timezone:
// whatever location the caller resolves "now" into.
func DateKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

// NewStreak computes the consecutive-day streak after a cycle completes
// at now. Same calendar day: unchanged (idempotent re-entry). Completed
// yesterday: extend. Anything else — a gap of 2+ days or no prior
// session — resets to 1.
//
// The caller is responsible for persisting LastFocusDate = DateKey(now)
// afterwards; this function has no side effects.
func NewStreak(stats domain.UserStats, now time.Time) int {
	switch stats.LastFocusDate {
	case DateKey(now):
		return stats.CurrentStreak
	case DateKey(now.AddDate(0, 0, -1)):
		return stats.CurrentStreak + 1
	default:
		return 1
	}
}
