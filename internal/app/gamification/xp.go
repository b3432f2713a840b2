package gamification

// XP constants. Fixed, not configurable: every focused minute is worth
// the same everywhere so leaderboards and levels stay comparable.
const (
	XPPerMinute       = 10
	StreakBonusPerDay = 5
)

// XPInput carries everything the XP rules need for one completed cycle.
type XPInput struct {
	Minutes       int64
	NewStreak     int
	LastFocusDate string // Stats value BEFORE this cycle was counted
	Today         string // DateKey of the completion instant
}

// XPForCycle computes the XP gained for a completed focus cycle.
// Base: Minutes × 10. Streak bonus: NewStreak × 5, paid only on the
// first completion of a day that extends a streak past 1 — repeat
// cycles on the same day earn base XP only.
//
// Minutes must be positive; the caller validates (see Service).
func XPForCycle(in XPInput) int64 {
	xp := in.Minutes * XPPerMinute
	if in.NewStreak > 1 && in.LastFocusDate != in.Today {
		xp += int64(in.NewStreak) * StreakBonusPerDay
	}
	return xp
}
