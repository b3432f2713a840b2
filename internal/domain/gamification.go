// Package domain holds the pure types of the pomoflow core.
// The gamification engine drives retention through streaks, XP, levels,
// and achievements earned by completing focus cycles.
package domain

// ─── User Stats ─────────────────────────────────────────────────────────────

// UserStats is the cumulative counter set fed to achievement predicates.
// All counters are monotone: they only grow, except CurrentStreak which
// may reset to 1 when a day is missed.
type UserStats struct {
	TotalFocusMinutes int64  `json:"total_focus_minutes"`
	CompletedCycles   int64  `json:"completed_cycles"`
	CurrentStreak     int    `json:"current_streak"`
	LastFocusDate     string `json:"last_focus_date"` // "YYYY-MM-DD", "" until first cycle
}

// ─── Focus Sessions ─────────────────────────────────────────────────────────

// FocusSession is one completed focus interval in the user's history.
// Immutable once appended — pruning is not the core's concern.
type FocusSession struct {
	Timestamp int64 `json:"timestamp"` // Milliseconds since epoch
	Minutes   int64 `json:"minutes"`
}

// ─── Achievements ───────────────────────────────────────────────────────────

// AchievementCategory groups achievements by theme.
type AchievementCategory string

const (
	CatFirstSteps AchievementCategory = "first_steps"
	CatFocusTime  AchievementCategory = "focus_time"
	CatStreaks    AchievementCategory = "streaks"
	CatCycles     AchievementCategory = "cycles"
)

// AchievementDef defines a single achievement.
// Predicates should be monotone over growing stats. CurrentStreak may
// reset, but an unlock latches in the unlocked set, so a streak
// achievement is never lost once earned.
type AchievementDef struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Category  AchievementCategory  `json:"category"`
	Icon      string               `json:"icon"`
	XPReward  int64                `json:"xp_reward"`
	Predicate func(UserStats) bool `json:"-"`
}

// ─── Levels ─────────────────────────────────────────────────────────────────

// LevelStep is one row of the level table.
type LevelStep struct {
	Level      int   `json:"level"`
	XPRequired int64 `json:"xp_required"`
}

// LevelTable is a fixed ascending sequence of level thresholds.
// Strictly increasing in both level and XP; level 1 requires 0 XP.
// Treated as read-only static data after startup.
type LevelTable []LevelStep

// ─── Gamification State ─────────────────────────────────────────────────────

// GamificationState is the persisted aggregate record for one user.
// Owned exclusively by the gamification service; updated in lockstep on
// every cycle completion, never partially.
type GamificationState struct {
	XP       int64          `json:"xp"`
	Level    int            `json:"level"`
	Stats    UserStats      `json:"stats"`
	Unlocked []string       `json:"unlocked_achievements"`
	History  []FocusSession `json:"history"`
}

// NewGamificationState returns the zeroed first-launch state.
func NewGamificationState() GamificationState {
	return GamificationState{Level: 1}
}
