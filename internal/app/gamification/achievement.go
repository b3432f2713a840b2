package gamification

import "github.com/pomoflow/pomoflow/internal/domain"

// EvalResult is the outcome of one achievement evaluation pass.
type EvalResult struct {
	// NewUnlocked is the full unlocked ID list after this pass: the
	// prior list in its original order, then newly unlocked IDs in
	// catalog order. The input slice is never mutated.
	NewUnlocked []string

	// NewlyUnlockedIDs holds only the IDs unlocked by this pass, in
	// catalog order — the caller uses these for celebratory UI.
	NewlyUnlockedIDs []string

	// XPReward is the summed reward of the newly unlocked achievements.
	XPReward int64
}

// EvaluateAchievements checks the catalog against a stats snapshot.
// Already-unlocked achievements are skipped, so the pass is idempotent:
// feeding NewUnlocked back in with the same stats unlocks nothing.
// Pure function — recording unlock timestamps, toasts, and XP crediting
// are the caller's concern.
func EvaluateAchievements(catalog []domain.AchievementDef, stats domain.UserStats, unlockedIDs []string) EvalResult {
	have := make(map[string]bool, len(unlockedIDs))
	for _, id := range unlockedIDs {
		have[id] = true
	}

	result := EvalResult{
		NewUnlocked: append([]string(nil), unlockedIDs...),
	}

	for _, def := range catalog {
		if have[def.ID] {
			continue
		}
		if def.Predicate == nil || !def.Predicate(stats) {
			continue
		}
		result.NewUnlocked = append(result.NewUnlocked, def.ID)
		result.NewlyUnlockedIDs = append(result.NewlyUnlockedIDs, def.ID)
		result.XPReward += def.XPReward
	}
	return result
}

// CatalogByID indexes a catalog for display lookups.
func CatalogByID(catalog []domain.AchievementDef) map[string]domain.AchievementDef {
	m := make(map[string]domain.AchievementDef, len(catalog))
	for _, def := range catalog {
		m[def.ID] = def
	}
	return m
}

// ─── Achievement Catalog ────────────────────────────────────────────────────
// Static catalog, read-only after startup. Predicates are monotone over
// the cumulative counters.

// DefaultCatalog returns the full pomoflow achievement catalog.
func DefaultCatalog() []domain.AchievementDef {
	return []domain.AchievementDef{
		// ── First Steps ────────────────────────────────────────────────
		{
			ID: "first_cycle", Name: "First Focus", Category: domain.CatFirstSteps,
			Icon: "🍅", XPReward: 50,
			Predicate: func(s domain.UserStats) bool { return s.CompletedCycles >= 1 },
		},
		{
			ID: "first_hour", Name: "One Good Hour", Category: domain.CatFirstSteps,
			Icon: "⏰", XPReward: 50,
			Predicate: func(s domain.UserStats) bool { return s.TotalFocusMinutes >= 60 },
		},

		// ── Focus Time ─────────────────────────────────────────────────
		{
			ID: "minutes_600", Name: "Deep Diver", Category: domain.CatFocusTime,
			Icon: "🤿", XPReward: 150,
			Predicate: func(s domain.UserStats) bool { return s.TotalFocusMinutes >= 600 },
		},
		{
			ID: "minutes_3000", Name: "Flow State", Category: domain.CatFocusTime,
			Icon: "🌊", XPReward: 500,
			Predicate: func(s domain.UserStats) bool { return s.TotalFocusMinutes >= 3000 },
		},
		{
			ID: "minutes_10000", Name: "Ten Thousand", Category: domain.CatFocusTime,
			Icon: "🏔️", XPReward: 2000,
			Predicate: func(s domain.UserStats) bool { return s.TotalFocusMinutes >= 10000 },
		},

		// ── Streaks ────────────────────────────────────────────────────
		{
			ID: "streak_3", Name: "Warming Up", Category: domain.CatStreaks,
			Icon: "✨", XPReward: 75,
			Predicate: func(s domain.UserStats) bool { return s.CurrentStreak >= 3 },
		},
		{
			ID: "streak_7", Name: "Week Warrior", Category: domain.CatStreaks,
			Icon: "🔥", XPReward: 200,
			Predicate: func(s domain.UserStats) bool { return s.CurrentStreak >= 7 },
		},
		{
			ID: "streak_30", Name: "Monthly Machine", Category: domain.CatStreaks,
			Icon: "💪", XPReward: 1000,
			Predicate: func(s domain.UserStats) bool { return s.CurrentStreak >= 30 },
		},
		{
			ID: "streak_100", Name: "Centurion", Category: domain.CatStreaks,
			Icon: "🏛️", XPReward: 5000,
			Predicate: func(s domain.UserStats) bool { return s.CurrentStreak >= 100 },
		},

		// ── Cycles ─────────────────────────────────────────────────────
		{
			ID: "cycles_10", Name: "Getting Serious", Category: domain.CatCycles,
			Icon: "🎯", XPReward: 100,
			Predicate: func(s domain.UserStats) bool { return s.CompletedCycles >= 10 },
		},
		{
			ID: "cycles_100", Name: "Century Club", Category: domain.CatCycles,
			Icon: "💯", XPReward: 500,
			Predicate: func(s domain.UserStats) bool { return s.CompletedCycles >= 100 },
		},
		{
			ID: "cycles_500", Name: "Tomato Farmer", Category: domain.CatCycles,
			Icon: "🧑‍🌾", XPReward: 2000,
			Predicate: func(s domain.UserStats) bool { return s.CompletedCycles >= 500 },
		},
	}
}
