package gamification

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/pomoflow/pomoflow/internal/domain"
)

// State keys in the local store. One key per aggregate field; every
// cycle completion rewrites all five in a single transaction.
const (
	keyXP           = "xp"
	keyLevel        = "level"
	keyStats        = "stats"
	keyAchievements = "achievements"
	keyHistory      = "history"
)

// Service is the gamification aggregate. It owns the persisted
// GamificationState: every mutation goes through CompleteCycle, which
// serializes the read-modify-write so concurrent completions cannot
// lose updates. Reads hand out copies of the cached state.
type Service struct {
	mu      sync.Mutex
	store   domain.StateStore
	catalog []domain.AchievementDef
	levels  domain.LevelTable

	state  domain.GamificationState
	loaded bool
}

// NewService creates the aggregate with the default catalog and level
// table. The level table is validated once here; a bad table is a
// programmer error and panics like any other invalid static data.
func NewService(store domain.StateStore) *Service {
	return NewServiceWith(store, DefaultCatalog(), DefaultLevelTable())
}

// NewServiceWith creates the aggregate with a custom catalog and level
// table (used by tests and by deployments that tune the curve).
func NewServiceWith(store domain.StateStore, catalog []domain.AchievementDef, levels domain.LevelTable) *Service {
	if err := ValidateLevelTable(levels); err != nil {
		panic(fmt.Sprintf("gamification: %v", err))
	}
	return &Service{store: store, catalog: catalog, levels: levels}
}

// CycleResult reports what one completed cycle earned, so the caller
// can present celebratory UI.
type CycleResult struct {
	GainedXP     int64                   `json:"gained_xp"` // Cycle XP, achievement rewards included
	TotalXP      int64                   `json:"total_xp"`
	NewStreak    int                     `json:"new_streak"`
	Level        int                     `json:"level"`
	LeveledUp    bool                    `json:"leveled_up"`
	NewThisCycle []domain.AchievementDef `json:"new_achievements"`
}

// CompleteCycle records one completed focus cycle of the given length,
// ending at now. It computes the next aggregate state — streak, XP,
// stats, achievements, level, history — and commits it as one unit.
// The write is the commit point: on error the cached state is left
// untouched and the operation may be retried.
//
// Note: there is no per-cycle idempotency key. A retry after an
// ambiguous store failure (wrote but errored) double-credits; callers
// that need exactly-once must dedupe upstream.
func (s *Service) CompleteCycle(minutes int64, now time.Time) (CycleResult, error) {
	if minutes <= 0 {
		return CycleResult{}, fmt.Errorf("%w: got %d", domain.ErrNegativeMinutes, minutes)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return CycleResult{}, err
	}
	cur := s.state

	today := DateKey(now)
	newStreak := NewStreak(cur.Stats, now)

	gained := XPForCycle(XPInput{
		Minutes:       minutes,
		NewStreak:     newStreak,
		LastFocusDate: cur.Stats.LastFocusDate,
		Today:         today,
	})

	newStats := domain.UserStats{
		TotalFocusMinutes: cur.Stats.TotalFocusMinutes + minutes,
		CompletedCycles:   cur.Stats.CompletedCycles + 1,
		CurrentStreak:     newStreak,
		LastFocusDate:     today,
	}

	eval := EvaluateAchievements(s.catalog, newStats, cur.Unlocked)

	next := domain.GamificationState{
		XP:       cur.XP + gained + eval.XPReward,
		Stats:    newStats,
		Unlocked: eval.NewUnlocked,
		History: append(append([]domain.FocusSession(nil), cur.History...), domain.FocusSession{
			Timestamp: now.UnixMilli(),
			Minutes:   minutes,
		}),
	}
	next.Level = LevelForXP(s.levels, next.XP)

	if err := s.persist(next); err != nil {
		return CycleResult{}, fmt.Errorf("commit cycle: %w", err)
	}
	s.state = next

	byID := CatalogByID(s.catalog)
	unlocked := make([]domain.AchievementDef, 0, len(eval.NewlyUnlockedIDs))
	for _, id := range eval.NewlyUnlockedIDs {
		unlocked = append(unlocked, byID[id])
	}

	return CycleResult{
		GainedXP:     gained + eval.XPReward,
		TotalXP:      next.XP,
		NewStreak:    newStreak,
		Level:        next.Level,
		LeveledUp:    next.Level > cur.Level,
		NewThisCycle: unlocked,
	}, nil
}

// Snapshot returns a copy of the current state for display. The slices
// are copied so callers cannot reach into the aggregate's own state.
func (s *Service) Snapshot() (domain.GamificationState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return domain.GamificationState{}, err
	}

	snap := s.state
	snap.Unlocked = append([]string(nil), s.state.Unlocked...)
	snap.History = append([]domain.FocusSession(nil), s.state.History...)
	return snap, nil
}

// PeriodMinutes sums focused minutes over history entries at or after
// the start of the period containing now. Pure read, no mutation.
func (s *Service) PeriodMinutes(p domain.Period, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return 0, err
	}

	cutoff := domain.StartOfPeriod(now, p).UnixMilli()
	var total int64
	for _, fs := range s.state.History {
		if fs.Timestamp >= cutoff {
			total += fs.Minutes
		}
	}
	return total, nil
}

// Progress reports level progress for the current XP: the next level's
// threshold and the [0,1] fraction toward it.
func (s *Service) Progress() (nextXP int64, fraction float64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return 0, 0, err
	}
	return NextLevelXP(s.levels, s.state.Level),
		LevelProgress(s.levels, s.state.XP, s.state.Level),
		nil
}

// Catalog returns the achievement definitions (for display).
func (s *Service) Catalog() []domain.AchievementDef {
	return s.catalog
}

// ─── Persistence ────────────────────────────────────────────────────────────

// load rehydrates the cached state from the store on first use.
// Missing keys mean first launch and yield zeroed defaults.
func (s *Service) load() error {
	if s.loaded {
		return nil
	}

	state := domain.NewGamificationState()

	if raw, err := s.store.Get(keyXP); err != nil {
		return fmt.Errorf("load xp: %w", err)
	} else if raw != "" {
		if err := json.Unmarshal([]byte(raw), &state.XP); err != nil {
			return fmt.Errorf("%w: xp: %v", domain.ErrStateCorrupted, err)
		}
	}

	if raw, err := s.store.Get(keyLevel); err != nil {
		return fmt.Errorf("load level: %w", err)
	} else if raw != "" {
		if err := json.Unmarshal([]byte(raw), &state.Level); err != nil {
			return fmt.Errorf("%w: level: %v", domain.ErrStateCorrupted, err)
		}
	}

	if raw, err := s.store.Get(keyStats); err != nil {
		return fmt.Errorf("load stats: %w", err)
	} else if raw != "" {
		if err := json.Unmarshal([]byte(raw), &state.Stats); err != nil {
			return fmt.Errorf("%w: stats: %v", domain.ErrStateCorrupted, err)
		}
	}

	if raw, err := s.store.Get(keyAchievements); err != nil {
		return fmt.Errorf("load achievements: %w", err)
	} else if raw != "" {
		if err := json.Unmarshal([]byte(raw), &state.Unlocked); err != nil {
			return fmt.Errorf("%w: achievements: %v", domain.ErrStateCorrupted, err)
		}
	}

	if raw, err := s.store.Get(keyHistory); err != nil {
		return fmt.Errorf("load history: %w", err)
	} else if raw != "" {
		if err := json.Unmarshal([]byte(raw), &state.History); err != nil {
			return fmt.Errorf("%w: history: %v", domain.ErrStateCorrupted, err)
		}
	}

	s.state = state
	s.loaded = true
	return nil
}

// persist writes all five state keys in one transaction.
func (s *Service) persist(state domain.GamificationState) error {
	pairs := make(map[string]string, 5)
	for key, v := range map[string]any{
		keyXP:           state.XP,
		keyLevel:        state.Level,
		keyStats:        state.Stats,
		keyAchievements: state.Unlocked,
		keyHistory:      state.History,
	} {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		pairs[key] = string(raw)
	}
	return s.store.SetMany(pairs)
}
