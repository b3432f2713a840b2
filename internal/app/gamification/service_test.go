package gamification_test

import (
	"errors"
	"testing"
	"time"

	"github.com/pomoflow/pomoflow/internal/app/gamification"
	"github.com/pomoflow/pomoflow/internal/domain"
	"github.com/pomoflow/pomoflow/internal/infra/sqlite"
)

// testDB creates a temporary SQLite database for testing.
func testDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// ═══════════════════════════════════════════════════════════════════════════
// CompleteCycle
// ═══════════════════════════════════════════════════════════════════════════

func TestCompleteCycle_FirstCycle(t *testing.T) {
	svc := gamification.NewService(testDB(t))

	res, err := svc.CompleteCycle(25, noon())
	if err != nil {
		t.Fatalf("complete: %v", err)
	}

	if res.NewStreak != 1 {
		t.Errorf("expected streak 1, got %d", res.NewStreak)
	}
	// 25*10 base, no streak bonus, plus the first_cycle reward.
	if res.GainedXP != 300 {
		t.Errorf("expected 250 + 50 = 300 XP, got %d", res.GainedXP)
	}
	if len(res.NewThisCycle) != 1 || res.NewThisCycle[0].ID != "first_cycle" {
		t.Errorf("expected first_cycle unlock, got %v", res.NewThisCycle)
	}
	if res.Level != 3 {
		t.Errorf("expected level 3 at 300 XP, got %d", res.Level)
	}
	if !res.LeveledUp {
		t.Error("expected level-up on first cycle")
	}
}

func TestCompleteCycle_RejectsNonPositiveMinutes(t *testing.T) {
	svc := gamification.NewService(testDB(t))

	for _, m := range []int64{0, -5} {
		if _, err := svc.CompleteCycle(m, noon()); !errors.Is(err, domain.ErrNegativeMinutes) {
			t.Errorf("minutes=%d: expected ErrNegativeMinutes, got %v", m, err)
		}
	}
}

func TestCompleteCycle_StreakAcrossDays(t *testing.T) {
	svc := gamification.NewService(testDB(t))

	for i := 0; i < 3; i++ {
		res, err := svc.CompleteCycle(25, noon().AddDate(0, 0, i))
		if err != nil {
			t.Fatalf("day %d: %v", i, err)
		}
		if res.NewStreak != i+1 {
			t.Errorf("day %d: expected streak %d, got %d", i, i+1, res.NewStreak)
		}
	}
}

func TestCompleteCycle_SurvivesRestart(t *testing.T) {
	db := testDB(t)

	svc := gamification.NewService(db)
	res1, err := svc.CompleteCycle(25, noon())
	if err != nil {
		t.Fatalf("complete: %v", err)
	}

	// A fresh service over the same store must see identical state.
	reborn := gamification.NewService(db)
	state, err := reborn.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	if state.XP != res1.TotalXP {
		t.Errorf("expected XP %d after reload, got %d", res1.TotalXP, state.XP)
	}
	if state.Stats.CompletedCycles != 1 {
		t.Errorf("expected 1 cycle, got %d", state.Stats.CompletedCycles)
	}
	if state.Stats.LastFocusDate != gamification.DateKey(noon()) {
		t.Errorf("unexpected last focus date %q", state.Stats.LastFocusDate)
	}
	if len(state.History) != 1 {
		t.Errorf("expected 1 history entry, got %d", len(state.History))
	}
}

// failingStore wraps a real store but refuses the commit.
type failingStore struct {
	domain.StateStore
}

var errStoreDown = errors.New("store down")

func (f failingStore) SetMany(pairs map[string]string) error { return errStoreDown }

func TestCompleteCycle_FailedCommitLeavesStateUntouched(t *testing.T) {
	db := testDB(t)
	svc := gamification.NewService(failingStore{db})

	if _, err := svc.CompleteCycle(25, noon()); !errors.Is(err, errStoreDown) {
		t.Fatalf("expected commit failure, got %v", err)
	}

	state, err := svc.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if state.XP != 0 || state.Stats.CompletedCycles != 0 || len(state.History) != 0 {
		t.Errorf("state advanced despite failed commit: %+v", state)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Reads
// ═══════════════════════════════════════════════════════════════════════════

func TestSnapshot_CopiesSlices(t *testing.T) {
	svc := gamification.NewService(testDB(t))
	if _, err := svc.CompleteCycle(25, noon()); err != nil {
		t.Fatalf("complete: %v", err)
	}

	snap, _ := svc.Snapshot()
	snap.Unlocked[0] = "tampered"
	snap.History[0].Minutes = 9999

	again, _ := svc.Snapshot()
	if again.Unlocked[0] == "tampered" {
		t.Error("snapshot shares Unlocked backing array with aggregate")
	}
	if again.History[0].Minutes == 9999 {
		t.Error("snapshot shares History backing array with aggregate")
	}
}

func TestPeriodMinutes(t *testing.T) {
	svc := gamification.NewService(testDB(t))

	// Two cycles last month, one yesterday, one today.
	times := []time.Time{
		noon().AddDate(0, -1, 0),
		noon().AddDate(0, -1, 0).Add(time.Hour),
		noon().AddDate(0, 0, -1),
		noon(),
	}
	for _, ts := range times {
		if _, err := svc.CompleteCycle(30, ts); err != nil {
			t.Fatalf("complete at %v: %v", ts, err)
		}
	}

	daily, err := svc.PeriodMinutes(domain.PeriodDaily, noon())
	if err != nil {
		t.Fatalf("daily: %v", err)
	}
	if daily != 30 {
		t.Errorf("expected 30 minutes today, got %d", daily)
	}

	monthly, err := svc.PeriodMinutes(domain.PeriodMonthly, noon())
	if err != nil {
		t.Fatalf("monthly: %v", err)
	}
	if monthly != 60 {
		t.Errorf("expected 60 minutes this month, got %d", monthly)
	}
}

func TestProgress(t *testing.T) {
	svc := gamification.NewService(testDB(t))
	if _, err := svc.CompleteCycle(25, noon()); err != nil {
		t.Fatalf("complete: %v", err)
	}

	// 300 XP lands exactly on level 3; next threshold is 600.
	nextXP, fraction, err := svc.Progress()
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if nextXP != 600 {
		t.Errorf("expected next threshold 600, got %d", nextXP)
	}
	if fraction != 0 {
		t.Errorf("expected fraction 0 at level floor, got %f", fraction)
	}
}

func TestService_CorruptedStateSurfaces(t *testing.T) {
	db := testDB(t)
	if err := db.Set("stats", "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	svc := gamification.NewService(db)
	if _, err := svc.Snapshot(); !errors.Is(err, domain.ErrStateCorrupted) {
		t.Errorf("expected ErrStateCorrupted, got %v", err)
	}
}
