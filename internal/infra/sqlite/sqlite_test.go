package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pomoflow/pomoflow/internal/domain"
	"github.com/pomoflow/pomoflow/internal/infra/sqlite"
)

func testDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func profile(id, name string, created time.Time) domain.Profile {
	return domain.Profile{ID: id, DisplayName: name, CreatedAt: created}
}

// ═══════════════════════════════════════════════════════════════════════════
// Key-Value State
// ═══════════════════════════════════════════════════════════════════════════

func TestKV_GetMissingReturnsEmpty(t *testing.T) {
	db := testDB(t)

	v, err := db.Get("nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if v != "" {
		t.Errorf("expected empty string for missing key, got %q", v)
	}
}

func TestKV_SetOverwrites(t *testing.T) {
	db := testDB(t)

	if err := db.Set("xp", "100"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := db.Set("xp", "250"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	v, _ := db.Get("xp")
	if v != "250" {
		t.Errorf("expected 250, got %q", v)
	}
}

func TestKV_SetMany(t *testing.T) {
	db := testDB(t)

	pairs := map[string]string{
		"xp":    "300",
		"level": "3",
		"stats": `{"completed_cycles":1}`,
	}
	if err := db.SetMany(pairs); err != nil {
		t.Fatalf("setmany: %v", err)
	}

	for k, want := range pairs {
		got, err := db.Get(k)
		if err != nil {
			t.Fatalf("get %s: %v", k, err)
		}
		if got != want {
			t.Errorf("key %s: expected %q, got %q", k, want, got)
		}
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Sessions & Profiles
// ═══════════════════════════════════════════════════════════════════════════

func TestSessions_QuerySince(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	for i, at := range []time.Time{base.AddDate(0, 0, -2), base.Add(-time.Hour), base} {
		err := db.InsertSession(ctx, domain.SessionRecord{
			ID:          string(rune('a' + i)),
			UserID:      "alice",
			Minutes:     25,
			CompletedAt: at,
		})
		if err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}

	recs, err := db.QuerySessions(ctx, base.Add(-2*time.Hour))
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 sessions in window, got %d", len(recs))
	}
	if recs[0].CompletedAt.After(recs[1].CompletedAt) {
		t.Error("expected ascending completed_at order")
	}
}

func TestProfiles_UpsertAndFilter(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"alice", "bob", "carol"} {
		if err := db.UpsertProfile(ctx, profile(id, id, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("upsert %s: %v", id, err)
		}
	}

	// Re-upsert updates the display name in place.
	if err := db.UpsertProfile(ctx, profile("alice", "Alice A.", base)); err != nil {
		t.Fatalf("re-upsert: %v", err)
	}

	all, err := db.QueryProfiles(ctx, nil)
	if err != nil {
		t.Fatalf("query all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 profiles, got %d", len(all))
	}
	if all[0].DisplayName != "Alice A." {
		t.Errorf("expected updated name, got %q", all[0].DisplayName)
	}

	some, err := db.QueryProfiles(ctx, []string{"bob", "carol"})
	if err != nil {
		t.Fatalf("query filtered: %v", err)
	}
	if len(some) != 2 {
		t.Errorf("expected 2 filtered profiles, got %d", len(some))
	}

	none, err := db.QueryProfiles(ctx, []string{})
	if err != nil {
		t.Fatalf("query empty filter: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("empty filter should match nobody, got %d", len(none))
	}
}

func TestProfiles_FocusingFlag(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	if err := db.UpsertProfile(ctx, profile("alice", "Alice", time.Now())); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := db.SetProfileFocusing(ctx, "alice", true); err != nil {
		t.Fatalf("set focusing: %v", err)
	}

	p, err := db.GetProfile(ctx, "alice")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !p.IsFocusing {
		t.Error("expected focusing flag set")
	}

	if err := db.SetProfileFocusing(ctx, "ghost", true); !errors.Is(err, domain.ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound for unknown user, got %v", err)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Follows & Groups
// ═══════════════════════════════════════════════════════════════════════════

func TestFollows(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	if err := db.Follow(ctx, "me", "me"); !errors.Is(err, domain.ErrSelfFollow) {
		t.Errorf("expected ErrSelfFollow, got %v", err)
	}

	if err := db.Follow(ctx, "me", "friend"); err != nil {
		t.Fatalf("follow: %v", err)
	}
	// Duplicate follow is a no-op.
	if err := db.Follow(ctx, "me", "friend"); err != nil {
		t.Fatalf("duplicate follow: %v", err)
	}

	ids, err := db.ListFollowing(ctx, "me")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ids) != 1 || ids[0] != "friend" {
		t.Errorf("expected [friend], got %v", ids)
	}

	if err := db.Unfollow(ctx, "me", "friend"); err != nil {
		t.Fatalf("unfollow: %v", err)
	}
	ids, _ = db.ListFollowing(ctx, "me")
	if len(ids) != 0 {
		t.Errorf("expected empty after unfollow, got %v", ids)
	}
}

func TestGroups(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	g := domain.Group{ID: "g1", Name: "Deep Workers", OwnerID: "me", CreatedAt: time.Now()}
	if err := db.CreateGroup(ctx, g); err != nil {
		t.Fatalf("create: %v", err)
	}

	// The owner is a member from creation.
	members, err := db.ListGroupMembers(ctx, "g1")
	if err != nil {
		t.Fatalf("members: %v", err)
	}
	if len(members) != 1 || members[0] != "me" {
		t.Errorf("expected owner membership, got %v", members)
	}

	if err := db.JoinGroup(ctx, "g1", "friend"); err != nil {
		t.Fatalf("join: %v", err)
	}
	members, _ = db.ListGroupMembers(ctx, "g1")
	if len(members) != 2 {
		t.Errorf("expected 2 members, got %v", members)
	}

	if err := db.JoinGroup(ctx, "missing", "friend"); !errors.Is(err, domain.ErrGroupNotFound) {
		t.Errorf("expected ErrGroupNotFound, got %v", err)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Notifications
// ═══════════════════════════════════════════════════════════════════════════

func TestNotifications(t *testing.T) {
	db := testDB(t)

	id, err := db.InsertNotification(domain.Notification{
		Type:      domain.NotifyLevelUp,
		Title:     "Level up!",
		Body:      "You reached level 3",
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	count, err := db.NotificationCountToday()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected count 1, got %d", count)
	}

	pending, err := db.ListPendingNotifications(10)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 1 || pending[0].Type != domain.NotifyLevelUp {
		t.Fatalf("expected 1 pending level_up, got %+v", pending)
	}

	if err := db.MarkNotificationShown(id); err != nil {
		t.Fatalf("mark shown: %v", err)
	}
	pending, _ = db.ListPendingNotifications(10)
	if len(pending) != 0 {
		t.Errorf("expected no pending after shown, got %+v", pending)
	}
}
