package domain

import (
	"fmt"
	"strings"
	"time"
)

// ─── Social Types ───────────────────────────────────────────────────────────
// Profiles, follows, and groups scope the ranking views: a user ranks
// against everyone, the people they follow, or one group's members.

// Profile is a known user on the shared backend.
type Profile struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	AvatarRef   string    `json:"avatar_ref"`
	IsFocusing  bool      `json:"is_focusing"`
	CreatedAt   time.Time `json:"created_at"`
}

// SessionRecord is one completed focus session as stored remotely.
type SessionRecord struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Minutes     int64     `json:"minutes"`
	CompletedAt time.Time `json:"completed_at"`
}

// Group is a named set of users ranking against each other.
type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ─── Ranking Types ──────────────────────────────────────────────────────────

// RankingEntry is one row of a leaderboard, computed fresh per query.
type RankingEntry struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Minutes       int64  `json:"minutes"`
	IsCurrentUser bool   `json:"is_current_user"`
	IsFocusing    bool   `json:"is_focusing"`
}

// RankingScope selects the candidate profile set for a leaderboard.
type RankingScope struct {
	Kind    ScopeKind
	GroupID string // Set when Kind == ScopeGroup
}

// ScopeKind enumerates leaderboard membership filters.
type ScopeKind string

const (
	ScopeGlobal    ScopeKind = "global"
	ScopeFollowing ScopeKind = "following"
	ScopeGroup     ScopeKind = "group"
)

// ParseScope parses "global", "following", or "group:<id>".
func ParseScope(s string) (RankingScope, error) {
	switch {
	case s == "" || s == string(ScopeGlobal):
		return RankingScope{Kind: ScopeGlobal}, nil
	case s == string(ScopeFollowing):
		return RankingScope{Kind: ScopeFollowing}, nil
	case strings.HasPrefix(s, "group:"):
		id := strings.TrimPrefix(s, "group:")
		if id == "" {
			return RankingScope{}, fmt.Errorf("scope %q: missing group id", s)
		}
		return RankingScope{Kind: ScopeGroup, GroupID: id}, nil
	default:
		return RankingScope{}, fmt.Errorf("unknown ranking scope %q", s)
	}
}

// ─── Periods ────────────────────────────────────────────────────────────────

// Period buckets focus time into daily, weekly, or monthly windows.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// ParsePeriod validates a period string, defaulting to daily when empty.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case "":
		return PeriodDaily, nil
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return Period(s), nil
	default:
		return "", fmt.Errorf("unknown period %q", s)
	}
}

// StartOfPeriod returns the inclusive lower bound of the period containing
// now, in now's location. Daily is midnight today; weekly is the most
// recent Sunday at midnight (weeks start Sunday); monthly is the first of
// the current month at midnight.
func StartOfPeriod(now time.Time, p Period) time.Time {
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	switch p {
	case PeriodWeekly:
		return midnight.AddDate(0, 0, -int(midnight.Weekday()))
	case PeriodMonthly:
		return time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
	default:
		return midnight
	}
}
