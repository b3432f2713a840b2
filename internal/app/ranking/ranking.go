// Package ranking builds period-bucketed leaderboards from the shared
// session feed. Aggregation is a pure fold over (user, minutes) rows;
// the service wraps it with scope resolution and the remote fetches.
package ranking

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pomoflow/pomoflow/internal/domain"
)

// Service answers leaderboard queries against the remote backend.
type Service struct {
	remote domain.RemoteStore
	social domain.SocialStore
}

// NewService creates a ranking service.
func NewService(remote domain.RemoteStore, social domain.SocialStore) *Service {
	return &Service{remote: remote, social: social}
}

// Leaderboard returns the full sorted ranking for the period and scope.
// Fetch failures are propagated, not swallowed: callers can tell "no
// data" apart from "backend down". Slicing a podium and locating the
// current user's 1-based rank are the caller's job (see Rank).
func (s *Service) Leaderboard(ctx context.Context, p domain.Period, scope domain.RankingScope, currentUserID string, now time.Time) ([]domain.RankingEntry, error) {
	filterIDs, err := s.resolveScope(ctx, scope, currentUserID)
	if err != nil {
		return nil, err
	}

	since := domain.StartOfPeriod(now, p)
	sessions, err := s.remote.QuerySessions(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("%w: query sessions: %v", domain.ErrRankingUnavailable, err)
	}

	profiles, err := s.remote.QueryProfiles(ctx, filterIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: query profiles: %v", domain.ErrRankingUnavailable, err)
	}

	return Aggregate(sessions, profiles, currentUserID), nil
}

// resolveScope turns a ranking scope into a profile ID filter.
// Global means no filter. Following and group scopes include the
// requesting user so they can see their own row.
func (s *Service) resolveScope(ctx context.Context, scope domain.RankingScope, currentUserID string) ([]string, error) {
	switch scope.Kind {
	case domain.ScopeFollowing:
		ids, err := s.social.ListFollowing(ctx, currentUserID)
		if err != nil {
			return nil, fmt.Errorf("%w: list following: %v", domain.ErrRankingUnavailable, err)
		}
		return appendSelf(ids, currentUserID), nil
	case domain.ScopeGroup:
		ids, err := s.social.ListGroupMembers(ctx, scope.GroupID)
		if err != nil {
			return nil, fmt.Errorf("%w: list group members: %v", domain.ErrRankingUnavailable, err)
		}
		return ids, nil
	default:
		return nil, nil
	}
}

// Aggregate sums session minutes per user and produces one entry per
// candidate profile, sorted descending by minutes. Profiles without a
// session in range appear with 0 minutes — a visible zero beats a
// missing row. Ties keep profile retrieval order (stable sort).
func Aggregate(sessions []domain.SessionRecord, profiles []domain.Profile, currentUserID string) []domain.RankingEntry {
	totals := make(map[string]int64, len(profiles))
	for _, rec := range sessions {
		totals[rec.UserID] += rec.Minutes
	}

	entries := make([]domain.RankingEntry, len(profiles))
	for i, p := range profiles {
		entries[i] = domain.RankingEntry{
			ID:            p.ID,
			Name:          p.DisplayName,
			Minutes:       totals[p.ID],
			IsCurrentUser: p.ID == currentUserID,
			IsFocusing:    p.IsFocusing,
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Minutes > entries[j].Minutes
	})
	return entries
}

// Rank returns the 1-based position of userID in a sorted leaderboard,
// or 0 if the user is not present.
func Rank(entries []domain.RankingEntry, userID string) int {
	for i, e := range entries {
		if e.ID == userID {
			return i + 1
		}
	}
	return 0
}

// FormatMinutes renders a minute total as "HHh MMmin", zero-padded, the
// way the leaderboard displays it: 125 → "02h 05min".
func FormatMinutes(minutes int64) string {
	return fmt.Sprintf("%02dh %02dmin", minutes/60, minutes%60)
}

func appendSelf(ids []string, self string) []string {
	for _, id := range ids {
		if id == self {
			return ids
		}
	}
	return append(ids, self)
}
