package domain

import (
	"context"
	"time"
)

// ─── Collaborator Interfaces ────────────────────────────────────────────────
// These interfaces define the boundaries between the core and its storage.
// Infrastructure implements them; application layer depends on them.

// StateStore is the string-keyed local persistence collaborator.
// The gamification service serializes its state as JSON strings under
// fixed keys and commits every cycle completion through SetMany.
type StateStore interface {
	// Get returns the value for key, or "" if the key is absent.
	Get(key string) (string, error)

	// Set stores a single key-value pair.
	Set(key, value string) error

	// SetMany stores all pairs in one transaction. Either every key is
	// written or none are — this is the aggregate's commit point.
	SetMany(pairs map[string]string) error
}

// RemoteStore is the shared relational backend collaborator holding
// sessions and profiles for every known user.
type RemoteStore interface {
	// QuerySessions returns all sessions completed at or after since.
	QuerySessions(ctx context.Context, since time.Time) ([]SessionRecord, error)

	// QueryProfiles returns candidate profiles. A nil filter means all
	// known profiles; a non-nil filter restricts to the given IDs.
	QueryProfiles(ctx context.Context, filterIDs []string) ([]Profile, error)

	// InsertSession publishes a completed session.
	InsertSession(ctx context.Context, rec SessionRecord) error

	// SetProfileFocusing flips the live "is focusing" flag on a profile.
	SetProfileFocusing(ctx context.Context, userID string, focusing bool) error
}

// SocialStore resolves ranking scopes to member ID sets.
type SocialStore interface {
	UpsertProfile(ctx context.Context, p Profile) error
	Follow(ctx context.Context, followerID, followeeID string) error
	Unfollow(ctx context.Context, followerID, followeeID string) error
	ListFollowing(ctx context.Context, followerID string) ([]string, error)
	CreateGroup(ctx context.Context, g Group) error
	JoinGroup(ctx context.Context, groupID, userID string) error
	ListGroupMembers(ctx context.Context, groupID string) ([]string, error)
}
