package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Gamification errors
	ErrNegativeMinutes = errors.New("focus minutes must be positive")
	ErrStateCorrupted  = errors.New("persisted gamification state is corrupted")

	// Level table errors
	ErrLevelTableEmpty     = errors.New("level table has no entries")
	ErrLevelTableUnordered = errors.New("level table must be strictly ascending")

	// Social errors
	ErrProfileNotFound = errors.New("profile not found")
	ErrGroupNotFound   = errors.New("group not found")
	ErrSelfFollow      = errors.New("cannot follow yourself")

	// Ranking errors
	ErrRankingUnavailable = errors.New("ranking data unavailable")
)
