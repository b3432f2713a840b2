// Package sqlite provides SQLite-based persistent storage for pomoflow.
// Uses WAL mode for concurrent reads and crash-safe writes. One file
// holds both the local gamification state and the shared tables
// (profiles, sessions, follows, groups) a hosted deployment serves.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/state.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "state.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// Local gamification state: one key per aggregate field,
		// committed together on every cycle completion.
		`CREATE TABLE IF NOT EXISTS gamification (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Shared backend: user profiles
		`CREATE TABLE IF NOT EXISTS profiles (
			id           TEXT PRIMARY KEY,
			display_name TEXT NOT NULL,
			avatar_ref   TEXT NOT NULL DEFAULT '',
			is_focusing  BOOLEAN DEFAULT 0,
			created_at   INTEGER NOT NULL
		)`,

		// Shared backend: completed focus sessions, many rows per user
		`CREATE TABLE IF NOT EXISTS focus_sessions (
			id           TEXT PRIMARY KEY,
			user_id      TEXT NOT NULL,
			minutes      INTEGER NOT NULL,
			completed_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_completed ON focus_sessions(completed_at)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_user ON focus_sessions(user_id)`,

		// Social graph: follows
		`CREATE TABLE IF NOT EXISTS follows (
			follower_id TEXT NOT NULL,
			followee_id TEXT NOT NULL,
			created_at  INTEGER NOT NULL,
			PRIMARY KEY (follower_id, followee_id)
		)`,

		// Social graph: groups and memberships
		`CREATE TABLE IF NOT EXISTS groups (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			owner_id   TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS group_members (
			group_id  TEXT NOT NULL,
			user_id   TEXT NOT NULL,
			joined_at INTEGER NOT NULL,
			PRIMARY KEY (group_id, user_id)
		)`,

		// In-app notification log (level-ups, unlocks)
		`CREATE TABLE IF NOT EXISTS notifications (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			type       TEXT NOT NULL,
			title      TEXT NOT NULL,
			body       TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			shown      BOOLEAN DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notif_created ON notifications(created_at)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// ─── Gamification Key-Value (domain.StateStore) ─────────────────────────────

// Set stores a gamification key-value pair.
func (d *DB) Set(key, value string) error {
	_, err := d.db.Exec(
		`INSERT INTO gamification (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		key, value,
	)
	return err
}

// Get retrieves a gamification value by key.
// Returns "" if key not found.
func (d *DB) Get(key string) (string, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM gamification WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// SetMany stores all pairs in one transaction. The gamification
// aggregate relies on this being all-or-nothing.
func (d *DB) SetMany(pairs map[string]string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for k, v := range pairs {
		if _, err := tx.Exec(
			`INSERT INTO gamification (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
			k, v,
		); err != nil {
			return fmt.Errorf("set %s: %w", k, err)
		}
	}
	return tx.Commit()
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
