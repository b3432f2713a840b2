package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/pomoflow/pomoflow/internal/domain"
)

// ─── Sessions & Profiles (domain.RemoteStore) ───────────────────────────────

// InsertSession publishes a completed focus session.
func (d *DB) InsertSession(ctx context.Context, rec domain.SessionRecord) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO focus_sessions (id, user_id, minutes, completed_at)
		 VALUES (?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.Minutes, rec.CompletedAt.Unix(),
	)
	return err
}

// QuerySessions returns all sessions completed at or after since,
// oldest first.
func (d *DB) QuerySessions(ctx context.Context, since time.Time) ([]domain.SessionRecord, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, user_id, minutes, completed_at
		 FROM focus_sessions WHERE completed_at >= ? ORDER BY completed_at ASC`,
		since.Unix(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.SessionRecord
	for rows.Next() {
		var rec domain.SessionRecord
		var completedAt int64
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Minutes, &completedAt); err != nil {
			return nil, err
		}
		rec.CompletedAt = time.Unix(completedAt, 0)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// QueryProfiles returns candidate profiles in creation order. A nil
// filter means every known profile; a non-nil filter restricts to the
// given IDs (and an empty non-nil filter matches nobody).
func (d *DB) QueryProfiles(ctx context.Context, filterIDs []string) ([]domain.Profile, error) {
	query := `SELECT id, display_name, avatar_ref, is_focusing, created_at
		 FROM profiles`
	var args []any

	if filterIDs != nil {
		if len(filterIDs) == 0 {
			return nil, nil
		}
		query += ` WHERE id IN (?` + repeat(",?", len(filterIDs)-1) + `)`
		for _, id := range filterIDs {
			args = append(args, id)
		}
	}
	query += ` ORDER BY created_at ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

// GetProfile retrieves a single profile by ID.
func (d *DB) GetProfile(ctx context.Context, id string) (*domain.Profile, error) {
	row := d.db.QueryRowContext(ctx,
		`SELECT id, display_name, avatar_ref, is_focusing, created_at
		 FROM profiles WHERE id = ?`, id,
	)
	p, err := scanProfile(row)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

// SetProfileFocusing flips the live "is focusing" flag.
func (d *DB) SetProfileFocusing(ctx context.Context, userID string, focusing bool) error {
	result, err := d.db.ExecContext(ctx,
		`UPDATE profiles SET is_focusing = ? WHERE id = ?`, focusing, userID,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

// ─── Helpers ────────────────────────────────────────────────────────────────

func scanProfile(s scanner) (*domain.Profile, error) {
	var p domain.Profile
	var createdAt int64

	err := s.Scan(&p.ID, &p.DisplayName, &p.AvatarRef, &p.IsFocusing, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil // Not found, no error
	}
	if err != nil {
		return nil, err
	}

	p.CreatedAt = time.Unix(createdAt, 0)
	return &p, nil
}

// repeat builds the tail of an IN (?,...) placeholder list.
func repeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}
