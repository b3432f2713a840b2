package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/pomoflow/pomoflow/internal/domain"
)

// ─── Profiles, Follows, Groups (domain.SocialStore) ─────────────────────────

// UpsertProfile inserts or updates a profile record.
func (d *DB) UpsertProfile(ctx context.Context, p domain.Profile) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO profiles (id, display_name, avatar_ref, is_focusing, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			display_name=excluded.display_name,
			avatar_ref=excluded.avatar_ref`,
		p.ID, p.DisplayName, p.AvatarRef, p.IsFocusing, p.CreatedAt.Unix(),
	)
	return err
}

// Follow records follower → followee. Idempotent.
func (d *DB) Follow(ctx context.Context, followerID, followeeID string) error {
	if followerID == followeeID {
		return domain.ErrSelfFollow
	}
	_, err := d.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO follows (follower_id, followee_id, created_at)
		 VALUES (?, ?, ?)`,
		followerID, followeeID, time.Now().Unix(),
	)
	return err
}

// Unfollow removes a follow edge. Removing a non-existent edge is a no-op.
func (d *DB) Unfollow(ctx context.Context, followerID, followeeID string) error {
	_, err := d.db.ExecContext(ctx,
		`DELETE FROM follows WHERE follower_id = ? AND followee_id = ?`,
		followerID, followeeID,
	)
	return err
}

// ListFollowing returns the IDs a user follows, oldest follow first.
func (d *DB) ListFollowing(ctx context.Context, followerID string) ([]string, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT followee_id FROM follows WHERE follower_id = ? ORDER BY created_at ASC`,
		followerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectIDs(rows)
}

// CreateGroup creates a group and enrolls the owner.
func (d *DB) CreateGroup(ctx context.Context, g domain.Group) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO groups (id, name, owner_id, created_at) VALUES (?, ?, ?, ?)`,
		g.ID, g.Name, g.OwnerID, g.CreatedAt.Unix(),
	); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO group_members (group_id, user_id, joined_at) VALUES (?, ?, ?)`,
		g.ID, g.OwnerID, g.CreatedAt.Unix(),
	); err != nil {
		return err
	}
	return tx.Commit()
}

// JoinGroup adds a member to a group. Idempotent.
func (d *DB) JoinGroup(ctx context.Context, groupID, userID string) error {
	var exists int
	err := d.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM groups WHERE id = ?`, groupID,
	).Scan(&exists)
	if err != nil {
		return err
	}
	if exists == 0 {
		return domain.ErrGroupNotFound
	}

	_, err = d.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO group_members (group_id, user_id, joined_at)
		 VALUES (?, ?, ?)`,
		groupID, userID, time.Now().Unix(),
	)
	return err
}

// ListGroupMembers returns member IDs in join order.
func (d *DB) ListGroupMembers(ctx context.Context, groupID string) ([]string, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT user_id FROM group_members WHERE group_id = ? ORDER BY joined_at ASC`,
		groupID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectIDs(rows)
}

func collectIDs(rows *sql.Rows) ([]string, error) {
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
