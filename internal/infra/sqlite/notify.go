package sqlite

import (
	"time"

	"github.com/pomoflow/pomoflow/internal/domain"
)

// ─── Notifications ──────────────────────────────────────────────────────────

// InsertNotification creates a new notification.
func (d *DB) InsertNotification(n domain.Notification) (int64, error) {
	result, err := d.db.Exec(
		`INSERT INTO notifications (type, title, body, created_at, shown)
		 VALUES (?, ?, ?, ?, ?)`,
		string(n.Type), n.Title, n.Body, n.CreatedAt.Unix(), n.Shown,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// NotificationCountToday returns how many notifications were created today.
func (d *DB) NotificationCountToday() (int, error) {
	y, m, day := time.Now().Date()
	startOfDay := time.Date(y, m, day, 0, 0, 0, 0, time.Local).Unix()
	var count int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM notifications WHERE created_at >= ?`, startOfDay,
	).Scan(&count)
	return count, err
}

// ListPendingNotifications returns unshown notifications, newest first.
func (d *DB) ListPendingNotifications(limit int) ([]domain.Notification, error) {
	rows, err := d.db.Query(
		`SELECT id, type, title, body, created_at, shown
		 FROM notifications WHERE shown = 0 ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifs []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var createdAt int64
		if err := rows.Scan(&n.ID, &n.Type, &n.Title, &n.Body, &createdAt, &n.Shown); err != nil {
			return nil, err
		}
		n.CreatedAt = time.Unix(createdAt, 0)
		notifs = append(notifs, n)
	}
	return notifs, rows.Err()
}

// MarkNotificationShown marks a notification as shown.
func (d *DB) MarkNotificationShown(id int64) error {
	_, err := d.db.Exec(`UPDATE notifications SET shown = 1 WHERE id = ?`, id)
	return err
}
