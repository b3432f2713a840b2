package domain

import "time"

// ─── Notification Types ─────────────────────────────────────────────────────
// In-app feed only: the client polls pending notifications and renders
// its own toasts. Push delivery and scheduling live outside the core.

// NotificationType categorizes notifications.
type NotificationType string

const (
	NotifyAchievement NotificationType = "achievement"
	NotifyLevelUp     NotificationType = "level_up"
	NotifyStreak      NotificationType = "streak"
)

// Notification is a user-facing message.
type Notification struct {
	ID        int64            `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	CreatedAt time.Time        `json:"created_at"`
	Shown     bool             `json:"shown"`
}

// NotificationPolicy caps how chatty the feed gets.
type NotificationPolicy struct {
	MaxPerDay int `json:"max_per_day"`
}

// DefaultNotificationPolicy allows a handful of celebrations per day.
// Level-ups and unlocks are bursty on good days; beyond the cap they
// still happen, just silently.
func DefaultNotificationPolicy() NotificationPolicy {
	return NotificationPolicy{MaxPerDay: 5}
}

// NotificationStore persists the in-app feed.
type NotificationStore interface {
	InsertNotification(n Notification) (int64, error)
	NotificationCountToday() (int, error)
	ListPendingNotifications(limit int) ([]Notification, error)
	MarkNotificationShown(id int64) error
}
