package gamification

import (
	"fmt"
	"time"

	"github.com/pomoflow/pomoflow/internal/domain"
)

// NotificationService writes the in-app celebration feed. Capped per
// day by policy so a backlog of unlocks cannot flood the client.
type NotificationService struct {
	store  domain.NotificationStore
	policy domain.NotificationPolicy
}

// NewNotificationService creates a notification service with default policy.
func NewNotificationService(store domain.NotificationStore) *NotificationService {
	return &NotificationService{store: store, policy: domain.DefaultNotificationPolicy()}
}

// NewNotificationServiceWithPolicy creates a notification service with custom policy.
func NewNotificationServiceWithPolicy(store domain.NotificationStore, policy domain.NotificationPolicy) *NotificationService {
	return &NotificationService{store: store, policy: policy}
}

// CelebrateCycle records notifications for a cycle result: one per
// achievement unlocked plus one for a level-up. Suppressed entries
// (daily cap) are skipped, not queued.
func (n *NotificationService) CelebrateCycle(res CycleResult) error {
	for _, def := range res.NewThisCycle {
		_, err := n.Create(domain.Notification{
			Type:  domain.NotifyAchievement,
			Title: fmt.Sprintf("%s %s", def.Icon, def.Name),
			Body:  fmt.Sprintf("Achievement unlocked: +%d XP", def.XPReward),
		})
		if err != nil {
			return err
		}
	}

	if res.LeveledUp {
		_, err := n.Create(domain.Notification{
			Type:  domain.NotifyLevelUp,
			Title: fmt.Sprintf("Level %d!", res.Level),
			Body:  fmt.Sprintf("You reached level %d with %d XP.", res.Level, res.TotalXP),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Create creates a notification if policy allows it.
// Returns the notification ID (0 if suppressed by policy) and any error.
func (n *NotificationService) Create(notif domain.Notification) (int64, error) {
	todayCount, err := n.store.NotificationCountToday()
	if err != nil {
		return 0, fmt.Errorf("count today: %w", err)
	}
	if todayCount >= n.policy.MaxPerDay {
		return 0, nil // Suppressed — daily limit reached
	}

	notif.CreatedAt = time.Now()
	notif.Shown = false

	id, err := n.store.InsertNotification(notif)
	if err != nil {
		return 0, fmt.Errorf("insert notification: %w", err)
	}
	return id, nil
}

// Pending returns unshown notifications.
func (n *NotificationService) Pending(limit int) ([]domain.Notification, error) {
	return n.store.ListPendingNotifications(limit)
}

// MarkShown marks a notification as shown.
func (n *NotificationService) MarkShown(id int64) error {
	return n.store.MarkNotificationShown(id)
}
