package gamification_test

import (
	"testing"

	"github.com/pomoflow/pomoflow/internal/app/gamification"
	"github.com/pomoflow/pomoflow/internal/domain"
)

func TestNotification_DailyCapSuppresses(t *testing.T) {
	db := testDB(t)
	svc := gamification.NewNotificationServiceWithPolicy(db, domain.NotificationPolicy{MaxPerDay: 2})

	for i := 0; i < 2; i++ {
		id, err := svc.Create(domain.Notification{Type: domain.NotifyStreak, Title: "streak"})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		if id == 0 {
			t.Fatalf("notification %d unexpectedly suppressed", i)
		}
	}

	// Third of the day hits the cap: silently dropped, no error.
	id, err := svc.Create(domain.Notification{Type: domain.NotifyStreak, Title: "streak"})
	if err != nil {
		t.Fatalf("create over cap: %v", err)
	}
	if id != 0 {
		t.Error("expected suppression over the daily cap")
	}

	pending, err := svc.Pending(10)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 2 {
		t.Errorf("expected 2 pending, got %d", len(pending))
	}
}

func TestNotification_CelebrateCycle(t *testing.T) {
	db := testDB(t)
	notify := gamification.NewNotificationService(db)
	svc := gamification.NewService(db)

	res, err := svc.CompleteCycle(25, noon())
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if err := notify.CelebrateCycle(res); err != nil {
		t.Fatalf("celebrate: %v", err)
	}

	// First cycle unlocks an achievement and levels up: two entries.
	pending, err := notify.Pending(10)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 notifications, got %+v", pending)
	}

	if err := notify.MarkShown(pending[0].ID); err != nil {
		t.Fatalf("mark shown: %v", err)
	}
	pending, _ = notify.Pending(10)
	if len(pending) != 1 {
		t.Errorf("expected 1 pending after mark shown, got %d", len(pending))
	}
}
