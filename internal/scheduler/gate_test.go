package scheduler

import (
	"testing"
	"time"

	"github.com/mleija/remindd/internal/model"
)

func detachedReview(t *testing.T) PendingReview {
	t.Helper()
	return PendingReview{
		Reminder: model.Reminder{
			Message: "Review me",
			FireAt:  time.Now().Add(-5 * time.Minute),
			Tasks:   []model.Task{{Description: "open", Completed: false}},
		},
		FiredAt: time.Now(),
	}
}

func TestGateSnoozeUsesDefaultTenMinutes(t *testing.T) {
	store := testStore(t)
	gate := NewGate(store)
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.Local)
	gate.clock = func() time.Time { return now }

	if err := gate.Snooze(detachedReview(t), 0); err != nil {
		t.Fatalf("snooze: %v", err)
	}
	list := store.List()
	if len(list) != 1 {
		t.Fatalf("expected exactly one reminder after snooze, got %d", len(list))
	}
	if !list[0].FireAt.Equal(now.Add(10 * time.Minute)) {
		t.Fatalf("expected fire time %s, got %s", now.Add(10*time.Minute), list[0].FireAt)
	}
	if len(list[0].Tasks) != 1 {
		t.Fatalf("snooze lost the checklist")
	}
}

func TestGateCustomSnooze(t *testing.T) {
	store := testStore(t)
	gate := NewGate(store)
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.Local)
	gate.clock = func() time.Time { return now }

	if err := gate.Snooze(detachedReview(t), 25); err != nil {
		t.Fatalf("snooze: %v", err)
	}
	if got := store.List()[0].FireAt; !got.Equal(now.Add(25 * time.Minute)) {
		t.Fatalf("expected fire time %s, got %s", now.Add(25*time.Minute), got)
	}
}

func TestGateRestoreKeepsOriginalFireTime(t *testing.T) {
	store := testStore(t)
	gate := NewGate(store)
	review := detachedReview(t)

	if err := gate.Restore(review); err != nil {
		t.Fatalf("restore: %v", err)
	}
	got := store.List()[0]
	if !got.FireAt.Equal(review.Reminder.FireAt) {
		t.Fatalf("restore changed the fire time: %s vs %s", got.FireAt, review.Reminder.FireAt)
	}
}

func TestGateDeleteLeavesStoreEmpty(t *testing.T) {
	store := testStore(t)
	gate := NewGate(store)
	gate.Delete(detachedReview(t))
	if store.Len() != 0 {
		t.Fatalf("delete outcome must not touch the store")
	}
}
