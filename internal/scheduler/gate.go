package scheduler

import (
	"time"

	"github.com/mleija/remindd/internal/storage"
)

// DefaultSnoozeMinutes is the fixed snooze applied by the review-and-
// snooze choice.
const DefaultSnoozeMinutes = 10

// Gate applies the user's decision to a fired one-shot reminder that was
// pulled from the store because of unfinished tasks. It runs on the UI
// side, after the engine's handoff, never on the polling goroutine.
//
// Per fired reminder the states are Due -> Removed -> one of Deleted,
// Snoozed or Restored; the last two put the reminder back into the
// store's normal scheduled state.
type Gate struct {
	store *storage.Store
	clock func() time.Time
}

func NewGate(store *storage.Store) *Gate {
	return &Gate{store: store, clock: time.Now}
}

// Delete discards the reminder permanently. It was already removed when
// the engine handed it off, so this is a terminal no-op kept for the
// sake of an explicit outcome.
func (g *Gate) Delete(p PendingReview) {}

// Snooze re-adds the reminder to fire minutes from now, keeping its
// recurrence, sound and tasks. Non-positive minutes fall back to the
// default ten-minute snooze.
func (g *Gate) Snooze(p PendingReview, minutes int) error {
	if minutes <= 0 {
		minutes = DefaultSnoozeMinutes
	}
	r := p.Reminder
	r.FireAt = g.clock().Add(time.Duration(minutes) * time.Minute)
	return g.store.Add(r)
}

// Restore puts the reminder back unchanged, at its original fire time.
// That time has already passed, so it will fire again on a following
// tick; cancelling the dialog intentionally does not lose the reminder.
func (g *Gate) Restore(p PendingReview) error {
	return g.store.Add(p.Reminder)
}
