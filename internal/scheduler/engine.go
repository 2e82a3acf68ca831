package scheduler

import (
	"log/slog"
	"sync"
	"time"

	"github.com/mleija/remindd/internal/model"
	"github.com/mleija/remindd/internal/storage"
)

// Notifier renders a due reminder to the user. Notify may block for the
// duration of its repeat sequence; the engine calls it without holding
// any store lock.
type Notifier interface {
	Notify(r model.Reminder)
}

// PendingReview is a fired one-shot reminder with incomplete tasks. It
// has already been removed from the store; the receiver owns it until a
// gate outcome puts it back or discards it.
type PendingReview struct {
	Reminder model.Reminder
	FiredAt  time.Time
}

// Engine is the due-reminder scanner. It checks the store once per tick,
// notifies due reminders, re-arms recurring ones and routes one-shot
// reminders with unfinished tasks to the review channel for a user
// decision on the UI side.
type Engine struct {
	store    *storage.Store
	notifier Notifier
	logger   *slog.Logger

	tick  time.Duration
	clock func() time.Time

	mu      sync.Mutex
	started bool
	stopped bool
	stopCh  chan struct{}
	doneCh  chan struct{}
	reviews chan PendingReview
}

func NewEngine(store *storage.Store, notifier Notifier, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		store:    store,
		notifier: notifier,
		logger:   logger,
		tick:     time.Second,
		clock:    time.Now,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		reviews:  make(chan PendingReview, 16),
	}
}

// Reviews is the handoff channel from the polling goroutine to the UI.
// The engine posts and continues; it never waits for the decision.
func (e *Engine) Reviews() <-chan PendingReview {
	return e.reviews
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	go e.loop()
}

// Stop signals the loop and waits for the current tick to finish. An
// in-flight notification sequence is not cancelled.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	ticker := time.NewTicker(e.tick)
	defer ticker.Stop()
	for {
		select {
		case <-e.stopCh:
			return
		case <-ticker.C:
			e.scan(e.clock())
		}
	}
}

// scan processes one tick. It walks a snapshot in reverse so removals
// during the pass cannot invalidate the remaining iteration, and it
// identifies reminders by message rather than index so a concurrent user
// deletion during a blocking notification is tolerated.
func (e *Engine) scan(now time.Time) {
	snapshot := e.store.List()
	for i := len(snapshot) - 1; i >= 0; i-- {
		r := snapshot[i]
		if r.FireAt.After(now) {
			continue
		}

		e.notifier.Notify(r)

		if r.IsRecurring() {
			next := model.NextOccurrence(r.FireAt, r.Recurrence, r.CustomIntervalMinutes)
			if !e.store.Reschedule(r.Message, next) {
				e.logger.Info("recurring reminder vanished before re-arm", "message", r.Message)
			}
			continue
		}

		removed, ok := e.store.RemoveByMessage(r.Message)
		if !ok {
			continue
		}
		if removed.HasIncompleteTasks() {
			e.dispatchReview(PendingReview{Reminder: removed, FiredAt: now})
		}
	}
}

// dispatchReview posts the detached reminder to the UI. If nothing is
// draining the channel the reminder is restored unchanged instead of
// being lost, the same outcome as a dismissed dialog.
func (e *Engine) dispatchReview(p PendingReview) {
	select {
	case e.reviews <- p:
	default:
		e.logger.Warn("review channel full, restoring reminder", "message", p.Reminder.Message)
		if err := e.store.Add(p.Reminder); err != nil {
			e.logger.Error("restore after full review channel failed", "message", p.Reminder.Message, "error", err)
		}
	}
}
