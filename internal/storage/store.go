package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mleija/remindd/internal/model"
)

var (
	ErrDuplicateName   = errors.New("storage: a reminder with that message already exists")
	ErrIndexOutOfRange = errors.New("storage: reminder no longer exists")
)

// Store is the authoritative ordered collection of reminders, backed by a
// single JSON file. Every mutation is written to disk before it returns.
// All access is serialized by one mutex; the lock is held per operation
// and never across a notification or a dialog.
type Store struct {
	mu        sync.Mutex
	path      string
	reminders []model.Reminder
	logger    *slog.Logger
}

// Open loads the reminder file at path into a new Store. A missing file
// means no reminders yet; records of unexpected shape are skipped.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Store{path: path, logger: logger}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read reminder file: %w", err)
	}
	s.reminders = decodeRecords(raw, logger)
	return s, nil
}

// Add appends a reminder. It fails with ErrDuplicateName when another
// reminder's message matches case-insensitively, leaving the store
// untouched.
func (s *Store) Add(r model.Reminder) error {
	if err := r.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.reminders {
		if existing.SameMessage(r.Message) {
			return ErrDuplicateName
		}
	}
	s.reminders = append(s.reminders, r.Clone())
	return s.persistLocked()
}

// Update replaces every mutable field of the reminder at index, keeping
// its original message. The index refers to the order List returned; it
// fails with ErrIndexOutOfRange when the entry was removed concurrently.
func (s *Store) Update(index int, r model.Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.reminders) {
		return ErrIndexOutOfRange
	}
	updated := r.Clone()
	updated.Message = s.reminders[index].Message
	if err := updated.Validate(); err != nil {
		return err
	}
	s.reminders[index] = updated
	return s.persistLocked()
}

// Remove deletes and returns the reminder at index. The caller keeps the
// returned value if it intends to re-add it later.
func (s *Store) Remove(index int) (model.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.reminders) {
		return model.Reminder{}, ErrIndexOutOfRange
	}
	removed := s.reminders[index]
	s.reminders = append(s.reminders[:index], s.reminders[index+1:]...)
	if err := s.persistLocked(); err != nil {
		return model.Reminder{}, err
	}
	return removed, nil
}

// RemoveByMessage deletes the reminder whose message matches
// case-insensitively. Used by the poller, which identifies reminders by
// message so that a user deletion mid-notification is tolerated.
func (s *Store) RemoveByMessage(message string) (model.Reminder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.reminders {
		if r.SameMessage(message) {
			s.reminders = append(s.reminders[:i], s.reminders[i+1:]...)
			if err := s.persistLocked(); err != nil {
				s.logger.Warn("persist after removal failed", "error", err)
			}
			return r, true
		}
	}
	return model.Reminder{}, false
}

// Reschedule moves the matching reminder's fire time. Returns false when
// the reminder is gone.
func (s *Store) Reschedule(message string, fireAt time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.reminders {
		if s.reminders[i].SameMessage(message) {
			s.reminders[i].FireAt = fireAt
			if err := s.persistLocked(); err != nil {
				s.logger.Warn("persist after reschedule failed", "error", err)
			}
			return true
		}
	}
	return false
}

// ReplaceTasks swaps the task list of the reminder at index wholesale,
// leaving schedule and sound untouched.
func (s *Store) ReplaceTasks(index int, tasks []model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.reminders) {
		return ErrIndexOutOfRange
	}
	copied := make([]model.Task, len(tasks))
	copy(copied, tasks)
	s.reminders[index].Tasks = copied
	return s.persistLocked()
}

// List returns a snapshot of the collection in insertion order. The
// snapshot stays valid while the store mutates, but indices derived from
// it can go stale.
func (s *Store) List() []model.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Reminder, len(s.reminders))
	for i, r := range s.reminders {
		out[i] = r.Clone()
	}
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reminders)
}

func (s *Store) persistLocked() error {
	payload, err := encodeRecords(s.reminders)
	if err != nil {
		return fmt.Errorf("encode reminders: %w", err)
	}
	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
