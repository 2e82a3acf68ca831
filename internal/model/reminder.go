package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidRecurrence = errors.New("model: invalid recurrence")

// Recurrence is the policy governing automatic rescheduling after a
// reminder fires. The zero value means the reminder is one-shot.
type Recurrence string

const (
	RecurrenceNone    Recurrence = ""
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
	RecurrenceCustom  Recurrence = "custom"
)

func (r Recurrence) IsValid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceCustom:
		return true
	default:
		return false
	}
}

// Task is a checklist sub-item owned by a single reminder.
type Task struct {
	Description string
	Completed   bool
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Description) == "" {
		return errors.New("model: task description is required")
	}
	return nil
}

// Reminder is a scheduled notification. Its message doubles as its
// identity: two reminders never share a case-folded message.
type Reminder struct {
	Message               string
	FireAt                time.Time
	Recurrence            Recurrence
	SoundPath             string
	CustomIntervalMinutes int
	Tasks                 []Task
}

func (r Reminder) Validate() error {
	if strings.TrimSpace(r.Message) == "" {
		return errors.New("model: reminder message is required")
	}
	if r.FireAt.IsZero() {
		return errors.New("model: reminder fire time is required")
	}
	if !r.Recurrence.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidRecurrence, r.Recurrence)
	}
	if r.CustomIntervalMinutes < 0 {
		return fmt.Errorf("model: custom interval must be positive, got %d", r.CustomIntervalMinutes)
	}
	if r.Recurrence == RecurrenceCustom && r.CustomIntervalMinutes == 0 {
		return errors.New("model: custom recurrence requires an interval")
	}
	for _, task := range r.Tasks {
		if err := task.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// IsRecurring reports whether the reminder re-arms after firing. A set
// custom interval makes the reminder recurring regardless of Recurrence.
func (r Reminder) IsRecurring() bool {
	return r.CustomIntervalMinutes > 0 || r.Recurrence != RecurrenceNone
}

// AllTasksCompleted reports whether every task is done. A reminder with
// no tasks counts as complete.
func (r Reminder) AllTasksCompleted() bool {
	for _, task := range r.Tasks {
		if !task.Completed {
			return false
		}
	}
	return true
}

// HasIncompleteTasks reports whether the reminder carries at least one
// unfinished task.
func (r Reminder) HasIncompleteTasks() bool {
	return len(r.Tasks) > 0 && !r.AllTasksCompleted()
}

// Clone returns a deep copy. Task slices are owned exclusively by their
// reminder, so snapshots handed across goroutines must not alias them.
func (r Reminder) Clone() Reminder {
	out := r
	if r.Tasks != nil {
		out.Tasks = make([]Task, len(r.Tasks))
		copy(out.Tasks, r.Tasks)
	}
	return out
}

// SameMessage reports whether the given message matches this reminder's
// identity under case-insensitive comparison.
func (r Reminder) SameMessage(message string) bool {
	return strings.EqualFold(r.Message, message)
}
