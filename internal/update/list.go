package update

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mleija/remindd/internal/model"
	"github.com/mleija/remindd/internal/storage"
	"github.com/mleija/remindd/internal/views"
)

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	m.refreshList()

	switch msg.String() {
	case "q":
		m.Quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.List.Cursor > 0 {
			m.List.Cursor--
		}
	case "down", "j":
		if m.List.Cursor < len(m.List.Snapshot)-1 {
			m.List.Cursor++
		}
	case "a":
		m.openAddForm()
	case "d":
		m = m.deleteSelected()
	case "e":
		m = m.openReschedule()
	case "t":
		m = m.openTasksEditor()
	case "v":
		m = m.openReport()
	case "o":
		m.CurrentView = ViewSettings
		m.Settings.Cursor = 0
	case "u":
		m.CurrentView = ViewSounds
	case "/":
		m.Palette.Active = true
		m.Palette.Input.SetValue("")
		m.Palette.Input.Focus()
	}
	return m, nil
}

func (m *Model) deleteSelected() Model {
	if len(m.List.Snapshot) == 0 {
		m.setError("nothing to delete")
		return *m
	}
	removed, err := m.deps.Store.Remove(m.List.Cursor)
	if err != nil {
		m.setError("that reminder no longer exists")
	} else {
		m.setStatus(fmt.Sprintf("deleted reminder %q", removed.Message))
	}
	m.refreshList()
	return *m
}

func (m *Model) openReschedule() Model {
	if len(m.List.Snapshot) == 0 {
		m.setError("nothing to reschedule")
		return *m
	}
	selected := m.List.Snapshot[m.List.Cursor]
	m.Reschedule.Index = m.List.Cursor
	m.Reschedule.Message = selected.Message
	m.Reschedule.Focus = reschedFieldWhen
	m.Reschedule.Input.SetValue(selected.FireAt.Format(storage.TimeLayout))
	m.Reschedule.Input.Focus()
	m.Reschedule.Recurrence = selected.Recurrence
	m.Reschedule.IntervalInput.SetValue("")
	m.Reschedule.IntervalInput.Blur()
	if selected.CustomIntervalMinutes > 0 {
		m.Reschedule.IntervalInput.SetValue(strconv.Itoa(selected.CustomIntervalMinutes))
	}
	m.CurrentView = ViewReschedule
	return *m
}

func (m *Model) openTasksEditor() Model {
	if len(m.List.Snapshot) == 0 {
		m.setError("no reminder selected")
		return *m
	}
	selected := m.List.Snapshot[m.List.Cursor]
	m.Tasks.Index = m.List.Cursor
	m.Tasks.Message = selected.Message
	m.Tasks.Items = selected.Tasks
	m.Tasks.Cursor = 0
	m.Tasks.Adding = false
	m.CurrentView = ViewTasks
	return *m
}

func (m *Model) openReport() Model {
	md := views.ActiveRemindersMarkdown(m.deps.Store.List(), m.clock())
	m.Report.Body = views.RenderMarkdown(md)
	m.CurrentView = ViewReport
	return *m
}

func (m Model) renderListView() string {
	if len(m.List.Snapshot) == 0 {
		return "No reminders yet. Press 'a' to add one."
	}
	lines := make([]string, 0, len(m.List.Snapshot))
	for i, r := range m.List.Snapshot {
		lines = append(lines, views.CursorLine(i == m.List.Cursor, describeReminder(i+1, r, m.clock())))
	}
	return strings.Join(lines, "\n")
}

func describeReminder(position int, r model.Reminder, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d. %s | %s", position, r.Message, r.FireAt.Format(storage.TimeLayout))
	switch {
	case r.CustomIntervalMinutes > 0:
		fmt.Fprintf(&b, " (every %d min)", r.CustomIntervalMinutes)
	case r.Recurrence != model.RecurrenceNone:
		fmt.Fprintf(&b, " (%s)", r.Recurrence)
	}
	if len(r.Tasks) > 0 {
		done := 0
		for _, t := range r.Tasks {
			if t.Completed {
				done++
			}
		}
		fmt.Fprintf(&b, " [%d/%d tasks]", done, len(r.Tasks))
	}
	fmt.Fprintf(&b, " | %s", views.TimeRemaining(r.FireAt, now))
	return b.String()
}

func (m Model) handleRescheduleKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.CurrentView = ViewList
		m.setStatus("reschedule cancelled")
		return m
	case "tab", "down":
		m.Reschedule.Focus = (m.Reschedule.Focus + 1) % reschedFieldCount
		m.syncRescheduleFocus()
		return m
	case "shift+tab", "up":
		m.Reschedule.Focus = (m.Reschedule.Focus + reschedFieldCount - 1) % reschedFieldCount
		m.syncRescheduleFocus()
		return m
	case "left":
		m.cycleRescheduleRecurrence(-1)
		return m
	case "right":
		m.cycleRescheduleRecurrence(1)
		return m
	case "enter":
		return m.submitReschedule()
	}
	var cmd tea.Cmd
	switch m.Reschedule.Focus {
	case reschedFieldWhen:
		m.Reschedule.Input, cmd = m.Reschedule.Input.Update(msg)
	case reschedFieldInterval:
		m.Reschedule.IntervalInput, cmd = m.Reschedule.IntervalInput.Update(msg)
	}
	_ = cmd
	return m
}

func (m *Model) syncRescheduleFocus() {
	m.Reschedule.Input.Blur()
	m.Reschedule.IntervalInput.Blur()
	switch m.Reschedule.Focus {
	case reschedFieldWhen:
		m.Reschedule.Input.Focus()
	case reschedFieldInterval:
		m.Reschedule.IntervalInput.Focus()
	}
}

func (m *Model) cycleRescheduleRecurrence(delta int) {
	if m.Reschedule.Focus != reschedFieldRecurrence {
		return
	}
	for i, r := range recurrenceCycle {
		if r == m.Reschedule.Recurrence {
			next := (i + delta + len(recurrenceCycle)) % len(recurrenceCycle)
			m.Reschedule.Recurrence = recurrenceCycle[next]
			return
		}
	}
	m.Reschedule.Recurrence = model.RecurrenceNone
}

func (m Model) submitReschedule() Model {
	fireAt, err := parseWhen(strings.TrimSpace(m.Reschedule.Input.Value()), m.clock())
	if err != nil {
		m.setError(err.Error())
		return m
	}
	interval := 0
	if raw := strings.TrimSpace(m.Reschedule.IntervalInput.Value()); raw != "" {
		interval, err = strconv.Atoi(raw)
		if err != nil || interval < 1 {
			m.setError("interval must be a positive number of minutes")
			return m
		}
	}
	recurrence := m.Reschedule.Recurrence
	if interval > 0 {
		recurrence = model.RecurrenceCustom
	}
	if recurrence == model.RecurrenceCustom && interval == 0 {
		m.setError("custom repeats need an interval in minutes")
		return m
	}

	updated := model.Reminder{
		Message:               m.Reschedule.Message,
		FireAt:                fireAt,
		Recurrence:            recurrence,
		CustomIntervalMinutes: interval,
	}
	if idx := m.Reschedule.Index; idx < len(m.List.Snapshot) {
		updated.SoundPath = m.List.Snapshot[idx].SoundPath
		updated.Tasks = m.List.Snapshot[idx].Tasks
	}
	if err := m.deps.Store.Update(m.Reschedule.Index, updated); err != nil {
		m.setError("that reminder no longer exists")
	} else {
		m.setStatus(fmt.Sprintf("reminder %q rescheduled for %s", m.Reschedule.Message, fireAt.Format(storage.TimeLayout)))
	}
	m.CurrentView = ViewList
	m.refreshList()
	return m
}

func (m Model) renderRescheduleView() string {
	rows := []string{
		formRow(m.Reschedule.Focus == reschedFieldWhen, "New time", m.Reschedule.Input.View()),
		formRow(m.Reschedule.Focus == reschedFieldRecurrence, "Repeat", recurrenceLabel(m.Reschedule.Recurrence)),
		formRow(m.Reschedule.Focus == reschedFieldInterval, "Interval", m.Reschedule.IntervalInput.View()),
	}
	return fmt.Sprintf("Reschedule %q\n\n%s", m.Reschedule.Message, strings.Join(rows, "\n"))
}

// parseWhen accepts a full "2006-01-02 15:04" timestamp or a bare
// "15:04". A bare time lands today, or tomorrow when the moment has
// already passed.
func parseWhen(raw string, now time.Time) (time.Time, error) {
	if t, err := time.ParseInLocation(storage.TimeLayout, raw, time.Local); err == nil {
		if !t.After(now) {
			return time.Time{}, fmt.Errorf("that moment has already passed")
		}
		return t, nil
	}
	clocked, err := time.Parse("15:04", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("not a valid time: %q", raw)
	}
	candidate := time.Date(now.Year(), now.Month(), now.Day(), clocked.Hour(), clocked.Minute(), 0, 0, now.Location())
	if !candidate.After(now) {
		candidate = candidate.AddDate(0, 0, 1)
	}
	return candidate, nil
}
