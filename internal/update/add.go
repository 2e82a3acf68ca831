package update

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mleija/remindd/internal/model"
	"github.com/mleija/remindd/internal/views"
)

const dateLayout = "02/01/2006"

var recurrenceCycle = []model.Recurrence{
	model.RecurrenceNone,
	model.RecurrenceDaily,
	model.RecurrenceWeekly,
	model.RecurrenceMonthly,
	model.RecurrenceCustom,
}

func (m *Model) openAddForm() {
	m.Add = newAddForm()
	m.Add.SoundChoices = m.Sounds.Files
	m.Add.SoundIdx = 0
	for i, f := range m.Sounds.Files {
		if f == m.Sounds.Config.SelectedSound {
			m.Add.SoundIdx = i + 1
			break
		}
	}
	m.CurrentView = ViewAdd
}

func (m Model) handleAddKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.CurrentView = ViewList
		m.setStatus("add cancelled")
		return m
	case "enter":
		return m.submitAddForm()
	case "tab", "down":
		m.Add.Focus = (m.Add.Focus + 1) % addFieldCount
		m.syncAddFocus()
		return m
	case "shift+tab", "up":
		m.Add.Focus = (m.Add.Focus + addFieldCount - 1) % addFieldCount
		m.syncAddFocus()
		return m
	case "left":
		m.cycleAddChoice(-1)
		return m
	case "right":
		m.cycleAddChoice(1)
		return m
	}

	if isTextField(m.Add.Focus) {
		var cmd tea.Cmd
		m.Add.Inputs[m.Add.Focus], cmd = m.Add.Inputs[m.Add.Focus].Update(msg)
		_ = cmd
	}
	return m
}

func isTextField(field int) bool {
	return field != addFieldRecurrence && field != addFieldSound
}

func (m *Model) syncAddFocus() {
	for i := range m.Add.Inputs {
		m.Add.Inputs[i].Blur()
	}
	if isTextField(m.Add.Focus) {
		m.Add.Inputs[m.Add.Focus].Focus()
	}
}

func (m *Model) cycleAddChoice(delta int) {
	switch m.Add.Focus {
	case addFieldRecurrence:
		for i, r := range recurrenceCycle {
			if r == m.Add.Recurrence {
				next := (i + delta + len(recurrenceCycle)) % len(recurrenceCycle)
				m.Add.Recurrence = recurrenceCycle[next]
				return
			}
		}
		m.Add.Recurrence = model.RecurrenceNone
	case addFieldSound:
		n := len(m.Add.SoundChoices) + 1
		m.Add.SoundIdx = (m.Add.SoundIdx + delta + n) % n
	}
}

func (m Model) submitAddForm() Model {
	r, err := m.buildReminder()
	if err != nil {
		m.setError(err.Error())
		return m
	}
	if err := m.deps.Store.Add(r); err != nil {
		m.setError(err.Error())
		return m
	}
	m.setStatus(fmt.Sprintf("Reminder added for %s", addedPhrase(r.FireAt, m.clock())))
	m.CurrentView = ViewList
	m.refreshList()
	return m
}

func addedPhrase(fireAt, now time.Time) string {
	clock := fireAt.Format("15:04")
	switch {
	case sameDay(fireAt, now):
		return clock
	case sameDay(fireAt, now.AddDate(0, 0, 1)):
		return "tomorrow at " + clock
	default:
		return fireAt.Format(dateLayout) + " at " + clock
	}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func (m Model) buildReminder() (model.Reminder, error) {
	message := strings.TrimSpace(m.Add.Inputs[addFieldMessage].Value())
	if message == "" {
		return model.Reminder{}, fmt.Errorf("the reminder needs a message")
	}

	hour, err := parseBounded(m.Add.Inputs[addFieldHour].Value(), 0, 23, "hour")
	if err != nil {
		return model.Reminder{}, err
	}
	minute, err := parseBounded(m.Add.Inputs[addFieldMinute].Value(), 0, 59, "minute")
	if err != nil {
		return model.Reminder{}, err
	}

	now := m.clock()
	fireAt, err := resolveFireAt(strings.TrimSpace(m.Add.Inputs[addFieldDate].Value()), hour, minute, now)
	if err != nil {
		return model.Reminder{}, err
	}

	interval := 0
	if raw := strings.TrimSpace(m.Add.Inputs[addFieldInterval].Value()); raw != "" {
		interval, err = strconv.Atoi(raw)
		if err != nil || interval < 1 {
			return model.Reminder{}, fmt.Errorf("interval must be a positive number of minutes")
		}
	}
	recurrence := m.Add.Recurrence
	if interval > 0 {
		recurrence = model.RecurrenceCustom
	}
	if recurrence == model.RecurrenceCustom && interval == 0 {
		return model.Reminder{}, fmt.Errorf("custom repeats need an interval in minutes")
	}

	return model.Reminder{
		Message:               message,
		FireAt:                fireAt,
		Recurrence:            recurrence,
		SoundPath:             m.selectedSoundPath(),
		CustomIntervalMinutes: interval,
		Tasks:                 parseTaskList(m.Add.Inputs[addFieldTasks].Value()),
	}, nil
}

// resolveFireAt applies the default-day rule: with no date given the
// reminder lands today, or tomorrow when the time of day has already
// passed. An explicit date is taken literally and must be in the future.
func resolveFireAt(rawDate string, hour, minute int, now time.Time) (time.Time, error) {
	if rawDate == "" {
		candidate := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
		if !candidate.After(now) {
			candidate = candidate.AddDate(0, 0, 1)
		}
		return candidate, nil
	}
	day, err := time.ParseInLocation(dateLayout, rawDate, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("not a valid date: %q (want DD/MM/YYYY)", rawDate)
	}
	candidate := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, now.Location())
	if !candidate.After(now) {
		return time.Time{}, fmt.Errorf("that moment has already passed")
	}
	return candidate, nil
}

func parseBounded(raw string, min, max int, name string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v < min || v > max {
		return 0, fmt.Errorf("%s must be a number between %d and %d", name, min, max)
	}
	return v, nil
}

func parseTaskList(raw string) []model.Task {
	var tasks []model.Task
	for _, part := range strings.Split(raw, ";") {
		if desc := strings.TrimSpace(part); desc != "" {
			tasks = append(tasks, model.Task{Description: desc})
		}
	}
	return tasks
}

func (m Model) selectedSoundPath() string {
	if m.Add.SoundIdx == 0 || m.Add.SoundIdx > len(m.Add.SoundChoices) {
		return ""
	}
	return filepath.Join(m.Sounds.Config.SoundFolder, m.Add.SoundChoices[m.Add.SoundIdx-1])
}

func (m Model) renderAddView() string {
	rows := []string{
		formRow(m.Add.Focus == addFieldMessage, "Message", m.Add.Inputs[addFieldMessage].View()),
		formRow(m.Add.Focus == addFieldTasks, "Tasks", m.Add.Inputs[addFieldTasks].View()),
		formRow(m.Add.Focus == addFieldDate, "Date", m.Add.Inputs[addFieldDate].View()),
		formRow(m.Add.Focus == addFieldHour, "Hour", m.Add.Inputs[addFieldHour].View()),
		formRow(m.Add.Focus == addFieldMinute, "Minute", m.Add.Inputs[addFieldMinute].View()),
		formRow(m.Add.Focus == addFieldRecurrence, "Repeat", recurrenceLabel(m.Add.Recurrence)),
		formRow(m.Add.Focus == addFieldInterval, "Interval", m.Add.Inputs[addFieldInterval].View()),
		formRow(m.Add.Focus == addFieldSound, "Sound", m.soundChoiceLabel()),
	}
	return "Add reminder\n\n" + strings.Join(rows, "\n")
}

func formRow(focused bool, label, value string) string {
	return views.CursorLine(focused, fmt.Sprintf("%s %s", views.Label(label+":"), value))
}

func recurrenceLabel(r model.Recurrence) string {
	if r == model.RecurrenceNone {
		return "once"
	}
	return string(r)
}

func (m Model) soundChoiceLabel() string {
	if m.Add.SoundIdx == 0 || m.Add.SoundIdx > len(m.Add.SoundChoices) {
		return "default tone"
	}
	return m.Add.SoundChoices[m.Add.SoundIdx-1]
}
