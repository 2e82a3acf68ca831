package update

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mleija/remindd/internal/scheduler"
	"github.com/mleija/remindd/internal/views"
)

func (m Model) handleDecisionKey(msg tea.KeyMsg) Model {
	if len(m.Decision.Queue) == 0 {
		m.CurrentView = ViewList
		return m
	}
	pending := m.Decision.Queue[0]

	if m.Decision.CustomActive {
		return m.handleCustomSnoozeKey(msg, pending)
	}

	switch msg.String() {
	case "d":
		m.deps.Gate.Delete(pending)
		m.setStatus(fmt.Sprintf("reminder %q deleted", pending.Reminder.Message))
		return m.advanceDecisionQueue()
	case "r":
		if err := m.deps.Gate.Snooze(pending, scheduler.DefaultSnoozeMinutes); err != nil {
			m.setError(err.Error())
		} else {
			m.setStatus(fmt.Sprintf("reminder %q will fire again in %d minutes", pending.Reminder.Message, scheduler.DefaultSnoozeMinutes))
		}
		return m.advanceDecisionQueue()
	case "s":
		m.Decision.CustomActive = true
		m.Decision.MinutesInput.SetValue("")
		m.Decision.MinutesInput.Focus()
		return m
	case "esc":
		if err := m.deps.Gate.Restore(pending); err != nil {
			m.setError(err.Error())
		} else {
			m.setStatus(fmt.Sprintf("reminder %q kept with its original time", pending.Reminder.Message))
		}
		return m.advanceDecisionQueue()
	}
	return m
}

func (m Model) handleCustomSnoozeKey(msg tea.KeyMsg, pending scheduler.PendingReview) Model {
	switch msg.String() {
	case "esc":
		// Backing out of the custom snooze keeps the reminder rather
		// than dropping it.
		m.Decision.CustomActive = false
		if err := m.deps.Gate.Restore(pending); err != nil {
			m.setError(err.Error())
		} else {
			m.setStatus(fmt.Sprintf("reminder %q kept with its original time", pending.Reminder.Message))
		}
		return m.advanceDecisionQueue()
	case "enter":
		minutes, err := strconv.Atoi(strings.TrimSpace(m.Decision.MinutesInput.Value()))
		if err != nil || minutes < 1 {
			m.setError("snooze needs a positive number of minutes")
			return m
		}
		m.Decision.CustomActive = false
		if err := m.deps.Gate.Snooze(pending, minutes); err != nil {
			m.setError(err.Error())
		} else {
			m.setStatus(fmt.Sprintf("reminder %q will fire again in %d minutes", pending.Reminder.Message, minutes))
		}
		return m.advanceDecisionQueue()
	}
	var cmd tea.Cmd
	m.Decision.MinutesInput, cmd = m.Decision.MinutesInput.Update(msg)
	_ = cmd
	return m
}

func (m Model) advanceDecisionQueue() Model {
	m.Decision.Queue = m.Decision.Queue[1:]
	if len(m.Decision.Queue) == 0 {
		m.CurrentView = ViewList
		m.refreshList()
	}
	return m
}

func (m Model) renderDecisionView() string {
	if len(m.Decision.Queue) == 0 {
		return ""
	}
	pending := m.Decision.Queue[0]

	var b strings.Builder
	fmt.Fprintf(&b, "Reminder %q fired at %s but still has incomplete tasks:\n\n",
		pending.Reminder.Message, pending.FiredAt.Format("15:04"))
	for _, task := range pending.Reminder.Tasks {
		marker := "pending"
		if task.Completed {
			marker = "done"
		}
		fmt.Fprintf(&b, "  [%s] %s\n", marker, task.Description)
	}
	b.WriteString("\nWhat do you want to do with it?")
	if m.Decision.CustomActive {
		fmt.Fprintf(&b, "\n\n%s %s", views.Label("Snooze minutes:"), m.Decision.MinutesInput.View())
	}
	if waiting := len(m.Decision.Queue) - 1; waiting > 0 {
		fmt.Fprintf(&b, "\n\n(%d more waiting)", waiting)
	}
	return b.String()
}
