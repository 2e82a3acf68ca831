package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mleija/remindd/internal/config"
	"github.com/mleija/remindd/internal/views"
)

func (m Model) handleSettingsKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.CurrentView = ViewList
		m.Settings.Times = m.deps.Settings.Notifications.Times
		m.Settings.IntervalSeconds = m.deps.Settings.Notifications.IntervalSeconds
	case "up", "k":
		m.Settings.Cursor = 0
	case "down", "j":
		m.Settings.Cursor = 1
	case "left", "h":
		m.adjustSetting(-1)
	case "right", "l":
		m.adjustSetting(1)
	case "enter":
		return m.saveSettings()
	}
	return m
}

func (m *Model) adjustSetting(delta int) {
	if m.Settings.Cursor == 0 {
		m.Settings.Times += delta
		if m.Settings.Times < 1 {
			m.Settings.Times = 1
		}
		return
	}
	m.Settings.IntervalSeconds += delta * 5
	if m.Settings.IntervalSeconds < 5 {
		m.Settings.IntervalSeconds = 5
	}
}

func (m Model) saveSettings() Model {
	m.deps.Settings.Notifications.Times = m.Settings.Times
	m.deps.Settings.Notifications.IntervalSeconds = m.Settings.IntervalSeconds
	if err := config.Save(m.deps.SettingsPath, m.deps.Settings); err != nil {
		m.setError(fmt.Sprintf("saving settings: %v", err))
		return m
	}
	if m.deps.Notifier != nil {
		m.deps.Notifier.Configure(m.Settings.Times, m.deps.Settings.Interval())
	}
	m.setStatus(fmt.Sprintf("notifications: %d time(s), %ds apart", m.Settings.Times, m.Settings.IntervalSeconds))
	m.CurrentView = ViewList
	return m
}

func (m Model) renderSettingsView() string {
	rows := []string{
		views.CursorLine(m.Settings.Cursor == 0,
			fmt.Sprintf("%s %d", views.Label("Announce each reminder (times):"), m.Settings.Times)),
		views.CursorLine(m.Settings.Cursor == 1,
			fmt.Sprintf("%s %d", views.Label("Seconds between announcements:"), m.Settings.IntervalSeconds)),
	}
	return "Notification settings\n\n" + strings.Join(rows, "\n")
}
