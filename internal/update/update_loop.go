package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mleija/remindd/internal/scheduler"
	"github.com/mleija/remindd/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.deps.Engine != nil {
		return waitForReviewCmd(m.deps.Engine.Reviews())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed), nil
		}
		switch m.CurrentView {
		case ViewAdd:
			return m.handleAddKey(typed), nil
		case ViewReschedule:
			return m.handleRescheduleKey(typed), nil
		case ViewTasks:
			return m.handleTasksKey(typed), nil
		case ViewDecision:
			return m.handleDecisionKey(typed), nil
		case ViewSettings:
			return m.handleSettingsKey(typed), nil
		case ViewSounds:
			return m.handleSoundsKey(typed), nil
		case ViewReport:
			m.CurrentView = ViewList
			m.refreshList()
			return m, nil
		default:
			return m.handleListKey(typed)
		}

	case ReviewDueMsg:
		m.Decision.Queue = append(m.Decision.Queue, typed.Review)
		m.CurrentView = ViewDecision
		m.Decision.CustomActive = false
		m.setStatus(fmt.Sprintf("reminder %q fired with incomplete tasks", typed.Review.Reminder.Message))
		if m.deps.Engine != nil {
			return m, waitForReviewCmd(m.deps.Engine.Reviews())
		}
		return m, nil

	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil

	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	var body, footer string
	switch m.CurrentView {
	case ViewAdd:
		body = m.renderAddView()
		footer = "tab/shift+tab move | left/right cycle | enter save | esc cancel"
	case ViewReschedule:
		body = m.renderRescheduleView()
		footer = "tab/shift+tab move | left/right cycle | enter apply | esc cancel"
	case ViewTasks:
		body = m.renderTasksView()
		footer = "space toggle | a add | x remove | enter save | esc cancel"
	case ViewDecision:
		body = m.renderDecisionView()
		footer = "d delete | r snooze 10m | s custom snooze | esc keep as-is"
	case ViewSettings:
		body = m.renderSettingsView()
		footer = "up/down select | left/right adjust | enter save | esc back"
	case ViewSounds:
		body = m.renderSoundsView()
		footer = "f edit folder | up/down select | enter choose | p preview | c clear | esc back"
	case ViewReport:
		body = m.Report.Body
		footer = "any key to go back"
	default:
		body = m.renderListView()
		footer = "a add | d delete | e reschedule | t tasks | v report | o settings | u sounds | / command | q quit"
	}

	status := m.Status.Text
	if m.Palette.Active {
		body = m.renderPalette()
		footer = "enter run | esc close"
	}

	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("remindd | %s | %d reminder(s)", m.CurrentView, m.deps.Store.Len()),
		Body:       body,
		StatusLine: status,
		StatusErr:  m.Status.IsError,
		Footer:     footer,
	})
}

func waitForReviewCmd(ch <-chan scheduler.PendingReview) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return nil
		}
		return ReviewDueMsg{Review: p}
	}
}
