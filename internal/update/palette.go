package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mleija/remindd/internal/commands"
	"github.com/mleija/remindd/internal/model"
	"github.com/mleija/remindd/internal/storage"
	"github.com/mleija/remindd/internal/views"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input.Blur()
		return m
	case "enter":
		m.Palette.Active = false
		m.Palette.Input.Blur()
		return m.executePaletteCommand(m.Palette.Input.Value())
	}
	var cmd tea.Cmd
	m.Palette.Input, cmd = m.Palette.Input.Update(msg)
	_ = cmd
	return m
}

func (m Model) executePaletteCommand(raw string) Model {
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.setError(err.Error())
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			fireAt := m.clock().Add(time.Hour).Truncate(time.Minute)
			r := model.Reminder{Message: a.Message, FireAt: fireAt}
			if err := m.deps.Store.Add(r); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("Reminder added for %s", fireAt.Format(storage.TimeLayout))}, nil
		},
		Delete: func(d commands.DeleteArgs) (commands.Result, error) {
			removed, err := m.deps.Store.Remove(d.Position - 1)
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no reminder at position %d", d.Position)}
			}
			return commands.Result{Message: fmt.Sprintf("deleted reminder %q", removed.Message)}, nil
		},
		Reschedule: func(r commands.RescheduleArgs) (commands.Result, error) {
			snapshot := m.deps.Store.List()
			if r.Position > len(snapshot) {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no reminder at position %d", r.Position)}
			}
			fireAt, err := parseWhen(r.When, m.clock())
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			target := snapshot[r.Position-1]
			if !m.deps.Store.Reschedule(target.Message, fireAt) {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "that reminder no longer exists"}
			}
			return commands.Result{Message: fmt.Sprintf("reminder %q rescheduled for %s", target.Message, fireAt.Format(storage.TimeLayout))}, nil
		},
		Tasks: func(t commands.TasksArgs) (commands.Result, error) {
			m.refreshList()
			if t.Position > len(m.List.Snapshot) {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no reminder at position %d", t.Position)}
			}
			m.List.Cursor = t.Position - 1
			m.openTasksEditor()
			return commands.Result{Message: fmt.Sprintf("editing tasks for %q", m.Tasks.Message)}, nil
		},
		Show: func() (commands.Result, error) {
			m.openReport()
			return commands.Result{Message: "active reminders"}, nil
		},
	})
	if err != nil {
		m.setError(err.Error())
		return m
	}
	m.setStatus(res.Message)
	m.refreshList()
	return m
}

func (m Model) renderPalette() string {
	return fmt.Sprintf("Command\n\n%s %s", views.Label(">"), m.Palette.Input.View())
}
