package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mleija/remindd/internal/model"
	"github.com/mleija/remindd/internal/views"
)

func (m Model) handleTasksKey(msg tea.KeyMsg) Model {
	if m.Tasks.Adding {
		switch msg.String() {
		case "esc":
			m.Tasks.Adding = false
			return m
		case "enter":
			if desc := strings.TrimSpace(m.Tasks.Input.Value()); desc != "" {
				m.Tasks.Items = append(m.Tasks.Items, model.Task{Description: desc})
				m.Tasks.Cursor = len(m.Tasks.Items) - 1
			}
			m.Tasks.Adding = false
			return m
		}
		var cmd tea.Cmd
		m.Tasks.Input, cmd = m.Tasks.Input.Update(msg)
		_ = cmd
		return m
	}

	switch msg.String() {
	case "esc":
		m.CurrentView = ViewList
		m.setStatus("task changes discarded")
	case "up", "k":
		if m.Tasks.Cursor > 0 {
			m.Tasks.Cursor--
		}
	case "down", "j":
		if m.Tasks.Cursor < len(m.Tasks.Items)-1 {
			m.Tasks.Cursor++
		}
	case " ", "space":
		if len(m.Tasks.Items) > 0 {
			m.Tasks.Items[m.Tasks.Cursor].Completed = !m.Tasks.Items[m.Tasks.Cursor].Completed
		}
	case "a":
		m.Tasks.Adding = true
		m.Tasks.Input.SetValue("")
		m.Tasks.Input.Focus()
	case "x":
		if len(m.Tasks.Items) > 0 {
			m.Tasks.Items = append(m.Tasks.Items[:m.Tasks.Cursor], m.Tasks.Items[m.Tasks.Cursor+1:]...)
			if m.Tasks.Cursor >= len(m.Tasks.Items) && m.Tasks.Cursor > 0 {
				m.Tasks.Cursor--
			}
		}
	case "enter":
		if err := m.deps.Store.ReplaceTasks(m.Tasks.Index, m.Tasks.Items); err != nil {
			m.setError("that reminder no longer exists")
		} else {
			m.setStatus(fmt.Sprintf("tasks updated for %q", m.Tasks.Message))
		}
		m.CurrentView = ViewList
		m.refreshList()
	}
	return m
}

func (m Model) renderTasksView() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tasks for %q\n\n", m.Tasks.Message)
	if len(m.Tasks.Items) == 0 {
		b.WriteString("No tasks yet. Press 'a' to add one.\n")
	}
	for i, task := range m.Tasks.Items {
		marker := "pending"
		if task.Completed {
			marker = "done"
		}
		b.WriteString(views.CursorLine(i == m.Tasks.Cursor, fmt.Sprintf("[%s] %s", marker, task.Description)))
		b.WriteString("\n")
	}
	if m.Tasks.Adding {
		fmt.Fprintf(&b, "\n%s %s", views.Label("New task:"), m.Tasks.Input.View())
	}
	return strings.TrimRight(b.String(), "\n")
}
