package update

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mleija/remindd/internal/storage"
	"github.com/mleija/remindd/internal/views"
)

func (m Model) handleSoundsKey(msg tea.KeyMsg) Model {
	if m.Sounds.EditingFolder {
		switch msg.String() {
		case "esc":
			m.Sounds.EditingFolder = false
			m.Sounds.FolderInput.SetValue(m.Sounds.Config.SoundFolder)
			return m
		case "enter":
			m.Sounds.Config.SoundFolder = strings.TrimSpace(m.Sounds.FolderInput.Value())
			m.Sounds.Files = storage.ListWaveFiles(m.Sounds.Config.SoundFolder)
			m.Sounds.Cursor = 0
			m.Sounds.EditingFolder = false
			return m.saveSoundConfig(fmt.Sprintf("found %d sound(s)", len(m.Sounds.Files)))
		}
		var cmd tea.Cmd
		m.Sounds.FolderInput, cmd = m.Sounds.FolderInput.Update(msg)
		_ = cmd
		return m
	}

	switch msg.String() {
	case "esc":
		m.CurrentView = ViewList
	case "f":
		m.Sounds.EditingFolder = true
		m.Sounds.FolderInput.Focus()
	case "up", "k":
		if m.Sounds.Cursor > 0 {
			m.Sounds.Cursor--
		}
	case "down", "j":
		if m.Sounds.Cursor < len(m.Sounds.Files)-1 {
			m.Sounds.Cursor++
		}
	case "enter":
		if len(m.Sounds.Files) == 0 {
			m.setError("no sounds to choose from")
			return m
		}
		m.Sounds.Config.SelectedSound = m.Sounds.Files[m.Sounds.Cursor]
		return m.saveSoundConfig(fmt.Sprintf("default sound set to %s", m.Sounds.Config.SelectedSound))
	case "c":
		m.Sounds.Config.SelectedSound = ""
		return m.saveSoundConfig("default sound cleared, using the system tone")
	case "p":
		return m.previewSound()
	}
	return m
}

func (m Model) previewSound() Model {
	if m.deps.Player == nil || len(m.Sounds.Files) == 0 {
		return m
	}
	name := m.Sounds.Files[m.Sounds.Cursor]
	if err := m.deps.Player.Play(filepath.Join(m.Sounds.Config.SoundFolder, name)); err != nil {
		m.setError(fmt.Sprintf("cannot play %s: %v", name, err))
		return m
	}
	m.setStatus(fmt.Sprintf("playing %s", name))
	return m
}

func (m Model) saveSoundConfig(okStatus string) Model {
	if err := storage.SaveSoundConfig(m.deps.Settings.Paths.SoundConfigFile, m.Sounds.Config); err != nil {
		m.setError(fmt.Sprintf("saving sound settings: %v", err))
		return m
	}
	m.setStatus(okStatus)
	return m
}

func (m Model) renderSoundsView() string {
	var b strings.Builder
	b.WriteString("Reminder sounds\n\n")
	if m.Sounds.EditingFolder {
		fmt.Fprintf(&b, "%s %s\n", views.Label("Sound folder:"), m.Sounds.FolderInput.View())
	} else {
		fmt.Fprintf(&b, "%s %s\n", views.Label("Sound folder:"), orUnset(m.Sounds.Config.SoundFolder))
	}
	fmt.Fprintf(&b, "%s %s\n\n", views.Label("Default sound:"), orUnset(m.Sounds.Config.SelectedSound))

	if len(m.Sounds.Files) == 0 {
		b.WriteString("No .wav files in the folder.")
		return b.String()
	}
	for i, f := range m.Sounds.Files {
		line := f
		if f == m.Sounds.Config.SelectedSound {
			line += " (default)"
		}
		b.WriteString(views.CursorLine(i == m.Sounds.Cursor, line))
		if i < len(m.Sounds.Files)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
