package notify

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// ExecAnnouncer posts announcements through the platform notification
// command.
type ExecAnnouncer struct{}

func (ExecAnnouncer) Announce(text string) {
	title := "Reminder"
	body := text
	if idx := strings.Index(text, "\n"); idx >= 0 {
		body = text[:idx] + " …"
	}
	switch runtime.GOOS {
	case "linux":
		_ = exec.Command("notify-send", title, body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(body), escapeAppleScript(title))
		_ = exec.Command("osascript", "-e", script).Run()
	}
}

// ExecSoundPlayer shells out to the platform audio player. Tone writes
// the terminal bell, which is the only portable fallback.
type ExecSoundPlayer struct{}

func (ExecSoundPlayer) Play(path string) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("aplay", "-q", path).Run()
	case "darwin":
		return exec.Command("afplay", path).Run()
	default:
		return fmt.Errorf("notify: no audio player for %s", runtime.GOOS)
	}
}

func (ExecSoundPlayer) Tone() {
	_, _ = os.Stderr.WriteString("\a")
}

// NoopAnnouncer and NoopSoundPlayer are test and headless-mode doubles.
type NoopAnnouncer struct{}

func (NoopAnnouncer) Announce(string) {}

type NoopSoundPlayer struct{}

func (NoopSoundPlayer) Play(string) error { return nil }
func (NoopSoundPlayer) Tone()             {}

func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
