package notify

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mleija/remindd/internal/model"
)

const (
	taskDoneMarker    = "[done]"
	taskPendingMarker = "[pending]"
)

// Announcer delivers a text announcement to the user. The engine never
// observes a return value; delivery is best effort.
type Announcer interface {
	Announce(text string)
}

// SoundPlayer plays a sound file or, when none is available, a fallback
// tone.
type SoundPlayer interface {
	Play(path string) error
	Tone()
}

// Notifier renders a due reminder as repeated announcements with a sound
// per repeat. Notify blocks its caller for the full repeat sequence; the
// poller accepts that latency.
type Notifier struct {
	announcer Announcer
	sounds    SoundPlayer
	mu        sync.Mutex
	times     int
	interval  time.Duration
	sleep     func(time.Duration)
	logger    *slog.Logger
}

func New(announcer Announcer, sounds SoundPlayer, times int, interval time.Duration, logger *slog.Logger) *Notifier {
	if times < 1 {
		times = 1
	}
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Notifier{
		announcer: announcer,
		sounds:    sounds,
		times:     times,
		interval:  interval,
		sleep:     time.Sleep,
		logger:    logger,
	}
}

// Configure replaces the repeat count and interval. Safe to call while
// the engine is delivering notifications; a delivery already in flight
// finishes with the values it started with.
func (n *Notifier) Configure(times int, interval time.Duration) {
	if times < 1 {
		times = 1
	}
	if interval <= 0 {
		interval = 10 * time.Second
	}
	n.mu.Lock()
	n.times = times
	n.interval = interval
	n.mu.Unlock()
}

// Notify announces the reminder the configured number of times, sleeping
// the configured interval between repeats but not after the last. A
// missing or unplayable sound file falls back to the tone and is never an
// error.
func (n *Notifier) Notify(r model.Reminder) {
	n.mu.Lock()
	times, interval := n.times, n.interval
	n.mu.Unlock()

	text := renderAnnouncement(r)
	for i := 0; i < times; i++ {
		n.announcer.Announce(text)
		n.playSound(r.SoundPath)
		if i < times-1 {
			n.sleep(interval)
		}
	}
}

func (n *Notifier) playSound(path string) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := n.sounds.Play(path); err == nil {
				return
			}
			n.logger.Warn("sound playback failed, using tone", "path", path)
		}
	}
	n.sounds.Tone()
}

func renderAnnouncement(r model.Reminder) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Reminder: %s", r.Message)
	if len(r.Tasks) == 0 {
		return b.String()
	}

	b.WriteString("\nTasks:")
	for _, task := range r.Tasks {
		marker := taskPendingMarker
		if task.Completed {
			marker = taskDoneMarker
		}
		fmt.Fprintf(&b, "\n- %s %s", marker, task.Description)
	}
	if r.AllTasksCompleted() {
		fmt.Fprintf(&b, "\nAll tasks for reminder '%s' have been completed.", r.Message)
	} else {
		fmt.Fprintf(&b, "\nReminder '%s' has incomplete tasks. Please review them.", r.Message)
	}
	return b.String()
}
