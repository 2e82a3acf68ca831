package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	DefaultNotifyTimes     = 1
	DefaultIntervalSeconds = 10
)

// Settings is the user-editable configuration, stored as a TOML file in
// the data directory. Environment variables override the file.
type Settings struct {
	Notifications NotificationSettings `toml:"notifications"`
	Paths         PathSettings         `toml:"paths"`
}

// NotificationSettings drives the Notifier's repeat behavior.
type NotificationSettings struct {
	// Times is how often a due reminder is announced.
	Times int `toml:"times"`
	// IntervalSeconds is the pause between repeated announcements.
	IntervalSeconds int `toml:"interval_seconds"`
}

type PathSettings struct {
	RemindersFile   string `toml:"reminders_file"`
	SoundConfigFile string `toml:"sound_config_file"`
}

func (s Settings) Interval() time.Duration {
	return time.Duration(s.Notifications.IntervalSeconds) * time.Second
}

// Default returns the settings used when no file exists, rooted at dataDir.
func Default(dataDir string) Settings {
	return Settings{
		Notifications: NotificationSettings{
			Times:           DefaultNotifyTimes,
			IntervalSeconds: DefaultIntervalSeconds,
		},
		Paths: PathSettings{
			RemindersFile:   filepath.Join(dataDir, "reminders.json"),
			SoundConfigFile: filepath.Join(dataDir, "reminder_sounds.json"),
		},
	}
}

// DefaultDataDir is the host per-user config location.
func DefaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(base, "remindd")
}

// Load reads the TOML file at path, filling gaps from Default(dataDir)
// and applying REMINDD_* environment overrides. A missing file yields
// the defaults.
func Load(path, dataDir string) (Settings, error) {
	settings := Default(dataDir)
	if _, err := toml.DecodeFile(path, &settings); err != nil && !os.IsNotExist(err) {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}

	if v, ok := getEnvInt("REMINDD_NOTIFY_TIMES"); ok && v > 0 {
		settings.Notifications.Times = v
	}
	if v, ok := getEnvInt("REMINDD_NOTIFY_INTERVAL_SECONDS"); ok && v > 0 {
		settings.Notifications.IntervalSeconds = v
	}

	if settings.Notifications.Times < 1 {
		settings.Notifications.Times = DefaultNotifyTimes
	}
	if settings.Notifications.IntervalSeconds < 1 {
		settings.Notifications.IntervalSeconds = DefaultIntervalSeconds
	}
	return settings, nil
}

// Save writes the settings back to path, creating the directory if
// needed. Called when the settings view commits a change.
func Save(path string, settings Settings) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return toml.NewEncoder(file).Encode(settings)
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
