package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	settings, err := Load(filepath.Join(dir, "absent.toml"), dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if settings.Notifications.Times != DefaultNotifyTimes {
		t.Fatalf("unexpected default times: %d", settings.Notifications.Times)
	}
	if settings.Interval() != time.Duration(DefaultIntervalSeconds)*time.Second {
		t.Fatalf("unexpected default interval: %s", settings.Interval())
	}
	if settings.Paths.RemindersFile != filepath.Join(dir, "reminders.json") {
		t.Fatalf("unexpected reminders file: %s", settings.Paths.RemindersFile)
	}
}

func TestLoadReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")
	content := "[notifications]\ntimes = 3\ninterval_seconds = 5\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	settings, err := Load(path, dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if settings.Notifications.Times != 3 || settings.Notifications.IntervalSeconds != 5 {
		t.Fatalf("file values not applied: %+v", settings.Notifications)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")
	if err := os.WriteFile(path, []byte("[notifications]\ntimes = 3\n"), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	t.Setenv("REMINDD_NOTIFY_TIMES", "7")
	t.Setenv("REMINDD_NOTIFY_INTERVAL_SECONDS", "2")

	settings, err := Load(path, dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if settings.Notifications.Times != 7 || settings.Notifications.IntervalSeconds != 2 {
		t.Fatalf("env overrides not applied: %+v", settings.Notifications)
	}
}

func TestInvalidValuesFallBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")
	if err := os.WriteFile(path, []byte("[notifications]\ntimes = -4\ninterval_seconds = 0\n"), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	settings, err := Load(path, dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if settings.Notifications.Times != DefaultNotifyTimes || settings.Notifications.IntervalSeconds != DefaultIntervalSeconds {
		t.Fatalf("invalid values not normalized: %+v", settings.Notifications)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "settings.toml")
	want := Default(dir)
	want.Notifications.Times = 4

	if err := Save(path, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path, dir)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Notifications.Times != 4 {
		t.Fatalf("round trip lost times: %+v", got.Notifications)
	}
}
