package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mleija/remindd/internal/model"
)

func tempStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reminders.json")
	store, err := Open(path, nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return store, path
}

func fireAt(t *testing.T, value string) time.Time {
	t.Helper()
	tm, err := time.ParseInLocation(TimeLayout, value, time.Local)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return tm
}

func TestAddRejectsCaseInsensitiveDuplicate(t *testing.T) {
	store, _ := tempStore(t)
	if err := store.Add(model.Reminder{Message: "Call mom", FireAt: fireAt(t, "2024-03-15 09:00")}); err != nil {
		t.Fatalf("first add: %v", err)
	}
	err := store.Add(model.Reminder{Message: "CALL MOM", FireAt: fireAt(t, "2024-03-16 09:00")})
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 reminder, got %d", store.Len())
	}
}

func TestRoundTripPersistence(t *testing.T) {
	store, path := tempStore(t)
	want := model.Reminder{
		Message:               "Water plants",
		FireAt:                fireAt(t, "2024-06-01 18:30"),
		Recurrence:            model.RecurrenceCustom,
		SoundPath:             "/sounds/chime.wav",
		CustomIntervalMinutes: 45,
		Tasks: []model.Task{
			{Description: "front room", Completed: true},
			{Description: "balcony", Completed: false},
		},
	}
	if err := store.Add(want); err != nil {
		t.Fatalf("add: %v", err)
	}

	reloaded, err := Open(path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got := reloaded.List()
	if len(got) != 1 {
		t.Fatalf("expected 1 reminder after reload, got %d", len(got))
	}
	r := got[0]
	if r.Message != want.Message ||
		!r.FireAt.Equal(want.FireAt) ||
		r.Recurrence != want.Recurrence ||
		r.SoundPath != want.SoundPath ||
		r.CustomIntervalMinutes != want.CustomIntervalMinutes {
		t.Fatalf("reloaded reminder mismatch: %+v", r)
	}
	if len(r.Tasks) != 2 || r.Tasks[0].Description != "front room" || !r.Tasks[0].Completed || r.Tasks[1].Completed {
		t.Fatalf("reloaded tasks mismatch: %+v", r.Tasks)
	}
}

func TestLoadLegacyFiveFieldRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reminders.json")
	legacy := `[["Take medication","2024-05-01 08:00","daily",null,null]]`
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatalf("write legacy file: %v", err)
	}

	store, err := Open(path, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	list := store.List()
	if len(list) != 1 {
		t.Fatalf("expected 1 reminder, got %d", len(list))
	}
	if list[0].Recurrence != model.RecurrenceDaily {
		t.Fatalf("unexpected recurrence: %q", list[0].Recurrence)
	}
	if list[0].Tasks == nil {
		// legacy records default tasks to empty, not nil checklist entries
		t.Logf("tasks defaulted to nil slice, treated as empty")
	}
	if len(list[0].Tasks) != 0 {
		t.Fatalf("legacy record should have no tasks, got %d", len(list[0].Tasks))
	}
}

func TestLoadSkipsMalformedRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reminders.json")
	mixed := `[
		["Good","2024-05-01 08:00",null,null,null,[]],
		["too","short"],
		["Bad time","08 o'clock",null,null,null,[]],
		["Bad interval","2024-05-01 08:00",null,null,-5,[]],
		"not an array",
		["Also good","2024-05-02 09:15","weekly",null,null,[{"description":"x","completed":false}]]
	]`
	if err := os.WriteFile(path, []byte(mixed), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	store, err := Open(path, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	list := store.List()
	if len(list) != 2 {
		t.Fatalf("expected 2 surviving reminders, got %d", len(list))
	}
	if list[0].Message != "Good" || list[1].Message != "Also good" {
		t.Fatalf("unexpected survivors: %q, %q", list[0].Message, list[1].Message)
	}
}

func TestOpenMissingFileMeansEmpty(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "absent.json"), nil)
	if err != nil {
		t.Fatalf("open missing file: %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d reminders", store.Len())
	}
}

func TestUpdateKeepsOriginalMessage(t *testing.T) {
	store, _ := tempStore(t)
	if err := store.Add(model.Reminder{Message: "Stretch", FireAt: fireAt(t, "2024-03-15 09:00")}); err != nil {
		t.Fatalf("add: %v", err)
	}
	err := store.Update(0, model.Reminder{
		Message:    "Renamed",
		FireAt:     fireAt(t, "2024-03-20 10:00"),
		Recurrence: model.RecurrenceWeekly,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	got := store.List()[0]
	if got.Message != "Stretch" {
		t.Fatalf("update must keep the original message, got %q", got.Message)
	}
	if got.Recurrence != model.RecurrenceWeekly || got.FireAt.Format(TimeLayout) != "2024-03-20 10:00" {
		t.Fatalf("update did not apply fields: %+v", got)
	}
}

func TestStaleIndexReported(t *testing.T) {
	store, _ := tempStore(t)
	if err := store.Add(model.Reminder{Message: "Only", FireAt: fireAt(t, "2024-03-15 09:00")}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := store.Remove(3); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange from remove, got %v", err)
	}
	if err := store.Update(-1, model.Reminder{Message: "x", FireAt: fireAt(t, "2024-03-15 09:00")}); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange from update, got %v", err)
	}
	if err := store.ReplaceTasks(1, nil); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange from replace tasks, got %v", err)
	}
}

func TestRemoveByMessageAndReschedule(t *testing.T) {
	store, _ := tempStore(t)
	if err := store.Add(model.Reminder{Message: "Tea", FireAt: fireAt(t, "2024-03-15 09:00")}); err != nil {
		t.Fatalf("add: %v", err)
	}

	if ok := store.Reschedule("TEA", fireAt(t, "2024-03-15 10:00")); !ok {
		t.Fatalf("reschedule did not find reminder")
	}
	if got := store.List()[0].FireAt.Format(TimeLayout); got != "2024-03-15 10:00" {
		t.Fatalf("reschedule not applied: %s", got)
	}

	removed, ok := store.RemoveByMessage("tea")
	if !ok || removed.Message != "Tea" {
		t.Fatalf("remove by message failed: ok=%v removed=%+v", ok, removed)
	}
	if _, ok := store.RemoveByMessage("tea"); ok {
		t.Fatalf("second removal should report missing")
	}
}

func TestListReturnsDetachedSnapshot(t *testing.T) {
	store, _ := tempStore(t)
	if err := store.Add(model.Reminder{
		Message: "Snapshot",
		FireAt:  fireAt(t, "2024-03-15 09:00"),
		Tasks:   []model.Task{{Description: "a"}},
	}); err != nil {
		t.Fatalf("add: %v", err)
	}
	snapshot := store.List()
	snapshot[0].Tasks[0].Completed = true
	if store.List()[0].Tasks[0].Completed {
		t.Fatalf("snapshot mutation leaked into store")
	}
}

func TestTimestampsPersistToMinutePrecision(t *testing.T) {
	store, path := tempStore(t)
	withSeconds := time.Date(2024, 3, 15, 9, 0, 42, 0, time.Local)
	if err := store.Add(model.Reminder{Message: "Seconds", FireAt: withSeconds}); err != nil {
		t.Fatalf("add: %v", err)
	}
	reloaded, err := Open(path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got := reloaded.List()[0].FireAt
	if got.Second() != 0 || got.Format(TimeLayout) != "2024-03-15 09:00" {
		t.Fatalf("seconds should not survive persistence, got %s", got.Format(time.RFC3339))
	}
}
