package storage

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/mleija/remindd/internal/model"
)

// TimeLayout is the on-disk timestamp format. Seconds are not preserved.
const TimeLayout = "2006-01-02 15:04"

// The reminder file is a JSON array of positional records:
//
//	[message, "YYYY-MM-DD HH:MM", recurrence|null, sound|null, interval|null]
//
// legacy, or the same with an appended tasks array. Both shapes load;
// everything is written back in the six-element form.

type taskRecord struct {
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

func encodeRecords(reminders []model.Reminder) ([]byte, error) {
	records := make([][]any, 0, len(reminders))
	for _, r := range reminders {
		var recurrence any
		if r.Recurrence != model.RecurrenceNone {
			recurrence = string(r.Recurrence)
		}
		var sound any
		if r.SoundPath != "" {
			sound = r.SoundPath
		}
		var interval any
		if r.CustomIntervalMinutes > 0 {
			interval = r.CustomIntervalMinutes
		}
		tasks := make([]taskRecord, 0, len(r.Tasks))
		for _, task := range r.Tasks {
			tasks = append(tasks, taskRecord{Description: task.Description, Completed: task.Completed})
		}
		records = append(records, []any{
			r.Message,
			r.FireAt.Format(TimeLayout),
			recurrence,
			sound,
			interval,
			tasks,
		})
	}
	return json.Marshal(records)
}

// decodeRecords tolerates partial corruption: a record of unexpected
// shape is skipped and loading continues.
func decodeRecords(raw []byte, logger *slog.Logger) []model.Reminder {
	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		logger.Warn("reminder file is not a JSON array, starting empty", "error", err)
		return nil
	}

	out := make([]model.Reminder, 0, len(records))
	for i, record := range records {
		r, ok := decodeRecord(record)
		if !ok {
			logger.Warn("skipping reminder record of unexpected shape", "index", i)
			continue
		}
		out = append(out, r)
	}
	return out
}

func decodeRecord(raw json.RawMessage) (model.Reminder, bool) {
	var fields []json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return model.Reminder{}, false
	}
	if len(fields) != 5 && len(fields) != 6 {
		return model.Reminder{}, false
	}

	var message, timeText string
	if err := json.Unmarshal(fields[0], &message); err != nil || message == "" {
		return model.Reminder{}, false
	}
	if err := json.Unmarshal(fields[1], &timeText); err != nil {
		return model.Reminder{}, false
	}
	fireAt, err := time.ParseInLocation(TimeLayout, timeText, time.Local)
	if err != nil {
		return model.Reminder{}, false
	}

	var recurrenceText *string
	if err := json.Unmarshal(fields[2], &recurrenceText); err != nil {
		return model.Reminder{}, false
	}
	recurrence := model.RecurrenceNone
	if recurrenceText != nil {
		recurrence = model.Recurrence(*recurrenceText)
		if !recurrence.IsValid() {
			return model.Reminder{}, false
		}
	}

	var sound *string
	if err := json.Unmarshal(fields[3], &sound); err != nil {
		return model.Reminder{}, false
	}
	var interval *int
	if err := json.Unmarshal(fields[4], &interval); err != nil || (interval != nil && *interval <= 0) {
		return model.Reminder{}, false
	}
	if recurrence == model.RecurrenceCustom && interval == nil {
		return model.Reminder{}, false
	}

	var tasks []model.Task
	if len(fields) == 6 {
		var taskRecords []taskRecord
		if err := json.Unmarshal(fields[5], &taskRecords); err != nil {
			return model.Reminder{}, false
		}
		tasks = make([]model.Task, 0, len(taskRecords))
		for _, task := range taskRecords {
			tasks = append(tasks, model.Task{Description: task.Description, Completed: task.Completed})
		}
	}

	r := model.Reminder{
		Message:    message,
		FireAt:     fireAt,
		Recurrence: recurrence,
		Tasks:      tasks,
	}
	if sound != nil {
		r.SoundPath = *sound
	}
	if interval != nil {
		r.CustomIntervalMinutes = *interval
	}
	return r, true
}
