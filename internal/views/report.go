package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/mleija/remindd/internal/model"
)

// ActiveRemindersMarkdown builds the "active reminders" report: one
// section per reminder with its schedule, time remaining and checklist.
func ActiveRemindersMarkdown(reminders []model.Reminder, now time.Time) string {
	if len(reminders) == 0 {
		return "No active reminders."
	}

	sections := make([]string, 0, len(reminders))
	for i, r := range reminders {
		var b strings.Builder
		fmt.Fprintf(&b, "## %d. %s\n\n", i+1, r.Message)
		fmt.Fprintf(&b, "Due %s at %s%s.\n\n", dayPhrase(r.FireAt, now), r.FireAt.Format("15:04"), recurrencePhrase(r))
		fmt.Fprintf(&b, "Time remaining: %s.\n", TimeRemaining(r.FireAt, now))
		if len(r.Tasks) > 0 {
			b.WriteString("\nTasks:\n\n")
			for _, task := range r.Tasks {
				marker := "pending"
				if task.Completed {
					marker = "done"
				}
				fmt.Fprintf(&b, "1. **[%s]** %s\n", marker, task.Description)
			}
		}
		sections = append(sections, b.String())
	}
	return "# Active reminders\n\n" + strings.Join(sections, "\n---\n\n")
}

func dayPhrase(fireAt, now time.Time) string {
	if fireAt.Year() == now.Year() && fireAt.YearDay() == now.YearDay() {
		return "today"
	}
	return "on " + fireAt.Format("02/01/2006")
}

func recurrencePhrase(r model.Reminder) string {
	switch {
	case r.CustomIntervalMinutes > 0:
		return fmt.Sprintf(", repeating every %d minutes", r.CustomIntervalMinutes)
	case r.Recurrence == model.RecurrenceDaily:
		return ", repeating daily"
	case r.Recurrence == model.RecurrenceWeekly:
		return ", repeating weekly"
	case r.Recurrence == model.RecurrenceMonthly:
		return ", repeating monthly"
	default:
		return ""
	}
}

// TimeRemaining phrases the gap until fireAt in the largest useful
// units. Past times read "already passed".
func TimeRemaining(fireAt, now time.Time) string {
	diff := fireAt.Sub(now)
	if diff < 0 {
		return "already passed"
	}
	if diff < time.Minute {
		return "less than a minute"
	}

	days := int(diff / (24 * time.Hour))
	hours := int(diff/time.Hour) % 24
	minutes := int(diff/time.Minute) % 60

	parts := make([]string, 0, 3)
	if days > 0 {
		parts = append(parts, plural(days, "day"))
	}
	if hours > 0 {
		parts = append(parts, plural(hours, "hour"))
	}
	if minutes > 0 {
		parts = append(parts, plural(minutes, "minute"))
	}
	return "in " + strings.Join(parts, ", ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
