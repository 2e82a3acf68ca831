package model

import "time"

// NextOccurrence computes the fire time following current under the given
// policy. A positive customIntervalMinutes takes precedence over the
// recurrence kind. For one-shot reminders the input is returned unchanged;
// callers are expected to gate on IsRecurring before rescheduling.
//
// Monthly recurrence keeps the day of month, rolling December into January
// of the next year. When the target month is shorter than the current day
// of month (Jan 31 + 1 month), the day clamps to the last day of the
// target month.
func NextOccurrence(current time.Time, recurrence Recurrence, customIntervalMinutes int) time.Time {
	if customIntervalMinutes > 0 {
		return current.Add(time.Duration(customIntervalMinutes) * time.Minute)
	}
	switch recurrence {
	case RecurrenceDaily:
		return current.AddDate(0, 0, 1)
	case RecurrenceWeekly:
		return current.AddDate(0, 0, 7)
	case RecurrenceMonthly:
		return addMonth(current)
	default:
		return current
	}
}

func addMonth(t time.Time) time.Time {
	year, month := t.Year(), t.Month()
	if month == time.December {
		year++
		month = time.January
	} else {
		month++
	}
	day := t.Day()
	if last := lastDayOfMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func lastDayOfMonth(year int, month time.Month) int {
	// Day zero of the following month normalizes to this month's last day.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
