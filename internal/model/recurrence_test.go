package model

import (
	"testing"
	"time"
)

func TestNextOccurrenceDaily(t *testing.T) {
	current := time.Date(2024, 3, 15, 9, 0, 0, 0, time.Local)
	next := NextOccurrence(current, RecurrenceDaily, 0)
	if next.Format("2006-01-02 15:04") != "2024-03-16 09:00" {
		t.Fatalf("unexpected daily next: %s", next.Format(time.RFC3339))
	}
}

func TestNextOccurrenceWeekly(t *testing.T) {
	current := time.Date(2024, 3, 15, 9, 0, 0, 0, time.Local)
	next := NextOccurrence(current, RecurrenceWeekly, 0)
	if next.Format("2006-01-02 15:04") != "2024-03-22 09:00" {
		t.Fatalf("unexpected weekly next: %s", next.Format(time.RFC3339))
	}
}

func TestNextOccurrenceMonthly(t *testing.T) {
	current := time.Date(2024, 3, 15, 9, 0, 0, 0, time.Local)
	next := NextOccurrence(current, RecurrenceMonthly, 0)
	if next.Format("2006-01-02 15:04") != "2024-04-15 09:00" {
		t.Fatalf("unexpected monthly next: %s", next.Format(time.RFC3339))
	}
}

func TestNextOccurrenceMonthlyDecemberRollsToNextYear(t *testing.T) {
	current := time.Date(2024, 12, 10, 18, 30, 0, 0, time.Local)
	next := NextOccurrence(current, RecurrenceMonthly, 0)
	if next.Format("2006-01-02 15:04") != "2025-01-10 18:30" {
		t.Fatalf("unexpected december rollover: %s", next.Format(time.RFC3339))
	}
}

func TestNextOccurrenceMonthlyClampsToMonthEnd(t *testing.T) {
	current := time.Date(2024, 1, 31, 9, 0, 0, 0, time.Local)
	next := NextOccurrence(current, RecurrenceMonthly, 0)
	// 2024 is a leap year.
	if next.Format("2006-01-02 15:04") != "2024-02-29 09:00" {
		t.Fatalf("unexpected clamped next: %s", next.Format(time.RFC3339))
	}

	current = time.Date(2023, 1, 31, 9, 0, 0, 0, time.Local)
	next = NextOccurrence(current, RecurrenceMonthly, 0)
	if next.Format("2006-01-02 15:04") != "2023-02-28 09:00" {
		t.Fatalf("unexpected clamped next: %s", next.Format(time.RFC3339))
	}
}

func TestNextOccurrenceCustomIntervalTakesPrecedence(t *testing.T) {
	current := time.Date(2024, 3, 15, 9, 0, 0, 0, time.Local)
	next := NextOccurrence(current, RecurrenceWeekly, 30)
	if next.Format("2006-01-02 15:04") != "2024-03-15 09:30" {
		t.Fatalf("custom interval should win over weekly, got %s", next.Format(time.RFC3339))
	}
}

func TestNextOccurrenceIsStrictlyLater(t *testing.T) {
	current := time.Date(2024, 3, 15, 9, 0, 0, 0, time.Local)
	for _, rec := range []Recurrence{RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly} {
		if next := NextOccurrence(current, rec, 0); !next.After(current) {
			t.Fatalf("%s next %s not after current", rec, next.Format(time.RFC3339))
		}
	}
	if next := NextOccurrence(current, RecurrenceNone, 1); !next.After(current) {
		t.Fatalf("custom next %s not after current", next.Format(time.RFC3339))
	}
}
