package core

import "time"

// All calendar-day classification happens on UTC midnights. Truncating both
// sides of every comparison to the same reference timezone keeps a bill from
// flickering between "due today" and "overdue" across timezone boundaries.

// DayStart truncates t to midnight UTC.
func DayStart(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsOverdue reports whether a pending transaction's due date lies strictly
// before asOf. A transaction due exactly today is not overdue.
func IsOverdue(t Transaction, asOf time.Time) bool {
	if t.Status != StatusPending {
		return false
	}
	return DayStart(t.DueDate).Before(DayStart(asOf))
}

// IsUpcoming reports whether a pending transaction falls due between asOf
// and asOf+horizonDays, both bounds inclusive. Due-today counts as upcoming.
func IsUpcoming(t Transaction, asOf time.Time, horizonDays int) bool {
	if t.Status != StatusPending {
		return false
	}
	due := DayStart(t.DueDate)
	from := DayStart(asOf)
	to := from.AddDate(0, 0, horizonDays)
	return !due.Before(from) && !due.After(to)
}

// PeriodKey derives the sortable "YYYY-MM" month bucket for a date.
func PeriodKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// ParsePeriodKey parses a "YYYY-MM" key back into its year and month.
func ParsePeriodKey(key string) (year int, month time.Month, err error) {
	p, err := time.Parse("2006-01", key)
	if err != nil {
		return 0, 0, err
	}
	return p.Year(), p.Month(), nil
}

// PeriodBounds returns the inclusive first and last day of the month
// containing t, at midnight UTC.
func PeriodBounds(t time.Time) (start, end time.Time) {
	y, m, _ := t.UTC().Date()
	start = time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, -1)
	return start, end
}

// SameMonth reports whether a and b fall in the same calendar month (UTC).
func SameMonth(a, b time.Time) bool {
	ay, am, _ := a.UTC().Date()
	by, bm, _ := b.UTC().Date()
	return ay == by && am == bm
}

// AddMonthClamped advances a date by exactly one calendar month, preserving
// the day of month where the target month has it and clamping to the last
// day otherwise. Jan 31 becomes Feb 28 (Feb 29 in leap years), never Mar 3.
func AddMonthClamped(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	lastDay := first.AddDate(0, 1, -1).Day()
	if d > lastDay {
		d = lastDay
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}
