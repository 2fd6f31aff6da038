// Package schedule holds the pure recurrence math: computing the next cycle
// date from a pattern, and translating external frequency labels into
// patterns. No I/O, fully deterministic.
package schedule

import (
	"time"

	"maintrack/internal/models"
)

// Next returns the next execution date for a pattern, counted from fromDate.
// An unrecognized or custom pattern falls back to fromDate + 7 days; that
// default is documented behavior, not an error. The result is always strictly
// after fromDate for any positive interval.
func Next(pattern models.RecurrencePattern, fromDate time.Time) time.Time {
	interval := pattern.Interval
	if interval <= 0 {
		interval = 1
	}

	switch pattern.Type {
	case models.RecurrenceDaily:
		return fromDate.AddDate(0, 0, interval)
	case models.RecurrenceWeekly:
		return fromDate.AddDate(0, 0, interval*7)
	case models.RecurrenceMonthly:
		return fromDate.AddDate(0, interval, 0)
	case models.RecurrenceYearly:
		return fromDate.AddDate(interval, 0, 0)
	default:
		// custom patterns are opaque here; one week is the documented default
		return fromDate.AddDate(0, 0, 7)
	}
}
