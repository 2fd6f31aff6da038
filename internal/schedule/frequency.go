package schedule

import (
	"strings"

	"maintrack/internal/models"
)

// MapFrequency translates an external frequency label into a recurrence
// pattern. Matching is case-insensitive. Unknown labels (including empty)
// default to monthly/1 — note this intentionally differs from Next's
// weekly fallback for unknown pattern types.
func MapFrequency(label string) models.RecurrencePattern {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "SEMIANNUALLY":
		return models.RecurrencePattern{Type: models.RecurrenceMonthly, Interval: 6}
	case "QUARTERLY":
		return models.RecurrencePattern{Type: models.RecurrenceMonthly, Interval: 3}
	case "MONTHLY":
		return models.RecurrencePattern{Type: models.RecurrenceMonthly, Interval: 1}
	case "BI-WEEKLY":
		return models.RecurrencePattern{Type: models.RecurrenceWeekly, Interval: 2}
	case "WEEKLY":
		return models.RecurrencePattern{Type: models.RecurrenceWeekly, Interval: 1}
	default:
		return models.RecurrencePattern{Type: models.RecurrenceMonthly, Interval: 1}
	}
}
