package importer

import (
	"strings"
	"time"
)

// timeNow is stubbed in tests.
var timeNow = time.Now

// dateLayouts tried in order. Month/day/year is the primary external format;
// the rest are generic fallbacks.
var dateLayouts = []string{
	"1/2/2006",
	"1/2/06",
	"2006-01-02",
	time.RFC3339,
	"Jan 2, 2006",
	"January 2, 2006",
}

// parseFlexibleDate parses an externally-sourced date string permissively.
// Unparseable input reports ok=false; callers drop such entries silently.
func parseFlexibleDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// earliestDate returns the earliest of the parsed dates, ok=false when none
// parsed.
func earliestDate(raw []string) (time.Time, bool) {
	var earliest time.Time
	found := false
	for _, s := range raw {
		t, ok := parseFlexibleDate(s)
		if !ok {
			continue
		}
		if !found || t.Before(earliest) {
			earliest = t
			found = true
		}
	}
	return earliest, found
}
