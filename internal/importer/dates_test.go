package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlexibleDate(t *testing.T) {
	tests := []struct {
		input  string
		want   time.Time
		wantOK bool
	}{
		{"3/15/2024", time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), true},
		{"12/1/2024", time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), true},
		{"1/5/24", time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), true},
		{"2024-03-15", time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), true},
		{"Mar 15, 2024", time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), true},
		{"  3/15/2024  ", time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"not a date", time.Time{}, false},
		{"13/45/2024", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseFlexibleDate(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestEarliestDate(t *testing.T) {
	got, ok := earliestDate([]string{"6/1/2024", "junk", "2/15/2024", "12/31/2024"})
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC), got)

	_, ok = earliestDate([]string{"junk", ""})
	assert.False(t, ok)

	_, ok = earliestDate(nil)
	assert.False(t, ok)
}
