package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{RecurringStatusActive, RecurringStatusPaused, true},
		{RecurringStatusPaused, RecurringStatusActive, true},
		{RecurringStatusActive, RecurringStatusCancelled, true},
		{RecurringStatusPaused, RecurringStatusCancelled, true},
		{RecurringStatusCancelled, RecurringStatusActive, false},
		{RecurringStatusCancelled, RecurringStatusPaused, false},
		{RecurringStatusActive, "archived", false},
	}

	for _, tt := range tests {
		t.Run(tt.from+" to "+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}
