package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendar_StartOfWeek(t *testing.T) {
	wednesday := time.Date(2025, time.March, 5, 23, 59, 0, 0, time.UTC)
	sunday := time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, sunday, Calendar{}.StartOfWeek(wednesday))
	assert.Equal(t, sunday, Calendar{}.StartOfWeek(sunday), "a week start is its own week start")
	assert.Equal(t, sunday, Calendar{}.StartOfWeek(sunday.Add(12*time.Hour)))

	monday := Calendar{FirstWeekday: time.Monday}
	assert.Equal(t, time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC), monday.StartOfWeek(wednesday))
	assert.Equal(t, time.Date(2025, time.February, 24, 0, 0, 0, 0, time.UTC), monday.StartOfWeek(sunday))
}

func TestCalendar_StartOfWeek_Location(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	cal := Calendar{Location: loc}

	// Saturday 23:00 UTC is already Sunday 02:00 at UTC+3
	at := time.Date(2025, time.March, 8, 23, 0, 0, 0, time.UTC)
	start := cal.StartOfWeek(at)

	assert.Equal(t, time.Date(2025, time.March, 9, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2025, time.March, 8, 21, 0, 0, 0, time.UTC), start.UTC())
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in   string
		want time.Weekday
		ok   bool
	}{
		{"sunday", time.Sunday, true},
		{"Monday", time.Monday, true},
		{"SAT", time.Saturday, true},
		{"thu", time.Thursday, true},
		{"su", time.Sunday, false},
		{"someday", time.Sunday, false},
		{"", time.Sunday, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseWeekday(tt.in)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0, percent(0, 0))
	assert.Equal(t, 100, percent(1, 1))
	assert.Equal(t, 33, percent(1, 3))
	assert.Equal(t, 67, percent(2, 3))
	assert.Equal(t, 50, percent(1, 2))
}
