package service

import (
	"math"
	"strings"
	"time"
)

// Calendar decides where a week starts. The zero value uses Sunday in UTC.
type Calendar struct {
	Location     *time.Location
	FirstWeekday time.Weekday
}

// StartOfWeek returns local midnight of the most recent FirstWeekday at or before t.
func (c Calendar) StartOfWeek(t time.Time) time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	offset := (int(t.Weekday()) - int(c.FirstWeekday) + 7) % 7
	y, m, d := t.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, loc)
}

// ParseWeekday accepts an English weekday name ("sunday", "Mon", ...).
func ParseWeekday(s string) (time.Weekday, bool) {
	if len(s) < 3 {
		return time.Sunday, false
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := d.String()
		if len(s) <= len(name) && strings.EqualFold(name[:len(s)], s) {
			return d, true
		}
	}
	return time.Sunday, false
}

// percent is round(part / max(total, 1) * 100).
func percent(part, total int) int {
	if total < 1 {
		total = 1
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
