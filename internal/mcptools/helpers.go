package mcptools

import (
	"time"

	"github.com/chris-regnier/moodiary/internal/day"
)

// dayOrToday parses s as a day in loc, or returns today's midnight when s is empty.
func dayOrToday(s string, now time.Time, loc *time.Location) (time.Time, error) {
	if s == "" {
		return day.Normalize(now.In(loc)), nil
	}
	return day.ParseDay(s, loc)
}

// monthOrCurrent parses s as a month in loc, or returns the current month.
func monthOrCurrent(s string, now time.Time, loc *time.Location) (time.Time, error) {
	if s == "" {
		start, _ := day.MonthBounds(now.In(loc))
		return start, nil
	}
	return day.ParseMonth(s, loc)
}
