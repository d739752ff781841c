// Package day derives calendar-day and calendar-month windows.
//
// A time's Location is its calendar: every window is computed in the
// location of the time passed in, using wall-clock arithmetic so that days
// spanning a DST transition are 23 or 25 hours long.
package day

import (
	"fmt"
	"iter"
	"time"
)

const (
	// DayLayout is the input/output format for a calendar day.
	DayLayout = "2006-01-02"
	// MonthLayout is the input/output format for a calendar month.
	MonthLayout = "2006-01"
)

// Normalize returns midnight of t's calendar day in t's location.
//
// Example:
//
//	input:  2024-01-15 14:30:45.123456789
//	output: 2024-01-15 00:00:00.0
func Normalize(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Bounds returns the day window [start, end) containing t.
func Bounds(t time.Time) (start, end time.Time) {
	y, m, d := t.Date()
	loc := t.Location()
	start = time.Date(y, m, d, 0, 0, 0, 0, loc)
	end = time.Date(y, m, d+1, 0, 0, 0, 0, loc)
	return start, end
}

// MonthBounds returns the first and last day (both at midnight) of t's month.
// The last day is derived from the next month's start so month length is never assumed.
func MonthBounds(t time.Time) (start, endInclusive time.Time) {
	y, m, _ := t.Date()
	loc := t.Location()
	start = time.Date(y, m, 1, 0, 0, 0, 0, loc)
	next := start.AddDate(0, 1, 0)
	endInclusive = next.AddDate(0, 0, -1)
	return start, endInclusive
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// DaysInMonth returns the number of calendar days in t's month.
func DaysInMonth(t time.Time) int {
	_, end := MonthBounds(t)
	return end.Day()
}

// Days yields n consecutive midnights starting at Normalize(start).
func Days(start time.Time, n int) iter.Seq[time.Time] {
	first := Normalize(start)
	return func(yield func(time.Time) bool) {
		for i := range n {
			if !yield(first.AddDate(0, 0, i)) {
				return
			}
		}
	}
}

// ParseDay parses YYYY-MM-DD as midnight in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DayLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", s)
	}
	return t, nil
}

// ParseMonth parses YYYY-MM as the first of the month in loc.
func ParseMonth(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(MonthLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q (use YYYY-MM)", s)
	}
	return t, nil
}
