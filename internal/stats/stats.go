// Package stats computes mood and writing-habit aggregates over entries.
package stats

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/chris-regnier/moodiary/internal/day"
	"github.com/chris-regnier/moodiary/internal/entry"
)

// TimeRange is a preset trailing window.
type TimeRange string

const (
	Week  TimeRange = "week"
	Month TimeRange = "month"
	Year  TimeRange = "year"
)

// Days returns the window length of r.
func (r TimeRange) Days() int {
	switch r {
	case Month:
		return 30
	case Year:
		return 365
	default:
		return 7
	}
}

// ParseTimeRange accepts week, month or year.
func ParseTimeRange(s string) (TimeRange, error) {
	switch r := TimeRange(s); r {
	case Week, Month, Year:
		return r, nil
	}
	return "", fmt.Errorf("unknown range %q (want week, month or year)", s)
}

// DayCount is the number of entries on one local day.
type DayCount struct {
	Day   time.Time `json:"day"`
	Count int       `json:"count"`
}

// TagCount is the number of occurrences of a tag.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// TrendPoint is one entry's mood on the trend line.
type TrendPoint struct {
	Date time.Time `json:"date"`
	Mood int       `json:"mood"`
}

// AverageMood returns the arithmetic mean mood, or 0 for no entries.
func AverageMood(entries []entry.Entry) float64 {
	if len(entries) == 0 {
		return 0
	}
	sum := 0
	for _, e := range entries {
		sum += e.Mood
	}
	return float64(sum) / float64(len(entries))
}

// windowStart is local midnight windowDays before now's day.
func windowStart(windowDays int, now time.Time) time.Time {
	return day.Normalize(now).AddDate(0, 0, -windowDays)
}

// FrequencyByDay counts entries per local day for the windowDays+1 days
// ending today, oldest first. Days without entries count zero and undated
// entries are ignored.
func FrequencyByDay(entries []entry.Entry, windowDays int, now time.Time) []DayCount {
	if windowDays < 0 {
		windowDays = 0
	}
	loc := now.Location()
	counts := make(map[string]int)
	for _, e := range entries {
		if e.Date == nil {
			continue
		}
		counts[e.Date.In(loc).Format(day.DayLayout)]++
	}

	out := make([]DayCount, 0, windowDays+1)
	for d := range day.Days(windowStart(windowDays, now), windowDays+1) {
		out = append(out, DayCount{Day: d, Count: counts[d.Format(day.DayLayout)]})
	}
	return out
}

// TagFrequency counts every tag occurrence. Results are ordered by count
// descending, ties by the order the tag was first seen.
func TagFrequency(entries []entry.Entry) []TagCount {
	index := make(map[string]int)
	var out []TagCount
	for _, e := range entries {
		for _, tag := range e.Tags {
			if i, ok := index[tag]; ok {
				out[i].Count++
				continue
			}
			index[tag] = len(out)
			out = append(out, TagCount{Tag: tag, Count: 1})
		}
	}
	slices.SortStableFunc(out, func(a, b TagCount) int { return cmp.Compare(b.Count, a.Count) })
	if out == nil {
		out = []TagCount{}
	}
	return out
}

// MoodTrend returns the dated entries inside the trailing window as
// (date, mood) points in ascending date order.
func MoodTrend(entries []entry.Entry, windowDays int, now time.Time) []TrendPoint {
	start := windowStart(windowDays, now)
	_, end := day.Bounds(now)

	out := []TrendPoint{}
	for _, e := range entries {
		if e.Date == nil || e.Date.Before(start) || !e.Date.Before(end) {
			continue
		}
		out = append(out, TrendPoint{Date: *e.Date, Mood: e.Mood})
	}
	slices.SortStableFunc(out, func(a, b TrendPoint) int { return a.Date.Compare(b.Date) })
	return out
}
