package stats

import (
	"time"

	"github.com/chris-regnier/moodiary/internal/day"
	"github.com/chris-regnier/moodiary/internal/entry"
)

// streakWindow bounds how far back Streak looks.
const streakWindow = 365

// RangeFetcher is the part of the store the aggregates read from.
type RangeFetcher interface {
	FetchRange(start, endInclusive time.Time) ([]entry.Entry, error)
}

// StreakStatus reports whether today has an entry and how many
// consecutive days, ending today, have one.
type StreakStatus struct {
	TodayLogged bool `json:"today_logged"`
	Days        int  `json:"days"`
}

// Streak computes the current writing streak. A day without an entry ends
// the streak, so an unlogged today yields zero.
func Streak(f RangeFetcher, now time.Time) (StreakStatus, error) {
	today := day.Normalize(now)
	entries, err := f.FetchRange(today.AddDate(0, 0, -streakWindow), today)
	if err != nil {
		return StreakStatus{}, err
	}

	logged := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.Date != nil {
			logged[e.Date.In(now.Location()).Format(day.DayLayout)] = true
		}
	}

	var st StreakStatus
	st.TodayLogged = logged[today.Format(day.DayLayout)]
	for check := today; logged[check.Format(day.DayLayout)]; check = check.AddDate(0, 0, -1) {
		st.Days++
	}
	return st, nil
}
