package shell

import (
	"time"

	"github.com/chris-regnier/moodiary/internal/day"
	"github.com/chris-regnier/moodiary/internal/stats"
	"github.com/chris-regnier/moodiary/internal/storage"
)

// streakWindow matches the look-back of stats.Streak.
const streakWindow = 365

// ComputeStatus queries the storage backend and computes the prompt status:
// whether today has an entry, its mood, and the current streak.
func ComputeStatus(store storage.Storage, now time.Time) (*PromptCache, error) {
	st, err := stats.Streak(store, now)
	if err != nil {
		return nil, err
	}
	c := &PromptCache{
		Today:     st.TodayLogged,
		Streak:    st.Days,
		TodayDate: now.Format(day.DayLayout),
		UpdatedAt: now,
	}
	if st.TodayLogged {
		e, found, err := store.GetEntryForDate(now)
		if err != nil {
			return nil, err
		}
		if found {
			c.Mood = e.Mood
		}
	}
	return c, nil
}
