package stats

import (
	"time"

	"github.com/chris-regnier/moodiary/internal/day"
	"github.com/chris-regnier/moodiary/internal/entry"
)

// Summary bundles the aggregates shown by the stats views.
type Summary struct {
	Range       TimeRange    `json:"range"`
	From        time.Time    `json:"from"`
	To          time.Time    `json:"to"`
	Entries     int          `json:"entries"`
	AverageMood float64      `json:"average_mood"`
	Frequency   []DayCount   `json:"frequency"`
	Tags        []TagCount   `json:"tags"`
	Trend       []TrendPoint `json:"trend"`
}

// Summarize loads the trailing window for r and aggregates it.
func Summarize(f RangeFetcher, r TimeRange, now time.Time) (Summary, error) {
	n := r.Days()
	from := windowStart(n, now)
	to := day.Normalize(now)

	entries, err := f.FetchRange(from, to)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Range:       r,
		From:        from,
		To:          to,
		Entries:     len(entries),
		AverageMood: AverageMood(entries),
		Frequency:   FrequencyByDay(entries, n, now),
		Tags:        TagFrequency(entries),
		Trend:       MoodTrend(entries, n, now),
	}, nil
}

// MoodDistribution counts entries per mood value, with every scale value present.
// Out-of-range moods are not counted.
func MoodDistribution(entries []entry.Entry) map[int]int {
	dist := make(map[int]int, entry.MaxMood)
	for _, m := range entry.Moods() {
		dist[m.Value] = 0
	}
	for _, e := range entries {
		if _, ok := dist[e.Mood]; ok {
			dist[e.Mood]++
		}
	}
	return dist
}
