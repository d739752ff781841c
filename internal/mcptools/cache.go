package mcptools

import (
	"sync"
	"time"

	"github.com/chris-regnier/moodiary/internal/day"
	"github.com/chris-regnier/moodiary/internal/entry"
	"github.com/chris-regnier/moodiary/internal/notify"
	"github.com/chris-regnier/moodiary/internal/stats"
)

type cachedMonth struct {
	start, end time.Time // [start, end)
	entries    []entry.Entry
}

// monthCache keeps list_month results until a change touches the month.
type monthCache struct {
	mu     sync.Mutex
	months map[string]cachedMonth
	hits   int
	gen    uint64 // bumped by every invalidate
}

func newMonthCache() *monthCache {
	return &monthCache{months: make(map[string]cachedMonth)}
}

// get returns the entries of the month starting at start, loading them
// through f on a miss.
func (c *monthCache) get(f stats.RangeFetcher, start time.Time) ([]entry.Entry, error) {
	key := start.Format(day.MonthLayout) + " " + start.Location().String()

	c.mu.Lock()
	if m, ok := c.months[key]; ok {
		c.hits++
		c.mu.Unlock()
		return m.entries, nil
	}
	gen := c.gen
	c.mu.Unlock()

	first, last := day.MonthBounds(start)
	entries, err := f.FetchRange(first, last)
	if err != nil {
		return nil, err
	}
	_, end := day.Bounds(last)

	c.mu.Lock()
	// A change during the fetch may not be reflected in entries.
	if c.gen == gen {
		c.months[key] = cachedMonth{start: first, end: end, entries: entries}
	}
	c.mu.Unlock()
	return entries, nil
}

// invalidate drops every cached month the change overlaps.
func (c *monthCache) invalidate(ch notify.Change) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	for key, m := range c.months {
		if ch.Overlaps(m.start, m.end) {
			delete(c.months, key)
		}
	}
}
