package mcptools

import (
	"testing"
	"time"

	"github.com/chris-regnier/moodiary/internal/entry"
	"github.com/chris-regnier/moodiary/internal/notify"
)

// fetcherFunc adapts a function to stats.RangeFetcher.
type fetcherFunc func(start, end time.Time) ([]entry.Entry, error)

func (f fetcherFunc) FetchRange(start, end time.Time) ([]entry.Entry, error) {
	return f(start, end)
}

func TestMonthCacheSkipsStoreAfterConcurrentChange(t *testing.T) {
	c := newMonthCache()
	march := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	calls := 0
	fetch := fetcherFunc(func(start, end time.Time) ([]entry.Entry, error) {
		calls++
		if calls == 1 {
			// A write lands while the first load is in flight.
			c.invalidate(notify.DayChanged(march.AddDate(0, 0, 9)))
			return []entry.Entry{{ID: "stale000"}}, nil
		}
		return []entry.Entry{{ID: "stale000"}, {ID: "fresh000"}}, nil
	})

	first, err := c.get(fetch, march)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("first load returned %d entries, want 1", len(first))
	}

	second, err := c.get(fetch, march)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if calls != 2 {
		t.Errorf("fetch calls = %d, want 2 (stale result must not be cached)", calls)
	}
	if len(second) != 2 {
		t.Errorf("second load returned %d entries, want 2", len(second))
	}

	// With no change in between, the result is cached.
	if _, err := c.get(fetch, march); err != nil {
		t.Fatalf("get: %v", err)
	}
	if calls != 2 || c.hits != 1 {
		t.Errorf("calls = %d, hits = %d; want 2 and 1", calls, c.hits)
	}
}
