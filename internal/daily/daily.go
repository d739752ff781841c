package daily

import (
	"fmt"
	"time"

	"github.com/chris-regnier/moodiary/internal/entry"
	"github.com/chris-regnier/moodiary/internal/storage"
)

// Upsert writes p as the entry for date's calendar day: the existing entry
// for that day is updated, otherwise a new one is created dated at date.
// Returns the entry and whether it was newly created.
func Upsert(store storage.Storage, date time.Time, p entry.Payload) (entry.Entry, bool, error) {
	existing, found, err := store.GetEntryForDate(date)
	if err != nil {
		return entry.Entry{}, false, fmt.Errorf("looking up entry for %s: %w", date.Format("2006-01-02"), err)
	}
	if found {
		e, err := store.Update(existing.ID, p)
		if err != nil {
			return entry.Entry{}, false, fmt.Errorf("updating entry %s: %w", existing.ID, err)
		}
		return e, false, nil
	}

	p.Date = &date
	e, err := store.Create(p)
	if err != nil {
		return entry.Entry{}, false, fmt.Errorf("creating entry for %s: %w", date.Format("2006-01-02"), err)
	}
	return e, true, nil
}

// Draft returns the payload to prefill an editor with for date's day: the
// existing entry's fields, or a neutral empty entry.
func Draft(store storage.Storage, date time.Time) (entry.Payload, bool, error) {
	existing, found, err := store.GetEntryForDate(date)
	if err != nil {
		return entry.Payload{}, false, fmt.Errorf("looking up entry for %s: %w", date.Format("2006-01-02"), err)
	}
	if found {
		return existing.Payload(), true, nil
	}
	return entry.Payload{Date: &date, Mood: entry.NeutralMood, Tags: []string{}}, false, nil
}
