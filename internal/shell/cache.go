package shell

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/chris-regnier/moodiary/internal/day"
	"github.com/chris-regnier/moodiary/internal/notify"
)

const cacheFileName = ".prompt-cache"

// PromptCache holds cached prompt status data.
type PromptCache struct {
	Today          bool      `json:"today"`
	Mood           int       `json:"mood,omitempty"` // today's mood, 0 when unlogged
	Streak         int       `json:"streak"`
	TodayDate      string    `json:"today_date"`
	StorageBackend string    `json:"storage_backend"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CachePath returns the full path to the prompt cache file.
func CachePath(dataDir string) string {
	return filepath.Join(dataDir, cacheFileName)
}

// ReadCache reads the prompt cache from disk. Returns nil if the cache
// does not exist or cannot be parsed.
func ReadCache(dataDir string) *PromptCache {
	data, err := os.ReadFile(CachePath(dataDir))
	if err != nil {
		return nil
	}
	var c PromptCache
	if err := json.Unmarshal(data, &c); err != nil {
		return nil
	}
	return &c
}

// WriteCache writes the prompt cache to disk. The file is replaced by
// rename so a concurrent prompt never reads half of it.
func WriteCache(dataDir string, c *PromptCache) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dataDir, cacheFileName+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), CachePath(dataDir)); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}

// IsFresh reports whether the cache is still valid at now given the TTL.
// A cache is stale if the TTL has elapsed or the date has changed (midnight rollover).
func (c *PromptCache) IsFresh(ttl time.Duration, now time.Time) bool {
	if c == nil {
		return false
	}
	if c.TodayDate != now.Format(day.DayLayout) {
		return false
	}
	return now.Sub(c.UpdatedAt) <= ttl
}

// InvalidateCache removes the prompt cache file.
func InvalidateCache(dataDir string) error {
	path := CachePath(dataDir)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// InvalidateOnChange drops the cache whenever a change on bus touches the
// days the prompt status is computed from. It returns the unsubscribe func.
func InvalidateOnChange(bus *notify.Bus, dataDir string, now func() time.Time) func() {
	return bus.Subscribe(func(c notify.Change) {
		t := now()
		_, end := day.Bounds(t)
		start := day.Normalize(t).AddDate(0, 0, -streakWindow)
		if c.Overlaps(start, end) {
			// Best-effort; errors are ignored.
			_ = InvalidateCache(dataDir)
		}
	})
}
