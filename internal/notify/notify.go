// Package notify broadcasts entry-collection changes to in-process subscribers.
//
// A Change names the affected time window, or All for whole-collection
// replacement, so subscribers can drop only the cached reads that overlap.
package notify

import (
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/chris-regnier/moodiary/internal/day"
)

// Change describes which part of the collection was modified.
type Change struct {
	All   bool
	Start time.Time // inclusive
	End   time.Time // exclusive
}

// AllChanged is the change published after a restore.
var AllChanged = Change{All: true}

// DayChanged returns a change covering the calendar day of t.
func DayChanged(t time.Time) Change {
	start, end := day.Bounds(t)
	return Change{Start: start, End: end}
}

// Overlaps reports whether the change touches [start, end).
func (c Change) Overlaps(start, end time.Time) bool {
	if c.All {
		return true
	}
	return c.Start.Before(end) && start.Before(c.End)
}

// Bus fans changes out to subscribers. The zero value is ready to use.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]func(Change)
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns a function that removes it.
func (b *Bus) Subscribe(fn func(Change)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs == nil {
		b.subs = make(map[int]func(Change))
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

// Publish delivers c to every subscriber on the caller's goroutine,
// in subscription order.
func (b *Bus) Publish(c Change) {
	b.mu.RLock()
	ids := slices.Sorted(maps.Keys(b.subs))
	fns := maps.Clone(b.subs)
	b.mu.RUnlock()

	for _, id := range ids {
		fns[id](c)
	}
}
