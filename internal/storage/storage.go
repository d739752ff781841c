package storage

import (
	"errors"
	"time"

	"github.com/chris-regnier/moodiary/internal/entry"
)

// Sentinel errors for storage operations. Backends wrap every failure in
// one of these so callers never see driver-specific error types.
var (
	ErrNotFound   = errors.New("entry not found")
	ErrConflict   = errors.New("concurrent write conflict")
	ErrStorage    = errors.New("storage error")
	ErrValidation = errors.New("validation error")
)

// Storage defines the interface for diary entry persistence.
//
// Only one writer is expected per store; backends serialize their own
// mutations, and Restore holds exclusive access for its whole duration.
type Storage interface {
	// Create persists a new entry and returns it with its assigned ID.
	// The payload must carry a date. No same-day check is made.
	Create(p entry.Payload) (entry.Entry, error)

	// Get returns the entry with the given ID or ErrNotFound.
	Get(id string) (entry.Entry, error)

	// Update replaces the mutable fields of an entry. ID and date are kept.
	// Returns ErrNotFound if the entry does not exist.
	Update(id string, p entry.Payload) (entry.Entry, error)

	// Delete removes an entry. Returns ErrNotFound if it does not exist.
	Delete(id string) error

	// GetEntryForDate returns the entry whose date lies in the calendar day
	// of d, computed in d's location. When several entries share the day the
	// earliest (then lowest ID) wins.
	GetEntryForDate(d time.Time) (entry.Entry, bool, error)

	// FetchRange returns entries dated from start through the end of the
	// calendar day of endInclusive, ordered by date ascending.
	FetchRange(start, endInclusive time.Time) ([]entry.Entry, error)

	// FetchAll returns every entry ordered by date ascending; undated entries last.
	FetchAll() ([]entry.Entry, error)

	// Restore replaces the whole collection with payloads in one atomic step
	// and returns the number of entries written. On failure the previous
	// collection is left untouched.
	Restore(payloads []entry.Payload) (int, error)

	// Close releases backend resources.
	Close() error
}
