package storage

import (
	"slices"
	"strings"

	"github.com/chris-regnier/moodiary/internal/entry"
)

// SortByDate orders entries by date ascending, then by ID. Undated entries sort last.
// Backends that cannot order natively use it so every backend agrees on order.
func SortByDate(entries []entry.Entry) {
	slices.SortStableFunc(entries, CompareByDate)
}

// CompareByDate is the canonical entry ordering.
func CompareByDate(a, b entry.Entry) int {
	switch {
	case a.Date == nil && b.Date == nil:
		return strings.Compare(a.ID, b.ID)
	case a.Date == nil:
		return 1
	case b.Date == nil:
		return -1
	}
	if c := a.Date.Compare(*b.Date); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}
