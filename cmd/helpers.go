package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/chris-regnier/moodiary/internal/day"
	"github.com/chris-regnier/moodiary/internal/entry"
	"github.com/chris-regnier/moodiary/internal/storage"
)

func usageError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

// target is an entry named on the command line, by ID or by day.
type target struct {
	id  string
	day time.Time
}

func (t target) byID() bool { return t.id != "" }

// parseTarget reads arg as an 8-character entry ID or a YYYY-MM-DD day.
// An empty arg means today.
func parseTarget(arg string) (target, error) {
	if arg == "" {
		return target{day: day.Normalize(today())}, nil
	}
	if entry.ValidateID(arg) == nil {
		return target{id: arg}, nil
	}
	d, err := day.ParseDay(arg, location())
	if err != nil {
		return target{}, usageError("%q is neither an entry ID nor a date (YYYY-MM-DD)", arg)
	}
	return target{day: d}, nil
}

// lookup returns the entry the target names.
func (t target) lookup() (entry.Entry, error) {
	if t.byID() {
		return store.Get(t.id)
	}
	e, found, err := store.GetEntryForDate(t.day)
	if err != nil {
		return entry.Entry{}, err
	}
	if !found {
		return entry.Entry{}, fmt.Errorf("%w: no entry for %s", storage.ErrNotFound, t.day.Format(day.DayLayout))
	}
	return e, nil
}

// parseDay reads a --date style flag; empty means now.
func parseDay(s string) (time.Time, error) {
	if s == "" {
		return today(), nil
	}
	d, err := day.ParseDay(s, location())
	if err != nil {
		return time.Time{}, usageError("%v", err)
	}
	return d, nil
}

// dateWindow resolves --month or --from/--to into an inclusive day range.
// With neither set it returns the current month.
func dateWindow(month, from, to string) (start, endInclusive time.Time, err error) {
	loc := location()
	switch {
	case month != "" && (from != "" || to != ""):
		return start, endInclusive, usageError("--month cannot be combined with --from/--to")
	case month != "":
		m, err := day.ParseMonth(month, loc)
		if err != nil {
			return start, endInclusive, usageError("%v", err)
		}
		start, endInclusive = day.MonthBounds(m)
		return start, endInclusive, nil
	case from != "" || to != "":
		if from == "" || to == "" {
			return start, endInclusive, usageError("--from and --to must be used together")
		}
		if start, err = day.ParseDay(from, loc); err != nil {
			return start, endInclusive, usageError("%v", err)
		}
		if endInclusive, err = day.ParseDay(to, loc); err != nil {
			return start, endInclusive, usageError("%v", err)
		}
		if endInclusive.Before(start) {
			return start, endInclusive, usageError("--to is before --from")
		}
		return start, endInclusive, nil
	}
	start, endInclusive = day.MonthBounds(today())
	return start, endInclusive, nil
}

// readContent joins args, or reads stdin for a single "-".
func readContent(in io.Reader, args []string) (string, error) {
	if len(args) == 1 && args[0] == "-" {
		data, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	return strings.TrimSpace(strings.Join(args, " ")), nil
}

func readImage(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, usageError("reading image: %v", err)
	}
	return data, nil
}

func checkMood(mood int) error {
	if err := entry.ValidateMood(mood); err != nil {
		return usageError("%v", err)
	}
	return nil
}
