package markdown

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/chris-regnier/moodiary/internal/entry"
)

func seedStore(t *testing.T, dir string) *Store {
	t.Helper()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i, content := range []string{"first", "second"} {
		at := time.Date(2024, 1, i+1, 9, 0, 0, 0, time.UTC)
		if _, err := s.Create(entry.Payload{Date: &at, Content: content, Mood: 3, Tags: []string{}}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	return s
}

func contents(t *testing.T, s *Store) []string {
	t.Helper()
	all, err := s.FetchAll()
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	var out []string
	for _, e := range all {
		out = append(out, e.Content)
	}
	return out
}

func TestRestoreSwapFailureKeepsEntries(t *testing.T) {
	dir := t.TempDir()
	s := seedStore(t, dir)

	rename = func(from, to string) error {
		if strings.Contains(filepath.Base(from), ".restore-") {
			return errors.New("disk full")
		}
		return os.Rename(from, to)
	}
	t.Cleanup(func() { rename = os.Rename })

	at := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	_, err := s.Restore([]entry.Payload{{Date: &at, Content: "restored", Mood: 5}})
	if err == nil {
		t.Fatal("expected Restore to fail")
	}

	if got := contents(t, s); strings.Join(got, ",") != "first,second" {
		t.Errorf("entries after failed restore = %v, want [first second]", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "entries.old")); !os.IsNotExist(err) {
		t.Errorf("entries.old left behind: %v", err)
	}
	leftovers, _ := filepath.Glob(filepath.Join(dir, ".restore-*"))
	if len(leftovers) != 0 {
		t.Errorf("staging directories left behind: %v", leftovers)
	}
}

func TestNewRecoversInterruptedSwap(t *testing.T) {
	dir := t.TempDir()
	seedStore(t, dir)

	// State after the first rename of a restore, before the second.
	if err := os.Rename(filepath.Join(dir, "entries"), filepath.Join(dir, "entries.old")); err != nil {
		t.Fatal(err)
	}

	s, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := contents(t, s); strings.Join(got, ",") != "first,second" {
		t.Errorf("entries after recovery = %v, want [first second]", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "entries.old")); !os.IsNotExist(err) {
		t.Errorf("entries.old still present: %v", err)
	}
}

func TestNewKeepsCurrentEntriesOverOld(t *testing.T) {
	dir := t.TempDir()
	seedStore(t, dir)
	if err := os.MkdirAll(filepath.Join(dir, "entries.old", "2020", "01", "01"), 0755); err != nil {
		t.Fatal(err)
	}

	s, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := contents(t, s); len(got) != 2 {
		t.Errorf("got %v, want the two current entries", got)
	}
}
