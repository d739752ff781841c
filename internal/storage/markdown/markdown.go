package markdown

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"github.com/chris-regnier/moodiary/internal/day"
	"github.com/chris-regnier/moodiary/internal/entry"
	"github.com/chris-regnier/moodiary/internal/storage"
)

const undatedDir = "undated"

// rename is swapped out in tests to fail a restore mid-swap.
var rename = os.Rename

// Store implements storage.Storage using Markdown files with YAML front-matter.
//
// Dated entries live at entries/YYYY/MM/DD/<id>.md, keyed by the UTC day;
// undated ones (only produced by restore) live under entries/undated.
type Store struct {
	dataDir string
	baseDir string // e.g. ~/.moodiary/entries/
	mu      sync.Mutex
}

// New creates a new Markdown file storage backend.
func New(dataDir string) (*Store, error) {
	entriesDir := filepath.Join(dataDir, "entries")
	if err := recoverSwap(entriesDir); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(entriesDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating entries directory: %v", storage.ErrStorage, err)
	}
	return &Store{dataDir: dataDir, baseDir: entriesDir}, nil
}

// recoverSwap puts entries.old back when a restore stopped between its two
// renames and left no entries directory.
func recoverSwap(entriesDir string) error {
	old := entriesDir + ".old"
	if _, err := os.Stat(entriesDir); !errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if _, err := os.Stat(old); err != nil {
		return nil
	}
	if err := os.Rename(old, entriesDir); err != nil {
		return fmt.Errorf("%w: recovering entries from interrupted restore: %v", storage.ErrStorage, err)
	}
	return nil
}

// Close is a no-op for the Markdown backend.
func (s *Store) Close() error {
	return nil
}

func entryPath(base string, e entry.Entry) string {
	if e.Date == nil {
		return filepath.Join(base, undatedDir, e.ID+".md")
	}
	t := e.Date.UTC()
	return filepath.Join(base, t.Format("2006"), t.Format("01"), t.Format("02"), e.ID+".md")
}

type frontMatter struct {
	ID    string   `yaml:"id"`
	Date  string   `yaml:"date,omitempty"`
	Mood  int      `yaml:"mood"`
	Title string   `yaml:"title,omitempty"`
	Tags  []string `yaml:"tags"`
	Image string   `yaml:"image,omitempty"`
}

func marshal(e entry.Entry) ([]byte, error) {
	fm := frontMatter{
		ID:    e.ID,
		Mood:  e.Mood,
		Title: e.Title,
		Tags:  e.Tags,
	}
	if fm.Tags == nil {
		fm.Tags = []string{}
	}
	if e.Date != nil {
		fm.Date = e.Date.UTC().Format(time.RFC3339Nano)
	}
	if len(e.Image) > 0 {
		fm.Image = base64.StdEncoding.EncodeToString(e.Image)
	}

	head, err := yaml.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding front-matter: %v", storage.ErrStorage, err)
	}

	var b bytes.Buffer
	b.WriteString("---\n")
	b.Write(head)
	b.WriteString("---\n\n")
	b.WriteString(e.Content)
	return b.Bytes(), nil
}

func unmarshal(data []byte) (entry.Entry, error) {
	var fm frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(data), &fm)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: parsing front-matter: %v", storage.ErrStorage, err)
	}

	e := entry.Entry{
		ID:      fm.ID,
		Content: strings.TrimPrefix(string(body), "\n"),
		Mood:    fm.Mood,
		Title:   fm.Title,
		Tags:    fm.Tags,
	}
	if e.Tags == nil {
		e.Tags = []string{}
	}
	if fm.Date != "" {
		t, err := time.Parse(time.RFC3339Nano, fm.Date)
		if err != nil {
			return entry.Entry{}, fmt.Errorf("%w: parsing date: %v", storage.ErrStorage, err)
		}
		e.Date = &t
	}
	if fm.Image != "" {
		img, err := base64.StdEncoding.DecodeString(fm.Image)
		if err != nil {
			return entry.Entry{}, fmt.Errorf("%w: decoding image: %v", storage.ErrStorage, err)
		}
		e.Image = img
	}
	return e, nil
}

// atomicWrite writes data to a temp file then renames it to the target path.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: creating directory: %v", storage.ErrStorage, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", storage.ErrStorage, err)
	}
	tmpName := tmp.Name()

	if err := syscall.Flock(int(tmp.Fd()), syscall.LOCK_EX); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: acquiring lock: %v", storage.ErrStorage, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing temp file: %v", storage.ErrStorage, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: closing temp file: %v", storage.ErrStorage, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: renaming file: %v", storage.ErrStorage, err)
	}
	return nil
}

func writeEntry(base string, e entry.Entry) error {
	data, err := marshal(e)
	if err != nil {
		return err
	}
	return atomicWrite(entryPath(base, e), data)
}

// Create persists a new diary entry as a Markdown file.
func (s *Store) Create(p entry.Payload) (entry.Entry, error) {
	if p.Date == nil {
		return entry.Entry{}, fmt.Errorf("%w: entry date is required", storage.ErrValidation)
	}
	e, err := entry.New(p)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: %v", storage.ErrStorage, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(entryPath(s.baseDir, e)); err == nil {
		return entry.Entry{}, fmt.Errorf("%w: entry %s already exists", storage.ErrConflict, e.ID)
	}
	if err := writeEntry(s.baseDir, e); err != nil {
		return entry.Entry{}, err
	}
	return e, nil
}

// Get retrieves an entry by ID by scanning the directory tree.
func (s *Store) Get(id string) (entry.Entry, error) {
	_, e, err := s.find(id)
	return e, err
}

func (s *Store) find(id string) (string, entry.Entry, error) {
	path, err := s.findEntryPath(id)
	if err != nil {
		return "", entry.Entry{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", entry.Entry{}, fmt.Errorf("%w: reading file: %v", storage.ErrStorage, err)
	}
	e, err := unmarshal(data)
	if err != nil {
		return "", entry.Entry{}, err
	}
	return path, e, nil
}

// findEntryPath locates the file for a given entry ID.
func (s *Store) findEntryPath(id string) (string, error) {
	var found string
	err := filepath.WalkDir(s.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip errors
		}
		if d.IsDir() {
			return nil
		}
		if d.Name() == id+".md" {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: scanning entries: %v", storage.ErrStorage, err)
	}
	if found == "" {
		return "", storage.ErrNotFound
	}
	return found, nil
}

// GetEntryForDate returns the first entry of d's calendar day.
func (s *Store) GetEntryForDate(d time.Time) (entry.Entry, bool, error) {
	start, end := day.Bounds(d)
	entries, err := s.loadWindow(start, end)
	if err != nil {
		return entry.Entry{}, false, err
	}
	if len(entries) == 0 {
		return entry.Entry{}, false, nil
	}
	return entries[0], true, nil
}

// FetchRange returns entries from start through the end of endInclusive's day.
func (s *Store) FetchRange(start, endInclusive time.Time) ([]entry.Entry, error) {
	_, end := day.Bounds(endInclusive)
	return s.loadWindow(start, end)
}

// loadWindow reads the UTC day directories that can hold entries in
// [start, end) and returns the matching entries in canonical order.
func (s *Store) loadWindow(start, end time.Time) ([]entry.Entry, error) {
	entries := []entry.Entry{}
	if !start.Before(end) {
		return entries, nil
	}

	first := day.Normalize(start.UTC())
	last := end.UTC()
	for d := first; d.Before(last); d = d.AddDate(0, 0, 1) {
		dir := filepath.Join(s.baseDir, d.Format("2006"), d.Format("01"), d.Format("02"))
		found, err := readDir(dir)
		if err != nil {
			return nil, err
		}
		for _, e := range found {
			if e.Date == nil || e.Date.Before(start) || !e.Date.Before(end) {
				continue
			}
			entries = append(entries, e)
		}
	}
	storage.SortByDate(entries)
	return entries, nil
}

func readDir(dir string) ([]entry.Entry, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: reading %s: %v", storage.ErrStorage, dir, err)
	}
	var entries []entry.Entry
	for _, de := range des {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".md") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, de.Name()))
		if err != nil {
			continue // skip unreadable files
		}
		e, err := unmarshal(data)
		if err != nil {
			continue // skip malformed files
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// FetchAll returns every entry, undated ones last.
func (s *Store) FetchAll() ([]entry.Entry, error) {
	entries := []entry.Entry{}
	err := filepath.WalkDir(s.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		e, err := unmarshal(data)
		if err != nil {
			return nil
		}
		entries = append(entries, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: listing entries: %v", storage.ErrStorage, err)
	}
	storage.SortByDate(entries)
	return entries, nil
}

// Update rewrites an entry's file in place with the payload's fields.
func (s *Store) Update(id string, p entry.Payload) (entry.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, e, err := s.find(id)
	if err != nil {
		return entry.Entry{}, err
	}
	e.Apply(p)

	data, err := marshal(e)
	if err != nil {
		return entry.Entry{}, err
	}
	if err := atomicWrite(path, data); err != nil {
		return entry.Entry{}, err
	}
	return e, nil
}

// Delete removes an entry permanently.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.findEntryPath(id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("%w: deleting file: %v", storage.ErrStorage, err)
	}
	return nil
}

// Restore writes payloads into a staging tree and swaps it in for the
// entries directory. The old tree is put back if the swap fails.
func (s *Store) Restore(payloads []entry.Payload) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	staging, err := os.MkdirTemp(s.dataDir, ".restore-*")
	if err != nil {
		return 0, fmt.Errorf("%w: creating staging directory: %v", storage.ErrStorage, err)
	}
	defer os.RemoveAll(staging)

	for _, p := range payloads {
		e, err := entry.New(p)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", storage.ErrStorage, err)
		}
		if err := writeEntry(staging, e); err != nil {
			return 0, err
		}
	}

	old := s.baseDir + ".old"
	os.RemoveAll(old)
	if err := rename(s.baseDir, old); err != nil {
		return 0, fmt.Errorf("%w: moving current entries aside: %v", storage.ErrStorage, err)
	}
	if err := rename(staging, s.baseDir); err != nil {
		if rbErr := rename(old, s.baseDir); rbErr != nil {
			return 0, fmt.Errorf("%w: swapping in restored entries: %v (rollback failed: %v)", storage.ErrStorage, err, rbErr)
		}
		return 0, fmt.Errorf("%w: swapping in restored entries: %v", storage.ErrStorage, err)
	}
	os.RemoveAll(old)
	return len(payloads), nil
}
