package sqlite

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pressly/goose/v3"
	_ "github.com/tursodatabase/go-libsql"

	"github.com/chris-regnier/moodiary/internal/day"
	"github.com/chris-regnier/moodiary/internal/entry"
	"github.com/chris-regnier/moodiary/internal/storage"
	"github.com/chris-regnier/moodiary/internal/tagcodec"
)

//go:embed migrations/*.sql
var migrations embed.FS

// dateLayout is fixed width so lexical order in SQL matches time order.
const dateLayout = "2006-01-02T15:04:05.000000000Z"

const columns = "id, date, content, mood, image, tags, title"

// migrateMu guards goose's package-level configuration.
var migrateMu sync.Mutex

// Store implements storage.Storage using SQLite via Turso/libSQL.
type Store struct {
	db *sql.DB
	mu sync.Mutex // serializes writers
}

// New creates a new SQLite storage backend in dataDir.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating data directory: %v", storage.ErrStorage, err)
	}

	dbPath := filepath.Join(dataDir, "moodiary.db")
	db, err := sql.Open("libsql", "file:"+dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", storage.ErrStorage, err)
	}

	// The pragma answers with the resulting mode, so it has to be read as a row.
	var mode string
	if err := db.QueryRow("PRAGMA journal_mode=WAL").Scan(&mode); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: enabling WAL mode: %v", storage.ErrStorage, err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	migrateMu.Lock()
	defer migrateMu.Unlock()

	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("%w: configuring migrations: %v", storage.ErrStorage, err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("%w: running migrations: %v", storage.ErrStorage, err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create persists a new diary entry.
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

	if err := insert(s.db, e); err != nil {
		return entry.Entry{}, err
	}
	return e, nil
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func insert(db execer, e entry.Entry) error {
	_, err := db.Exec(
		"INSERT INTO entries ("+columns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		e.ID,
		formatDate(e.Date),
		e.Content,
		e.Mood,
		e.Image,
		tagcodec.Encode(e.Tags),
		e.Title,
	)
	if err != nil {
		return fmt.Errorf("%w: inserting entry: %v", storage.ErrStorage, err)
	}
	return nil
}

// Get retrieves an entry by ID.
func (s *Store) Get(id string) (entry.Entry, error) {
	row := s.db.QueryRow("SELECT "+columns+" FROM entries WHERE id = ?", id)
	e, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entry.Entry{}, storage.ErrNotFound
		}
		return entry.Entry{}, fmt.Errorf("%w: querying entry: %v", storage.ErrStorage, err)
	}
	return e, nil
}

// GetEntryForDate returns the first entry of d's calendar day.
func (s *Store) GetEntryForDate(d time.Time) (entry.Entry, bool, error) {
	start, end := day.Bounds(d)
	row := s.db.QueryRow(
		"SELECT "+columns+" FROM entries WHERE date >= ? AND date < ? ORDER BY date ASC, id ASC LIMIT 1",
		start.UTC().Format(dateLayout),
		end.UTC().Format(dateLayout),
	)
	e, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entry.Entry{}, false, nil
		}
		return entry.Entry{}, false, fmt.Errorf("%w: querying entry for date: %v", storage.ErrStorage, err)
	}
	return e, true, nil
}

// FetchRange returns entries from start through the end of endInclusive's day.
func (s *Store) FetchRange(start, endInclusive time.Time) ([]entry.Entry, error) {
	_, end := day.Bounds(endInclusive)
	return s.query(
		"SELECT "+columns+" FROM entries WHERE date >= ? AND date < ? ORDER BY date ASC, id ASC",
		start.UTC().Format(dateLayout),
		end.UTC().Format(dateLayout),
	)
}

// FetchAll returns every entry, undated ones last.
func (s *Store) FetchAll() ([]entry.Entry, error) {
	return s.query("SELECT " + columns + " FROM entries ORDER BY date IS NULL, date ASC, id ASC")
}

func (s *Store) query(q string, args ...any) ([]entry.Entry, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listing entries: %v", storage.ErrStorage, err)
	}
	defer rows.Close()

	entries := []entry.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning row: %v", storage.ErrStorage, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating rows: %v", storage.ErrStorage, err)
	}
	return entries, nil
}

// Update replaces an entry's mutable fields.
func (s *Store) Update(id string, p entry.Payload) (entry.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: beginning transaction: %v", storage.ErrStorage, err)
	}
	defer tx.Rollback()

	existing, err := scanEntry(tx.QueryRow("SELECT "+columns+" FROM entries WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entry.Entry{}, storage.ErrNotFound
		}
		return entry.Entry{}, fmt.Errorf("%w: checking entry: %v", storage.ErrStorage, err)
	}
	existing.Apply(p)

	if _, err := tx.Exec(
		"UPDATE entries SET content = ?, mood = ?, image = ?, tags = ?, title = ? WHERE id = ?",
		existing.Content, existing.Mood, existing.Image, tagcodec.Encode(existing.Tags), existing.Title, id,
	); err != nil {
		return entry.Entry{}, fmt.Errorf("%w: updating entry: %v", storage.ErrStorage, err)
	}

	if err := tx.Commit(); err != nil {
		return entry.Entry{}, fmt.Errorf("%w: committing: %v", storage.ErrStorage, err)
	}
	return existing, nil
}

// Delete removes an entry permanently.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.Exec("DELETE FROM entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("%w: deleting entry: %v", storage.ErrStorage, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: checking rows affected: %v", storage.ErrStorage, err)
	}
	if rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// Restore replaces the table contents in a single transaction.
func (s *Store) Restore(payloads []entry.Payload) (int, error) {
	entries := make([]entry.Entry, 0, len(payloads))
	for _, p := range payloads {
		e, err := entry.New(p)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", storage.ErrStorage, err)
		}
		entries = append(entries, e)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("%w: beginning transaction: %v", storage.ErrStorage, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM entries"); err != nil {
		return 0, fmt.Errorf("%w: clearing entries: %v", storage.ErrStorage, err)
	}
	for _, e := range entries {
		if err := insert(tx, e); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: committing restore: %v", storage.ErrStorage, err)
	}
	return len(entries), nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (entry.Entry, error) {
	var (
		e       entry.Entry
		dateStr sql.NullString
		tags    sql.NullString
	)
	if err := row.Scan(&e.ID, &dateStr, &e.Content, &e.Mood, &e.Image, &tags, &e.Title); err != nil {
		return entry.Entry{}, err
	}
	if dateStr.Valid && strings.TrimSpace(dateStr.String) != "" {
		t, err := time.Parse(time.RFC3339Nano, dateStr.String)
		if err != nil {
			return entry.Entry{}, fmt.Errorf("parsing date %q: %w", dateStr.String, err)
		}
		e.Date = &t
	}
	if len(e.Image) == 0 {
		e.Image = nil
	}
	e.Tags = tagcodec.Decode(tags)
	return e, nil
}

func formatDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(dateLayout)
}
