package backup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/chris-regnier/moodiary/internal/storage"
)

const (
	filePrefix      = "diary_backup_"
	fileSuffix      = ".json"
	timestampLayout = "2006-01-02_15-04-05"
)

// ErrBackupNotFound indicates the requested backup file does not exist.
var ErrBackupNotFound = errors.New("backup not found")

// Result describes a created backup.
type Result struct {
	Path     string `json:"path"`
	Entries  int    `json:"entries"`
	Size     int64  `json:"size"`
	Uploaded string `json:"uploaded,omitempty"` // sink location, empty without a sink
}

// RestoreResult describes a completed restore.
type RestoreResult struct {
	Restored int     `json:"restored"`
	Skipped  int     `json:"skipped"`
	Issues   []Issue `json:"issues,omitempty"`
}

// Info describes a backup file on disk.
type Info struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// Service manages backup creation, listing and restore.
type Service struct {
	store  storage.Storage
	dir    string
	sink   Sink
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a Service writing into dir. sink may be nil.
func NewService(s storage.Storage, dir string, sink Sink, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{store: s, dir: dir, sink: sink, logger: logger, now: time.Now}
}

// FileName returns the backup file name for t.
func FileName(t time.Time) string {
	return filePrefix + t.Format(timestampLayout) + fileSuffix
}

// Create writes a backup of the whole collection.
func (s *Service) Create(ctx context.Context) (*Result, error) {
	entries, err := s.store.FetchAll()
	if err != nil {
		return nil, fmt.Errorf("reading entries: %w", err)
	}
	data, err := Serialize(entries)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}
	name := FileName(s.now())
	path := filepath.Join(s.dir, name)

	s.logger.Info("creating backup", "output", path, "entries", len(entries))
	if err := writeAtomic(path, data); err != nil {
		return nil, err
	}

	result := &Result{Path: path, Entries: len(entries), Size: int64(len(data))}
	if s.sink != nil {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		loc, err := s.sink.Upload(ctx, name, data)
		if err != nil {
			return result, fmt.Errorf("backup written to %s but upload failed: %w", path, err)
		}
		result.Uploaded = loc
	}

	s.logger.Info("backup complete", "path", path, "size", result.Size, "uploaded", result.Uploaded)
	return result, nil
}

// Restore replaces the collection with the contents of the backup at path.
func (s *Service) Restore(ctx context.Context, path string) (*RestoreResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrBackupNotFound, path)
		}
		return nil, fmt.Errorf("reading backup: %w", err)
	}

	payloads, report, err := Deserialize(data)
	if err != nil {
		return nil, err
	}
	for _, issue := range report.Issues {
		s.logger.Warn("backup record repaired", "path", path, "issue", issue.String())
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n, err := s.store.Restore(payloads)
	if err != nil {
		return nil, fmt.Errorf("restoring entries: %w", err)
	}

	s.logger.Info("restore complete", "path", path, "restored", n, "skipped", report.ValidationSkipped())
	return &RestoreResult{Restored: n, Skipped: report.ValidationSkipped(), Issues: report.Issues}, nil
}

// List returns backups in the backup dir, newest first.
func (s *Service) List(ctx context.Context) ([]Info, error) {
	des, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var backups []Info
	for _, de := range des {
		name := de.Name()
		if de.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		created := info.ModTime()
		stamp := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)
		if t, err := time.ParseInLocation(timestampLayout, stamp, time.Local); err == nil {
			created = t
		}
		backups = append(backups, Info{
			Name:      name,
			Path:      filepath.Join(s.dir, name),
			Size:      info.Size(),
			CreatedAt: created,
		})
	}

	slices.SortFunc(backups, func(a, b Info) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.Name, a.Name)
	})
	return backups, nil
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".backup-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing backup: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing backup: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming backup: %w", err)
	}
	return nil
}
