package backup_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chris-regnier/moodiary/internal/backup"
	"github.com/chris-regnier/moodiary/internal/entry"
	"github.com/chris-regnier/moodiary/internal/storage"
	"github.com/chris-regnier/moodiary/internal/storage/sqlite"
)

func testStore(t *testing.T) storage.Storage {
	t.Helper()
	s, err := sqlite.New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

type memSink struct {
	names []string
	data  map[string][]byte
	err   error
}

func (m *memSink) Upload(_ context.Context, name string, data []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if m.data == nil {
		m.data = map[string][]byte{}
	}
	m.names = append(m.names, name)
	m.data[name] = data
	return "mem://" + name, nil
}

func TestServiceCreateAndRestore(t *testing.T) {
	ctx := context.Background()
	src := testStore(t)
	at := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)
	_, err := src.Create(entry.Payload{Date: &at, Content: "hello", Mood: 4, Tags: []string{"a"}})
	require.NoError(t, err)

	sink := &memSink{}
	dir := t.TempDir()
	svc := backup.NewService(src, dir, sink, nil)

	res, err := svc.Create(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Entries)
	assert.True(t, strings.HasPrefix(filepath.Base(res.Path), "diary_backup_"))
	assert.Equal(t, "mem://"+filepath.Base(res.Path), res.Uploaded)
	require.Len(t, sink.names, 1)

	onDisk, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, onDisk, sink.data[sink.names[0]])

	dst := testStore(t)
	old := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err = dst.Create(entry.Payload{Date: &old, Content: "replaced", Mood: 1})
	require.NoError(t, err)

	restored, err := backup.NewService(dst, dir, nil, nil).Restore(ctx, res.Path)
	require.NoError(t, err)
	assert.Equal(t, 1, restored.Restored)
	assert.Equal(t, 0, restored.Skipped)

	all, err := dst.FetchAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "hello", all[0].Content)
	assert.Equal(t, []string{"a"}, all[0].Tags)
}

func TestServiceCreateUploadFailureKeepsFile(t *testing.T) {
	svc := backup.NewService(testStore(t), t.TempDir(), &memSink{err: errors.New("offline")}, nil)
	res, err := svc.Create(context.Background())
	require.Error(t, err)
	require.NotNil(t, res)
	assert.FileExists(t, res.Path)
}

func TestServiceRestoreCorruptLeavesStore(t *testing.T) {
	s := testStore(t)
	at := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)
	_, err := s.Create(entry.Payload{Date: &at, Content: "keep me", Mood: 3})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not":"an array"}`), 0o644))

	_, err = backup.NewService(s, t.TempDir(), nil, nil).Restore(context.Background(), path)
	require.ErrorIs(t, err, backup.ErrCorruptBackup)

	all, err := s.FetchAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "keep me", all[0].Content)
}

func TestServiceRestoreMissingFile(t *testing.T) {
	_, err := backup.NewService(testStore(t), t.TempDir(), nil, nil).
		Restore(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, backup.ErrBackupNotFound)
}

func TestServiceList(t *testing.T) {
	dir := t.TempDir()
	older := backup.FileName(time.Date(2024, 1, 1, 8, 0, 0, 0, time.Local))
	newer := backup.FileName(time.Date(2024, 3, 1, 8, 0, 0, 0, time.Local))
	for _, name := range []string{older, newer, "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("[]"), 0o644))
	}

	list, err := backup.NewService(testStore(t), dir, nil, nil).List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer, list[0].Name)
	assert.Equal(t, older, list[1].Name)
}

func TestServiceListMissingDir(t *testing.T) {
	list, err := backup.NewService(testStore(t), filepath.Join(t.TempDir(), "none"), nil, nil).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

type fakePutter struct {
	bucket, key string
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.bucket, f.key = *in.Bucket, *in.Key
	return &s3.PutObjectOutput{}, nil
}

func TestS3SinkUpload(t *testing.T) {
	client := &fakePutter{}
	sink := backup.NewS3SinkFromClient(client, "diary", "backups/laptop")

	loc, err := sink.Upload(context.Background(), "diary_backup_x.json", []byte("[]"))
	require.NoError(t, err)
	assert.Equal(t, "diary", client.bucket)
	assert.Equal(t, "backups/laptop/diary_backup_x.json", client.key)
	assert.Equal(t, "s3://diary/backups/laptop/diary_backup_x.json", loc)
}
