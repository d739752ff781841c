package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Format: FormatJSON, Level: slog.LevelInfo})
	log.Info("backup complete", "entries", 3)

	assert.Contains(t, buf.String(), `"msg":"backup complete"`)
	assert.Contains(t, buf.String(), `"level":"INFO"`)
	assert.Contains(t, buf.String(), `"entries":3`)
}

func TestNew_PrettyFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Level: slog.LevelWarn})
	log.Info("hidden")
	log.Warn("record repaired", "issue", "record 2: mood: not an integer")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WRN")
	assert.Contains(t, out, "record repaired")
	assert.Contains(t, out, `issue="record 2: mood: not an integer"`)
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestPrettyHandler_AttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Level: slog.LevelDebug}).
		With("store", "sqlite").
		WithGroup("s3")
	log.Debug("upload", "bucket", "diary", slog.Group("obj", "size", 12))

	out := buf.String()
	assert.Contains(t, out, "DBG")
	assert.Contains(t, out, "store=sqlite")
	assert.Contains(t, out, "s3.bucket=diary")
	assert.Contains(t, out, "s3.obj.size=12")
}

func TestPrettyHandler_Error(t *testing.T) {
	var buf bytes.Buffer
	New(Config{Writer: &buf}).Error("failed", "error", errors.New("boom"))
	assert.Contains(t, buf.String(), "ERR")
	assert.Contains(t, buf.String(), "error=boom")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tc := range tests {
		got, err := ParseLevel(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}
