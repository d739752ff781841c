package export_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chris-regnier/moodiary/internal/entry"
	"github.com/chris-regnier/moodiary/internal/export"
)

func TestText(t *testing.T) {
	at := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)
	entries := []entry.Entry{
		{Date: &at, Content: "A good day", Mood: 4, Tags: []string{"work", "gym"}},
		{Content: "undated", Mood: 1, Tags: []string{}},
	}

	var buf bytes.Buffer
	require.NoError(t, export.Text(&buf, entries, time.UTC))

	want := "==================\n" +
		"Date: 2024-01-05\n" +
		"Mood: Good\n" +
		"\n" +
		"A good day\n" +
		"\n" +
		"Tags: work, gym\n" +
		"==================\n" +
		"\n" +
		"==================\n" +
		"Date: -\n" +
		"Mood: Very Bad\n" +
		"\n" +
		"undated\n" +
		"\n" +
		"Tags: \n" +
		"==================\n" +
		"\n"
	assert.Equal(t, want, buf.String())
}

func TestTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.Text(&buf, nil, time.UTC))
	assert.Empty(t, buf.String())
}

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for x := range 4 {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPDF(t *testing.T) {
	at := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)
	entries := []entry.Entry{
		{Date: &at, Content: "With a photo", Mood: 5, Image: tinyPNG(t), Tags: []string{"sun"}},
		{Date: &at, Content: "Unsupported image is skipped", Mood: 2, Image: []byte("GIF89a....")},
		{Content: "Café déjà vu", Mood: 9},
	}

	var buf bytes.Buffer
	require.NoError(t, export.PDF(&buf, entries, time.UTC))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, buf.Len(), 500)
}

func TestPDFEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.PDF(&buf, nil, time.UTC))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "diary_export_1704456000.txt", export.FileName(time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC), "txt"))
}
