package backup_test

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chris-regnier/moodiary/internal/backup"
	"github.com/chris-regnier/moodiary/internal/entry"
)

func TestSerializeRoundTrip(t *testing.T) {
	at := time.Date(2024, 1, 5, 9, 30, 15, 123456789, time.UTC)
	entries := []entry.Entry{
		{ID: "aaaaaaaa", Date: &at, Content: "Café ☕\n日本語", Mood: 5, Image: []byte{0xff, 0xd8, 0xff, 0x00}, Tags: []string{"work", "emoji 🎉"}},
		{ID: "bbbbbbbb", Content: "undated", Mood: 2, Tags: []string{}},
	}

	data, err := backup.Serialize(entries)
	require.NoError(t, err)

	payloads, report, err := backup.Deserialize(data)
	require.NoError(t, err)
	assert.Equal(t, 0, report.ValidationSkipped(), "issues: %v", report.Issues)
	require.Len(t, payloads, 2)

	first := payloads[0]
	require.NotNil(t, first.Date)
	assert.True(t, first.Date.Equal(at))
	assert.Equal(t, "Café ☕\n日本語", first.Content)
	assert.Equal(t, 5, first.Mood)
	assert.Equal(t, []byte{0xff, 0xd8, 0xff, 0x00}, first.Image)
	assert.Equal(t, []string{"work", "emoji 🎉"}, first.Tags)

	second := payloads[1]
	assert.Nil(t, second.Date)
	assert.Nil(t, second.Image)
	assert.Equal(t, []string{}, second.Tags)
}

func TestSerializeShape(t *testing.T) {
	at := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	data, err := backup.Serialize([]entry.Entry{
		{Date: &at, Content: "x", Mood: 4},
		{Content: "y", Mood: 1},
	})
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 2)

	assert.Equal(t, "2024-01-05T00:00:00Z", records[0]["date"])
	assert.Equal(t, entry.MoodIcon(4), records[0]["moodEmoji"])
	assert.Equal(t, []any{}, records[0]["tags"])
	assert.NotContains(t, records[0], "images")

	assert.NotContains(t, records[1], "date")
	assert.Equal(t, entry.MoodIcon(1), records[1]["moodEmoji"])
}

func TestSerializeEmpty(t *testing.T) {
	data, err := backup.Serialize(nil)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))

	payloads, report, err := backup.Deserialize(data)
	require.NoError(t, err)
	assert.Empty(t, payloads)
	assert.Equal(t, 0, report.Records)
}

func TestDeserializeCorruptTopLevel(t *testing.T) {
	for _, doc := range []string{`{"content":"x"}`, `not json`, `null`, `"text"`, ``} {
		t.Run(doc, func(t *testing.T) {
			_, _, err := backup.Deserialize([]byte(doc))
			assert.ErrorIs(t, err, backup.ErrCorruptBackup)
		})
	}
}

func TestDeserializeSkipsBadRecord(t *testing.T) {
	var records []string
	records = append(records, `{"date":"not a date","content":42,"mood":"high","tags":"a,b","images":"%%%"}`)
	for i := range 9 {
		records = append(records, fmt.Sprintf(`{"date":"2024-01-%02dT08:00:00Z","content":"day %d","mood":4,"tags":["t"]}`, i+1, i+1))
	}
	doc := "[" + strings.Join(records, ",") + "]"

	payloads, report, err := backup.Deserialize([]byte(doc))
	require.NoError(t, err)
	require.Len(t, payloads, 10)
	assert.Equal(t, 10, report.Records)
	assert.Equal(t, 5, report.ValidationSkipped())

	bad := payloads[0]
	assert.Nil(t, bad.Date)
	assert.Equal(t, "", bad.Content)
	assert.Equal(t, entry.NeutralMood, bad.Mood)
	assert.Equal(t, []string{}, bad.Tags)
	assert.Nil(t, bad.Image)

	for i, p := range payloads[1:] {
		require.NotNil(t, p.Date)
		assert.Equal(t, fmt.Sprintf("day %d", i+1), p.Content)
		assert.Equal(t, 4, p.Mood)
	}
}

func TestDeserializeDefaults(t *testing.T) {
	payloads, report, err := backup.Deserialize([]byte(`[{"content":"only content"}, 7, {"content":"x","mood":2.5,"tags":["ok",1]}]`))
	require.NoError(t, err)
	require.Len(t, payloads, 3)

	assert.Equal(t, "only content", payloads[0].Content)
	assert.Equal(t, entry.NeutralMood, payloads[0].Mood)
	assert.Equal(t, []string{}, payloads[0].Tags)
	assert.Nil(t, payloads[0].Date)

	assert.Equal(t, entry.Payload{Mood: entry.NeutralMood, Tags: []string{}}, payloads[1])

	assert.Equal(t, entry.NeutralMood, payloads[2].Mood)
	assert.Equal(t, []string{"ok"}, payloads[2].Tags)

	// missing mood, missing tags, non-object record, fractional mood, non-string tag
	assert.Equal(t, 5, report.ValidationSkipped())
}

func TestDeserializeAcceptsOffsetDates(t *testing.T) {
	payloads, _, err := backup.Deserialize([]byte(`[{"date":"2024-01-05T09:00:00+09:00","content":"x","mood":3,"tags":[]}]`))
	require.NoError(t, err)
	require.NotNil(t, payloads[0].Date)
	assert.True(t, payloads[0].Date.Equal(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)))
}

func TestDeserializeReportsNonStringTitle(t *testing.T) {
	payloads, report, err := backup.Deserialize([]byte(`[
		{"content":"a","mood":3,"tags":[],"title":42},
		{"content":"b","mood":3,"tags":[],"title":null},
		{"content":"c","mood":3,"tags":[],"title":"Sunday"}
	]`))
	require.NoError(t, err)
	require.Len(t, payloads, 3)

	assert.Equal(t, "", payloads[0].Title)
	assert.Equal(t, "", payloads[1].Title)
	assert.Equal(t, "Sunday", payloads[2].Title)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, backup.Issue{Index: 0, Field: "title", Reason: "not a string"}, report.Issues[0])
}
