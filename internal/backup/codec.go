// Package backup converts the entry collection to and from the portable
// JSON backup document and manages backup files on disk.
package backup

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/chris-regnier/moodiary/internal/entry"
)

// ErrCorruptBackup indicates the document is not a JSON array of records.
var ErrCorruptBackup = errors.New("backup document is corrupt")

// record is the on-disk shape of one entry.
type record struct {
	Date      string   `json:"date,omitempty"`
	Content   string   `json:"content"`
	Mood      int      `json:"mood"`
	Tags      []string `json:"tags"`
	MoodEmoji string   `json:"moodEmoji"`
	Images    string   `json:"images,omitempty"`
	Title     string   `json:"title,omitempty"`
}

// Issue records a value that was replaced by its default during import.
type Issue struct {
	Index  int    `json:"index"`           // position of the record in the document
	Field  string `json:"field,omitempty"` // empty when the whole record was unusable
	Reason string `json:"reason"`
}

func (i Issue) String() string {
	if i.Field == "" {
		return fmt.Sprintf("record %d: %s", i.Index, i.Reason)
	}
	return fmt.Sprintf("record %d: %s: %s", i.Index, i.Field, i.Reason)
}

// Report summarizes what Deserialize had to repair.
type Report struct {
	Records int
	Issues  []Issue
}

// ValidationSkipped is the number of substituted values.
func (r Report) ValidationSkipped() int {
	return len(r.Issues)
}

func (r *Report) add(index int, field, reason string) {
	r.Issues = append(r.Issues, Issue{Index: index, Field: field, Reason: reason})
}

// Serialize encodes entries as an indented JSON array.
func Serialize(entries []entry.Entry) ([]byte, error) {
	records := make([]record, 0, len(entries))
	for _, e := range entries {
		r := record{
			Content:   e.Content,
			Mood:      e.Mood,
			Tags:      e.Tags,
			MoodEmoji: entry.MoodIcon(e.Mood),
			Title:     e.Title,
		}
		if r.Tags == nil {
			r.Tags = []string{}
		}
		if e.Date != nil {
			r.Date = e.Date.UTC().Format(time.RFC3339Nano)
		}
		if len(e.Image) > 0 {
			r.Images = base64.StdEncoding.EncodeToString(e.Image)
		}
		records = append(records, r)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding backup: %w", err)
	}
	return data, nil
}

// Deserialize decodes a backup document into payloads ready for restore.
//
// Only a top level that is not an array fails. Bad records and fields fall
// back to defaults (mood 3, empty tags, no date, no image) and are listed
// in the returned report. moodEmoji is ignored; it is derived from mood.
func Deserialize(data []byte) ([]entry.Payload, Report, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil || raws == nil {
		return nil, Report{}, fmt.Errorf("%w: top level must be an array", ErrCorruptBackup)
	}

	report := Report{Records: len(raws)}
	payloads := make([]entry.Payload, 0, len(raws))
	for i, raw := range raws {
		payloads = append(payloads, decodeRecord(i, raw, &report))
	}
	return payloads, report, nil
}

func decodeRecord(i int, raw json.RawMessage, report *Report) entry.Payload {
	p := entry.Payload{Mood: entry.NeutralMood, Tags: []string{}}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		report.add(i, "", "not an object")
		return p
	}

	if v, ok := fields["content"]; !ok {
		report.add(i, "content", "missing")
	} else if err := json.Unmarshal(v, &p.Content); err != nil || isNull(v) {
		p.Content = ""
		report.add(i, "content", "not a string")
	}

	if v, ok := fields["mood"]; !ok {
		report.add(i, "mood", "missing")
	} else if err := json.Unmarshal(v, &p.Mood); err != nil || isNull(v) {
		p.Mood = entry.NeutralMood
		report.add(i, "mood", "not an integer")
	}

	if v, ok := fields["tags"]; !ok {
		report.add(i, "tags", "missing")
	} else {
		p.Tags = decodeTags(i, v, report)
	}

	if v, ok := fields["date"]; ok && !isNull(v) {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			report.add(i, "date", "not a string")
		} else if t, err := time.Parse(time.RFC3339Nano, s); err != nil {
			report.add(i, "date", "unparsable timestamp")
		} else {
			p.Date = &t
		}
	}

	if v, ok := fields["images"]; ok && !isNull(v) {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			report.add(i, "images", "not a string")
		} else if img, err := base64.StdEncoding.DecodeString(s); err != nil {
			report.add(i, "images", "invalid base64")
		} else if len(img) > 0 {
			p.Image = img
		}
	}

	if v, ok := fields["title"]; ok && !isNull(v) {
		if err := json.Unmarshal(v, &p.Title); err != nil {
			p.Title = ""
			report.add(i, "title", "not a string")
		}
	}
	return p
}

func decodeTags(i int, v json.RawMessage, report *Report) []string {
	var items []json.RawMessage
	if err := json.Unmarshal(v, &items); err != nil || items == nil {
		report.add(i, "tags", "not an array")
		return []string{}
	}
	tags := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err != nil || isNull(item) {
			report.add(i, "tags", "non-string element dropped")
			continue
		}
		tags = append(tags, s)
	}
	return tags
}

func isNull(v json.RawMessage) bool {
	return string(v) == "null"
}
