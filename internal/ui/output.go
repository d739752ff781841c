package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chris-regnier/moodiary/internal/backup"
	"github.com/chris-regnier/moodiary/internal/entry"
	"github.com/chris-regnier/moodiary/internal/stats"
)

// FormatEntryCreated formats a creation confirmation message.
func FormatEntryCreated(w io.Writer, e entry.Entry, loc *time.Location) {
	fmt.Fprintf(w, "Created entry %s for %s\n", e.ID, e.DayString(loc))
}

// FormatEntryUpdated formats an update confirmation message.
func FormatEntryUpdated(w io.Writer, e entry.Entry, loc *time.Location) {
	fmt.Fprintf(w, "Updated entry %s for %s\n", e.ID, e.DayString(loc))
}

// FormatEntryDeleted formats a deletion confirmation message.
func FormatEntryDeleted(w io.Writer, id string) {
	fmt.Fprintf(w, "Deleted entry %s.\n", id)
}

// FormatNoEntry formats the message for a day without an entry.
func FormatNoEntry(w io.Writer, d time.Time) {
	fmt.Fprintf(w, "No entry for %s.\n", d.Format("2006-01-02"))
}

// FormatEntryFull formats a full entry display with metadata header.
// The markdownStyle parameter controls glamour rendering (e.g. "dark", "light").
func FormatEntryFull(w io.Writer, e entry.Entry, loc *time.Location, markdownStyle string) {
	fmt.Fprintf(w, "Entry: %s\n", e.ID)
	fmt.Fprintf(w, "Date: %s\n", e.DayString(loc))
	fmt.Fprintf(w, "Mood: %s %s (%d)\n", e.MoodIcon(), entry.MoodLabel(e.Mood), e.Mood)
	if e.Title != "" {
		fmt.Fprintf(w, "Title: %s\n", e.Title)
	}
	if len(e.Tags) > 0 {
		fmt.Fprintf(w, "Tags: %s\n", strings.Join(e.Tags, ", "))
	}
	if e.HasImage() {
		fmt.Fprintf(w, "Image: %d bytes\n", len(e.Image))
	}
	fmt.Fprintln(w)

	// Width is adjusted by the pager if used.
	rendered := RenderMarkdownWithStyle(e.Content, 80, markdownStyle)
	fmt.Fprintln(w, rendered)
}

// FormatEntryList formats a list of entries, one per line.
func FormatEntryList(w io.Writer, entries []entry.Entry, loc *time.Location) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No diary entries found.")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s  %s  %-9s  %s\n",
			e.ID,
			e.DayString(loc),
			entry.MoodLabel(e.Mood),
			e.Preview(60),
		)
	}
}

// FormatJSON writes any value as JSON to the writer.
func FormatJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// EntrySummary is a JSON representation for list output.
type EntrySummary struct {
	ID       string     `json:"id"`
	Date     *time.Time `json:"date,omitempty"`
	Mood     int        `json:"mood"`
	MoodIcon string     `json:"mood_icon"`
	Title    string     `json:"title,omitempty"`
	Tags     []string   `json:"tags"`
	HasImage bool       `json:"has_image"`
	Preview  string     `json:"preview"`
}

// ToSummaries converts entries to summary format for JSON list output.
func ToSummaries(entries []entry.Entry) []EntrySummary {
	summaries := make([]EntrySummary, len(entries))
	for i, e := range entries {
		tags := e.Tags
		if tags == nil {
			tags = []string{}
		}
		summaries[i] = EntrySummary{
			ID:       e.ID,
			Date:     e.Date,
			Mood:     e.Mood,
			MoodIcon: e.MoodIcon(),
			Title:    e.Title,
			Tags:     tags,
			HasImage: e.HasImage(),
			Preview:  e.Preview(60),
		}
	}
	return summaries
}

// DeleteResult is a JSON representation for delete output.
type DeleteResult struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// FormatSummary formats the stats view: average mood, writing frequency
// as a bar per day, and the tag cloud.
func FormatSummary(w io.Writer, s stats.Summary, theme Theme) {
	fmt.Fprintf(w, "Range: %s (%s to %s)\n", s.Range, s.From.Format("2006-01-02"), s.To.Format("2006-01-02"))
	fmt.Fprintf(w, "Entries: %d\n", s.Entries)
	if s.Entries == 0 {
		fmt.Fprintln(w, "Average mood: -")
	} else {
		rounded := int(s.AverageMood + 0.5)
		fmt.Fprintf(w, "Average mood: %.2f %s\n", s.AverageMood,
			theme.MoodStyle(rounded).Render(entry.MoodLabel(rounded)))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Writing frequency:")
	for _, dc := range s.Frequency {
		if dc.Count == 0 && len(s.Frequency) > 31 {
			continue
		}
		fmt.Fprintf(w, "  %s  %s %d\n", dc.Day.Format("2006-01-02"), strings.Repeat("█", dc.Count), dc.Count)
	}

	fmt.Fprintln(w)
	if len(s.Tags) == 0 {
		fmt.Fprintln(w, "Tags: none")
		return
	}
	parts := make([]string, len(s.Tags))
	for i, tc := range s.Tags {
		parts[i] = fmt.Sprintf("%s (%d)", tc.Tag, tc.Count)
	}
	fmt.Fprintf(w, "Tags: %s\n", strings.Join(parts, ", "))
}

// FormatBackupCreated formats a backup confirmation message.
func FormatBackupCreated(w io.Writer, r *backup.Result) {
	fmt.Fprintf(w, "Backed up %d entries to %s (%d bytes)\n", r.Entries, r.Path, r.Size)
	if r.Uploaded != "" {
		fmt.Fprintf(w, "Uploaded to %s\n", r.Uploaded)
	}
}

// FormatRestoreResult formats a restore summary, listing repaired fields.
func FormatRestoreResult(w io.Writer, r *backup.RestoreResult) {
	fmt.Fprintf(w, "Restored %d entries.\n", r.Restored)
	if r.Skipped == 0 {
		return
	}
	fmt.Fprintf(w, "%d fields could not be read and were replaced with defaults:\n", r.Skipped)
	for _, issue := range r.Issues {
		fmt.Fprintf(w, "  %s\n", issue)
	}
}

// FormatBackupList formats backup files, newest first.
func FormatBackupList(w io.Writer, infos []backup.Info) {
	if len(infos) == 0 {
		fmt.Fprintln(w, "No backups found.")
		return
	}
	for _, info := range infos {
		fmt.Fprintf(w, "%s  %s  %d bytes\n", info.CreatedAt.Format("2006-01-02 15:04:05"), info.Name, info.Size)
	}
}
