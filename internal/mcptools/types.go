package mcptools

import (
	"time"

	"github.com/chris-regnier/moodiary/internal/entry"
	"github.com/chris-regnier/moodiary/internal/stats"
)

// GetDayEntryInput is the input schema for the get_day_entry MCP tool.
type GetDayEntryInput struct {
	Date string `json:"date,omitempty" jsonschema:"Day as YYYY-MM-DD; defaults to today"`
}

// GetDayEntryOutput is the output schema for the get_day_entry MCP tool.
type GetDayEntryOutput struct {
	Date  string       `json:"date"`
	Found bool         `json:"found"`
	Entry *EntryResult `json:"entry,omitempty"`
}

// ListMonthInput is the input schema for the list_month MCP tool.
type ListMonthInput struct {
	Month string `json:"month,omitempty" jsonschema:"Month as YYYY-MM; defaults to the current month"`
}

// ListMonthOutput is the output schema for the list_month MCP tool.
type ListMonthOutput struct {
	Month       string        `json:"month"`
	AverageMood float64       `json:"average_mood"`
	Entries     []EntryResult `json:"entries"`
}

// MoodStatsInput is the input schema for the mood_stats MCP tool.
type MoodStatsInput struct {
	Range string `json:"range,omitempty" jsonschema:"One of week, month or year; defaults to week"`
}

// MoodStatsOutput is the output schema for the mood_stats MCP tool.
type MoodStatsOutput struct {
	Range        string           `json:"range"`
	From         string           `json:"from"`
	To           string           `json:"to"`
	Entries      int              `json:"entries"`
	AverageMood  float64          `json:"average_mood"`
	Distribution map[string]int   `json:"distribution"`
	Tags         []stats.TagCount `json:"tags"`
	Streak       int              `json:"streak"`
}

// CreateEntryInput is the input schema for the create_entry MCP tool.
type CreateEntryInput struct {
	Content string   `json:"content" jsonschema:"Entry text, markdown allowed"`
	Date    string   `json:"date,omitempty" jsonschema:"Day as YYYY-MM-DD; defaults to today"`
	Mood    int      `json:"mood,omitempty" jsonschema:"Mood from 1 (very bad) to 5 (excellent)"`
	Tags    []string `json:"tags,omitempty" jsonschema:"Tags for the entry"`
	Title   string   `json:"title,omitempty" jsonschema:"Optional title"`
}

// CreateEntryOutput is the output schema for the create_entry MCP tool.
type CreateEntryOutput struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Created bool   `json:"created"`
	Mood    string `json:"mood"`
}

// EntryResult is the common output format for entry-related MCP tools.
type EntryResult struct {
	ID        string   `json:"id"`
	Date      string   `json:"date"`
	Mood      int      `json:"mood"`
	MoodIcon  string   `json:"mood_icon"`
	MoodLabel string   `json:"mood_label"`
	Title     string   `json:"title,omitempty"`
	Tags      []string `json:"tags"`
	Content   string   `json:"content"`
	HasImage  bool     `json:"has_image"`
}

func toResult(e entry.Entry, loc *time.Location) EntryResult {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return EntryResult{
		ID:        e.ID,
		Date:      e.DayString(loc),
		Mood:      e.Mood,
		MoodIcon:  e.MoodIcon(),
		MoodLabel: entry.MoodLabel(e.Mood),
		Title:     e.Title,
		Tags:      tags,
		Content:   e.Content,
		HasImage:  e.HasImage(),
	}
}
