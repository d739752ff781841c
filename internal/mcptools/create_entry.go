package mcptools

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/chris-regnier/moodiary/internal/daily"
	"github.com/chris-regnier/moodiary/internal/day"
	"github.com/chris-regnier/moodiary/internal/entry"
)

// createEntry upserts the entry for the requested day. The store passed in
// Config publishes the change, which also refreshes the month cache.
func (t *tools) createEntry(ctx context.Context, req *mcp.CallToolRequest, input CreateEntryInput) (*mcp.CallToolResult, CreateEntryOutput, error) {
	if input.Content == "" {
		return nil, CreateEntryOutput{}, errors.New("content is required")
	}
	mood := input.Mood
	if mood == 0 {
		mood = t.cfg.DefaultMood
	}
	if err := entry.ValidateMood(mood); err != nil {
		return nil, CreateEntryOutput{}, err
	}

	now := t.cfg.Now().In(t.cfg.Location)
	date := now
	if input.Date != "" {
		d, err := day.ParseDay(input.Date, t.cfg.Location)
		if err != nil {
			return nil, CreateEntryOutput{}, err
		}
		date = d
	}

	// Keep a photo attached by another client; this tool cannot send one.
	draft, _, err := daily.Draft(t.cfg.Store, date)
	if err != nil {
		return nil, CreateEntryOutput{}, err
	}

	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}
	e, created, err := daily.Upsert(t.cfg.Store, date, entry.Payload{
		Content: input.Content,
		Mood:    mood,
		Tags:    tags,
		Title:   input.Title,
		Image:   draft.Image,
	})
	if err != nil {
		return nil, CreateEntryOutput{}, err
	}
	t.cfg.Logger.Info("entry written via MCP", "id", e.ID, "created", created)

	return nil, CreateEntryOutput{
		ID:      e.ID,
		Date:    e.DayString(t.cfg.Location),
		Created: created,
		Mood:    entry.MoodLabel(e.Mood),
	}, nil
}
