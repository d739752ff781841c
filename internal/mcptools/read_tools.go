package mcptools

import (
	"context"
	"fmt"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/chris-regnier/moodiary/internal/day"
	"github.com/chris-regnier/moodiary/internal/entry"
	"github.com/chris-regnier/moodiary/internal/stats"
)

func (t *tools) getDayEntry(ctx context.Context, req *mcp.CallToolRequest, input GetDayEntryInput) (*mcp.CallToolResult, GetDayEntryOutput, error) {
	d, err := dayOrToday(input.Date, t.cfg.Now(), t.cfg.Location)
	if err != nil {
		return nil, GetDayEntryOutput{}, err
	}
	out := GetDayEntryOutput{Date: d.Format(day.DayLayout)}

	e, found, err := t.cfg.Store.GetEntryForDate(d)
	if err != nil {
		return nil, GetDayEntryOutput{}, err
	}
	if found {
		r := toResult(e, t.cfg.Location)
		out.Found = true
		out.Entry = &r
	}
	return nil, out, nil
}

func (t *tools) listMonth(ctx context.Context, req *mcp.CallToolRequest, input ListMonthInput) (*mcp.CallToolResult, ListMonthOutput, error) {
	start, err := monthOrCurrent(input.Month, t.cfg.Now(), t.cfg.Location)
	if err != nil {
		return nil, ListMonthOutput{}, err
	}

	var entries []entry.Entry
	if t.cache != nil {
		entries, err = t.cache.get(t.cfg.Store, start)
	} else {
		first, last := day.MonthBounds(start)
		entries, err = t.cfg.Store.FetchRange(first, last)
	}
	if err != nil {
		return nil, ListMonthOutput{}, err
	}

	results := make([]EntryResult, len(entries))
	for i, e := range entries {
		results[i] = toResult(e, t.cfg.Location)
	}
	return nil, ListMonthOutput{
		Month:       start.Format(day.MonthLayout),
		AverageMood: stats.AverageMood(entries),
		Entries:     results,
	}, nil
}

func (t *tools) moodStats(ctx context.Context, req *mcp.CallToolRequest, input MoodStatsInput) (*mcp.CallToolResult, MoodStatsOutput, error) {
	r := stats.Week
	if input.Range != "" {
		var err error
		if r, err = stats.ParseTimeRange(input.Range); err != nil {
			return nil, MoodStatsOutput{}, err
		}
	}
	now := t.cfg.Now().In(t.cfg.Location)

	summary, err := stats.Summarize(t.cfg.Store, r, now)
	if err != nil {
		return nil, MoodStatsOutput{}, fmt.Errorf("summarizing %s: %w", r, err)
	}
	entries, err := t.cfg.Store.FetchRange(summary.From, summary.To)
	if err != nil {
		return nil, MoodStatsOutput{}, err
	}
	streak, err := stats.Streak(t.cfg.Store, now)
	if err != nil {
		return nil, MoodStatsOutput{}, err
	}

	dist := make(map[string]int, entry.MaxMood)
	for mood, n := range stats.MoodDistribution(entries) {
		dist[strconv.Itoa(mood)] = n
	}
	return nil, MoodStatsOutput{
		Range:        string(r),
		From:         summary.From.Format(day.DayLayout),
		To:           summary.To.Format(day.DayLayout),
		Entries:      summary.Entries,
		AverageMood:  summary.AverageMood,
		Distribution: dist,
		Tags:         summary.Tags,
		Streak:       streak.Days,
	}, nil
}
