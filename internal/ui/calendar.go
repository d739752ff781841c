package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/chris-regnier/moodiary/internal/day"
	"github.com/chris-regnier/moodiary/internal/entry"
)

const calendarCellWidth = 4

// moodGlyphs are indexed by mood-1; higher mood, taller bar.
var moodGlyphs = [entry.MaxMood]string{"▁", "▂", "▄", "▆", "█"}

// MoodGlyph returns the single-cell calendar marker for a mood rating.
func MoodGlyph(mood int) string {
	return moodGlyphs[entry.LookupMood(mood).Value-1]
}

// RenderCalendar draws month (in its own location) as a Monday-first grid.
// Days with an entry show the mood glyph of that day's earliest entry,
// colored by mood. today is highlighted when it falls in the month.
func RenderCalendar(month time.Time, entries []entry.Entry, today time.Time, theme Theme) string {
	loc := month.Location()
	first, last := day.MonthBounds(month)

	moods := make(map[int]int, len(entries))
	for _, e := range entries {
		if e.Date == nil {
			continue
		}
		d := e.Date.In(loc)
		if d.Year() != first.Year() || d.Month() != first.Month() {
			continue
		}
		if _, seen := moods[d.Day()]; !seen {
			moods[d.Day()] = e.Mood
		}
	}

	cell := lipgloss.NewStyle().Width(calendarCellWidth).Align(lipgloss.Right)
	muted := theme.MutedStyle()
	todayStyle := lipgloss.NewStyle().Bold(true).Underline(true).Foreground(theme.Accent)

	var b strings.Builder
	title := first.Format("January 2006")
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.Primary).
		Width(7 * calendarCellWidth).Align(lipgloss.Center).Render(title))
	b.WriteByte('\n')
	for _, wd := range []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"} {
		b.WriteString(muted.Render(cell.Render(wd)))
	}
	b.WriteByte('\n')

	offset := (int(first.Weekday()) + 6) % 7
	b.WriteString(strings.Repeat(" ", offset*calendarCellWidth))

	col := offset
	for d := 1; d <= last.Day(); d++ {
		num := fmt.Sprintf("%2d", d)
		isToday := day.SameDay(time.Date(first.Year(), first.Month(), d, 12, 0, 0, 0, loc), today, loc)
		if isToday {
			num = todayStyle.Render(num)
		}
		marker := " "
		if mood, ok := moods[d]; ok {
			marker = theme.MoodStyle(mood).Render(MoodGlyph(mood))
		}
		b.WriteString(cell.Render(num + marker))

		col++
		if col == 7 && d != last.Day() {
			b.WriteByte('\n')
			col = 0
		}
	}
	b.WriteString("\n\n")

	legend := make([]string, 0, entry.MaxMood)
	for _, m := range entry.Moods() {
		legend = append(legend, theme.MoodStyle(m.Value).Render(MoodGlyph(m.Value))+" "+m.Label)
	}
	b.WriteString(strings.Join(legend, "  "))
	b.WriteByte('\n')
	return b.String()
}
