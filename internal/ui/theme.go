package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/chris-regnier/moodiary/internal/entry"
)

// Theme holds resolved lipgloss colors for terminal rendering.
type Theme struct {
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Accent        lipgloss.Color
	Danger        lipgloss.Color
	MarkdownStyle string
	// Moods is indexed by mood-1.
	Moods [entry.MaxMood]lipgloss.Color
}

var presets = map[string]Theme{
	"dark": {
		Primary:       lipgloss.Color("15"),
		Muted:         lipgloss.Color("241"),
		Accent:        lipgloss.Color("33"),
		Danger:        lipgloss.Color("9"),
		MarkdownStyle: "dark",
		Moods: [entry.MaxMood]lipgloss.Color{
			lipgloss.Color("#5B6C8F"),
			lipgloss.Color("#7A8BA6"),
			lipgloss.Color("#A7A9AC"),
			lipgloss.Color("#E6B450"),
			lipgloss.Color("#F28FAD"),
		},
	},
	"light": {
		Primary:       lipgloss.Color("0"),
		Muted:         lipgloss.Color("245"),
		Accent:        lipgloss.Color("27"),
		Danger:        lipgloss.Color("1"),
		MarkdownStyle: "light",
		Moods: [entry.MaxMood]lipgloss.Color{
			lipgloss.Color("#3B4A6B"),
			lipgloss.Color("#5E6E8C"),
			lipgloss.Color("#7C7F84"),
			lipgloss.Color("#B7791F"),
			lipgloss.Color("#C2456B"),
		},
	},
}

// ThemeNames returns the available preset names, sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ResolveTheme returns the named preset. Unknown names are an error.
func ResolveTheme(name string) (Theme, error) {
	if name == "" {
		name = "dark"
	}
	t, ok := presets[strings.ToLower(name)]
	if !ok {
		return presets["dark"], fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(ThemeNames(), ", "))
	}
	return t, nil
}

// MoodColor returns the color for a mood rating, falling back to neutral.
func (t Theme) MoodColor(mood int) lipgloss.Color {
	return t.Moods[entry.LookupMood(mood).Value-1]
}

// MoodStyle renders text in the mood's color.
func (t Theme) MoodStyle(mood int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.MoodColor(mood))
}

// DangerStyle returns a style for destructive prompts.
func (t Theme) DangerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Danger)
}

// MutedStyle returns a style for secondary text.
func (t Theme) MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Muted)
}
