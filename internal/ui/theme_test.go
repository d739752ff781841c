package ui

import (
	"testing"

	"github.com/chris-regnier/moodiary/internal/entry"
)

func TestResolveTheme(t *testing.T) {
	dark, err := ResolveTheme("")
	if err != nil {
		t.Fatal(err)
	}
	if dark.MarkdownStyle != "dark" {
		t.Errorf("default markdown style = %q", dark.MarkdownStyle)
	}

	light, err := ResolveTheme("LIGHT")
	if err != nil {
		t.Fatal(err)
	}
	if light.MarkdownStyle != "light" {
		t.Errorf("light markdown style = %q", light.MarkdownStyle)
	}

	if _, err := ResolveTheme("solarized"); err == nil {
		t.Error("expected error for unknown theme")
	}
}

func TestThemeMoodColor(t *testing.T) {
	theme, _ := ResolveTheme("dark")
	if theme.MoodColor(0) != theme.MoodColor(entry.NeutralMood) {
		t.Error("out-of-range mood should use the neutral color")
	}
	if theme.MoodColor(1) == theme.MoodColor(5) {
		t.Error("scale ends should differ")
	}
}

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 2 || names[0] != "dark" || names[1] != "light" {
		t.Errorf("ThemeNames() = %v", names)
	}
}
