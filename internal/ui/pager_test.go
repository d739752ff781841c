package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func sizedPager(t *testing.T, m pagerModel, w, h int) pagerModel {
	t.Helper()
	sized, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return sized.(pagerModel)
}

func TestPagerViewFillsHeight(t *testing.T) {
	m := sizedPager(t, pagerModel{content: "Line 1\nLine 2\nLine 3"}, 80, 24)

	lines := strings.Split(stripANSI(m.View()), "\n")
	if len(lines) != 24 {
		t.Errorf("expected 24 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[len(lines)-1], "scroll") {
		t.Errorf("expected footer on last line, got %q", lines[len(lines)-1])
	}
}

func TestPagerCentersWithMaxWidth(t *testing.T) {
	m := sizedPager(t, pagerModel{content: "centered", maxWidth: 60}, 100, 10)

	if got := m.viewport.Width; got != 60 {
		t.Errorf("viewport width = %d, want 60", got)
	}
	first := strings.Split(stripANSI(m.View()), "\n")[0]
	if !strings.HasPrefix(first, strings.Repeat(" ", 20)+"centered") {
		t.Errorf("expected 20 columns of padding, got %q", first)
	}
}

func TestPagerResize(t *testing.T) {
	m := sizedPager(t, pagerModel{content: "x"}, 80, 24)
	m = sizedPager(t, m, 40, 10)
	if m.viewport.Width != 40 || m.viewport.Height != 9 {
		t.Errorf("viewport = %dx%d, want 40x9", m.viewport.Width, m.viewport.Height)
	}
}

func TestPagerQuitKeys(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		_, cmd := pagerModel{}.Update(key)
		if cmd == nil {
			t.Errorf("%s: expected quit command", key)
			continue
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected tea.QuitMsg", key)
		}
	}
}

func TestPagerNotReady(t *testing.T) {
	if got := (pagerModel{content: "x"}).View(); got != "Loading..." {
		t.Errorf("View() = %q", got)
	}
}

func TestConfirmKeys(t *testing.T) {
	tests := []struct {
		key  tea.KeyMsg
		want bool
	}{
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")}, true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Y")}, true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")}, false},
		{tea.KeyMsg{Type: tea.KeyEnter}, false},
	}
	for _, tc := range tests {
		got, cmd := confirmModel{prompt: "Delete?"}.Update(tc.key)
		m := got.(confirmModel)
		if !m.done || m.confirmed != tc.want || cmd == nil {
			t.Errorf("%s: done=%v confirmed=%v", tc.key, m.done, m.confirmed)
		}
		if m.View() != "" {
			t.Errorf("%s: expected empty view after answer", tc.key)
		}
	}

	got, cmd := confirmModel{prompt: "Delete?"}.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if got.(confirmModel).done || cmd != nil {
		t.Error("unrelated key should be ignored")
	}
	if !strings.Contains(stripANSI(got.View()), "Delete? [y/N]") {
		t.Errorf("prompt view = %q", got.View())
	}
}
