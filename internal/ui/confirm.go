package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type confirmModel struct {
	prompt    string
	confirmed bool
	done      bool
	theme     Theme
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch strings.ToLower(key.String()) {
	case "y":
		m.confirmed = true
	case "n", "enter", "esc", "ctrl+c":
		m.confirmed = false
	default:
		return m, nil
	}
	m.done = true
	return m, tea.Quit
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	prompt := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Primary).Render(m.prompt)
	return fmt.Sprintf("%s %s ", prompt, m.theme.DangerStyle().Render("[y/N]"))
}

// Confirm shows an interactive yes/no prompt. Anything but "y" declines.
func Confirm(prompt string, theme Theme) (bool, error) {
	result, err := tea.NewProgram(confirmModel{prompt: prompt, theme: theme}).Run()
	if err != nil {
		return false, err
	}
	return result.(confirmModel).confirmed, nil
}
