package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// DefaultMaxWidth caps the pager width on wide terminals.
const DefaultMaxWidth = 100

type pagerModel struct {
	viewport viewport.Model
	content  string
	ready    bool
	theme    Theme
	maxWidth int // 0 = no limit
	width    int
	height   int
}

func (m pagerModel) Init() tea.Cmd {
	return nil
}

func (m pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(m.contentWidth(), msg.Height-1)
			m.ready = true
		} else {
			m.viewport.Width = m.contentWidth()
			m.viewport.Height = msg.Height - 1
		}
		m.viewport.SetContent(m.content)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m pagerModel) contentWidth() int {
	if m.maxWidth > 0 && m.width > m.maxWidth {
		return m.maxWidth
	}
	return m.width
}

// center pads every line so the content column sits in the middle of the terminal.
func (m pagerModel) center(content string) string {
	pad := (m.width - m.contentWidth()) / 2
	if pad <= 0 {
		return content
	}
	padding := strings.Repeat(" ", pad)
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = padding + line
	}
	return strings.Join(lines, "\n")
}

func (m pagerModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	footer := m.theme.MutedStyle().Render(fmt.Sprintf("↑/↓ scroll • q quit • %3.f%%", m.viewport.ScrollPercent()*100))
	return m.center(m.viewport.View() + "\n" + footer)
}

// PageOutput displays content through a Bubble Tea pager when stdout is a
// TTY and the content is taller than the terminal. Otherwise it prints directly.
func PageOutput(content string, theme Theme) error {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		fmt.Print(content)
		return nil
	}
	_, height, err := term.GetSize(fd)
	if err != nil || strings.Count(content, "\n")+1 <= height-2 {
		fmt.Print(content)
		return nil
	}

	p := tea.NewProgram(pagerModel{content: content, theme: theme, maxWidth: DefaultMaxWidth}, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// OutputOrPage writes content to w, paging only when w is stdout and the
// output is not JSON.
func OutputOrPage(w io.Writer, content string, jsonOutput bool, theme Theme) error {
	if !jsonOutput && w == os.Stdout {
		return PageOutput(content, theme)
	}
	_, err := io.WriteString(w, content)
	return err
}
