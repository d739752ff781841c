package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

const defaultRenderWidth = 80

type rendererKey struct {
	width int
	style string
}

// renderers caches one glamour renderer per width and style; building one
// parses the style sheet, which is slow relative to rendering a single entry.
var (
	renderersMu sync.Mutex
	renderers   = map[rendererKey]*glamour.TermRenderer{}
)

func rendererFor(width int, style string) (*glamour.TermRenderer, error) {
	if width < 1 {
		width = defaultRenderWidth
	}
	if style == "" {
		style = "dark"
	}
	key := rendererKey{width: width, style: style}

	renderersMu.Lock()
	defer renderersMu.Unlock()
	if r, ok := renderers[key]; ok {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	renderers[key] = r
	return r, nil
}

// RenderMarkdownWithStyle renders entry content using the given glamour style.
// The original content is returned if rendering fails.
func RenderMarkdownWithStyle(content string, width int, style string) string {
	if content == "" {
		return ""
	}
	r, err := rendererFor(width, style)
	if err != nil {
		return content
	}
	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n")
}

// RenderMarkdown renders content with the "dark" style.
func RenderMarkdown(content string, width int) string {
	return RenderMarkdownWithStyle(content, width, "dark")
}
