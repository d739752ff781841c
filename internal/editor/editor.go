// Package editor round-trips entries through the user's text editor.
package editor

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"github.com/chris-regnier/moodiary/internal/entry"
)

// ErrEmpty is returned when the edited document has no content.
var ErrEmpty = errors.New("entry content is empty")

// ResolveEditor determines which editor to use based on config, env vars, and fallback.
func ResolveEditor(configEditor string) string {
	if configEditor != "" {
		return configEditor
	}
	if ed := os.Getenv("EDITOR"); ed != "" {
		return ed
	}
	if ed := os.Getenv("VISUAL"); ed != "" {
		return ed
	}
	return "vi"
}

// Edit opens initial in the editor and returns the saved text.
// changed is false when the file comes back unchanged.
func Edit(editorCmd string, initial string) (content string, changed bool, err error) {
	parts := strings.Fields(editorCmd)
	if len(parts) == 0 {
		return "", false, fmt.Errorf("empty editor command")
	}

	tmp, err := os.CreateTemp("", "moodiary-*.md")
	if err != nil {
		return "", false, fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(initial); err != nil {
		tmp.Close()
		return "", false, fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", false, fmt.Errorf("closing temp file: %w", err)
	}

	cmd := exec.Command(parts[0], append(parts[1:], tmpName)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", false, fmt.Errorf("editor exited with error: %w", err)
	}

	data, err := os.ReadFile(tmpName)
	if err != nil {
		return "", false, fmt.Errorf("reading edited file: %w", err)
	}
	result := string(data)
	if strings.TrimSpace(result) == strings.TrimSpace(initial) {
		return initial, false, nil
	}
	return result, true, nil
}

// header is the editable metadata shown above the entry text.
type header struct {
	Mood  int      `yaml:"mood"`
	Title string   `yaml:"title"`
	Tags  []string `yaml:"tags,flow"`
}

// Render formats p as a front matter document for editing.
func Render(p entry.Payload) (string, error) {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	fm, err := yaml.Marshal(header{Mood: p.Mood, Title: p.Title, Tags: tags})
	if err != nil {
		return "", fmt.Errorf("encoding header: %w", err)
	}
	var b strings.Builder
	b.WriteString("---\n")
	b.Write(fm)
	b.WriteString("---\n\n")
	b.WriteString(p.Content)
	if p.Content != "" && !strings.HasSuffix(p.Content, "\n") {
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// Parse reads an edited document back into a payload. Date and Image are
// carried over from base since they cannot be edited as text.
func Parse(doc string, base entry.Payload) (entry.Payload, error) {
	var h header
	body, err := frontmatter.Parse(bytes.NewReader([]byte(doc)), &h)
	if err != nil {
		return entry.Payload{}, fmt.Errorf("parsing header: %w", err)
	}
	content := strings.TrimSpace(string(body))
	if content == "" {
		return entry.Payload{}, ErrEmpty
	}
	if err := entry.ValidateMood(h.Mood); err != nil {
		return entry.Payload{}, err
	}

	tags := make([]string, 0, len(h.Tags))
	for _, tag := range h.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return entry.Payload{
		Date:    base.Date,
		Content: content,
		Mood:    h.Mood,
		Image:   base.Image,
		Tags:    tags,
		Title:   strings.TrimSpace(h.Title),
	}, nil
}

// EditEntry opens p in the editor and returns the edited payload.
// changed is false when the document was saved without modification.
func EditEntry(editorCmd string, p entry.Payload) (entry.Payload, bool, error) {
	doc, err := Render(p)
	if err != nil {
		return entry.Payload{}, false, err
	}
	edited, changed, err := Edit(editorCmd, doc)
	if err != nil {
		return entry.Payload{}, false, err
	}
	if !changed {
		return p, false, nil
	}
	out, err := Parse(edited, p)
	if err != nil {
		return entry.Payload{}, false, err
	}
	return out, true, nil
}
