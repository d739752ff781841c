// Package generate drafts diary text and suggests tags with a chat model.
package generate

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrGenerationFailed wraps every failure of a Generator.
var ErrGenerationFailed = errors.New("generation failed")

// Request describes the day the draft should be written about.
type Request struct {
	Content      string // the user's notes
	ImageSummary string // optional description of the day's photo
	Mood         int
}

// Generator produces entry drafts and tag suggestions.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
	Tagify(ctx context.Context, text string) ([]string, error)
}

// Style is a writing-style preset used as the system prompt.
type Style struct {
	ID          string
	Name        string
	Description string
	Prompt      string
}

var styles = []Style{
	{
		ID:          "realistic",
		Name:        "Documentary",
		Description: "Record the day as it happened, with concrete detail",
		Prompt:      "Describe what happened today in a documentary manner, paying attention to concrete, truthful detail. Keep it under 200 words.",
	},
	{
		ID:          "delicate",
		Name:        "Delicate",
		Description: "Attend closely to inner feelings",
		Prompt:      "Write about today's feelings and experiences with a delicate touch, following subtle shifts of emotion. Keep it under 200 words.",
	},
	{
		ID:          "philosophical",
		Name:        "Reflective",
		Description: "Look for the deeper meaning of the day",
		Prompt:      "Reflect on today's experiences from a philosophical angle and look for their deeper meaning. Keep it under 200 words.",
	},
	{
		ID:          "lyrical",
		Name:        "Lyrical",
		Description: "Express the mood with poetic language",
		Prompt:      "Express today's mood and feelings lyrically, in language with a poetic quality. Keep it under 200 words.",
	},
	{
		ID:          "humorous",
		Name:        "Humorous",
		Description: "Keep it light and witty",
		Prompt:      "Record today's events with humor and wit, keeping the tone light and cheerful. Keep it under 200 words.",
	},
}

// DefaultStyle is used when no style is configured.
const DefaultStyle = "realistic"

// Styles returns the built-in presets.
func Styles() []Style {
	return slices.Clone(styles)
}

// LookupStyle finds a preset by ID.
func LookupStyle(id string) (Style, error) {
	for _, s := range styles {
		if s.ID == id {
			return s, nil
		}
	}
	return Style{}, fmt.Errorf("unknown style %q", id)
}

// SplitTags turns a comma separated model reply into tags. Both ASCII and
// full-width commas separate; blanks are dropped.
func SplitTags(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '，' })
	tags := make([]string, 0, len(fields))
	for _, f := range fields {
		if t := strings.TrimSpace(f); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func moodPhrase(mood int) string {
	switch mood {
	case 1:
		return "very bad"
	case 2:
		return "not great"
	case 4:
		return "good"
	case 5:
		return "excellent"
	default:
		return "okay"
	}
}

func userPrompt(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Mood: %s\n", moodPhrase(req.Mood))
	fmt.Fprintf(&b, "Notes: %s\n", req.Content)
	if req.ImageSummary != "" {
		fmt.Fprintf(&b, "Photo: %s\n", req.ImageSummary)
	}
	return b.String()
}
