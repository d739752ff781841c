package entry

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 8
)

var idPattern = regexp.MustCompile(`^[a-z0-9]{8}$`)

// Entry represents a single diary entry.
type Entry struct {
	ID      string     `json:"id"`
	Date    *time.Time `json:"date,omitempty"`
	Content string     `json:"content"`
	Mood    int        `json:"mood"`
	Image   []byte     `json:"image,omitempty"`
	Tags    []string   `json:"tags"`
	Title   string     `json:"title,omitempty"`
}

// Payload holds the writer-supplied fields of an entry.
type Payload struct {
	Date    *time.Time
	Content string
	Mood    int
	Image   []byte
	Tags    []string
	Title   string
}

// NewID generates a new nanoid for an entry.
func NewID() (string, error) {
	return gonanoid.Generate(idAlphabet, idLength)
}

// ValidateID checks whether an ID matches the expected pattern.
func ValidateID(id string) error {
	if !idPattern.MatchString(id) {
		return fmt.Errorf("invalid entry ID: %q (must be 8 lowercase alphanumeric characters)", id)
	}
	return nil
}

// ValidateMood checks that mood falls within the rating scale.
// Stores accept any value; this is for interactive input only.
func ValidateMood(mood int) error {
	if mood < MinMood || mood > MaxMood {
		return fmt.Errorf("mood must be between %d and %d, got %d", MinMood, MaxMood, mood)
	}
	return nil
}

// New builds an entry from a payload and assigns a fresh ID.
func New(p Payload) (Entry, error) {
	id, err := NewID()
	if err != nil {
		return Entry{}, fmt.Errorf("generating entry ID: %w", err)
	}
	e := Entry{ID: id}
	e.Apply(p)
	if p.Date != nil {
		d := *p.Date
		e.Date = &d
	}
	return e, nil
}

// Apply copies the mutable fields of p onto e. ID and Date are left alone.
func (e *Entry) Apply(p Payload) {
	e.Content = p.Content
	e.Mood = p.Mood
	e.Image = cloneBytes(p.Image)
	e.Tags = cloneTags(p.Tags)
	e.Title = p.Title
}

// Payload returns the writer-supplied view of the entry.
func (e Entry) Payload() Payload {
	var date *time.Time
	if e.Date != nil {
		d := *e.Date
		date = &d
	}
	return Payload{
		Date:    date,
		Content: e.Content,
		Mood:    e.Mood,
		Image:   cloneBytes(e.Image),
		Tags:    cloneTags(e.Tags),
		Title:   e.Title,
	}
}

// HasImage reports whether the entry carries a photo.
func (e *Entry) HasImage() bool {
	return len(e.Image) > 0
}

// Preview returns a truncated preview of the entry content.
func (e *Entry) Preview(maxLen int) string {
	content := []rune(strings.ReplaceAll(e.Content, "\n", " "))
	if len(content) <= maxLen {
		return string(content)
	}
	return string(content[:maxLen-3]) + "..."
}

// DayString formats the entry date as YYYY-MM-DD in loc, or "-" when undated.
func (e *Entry) DayString(loc *time.Location) string {
	if e.Date == nil {
		return "-"
	}
	return e.Date.In(loc).Format("2006-01-02")
}

func cloneTags(tags []string) []string {
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
