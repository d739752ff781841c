// Package export renders entries into shareable documents.
package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chris-regnier/moodiary/internal/entry"
)

const rule = "=================="

// FileName returns the export file name for the given extension, stamped
// with the Unix time of t.
func FileName(t time.Time, ext string) string {
	return fmt.Sprintf("diary_export_%d.%s", t.Unix(), ext)
}

// Text writes one ruled block per entry. Dates are shown in loc.
func Text(w io.Writer, entries []entry.Entry, loc *time.Location) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		fmt.Fprintln(bw, rule)
		fmt.Fprintf(bw, "Date: %s\n", e.DayString(loc))
		fmt.Fprintf(bw, "Mood: %s\n", entry.MoodLabel(e.Mood))
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, e.Content)
		fmt.Fprintln(bw)
		fmt.Fprintf(bw, "Tags: %s\n", strings.Join(e.Tags, ", "))
		fmt.Fprintln(bw, rule)
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}
