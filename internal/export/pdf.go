package export

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/chris-regnier/moodiary/internal/entry"
)

const (
	pageMargin     = 18.0 // mm
	maxImageHeight = 90.0 // mm
)

// moodTint is the page background per mood, blended onto white.
var moodTint = map[int][3]int{
	1: {242, 204, 204},
	2: {242, 217, 204},
	3: {223, 223, 223},
	4: {204, 229, 240},
	5: {204, 240, 217},
}

// PDF writes one A4 page per entry: date heading, mood, photo, content and
// a tags footer. Only JPEG and PNG photos are embedded; others are skipped.
func PDF(w io.Writer, entries []entry.Entry, loc *time.Location) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin+10)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageW, pageH := pdf.GetPageSize()
	contentW := pageW - 2*pageMargin

	for i, e := range entries {
		pdf.AddPage()

		tint, ok := moodTint[e.Mood]
		if !ok {
			tint = moodTint[entry.NeutralMood]
		}
		pdf.SetFillColor(tint[0], tint[1], tint[2])
		pdf.Rect(0, 0, pageW, pageH, "F")

		pdf.SetTextColor(40, 40, 40)
		pdf.SetFont("Helvetica", "B", 22)
		heading := e.DayString(loc)
		if e.Title != "" {
			heading += "  " + e.Title
		}
		pdf.CellFormat(contentW, 12, tr(heading), "", 1, "L", false, 0, "")
		pdf.Ln(2)

		pdf.SetFont("Helvetica", "", 13)
		pdf.CellFormat(contentW, 8, tr("Mood: "+entry.MoodLabel(e.Mood)), "", 1, "L", false, 0, "")
		pdf.Ln(6)

		if imageType := sniffImage(e.Image); imageType != "" {
			name := fmt.Sprintf("entry-%d", i)
			opts := fpdf.ImageOptions{ImageType: imageType, ReadDpi: true}
			info := pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(e.Image))
			if pdf.Ok() && info != nil && info.Width() > 0 {
				imgW := contentW
				imgH := imgW * info.Height() / info.Width()
				if imgH > maxImageHeight {
					imgH = maxImageHeight
					imgW = imgH * info.Width() / info.Height()
				}
				pdf.ImageOptions(name, pageMargin, pdf.GetY(), imgW, imgH, true, opts, 0, "")
				pdf.Ln(8)
			} else {
				pdf.ClearError()
			}
		}

		pdf.SetFont("Helvetica", "", 12)
		pdf.MultiCell(contentW, 6.5, tr(e.Content), "", "J", false)

		if len(e.Tags) > 0 {
			pdf.SetY(pageH - pageMargin - 8)
			pdf.SetFont("Helvetica", "I", 11)
			pdf.SetTextColor(90, 90, 90)
			pdf.CellFormat(contentW, 6, tr("Tags: "+strings.Join(e.Tags, ", ")), "", 0, "L", false, 0, "")
		}
	}

	if len(entries) == 0 {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "I", 12)
		pdf.CellFormat(contentW, 10, "No entries.", "", 1, "C", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering pdf: %w", err)
	}
	return nil
}

// sniffImage maps image content to an fpdf image type.
func sniffImage(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	switch http.DetectContentType(data) {
	case "image/jpeg":
		return "JPG"
	case "image/png":
		return "PNG"
	}
	return ""
}
