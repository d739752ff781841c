package ui

import (
	"regexp"
	"time"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// stripANSI removes color codes so assertions see plain text.
func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func utcDate(y int, m time.Month, d, h int) *time.Time {
	t := time.Date(y, m, d, h, 0, 0, 0, time.UTC)
	return &t
}
