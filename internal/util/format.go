package util

import (
	"fmt"
	"time"

	"github.com/mattn/go-runewidth"
)

// FormatDuration formats a duration as m:ss, or h:mm:ss past an hour.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatSeconds formats a track length given in seconds.
func FormatSeconds(sec float64) string {
	return FormatDuration(time.Duration(sec * float64(time.Second)))
}

// FormatHours renders listening time as hours with one decimal.
func FormatHours(sec int64) string {
	return fmt.Sprintf("%.1f h", float64(sec)/3600)
}

// Truncate shortens s to at most width terminal cells, ending in "…".
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// PadRight pads s with spaces to width cells, truncating if it is longer.
func PadRight(s string, width int) string {
	return runewidth.FillRight(Truncate(s, width), width)
}
