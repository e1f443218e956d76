package ui

import (
	"fmt"
	"strings"

	"github.com/olivier-w/crossroads/internal/playback"
	"github.com/olivier-w/crossroads/internal/queue"
)

func renderProgressBar(elapsed, total float64, width int) string {
	if width < 10 {
		width = 10
	}
	barWidth := width - 2 // leave some margin

	var ratio float64
	if total > 0 {
		ratio = elapsed / total
	}
	ratio = min(max(ratio, 0), 1)

	filled := int(ratio * float64(barWidth))
	return strings.Repeat("━", filled) + strings.Repeat("─", barWidth-filled)
}

func renderVolumePercent(vol float64) string {
	return fmt.Sprintf("vol %d%%", int(vol*100+0.5))
}

func stateIcon(s playback.State) (string, string) {
	switch s {
	case playback.Playing:
		return "▶", "playing"
	case playback.Paused:
		return "❚❚", "paused"
	}
	return "■", "stopped"
}

// modeIcons renders the shuffle and repeat indicators.
func modeIcons(shuffle bool, repeat queue.RepeatMode) string {
	var parts []string
	if shuffle {
		parts = append(parts, "[shuffle]")
	}
	if icon := repeat.Icon(); icon != "" {
		parts = append(parts, icon)
	}
	return strings.Join(parts, "  ")
}

func spaces(n int) string {
	return strings.Repeat(" ", max(n, 0))
}
