package lyrics

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Line is one timed lyric line.
type Line struct {
	Time float64 // seconds
	Text string
}

var lrcLine = regexp.MustCompile(`\[(\d+):(\d+\.\d+)\](.*)`)

// ParseSynced parses "[mm:ss.xx]text" lines. Lines that do not match or
// have no text are dropped. Returns nil when nothing matched.
func ParseSynced(s string) []Line {
	var lines []Line
	for _, raw := range strings.Split(s, "\n") {
		m := lrcLine.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		text := strings.TrimSpace(m[3])
		if text == "" {
			continue
		}
		mins, _ := strconv.Atoi(m[1])
		sec, _ := strconv.ParseFloat(m[2], 64)
		lines = append(lines, Line{Time: float64(mins)*60 + sec, Text: text})
	}
	return lines
}

// ActiveLine returns the index of the line being sung at t, or -1 before
// the first line.
func ActiveLine(lines []Line, t float64) int {
	i := sort.Search(len(lines), func(i int) bool { return lines[i].Time > t })
	return i - 1
}
