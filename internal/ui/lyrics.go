package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/harmonica"

	"github.com/olivier-w/crossroads/internal/lyrics"
	"github.com/olivier-w/crossroads/internal/util"
)

// lyricsPane holds fetched lyrics for the current track and the scroll
// spring that eases the active line into the middle of the pane.
type lyricsPane struct {
	tracker *lyrics.Tracker
	loading bool
	result  lyrics.Result
	err     error

	spring harmonica.Spring
	pos    float64
	vel    float64
	active int
}

func newLyricsPane(fps int) lyricsPane {
	return lyricsPane{
		tracker: &lyrics.Tracker{},
		spring:  harmonica.NewSpring(harmonica.FPS(max(fps, 1)), 6.0, 0.9),
		active:  -1,
	}
}

// reset clears the pane for a new fetch.
func (p *lyricsPane) reset() {
	p.loading = true
	p.result = lyrics.Result{}
	p.err = nil
	p.pos, p.vel = 0, 0
	p.active = -1
}

// accept stores a fetch result. Stale tickets are dropped.
func (p *lyricsPane) accept(msg lyricsMsg) bool {
	if !p.tracker.Current(msg.ticket) {
		return false
	}
	p.loading = false
	p.result = msg.result
	p.err = msg.err
	return true
}

// step advances the scroll spring towards the line active at elapsed.
func (p *lyricsPane) step(elapsed float64) {
	if len(p.result.Synced) == 0 {
		return
	}
	p.active = lyrics.ActiveLine(p.result.Synced, elapsed)
	target := float64(max(p.active, 0))
	p.pos, p.vel = p.spring.Update(p.pos, p.vel, target)
}

func (p lyricsPane) view(width, height int) string {
	switch {
	case p.loading:
		return statusStyle.Render("Loading lyrics…")
	case p.err != nil:
		if errors.Is(p.err, lyrics.ErrNotFound) {
			return helpStyle.Render("Could not find lyrics for this track.")
		}
		return errorStyle.Render(p.err.Error())
	case p.result.Instrumental:
		return helpStyle.Render("♪ Instrumental ♪")
	case len(p.result.Synced) > 0:
		return p.syncedView(width, height)
	case p.result.Plain != "":
		lines := strings.Split(p.result.Plain, "\n")
		if len(lines) > height {
			lines = lines[:height]
		}
		for i, l := range lines {
			lines[i] = "  " + util.Truncate(l, width-4)
		}
		return strings.Join(lines, "\n")
	}
	return helpStyle.Render("No lyrics.")
}

// syncedView renders a window of lines centred on the spring position.
func (p lyricsPane) syncedView(width, height int) string {
	height = max(height, 3)
	top := int(p.pos+0.5) - height/2
	var b strings.Builder
	for row := range height {
		i := top + row
		if i < 0 || i >= len(p.result.Synced) {
			b.WriteString("\n")
			continue
		}
		text := util.Truncate(p.result.Synced[i].Text, width-4)
		if i == p.active {
			b.WriteString("  " + accentStyle.Render(text) + "\n")
		} else {
			b.WriteString("  " + helpStyle.Render(text) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
