package queue

import (
	"math/rand/v2"

	"github.com/olivier-w/crossroads/internal/library"
)

// Source supplies random indices. *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Shuffle returns a Fisher-Yates permutation of songs. The input is not
// modified. When pinnedPath names a song in the list, that song is moved to
// the front and every other song keeps its shuffled relative order.
// A nil src uses the global generator.
func Shuffle(songs []library.Song, pinnedPath string, src Source) []library.Song {
	if src == nil {
		src = globalSource{}
	}
	out := make([]library.Song, len(songs))
	copy(out, songs)
	for i := len(out) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	if pinnedPath == "" {
		return out
	}
	for i, s := range out {
		if s.Path != pinnedPath {
			continue
		}
		copy(out[1:i+1], out[:i])
		out[0] = s
		break
	}
	return out
}
