package library

import "time"

// Picture is embedded cover art extracted from a file's tags.
type Picture struct {
	MIMEType string `json:"mime_type"`
	Data     []byte `json:"data"`
}

// Song is a single scanned audio file. Path is its identity.
type Song struct {
	Path          string   `json:"path"`
	Title         string   `json:"title"`
	Artist        string   `json:"artist"`
	Album         string   `json:"album"`
	Composer      string   `json:"composer"`
	Duration      float64  `json:"duration"` // seconds
	Bitrate       int      `json:"bitrate"`  // bits per second
	SampleRate    int      `json:"sample_rate"`
	BitsPerSample int      `json:"bits_per_sample"`
	Lossless      bool     `json:"lossless"`
	Picture       *Picture `json:"picture,omitempty"`
}

// Length returns the song duration as a time.Duration.
func (s Song) Length() time.Duration {
	return time.Duration(s.Duration * float64(time.Second))
}

// DisplayName returns "Artist - Title", or just the title when the artist is unknown.
func (s Song) DisplayName() string {
	if s.Artist == "" || s.Artist == UnknownArtist {
		return s.Title
	}
	return s.Artist + " - " + s.Title
}

// TotalDuration sums the durations of songs.
func TotalDuration(songs []Song) time.Duration {
	var total float64
	for _, s := range songs {
		total += s.Duration
	}
	return time.Duration(total * float64(time.Second))
}
