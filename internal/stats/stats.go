package stats

import (
	"encoding/json"
	"time"
)

// Entry records that a song began playing.
type Entry struct {
	Path      string
	Timestamp time.Time
}

type entryJSON struct {
	Path      string `json:"path"`
	Timestamp int64  `json:"timestamp"`
}

// MarshalJSON stores the timestamp as Unix milliseconds.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(entryJSON{Path: e.Path, Timestamp: e.Timestamp.UnixMilli()})
}

// UnmarshalJSON reads a timestamp written as Unix milliseconds.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw entryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Path = raw.Path
	e.Timestamp = time.UnixMilli(raw.Timestamp)
	return nil
}

// Stats is the listening history and the cumulative seconds spent playing.
type Stats struct {
	TotalTime   int64   `json:"totalTime"`
	PlayHistory []Entry `json:"playHistory"`
}

// Clone returns a copy that shares no memory with s.
func (s Stats) Clone() Stats {
	out := Stats{TotalTime: s.TotalTime}
	if s.PlayHistory != nil {
		out.PlayHistory = make([]Entry, len(s.PlayHistory))
		copy(out.PlayHistory, s.PlayHistory)
	}
	return out
}

// Listening returns TotalTime as a duration.
func (s Stats) Listening() time.Duration {
	return time.Duration(s.TotalTime) * time.Second
}
