package playback

// EventKind identifies what a Resource is reporting.
type EventKind int

const (
	// TimeUpdate carries the current position while audio advances.
	TimeUpdate EventKind = iota
	// Ended fires once when the loaded track plays to completion.
	Ended
	// LoadedMetadata carries the duration of a freshly loaded track.
	LoadedMetadata
)

func (k EventKind) String() string {
	switch k {
	case TimeUpdate:
		return "timeupdate"
	case Ended:
		return "ended"
	case LoadedMetadata:
		return "loadedmetadata"
	}
	return "unknown"
}

// Event is emitted by a Resource. Path names the track the event belongs
// to, so events from a track that has since been replaced can be dropped.
type Event struct {
	Kind     EventKind
	Path     string
	Time     float64 // seconds, TimeUpdate
	Duration float64 // seconds, LoadedMetadata
}

// Resource is the audio output the controller drives. Commands may complete
// asynchronously; state changes are driven by Events, not by command results.
type Resource interface {
	Load(path string) error
	Play() error
	Pause() error
	CurrentTime() float64
	SetCurrentTime(seconds float64) error
	Volume() float64
	SetVolume(v float64) error
	Events() <-chan Event
}
