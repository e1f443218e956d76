package ui

import (
	"log/slog"

	"github.com/gen2brain/beeep"

	"github.com/olivier-w/crossroads/internal/library"
)

// Notifier posts a desktop notification whenever a new track starts. It is
// a playback.Listener.
type Notifier struct {
	logger *slog.Logger
	send   func(title, message string) error
}

// NewNotifier creates a Notifier backed by the system notification service.
func NewNotifier(logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		logger: logger,
		send: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
	}
}

// TrackStarted implements playback.Listener. The notification is sent off
// the caller's goroutine since listeners run under the controller lock.
func (n *Notifier) TrackStarted(song library.Song) {
	title, message := song.Title, song.Artist
	if song.Album != "" {
		message += " · " + song.Album
	}
	go func() {
		if err := n.send(title, message); err != nil {
			n.logger.Debug("notification failed", "error", err)
		}
	}()
}

// PlayingChanged implements playback.Listener.
func (n *Notifier) PlayingChanged(bool) {}
