package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for common failure scenarios.
var (
	ErrSongNotFound     = errors.New("song not found")
	ErrPlaylistNotFound = errors.New("playlist not found")
	ErrEmptyName        = errors.New("playlist name is empty")
	ErrLyricsNotFound   = errors.New("could not find lyrics for this track")
	ErrNoMusicFolder    = errors.New("no music folder selected")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrStorage          = errors.New("storage unavailable")
	ErrCancelled        = errors.New("cancelled")
)

// PlayerError wraps an error with a user-friendly suggestion.
type PlayerError struct {
	Err        error
	Suggestion string
}

func (e *PlayerError) Error() string {
	return e.Err.Error()
}

func (e *PlayerError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &PlayerError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	var perr *PlayerError
	if errors.As(err, &perr) && perr.Suggestion != "" {
		return perr.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	switch {
	case errors.Is(err, ErrNoMusicFolder):
		return "Run 'crossroads scan <folder>' or set library.folder in the config file"
	case errors.Is(err, ErrPlaylistNotFound):
		return "Run 'crossroads playlist list' to see playlist ids"
	case errors.Is(err, ErrSongNotFound):
		return "Run 'crossroads scan' to refresh the library"
	case errors.Is(err, ErrEmptyName):
		return "Give the playlist a non-blank name"
	case errors.Is(err, ErrInvalidConfig):
		return "Run 'crossroads config' to see the active configuration"
	case errors.Is(err, ErrStorage) || strings.Contains(errStr, "database") ||
		strings.Contains(errStr, "permission denied"):
		return "Check storage.backend and storage.dir in the config file"
	case strings.Contains(errStr, "network") || strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "connection refused"):
		return "Check your internet connection and try again"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}
