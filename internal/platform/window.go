package platform

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Mini player and full window sizes.
const (
	MiniWidth  = 300
	MiniHeight = 330
	FullWidth  = 1000
	FullHeight = 800
)

// Window is the host window: folder selection and size changes.
type Window interface {
	SelectFolder(ctx context.Context) (string, error)
	Resize(width, height int) error
}

// TerminalWindow asks for a folder path on the terminal and turns resize
// requests into compact or full layout.
type TerminalWindow struct {
	Prompter Terminal

	mu      sync.Mutex
	compact bool
}

// SelectFolder implements Window. The returned path is absolute.
func (w *TerminalWindow) SelectFolder(ctx context.Context) (string, error) {
	path, err := w.Prompter.input(ctx, "Music folder", func(s string) error {
		_, err := ResolveFolder(s)
		return err
	})
	if err != nil {
		return "", err
	}
	return ResolveFolder(path)
}

// Resize implements Window. Sizes at or below the mini player size select
// the compact layout.
func (w *TerminalWindow) Resize(width, height int) error {
	w.mu.Lock()
	w.compact = width <= MiniWidth && height <= MiniHeight
	w.mu.Unlock()
	return nil
}

// Compact reports whether the last resize asked for the mini player.
func (w *TerminalWindow) Compact() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.compact
}

// ResolveFolder expands a leading ~ and checks that path is a directory.
func ResolveFolder(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("enter a folder path")
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", errors.New("not a directory")
	}
	return abs, nil
}
