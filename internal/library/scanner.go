package library

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
)

// Scanner walks a music folder and parses every supported audio file.
type Scanner struct {
	workers int
	logger  *slog.Logger
	read    func(path string) (Song, error)
}

// NewScanner creates a Scanner. workers <= 0 uses one worker per CPU.
func NewScanner(workers int, logger *slog.Logger) *Scanner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{workers: workers, logger: logger, read: ReadSong}
}

// Scan returns the songs under folder sorted by path. Files whose metadata
// cannot be parsed are logged and skipped. An unreadable root is an error.
func (s *Scanner) Scan(ctx context.Context, folder string) ([]Song, error) {
	root, err := filepath.Abs(folder)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", folder, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("opening music folder: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	paths := make(chan string, 100)
	results := make(chan Song, 100)

	walkErr := make(chan error, 1)
	go func() {
		defer close(paths)
		walkErr <- filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == root {
					return err
				}
				s.logger.Warn("skipping unreadable path", "path", path, "error", err)
				return nil
			}
			if d.IsDir() || !IsSupportedFile(path) {
				return nil
			}
			select {
			case paths <- path:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}()

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range paths {
				song, err := s.read(path)
				if err != nil {
					s.logger.Warn("skipping unparseable file", "path", path, "error", err)
					continue
				}
				results <- song
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var songs []Song
	for song := range results {
		songs = append(songs, song)
	}
	if err := <-walkErr; err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	sort.Slice(songs, func(i, j int) bool { return songs[i].Path < songs[j].Path })
	s.logger.Info("scan complete", "folder", root, "songs", len(songs))
	return songs, nil
}
