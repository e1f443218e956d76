package playlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/olivier-w/crossroads/internal/library"
)

var fileExts = map[string]bool{
	".m3u":  true,
	".m3u8": true,
	".pls":  true,
}

// IsFileExt reports whether ext is a playlist file format ParseFile reads.
func IsFileExt(ext string) bool {
	return fileExts[strings.ToLower(ext)]
}

// ParseFile reads a .m3u/.m3u8/.pls file into song paths. Relative entries
// are resolved against the playlist file's directory; URLs are skipped.
func ParseFile(path string) ([]string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !IsFileExt(ext) {
		return nil, fmt.Errorf("unsupported playlist format %s", ext)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("reading playlist: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("playlist is not valid UTF-8")
	}

	text := strings.TrimPrefix(string(data), "\uFEFF")
	scanner := bufio.NewScanner(strings.NewReader(text))
	baseDir := filepath.Dir(abs)
	if ext == ".pls" {
		return parsePLS(scanner, baseDir), nil
	}
	return parseM3U(scanner, baseDir), nil
}

// WriteM3U writes songs as an extended M3U playlist.
func WriteM3U(w io.Writer, songs []library.Song) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "#EXTM3U")
	for _, s := range songs {
		fmt.Fprintf(bw, "#EXTINF:%d,%s\n", int(s.Duration), s.DisplayName())
		fmt.Fprintln(bw, s.Path)
	}
	return bw.Flush()
}

func parseM3U(scanner *bufio.Scanner, baseDir string) []string {
	entries := make([]string, 0)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if p, ok := resolveEntry(line, baseDir); ok {
			entries = append(entries, p)
		}
	}
	return entries
}

func parsePLS(scanner *bufio.Scanner, baseDir string) []string {
	entries := make([]string, 0)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		eq := strings.Index(line, "=")
		if eq <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:eq])
		val := strings.TrimSpace(line[eq+1:])
		if val == "" || !isPLSFileKey(key) {
			continue
		}
		if p, ok := resolveEntry(val, baseDir); ok {
			entries = append(entries, p)
		}
	}
	return entries
}

func isPLSFileKey(key string) bool {
	rest, ok := strings.CutPrefix(key, "File")
	if !ok || rest == "" {
		return false
	}
	for i := 0; i < len(rest); i++ {
		if rest[i] < '0' || rest[i] > '9' {
			return false
		}
	}
	return true
}

func resolveEntry(raw, baseDir string) (string, bool) {
	raw = strings.Trim(raw, `"`)
	if strings.Contains(raw, "://") {
		return "", false
	}
	p := filepath.Clean(raw)
	if filepath.IsAbs(p) {
		return p, true
	}
	return filepath.Clean(filepath.Join(baseDir, p)), true
}
