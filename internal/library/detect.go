package library

import (
	"path/filepath"
	"sort"
	"strings"
)

// audioExts lists the formats the scanner indexes and the player can decode.
var audioExts = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".flac": true,
	".ogg":  true,
}

// losslessExts are formats whose stream is not lossy-compressed.
var losslessExts = map[string]bool{
	".wav":  true,
	".flac": true,
}

// IsSupportedExt returns true if the extension is a supported audio format.
func IsSupportedExt(ext string) bool {
	return audioExts[strings.ToLower(ext)]
}

// IsSupportedFile returns true if path has a supported audio extension.
func IsSupportedFile(path string) bool {
	return IsSupportedExt(filepath.Ext(path))
}

// SupportedExtsList returns a human-readable list of supported formats.
func SupportedExtsList() string {
	exts := make([]string, 0, len(audioExts))
	for ext := range audioExts {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return strings.Join(exts, ", ")
}
