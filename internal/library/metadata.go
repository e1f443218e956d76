package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bogem/id3v2/v2"
	"github.com/dhowden/tag"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
)

// UnknownArtist is used when a file carries no artist tag.
const UnknownArtist = "Unknown Artist"

// streamInfo holds properties of the audio stream itself.
type streamInfo struct {
	duration      time.Duration
	sampleRate    int
	bitsPerSample int
}

// tags holds the textual metadata of a file.
type tags struct {
	title    string
	artist   string
	album    string
	composer string
	picture  *Picture
}

// ReadSong builds a Song from the file at path. Missing tags fall back to the
// file name (title), UnknownArtist and the parent directory name (album).
func ReadSong(path string) (Song, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !IsSupportedExt(ext) {
		return Song{}, fmt.Errorf("unsupported format %s", ext)
	}

	info, err := readStreamInfo(path, ext)
	if err != nil {
		return Song{}, fmt.Errorf("reading stream info: %w", err)
	}

	var t tags
	if ext == ".mp3" {
		t = readID3(path)
	} else {
		t = readTags(path)
	}

	song := Song{
		Path:          path,
		Title:         t.title,
		Artist:        t.artist,
		Album:         t.album,
		Composer:      t.composer,
		Duration:      info.duration.Seconds(),
		SampleRate:    info.sampleRate,
		BitsPerSample: info.bitsPerSample,
		Lossless:      losslessExts[ext],
		Picture:       t.picture,
	}
	if song.Title == "" {
		base := filepath.Base(path)
		song.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if song.Artist == "" {
		song.Artist = UnknownArtist
	}
	if song.Album == "" {
		song.Album = filepath.Base(filepath.Dir(path))
	}
	if fi, err := os.Stat(path); err == nil && song.Duration > 0 {
		song.Bitrate = int(float64(fi.Size()*8) / song.Duration)
	}
	return song, nil
}

// readID3 reads ID3v2 tags from an MP3 file.
func readID3(path string) tags {
	t3, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return tags{}
	}
	defer t3.Close()

	t := tags{
		title:  strings.TrimSpace(t3.Title()),
		artist: strings.TrimSpace(t3.Artist()),
		album:  strings.TrimSpace(t3.Album()),
	}
	if tf := t3.GetTextFrame(t3.CommonID("Composer")); tf.Text != "" {
		t.composer = strings.TrimSpace(tf.Text)
	}
	for _, f := range t3.GetFrames(t3.CommonID("Attached picture")) {
		if pic, ok := f.(id3v2.PictureFrame); ok && len(pic.Picture) > 0 {
			t.picture = &Picture{MIMEType: pic.MimeType, Data: pic.Picture}
			break
		}
	}
	return t
}

// readTags reads Vorbis comments / RIFF INFO tags via dhowden/tag.
func readTags(path string) tags {
	f, err := os.Open(path)
	if err != nil {
		return tags{}
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return tags{}
	}
	t := tags{
		title:    strings.TrimSpace(m.Title()),
		artist:   strings.TrimSpace(m.Artist()),
		album:    strings.TrimSpace(m.Album()),
		composer: strings.TrimSpace(m.Composer()),
	}
	if t.artist == "" {
		t.artist = strings.TrimSpace(m.AlbumArtist())
	}
	if p := m.Picture(); p != nil && len(p.Data) > 0 {
		t.picture = &Picture{MIMEType: p.MIMEType, Data: p.Data}
	}
	return t
}

func readStreamInfo(path, ext string) (streamInfo, error) {
	switch ext {
	case ".flac":
		stream, err := flac.ParseFile(path)
		if err != nil {
			return streamInfo{}, err
		}
		defer stream.Close()
		si := stream.Info
		if si.SampleRate == 0 {
			return streamInfo{}, errors.New("flac: zero sample rate")
		}
		return streamInfo{
			duration:      time.Duration(float64(si.NSamples) / float64(si.SampleRate) * float64(time.Second)),
			sampleRate:    int(si.SampleRate),
			bitsPerSample: int(si.BitsPerSample),
		}, nil

	case ".wav":
		f, err := os.Open(path)
		if err != nil {
			return streamInfo{}, err
		}
		defer f.Close()
		dec := wav.NewDecoder(f)
		if !dec.IsValidFile() {
			return streamInfo{}, errors.New("invalid WAV file")
		}
		d, err := dec.Duration()
		if err != nil {
			return streamInfo{}, err
		}
		return streamInfo{
			duration:      d,
			sampleRate:    int(dec.SampleRate),
			bitsPerSample: int(dec.BitDepth),
		}, nil

	case ".ogg":
		f, err := os.Open(path)
		if err != nil {
			return streamInfo{}, err
		}
		defer f.Close()
		r, err := oggvorbis.NewReader(f)
		if err != nil {
			return streamInfo{}, err
		}
		if r.SampleRate() == 0 {
			return streamInfo{}, errors.New("ogg: zero sample rate")
		}
		return streamInfo{
			duration:   time.Duration(float64(r.Length()) / float64(r.SampleRate()) * float64(time.Second)),
			sampleRate: r.SampleRate(),
		}, nil

	case ".mp3":
		f, err := os.Open(path)
		if err != nil {
			return streamInfo{}, err
		}
		defer f.Close()
		dec, err := mp3.NewDecoder(f)
		if err != nil {
			return streamInfo{}, err
		}
		// go-mp3 always decodes to 16-bit stereo.
		bytesPerSec := int64(dec.SampleRate()) * 4
		if bytesPerSec == 0 {
			return streamInfo{}, errors.New("mp3: zero sample rate")
		}
		return streamInfo{
			duration:   time.Duration(float64(dec.Length()) / float64(bytesPerSec) * float64(time.Second)),
			sampleRate: dec.SampleRate(),
		}, nil
	}
	return streamInfo{}, fmt.Errorf("unsupported format %s", ext)
}
