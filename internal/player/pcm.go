package player

import (
	"encoding/binary"
	"errors"
	"io"
	"sync"
)

const (
	outputRate     = 44100
	outputChannels = 2
	outputFrame    = outputChannels * 2
)

// countingReader tracks how many decoder bytes have been consumed and
// whether the decoder has run dry.
type countingReader struct {
	reader io.Reader
	mu     sync.Mutex
	pos    int64
	eof    bool
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.reader.Read(p)
	cr.mu.Lock()
	cr.pos += int64(n)
	if errors.Is(err, io.EOF) {
		cr.eof = true
	}
	cr.mu.Unlock()
	return n, err
}

func (cr *countingReader) Pos() int64 {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	return cr.pos
}

func (cr *countingReader) EOF() bool {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	return cr.eof
}

func (cr *countingReader) Reset(pos int64) {
	cr.mu.Lock()
	cr.pos = pos
	cr.eof = false
	cr.mu.Unlock()
}

// resampler converts 16-bit PCM at any rate and channel count to the
// output format using linear interpolation. Mono is duplicated to both
// channels; channels beyond the second are dropped.
type resampler struct {
	src      io.Reader
	channels int
	step     float64 // source frames per output frame
	frames   [][2]int16
	pos      float64
	raw      []byte
	eof      bool
}

func newResampler(src io.Reader, rate, channels int) *resampler {
	return &resampler{
		src:      src,
		channels: channels,
		step:     float64(rate) / outputRate,
	}
}

// passthrough reports whether the source is already in output format.
func passthrough(rate, channels int) bool {
	return rate == outputRate && channels == outputChannels
}

func (r *resampler) reset() {
	r.frames = r.frames[:0]
	r.pos = 0
	r.eof = false
}

func (r *resampler) fill() error {
	if drop := int(r.pos); drop > 0 {
		drop = min(drop, len(r.frames))
		n := copy(r.frames, r.frames[drop:])
		r.frames = r.frames[:n]
		r.pos -= float64(drop)
	}
	frameSize := r.channels * 2
	if r.raw == nil {
		r.raw = make([]byte, 2048*frameSize)
	}
	n, err := io.ReadFull(r.src, r.raw)
	for off := 0; off+frameSize <= n; off += frameSize {
		l := int16(binary.LittleEndian.Uint16(r.raw[off:]))
		rt := l
		if r.channels > 1 {
			rt = int16(binary.LittleEndian.Uint16(r.raw[off+2:]))
		}
		r.frames = append(r.frames, [2]int16{l, rt})
	}
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		r.eof = true
		return nil
	}
	return err
}

func (r *resampler) Read(p []byte) (int, error) {
	written := 0
	for written+outputFrame <= len(p) {
		i := int(r.pos)
		if i+1 >= len(r.frames) {
			if !r.eof {
				if err := r.fill(); err != nil {
					if written > 0 {
						return written, nil
					}
					return 0, err
				}
				continue
			}
			if i >= len(r.frames) {
				break
			}
			// Last frame: nothing to interpolate towards.
			putFrame(p[written:], r.frames[i], r.frames[i], 0)
		} else {
			putFrame(p[written:], r.frames[i], r.frames[i+1], r.pos-float64(i))
		}
		written += outputFrame
		r.pos += r.step
	}
	if written == 0 && r.eof {
		return 0, io.EOF
	}
	return written, nil
}

func putFrame(p []byte, a, b [2]int16, frac float64) {
	for c := range 2 {
		v := float64(a[c]) + (float64(b[c])-float64(a[c]))*frac
		binary.LittleEndian.PutUint16(p[c*2:], uint16(int16(v)))
	}
}
