package player

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/olivier-w/crossroads/internal/playback"
)

var _ playback.Resource = (*Player)(nil)

type stubSeekDecoder struct {
	pos    int64
	length int64
}

func (d *stubSeekDecoder) Read([]byte) (int, error) { return 0, io.EOF }

func (d *stubSeekDecoder) Seek(offset int64, whence int) (int64, error) {
	d.pos = resolveSeek(offset, whence, d.pos, d.length)
	return d.pos, nil
}

func (d *stubSeekDecoder) Length() int64     { return d.length }
func (d *stubSeekDecoder) SampleRate() int   { return outputRate }
func (d *stubSeekDecoder) ChannelCount() int { return outputChannels }

func TestAlignOffsetClampsAndAligns(t *testing.T) {
	if got := alignOffset(39, 41, 4); got != 36 {
		t.Fatalf("alignOffset(39) = %d, want 36", got)
	}
	if got := alignOffset(-10, 41, 4); got != 0 {
		t.Fatalf("alignOffset(-10) = %d, want 0", got)
	}
	if got := alignOffset(100, 41, 4); got != 40 {
		t.Fatalf("alignOffset(100) = %d, want 40", got)
	}
}

func TestResolveSeek(t *testing.T) {
	d := &stubSeekDecoder{length: 100}
	d.Seek(30, io.SeekStart)
	if pos, _ := d.Seek(10, io.SeekCurrent); pos != 40 {
		t.Fatalf("SeekCurrent = %d, want 40", pos)
	}
	if pos, _ := d.Seek(-20, io.SeekEnd); pos != 80 {
		t.Fatalf("SeekEnd = %d, want 80", pos)
	}
	if pos, _ := d.Seek(500, io.SeekStart); pos != 100 {
		t.Fatalf("clamped seek = %d, want 100", pos)
	}
}

func TestClampSample(t *testing.T) {
	if clampSample(40000) != 32767 || clampSample(-40000) != -32768 || clampSample(12) != 12 {
		t.Fatal("clampSample did not saturate")
	}
}

func pcm16(samples ...int16) []byte {
	var buf bytes.Buffer
	for _, s := range samples {
		binary.Write(&buf, binary.LittleEndian, s)
	}
	return buf.Bytes()
}

func decode16(b []byte) []int16 {
	out := make([]int16, len(b)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(b[i*2:]))
	}
	return out
}

func TestResamplerMonoToStereo(t *testing.T) {
	r := newResampler(bytes.NewReader(pcm16(100, 200, 300)), outputRate, 1)
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	want := []int16{100, 100, 200, 200, 300, 300}
	if s := decode16(got); len(s) != len(want) {
		t.Fatalf("got %v, want %v", s, want)
	} else {
		for i := range want {
			if s[i] != want[i] {
				t.Fatalf("got %v, want %v", s, want)
			}
		}
	}
}

func TestResamplerUpsamplesByInterpolation(t *testing.T) {
	// 22050 Hz stereo doubles in length.
	src := pcm16(0, 0, 1000, -1000)
	r := newResampler(bytes.NewReader(src), outputRate/2, 2)
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	s := decode16(got)
	if len(s) != 8 {
		t.Fatalf("got %d samples, want 8: %v", len(s), s)
	}
	if s[2] != 500 || s[3] != -500 {
		t.Fatalf("interpolated frame = %d,%d; want 500,-500", s[2], s[3])
	}
}

func TestPassthrough(t *testing.T) {
	if !passthrough(outputRate, outputChannels) || passthrough(48000, 2) || passthrough(outputRate, 1) {
		t.Fatal("unexpected passthrough decision")
	}
}

func TestCountingReaderTracksEOF(t *testing.T) {
	cr := &countingReader{reader: bytes.NewReader([]byte{1, 2, 3})}
	io.ReadAll(cr)
	if cr.Pos() != 3 || !cr.EOF() {
		t.Fatalf("Pos() = %d EOF() = %v", cr.Pos(), cr.EOF())
	}
	cr.Reset(0)
	if cr.Pos() != 0 || cr.EOF() {
		t.Fatal("Reset did not clear state")
	}
}

func TestUnloadedPlayer(t *testing.T) {
	p := New(2, nil)
	if p.Volume() != 1 {
		t.Fatalf("Volume() = %v, want clamped 1", p.Volume())
	}
	if p.CurrentTime() != 0 {
		t.Fatal("CurrentTime() should be 0 with nothing loaded")
	}
	if err := p.Play(); err == nil {
		t.Fatal("expected Play() to fail with nothing loaded")
	}
	if err := p.Pause(); err != nil {
		t.Fatalf("Pause() error = %v", err)
	}
	p.Close()
}
var _ audioDecoder = (*stubSeekDecoder)(nil)
