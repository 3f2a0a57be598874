// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/sndbridge/audio"
)

// go-mp3 always produces 16-bit little-endian stereo
const (
	outChannels = 2
	frameBytes  = 2 * outChannels
)

// mp3Reader is the part of gomp3.Decoder the source relies on.
type mp3Reader interface {
	io.Reader
	SampleRate() int
	Length() int64
}

type source struct {
	dec mp3Reader
	buf []byte
	eof bool
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return outChannels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / 2 }

func (s *source) Frames() int64 {
	if n := s.dec.Length(); n > 0 {
		return n / frameBytes
	}
	return -1
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if s.eof {
		return 0, io.EOF
	}

	// whole frames only, so a short read never splits a sample
	want := (len(dst) / outChannels) * frameBytes
	if want == 0 {
		return 0, nil
	}
	if cap(s.buf) < want {
		s.buf = make([]byte, want)
	}
	s.buf = s.buf[:want]

	n, err := io.ReadFull(s.dec, s.buf)
	switch err {
	case nil:
	case io.EOF, io.ErrUnexpectedEOF:
		s.eof = true
	default:
		return 0, fmt.Errorf("%w", err)
	}

	n -= n % frameBytes
	samples := n / 2
	for i := range samples {
		dst[i] = float32(int16(binary.LittleEndian.Uint16(s.buf[2*i:]))) / 32768.0
	}

	if s.eof {
		return samples, io.EOF
	}
	return samples, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &source{dec: dec, buf: make([]byte, 8192)}, nil
}
