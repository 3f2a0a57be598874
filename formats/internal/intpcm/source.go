// SPDX-License-Identifier: EPL-2.0

// Package intpcm adapts go-audio integer PCM decoders to audio.Source.
package intpcm

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/sndbridge/utils"
)

// Reader is the subset of the go-audio wav and aiff decoders used here.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Layout describes the integer stream a Reader produces.
type Layout struct {
	SampleRate int
	Channels   int
	BitDepth   int
	// Unsigned is set for offset-binary 8-bit data.
	Unsigned bool
	// Frames is the stream length, or -1 when unknown.
	Frames int64
}

// Source converts integer PCM to float32.
type Source struct {
	r      Reader
	layout Layout
	buf    *goaudio.IntBuffer
}

func New(r Reader, layout Layout) *Source {
	return &Source{r: r, layout: layout}
}

func (s *Source) SampleRate() int { return s.layout.SampleRate }
func (s *Source) Channels() int   { return s.layout.Channels }
func (s *Source) Frames() int64   { return s.layout.Frames }
func (s *Source) Close() error    { return nil }

func (s *Source) BufSize() int {
	if s.buf != nil {
		return cap(s.buf.Data)
	}
	return 4096
}

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.buf == nil || cap(s.buf.Data) < len(dst) {
		s.buf = &goaudio.IntBuffer{
			Data: make([]int, len(dst)),
			Format: &goaudio.Format{
				NumChannels: s.layout.Channels,
				SampleRate:  s.layout.SampleRate,
			},
			SourceBitDepth: s.layout.BitDepth,
		}
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.r.PCMBuffer(s.buf)
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("%w", err)
	}
	if n == 0 {
		return 0, io.EOF
	}

	bias := 0
	if s.layout.Unsigned {
		bias = 1 << (s.layout.BitDepth - 1)
	}
	for i, v := range s.buf.Data[:n] {
		dst[i] = utils.IntToFloat32(v-bias, s.layout.BitDepth)
	}

	return n, nil
}

// Seekable returns r as an io.ReadSeeker, buffering it in memory when it
// cannot seek on its own.
func Seekable(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return bytes.NewReader(data), nil
}
