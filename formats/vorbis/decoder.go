// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/ik5/sndbridge/audio"
	"github.com/jfreymuth/oggvorbis"
)

const maxEmptyReads = 8

// oggReader is the part of oggvorbis.Reader the source relies on.
type oggReader interface {
	SampleRate() int
	Channels() int
	Length() int64
	// Read returns the number of values decoded, always whole frames.
	Read(p []float32) (int, error)
}

type source struct {
	dec oggReader
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return s.dec.Channels() }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return 4096 }

func (s *source) Frames() int64 {
	if n := s.dec.Length(); n > 0 {
		return n
	}
	return -1
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	ch := s.dec.Channels()
	whole := len(dst) - len(dst)%ch
	if whole == 0 {
		return 0, nil
	}

	// empty packets decode to nothing; skip a few before giving up the call
	for range maxEmptyReads {
		n, err := s.dec.Read(dst[:whole])
		if err != nil && err != io.EOF {
			return n, fmt.Errorf("%w", err)
		}
		if n > 0 || err != nil {
			return n, err
		}
	}

	return 0, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &source{dec: dec}, nil
}
