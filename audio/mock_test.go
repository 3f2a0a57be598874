package audio

import (
	"io"
	"math"
)

// funcSource generates frames from a waveform function.
type funcSource struct {
	rate     int
	channels int
	frames   int
	pos      int
	wave     func(frame, channel int) float32
}

func newFuncSource(rate, channels, frames int, wave func(frame, channel int) float32) *funcSource {
	return &funcSource{rate: rate, channels: channels, frames: frames, wave: wave}
}

func newConstantSource(rate, channels, frames int, v float32) *funcSource {
	return newFuncSource(rate, channels, frames, func(int, int) float32 { return v })
}

func newSineSource(rate, channels, frames int, hz float64) *funcSource {
	return newFuncSource(rate, channels, frames, func(f, _ int) float32 {
		return float32(math.Sin(2 * math.Pi * hz * float64(f) / float64(rate)))
	})
}

// newRampSource writes frame index plus channel/10 so layout is visible.
func newRampSource(rate, channels, frames int) *funcSource {
	return newFuncSource(rate, channels, frames, func(f, c int) float32 {
		return float32(f) + float32(c)/10
	})
}

func (s *funcSource) SampleRate() int { return s.rate }
func (s *funcSource) Channels() int   { return s.channels }
func (s *funcSource) BufSize() int    { return 4096 }
func (s *funcSource) Close() error    { return nil }

func (s *funcSource) ReadSamples(dst []float32) (int, error) {
	if s.pos >= s.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/s.channels, s.frames-s.pos)
	for f := range n {
		for c := range s.channels {
			dst[f*s.channels+c] = s.wave(s.pos+f, c)
		}
	}
	s.pos += n

	if s.pos >= s.frames {
		return n * s.channels, io.EOF
	}
	return n * s.channels, nil
}

// countedSource also reports its length.
type countedSource struct {
	*funcSource
}

func (s countedSource) Frames() int64 { return int64(s.frames) }
