// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"math"

	"github.com/ik5/sndbridge/utils"
)

// smoothing coefficient of the one-pole low-pass used when downsampling
const lowPassAlpha float32 = 0.5

// Resampler streams src at a different sample rate using Catmull-Rom
// interpolation. Channel count is preserved.
type Resampler struct {
	src      Source
	dstRate  int
	ratio    float64 // source frames consumed per output frame
	channels int

	// frames around the read position: t-1, t0, t+1, t+2
	ring  [4][]float32
	valid [4]bool
	pos   float64

	in     []float32
	primed bool
	eof    bool

	smooth  bool
	history []float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	ratio := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		ratio:    ratio,
		channels: channels,
		in:       make([]float32, channels),
		smooth:   ratio > 1.0,
		history:  make([]float32, channels),
	}
	for i := range r.ring {
		r.ring[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

// Frames estimates the output length from the source length, or -1.
func (r *Resampler) Frames() int64 {
	fc, ok := r.src.(FrameCounter)
	if !ok {
		return -1
	}
	n := fc.Frames()
	if n < 0 {
		return -1
	}

	return int64(math.Ceil(float64(n) / r.ratio))
}

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// readFrame pulls a single frame from src into dst.
func (r *Resampler) readFrame(dst []float32) (bool, error) {
	n, err := r.src.ReadSamples(r.in)
	if n > 0 {
		copy(dst, r.in[:n])
	}
	if err != nil && err != io.EOF {
		return n > 0, fmt.Errorf("%w", err)
	}
	if err == io.EOF {
		r.eof = true
	}

	return n > 0, nil
}

// prime fills the ring with the first four frames, repeating the last one
// when the source is shorter than that.
func (r *Resampler) prime() error {
	r.primed = true

	got := 0
	for got < len(r.ring) && !r.eof {
		ok, err := r.readFrame(r.ring[got])
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if got == 0 && r.smooth {
			copy(r.history, r.ring[0])
		}
		r.valid[got] = true
		got++
	}
	if got == 0 {
		return io.EOF
	}

	for i := got; i < len(r.ring); i++ {
		copy(r.ring[i], r.ring[got-1])
		r.valid[i] = true
	}

	return nil
}

// advance shifts the ring by one frame.
func (r *Resampler) advance() error {
	if r.eof {
		return io.EOF
	}

	head := r.ring[0]
	copy(r.ring[:3], r.ring[1:])
	copy(r.valid[:3], r.valid[1:])
	r.ring[3] = head

	ok, err := r.readFrame(r.ring[3])
	if err != nil {
		return err
	}
	r.valid[3] = ok

	if ok && r.smooth {
		for c := range r.channels {
			v := lowPassAlpha*r.ring[3][c] + (1-lowPassAlpha)*r.history[c]
			r.ring[3][c] = v
			r.history[c] = v
		}
	}

	if r.eof && !ok {
		return io.EOF
	}

	return nil
}

// ReadSamples produces samples at the destination rate.
// len(dst) must be a multiple of Channels().
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	want := len(dst) / r.channels
	written := 0

	for written < want {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		if !r.valid[1] || !r.valid[2] {
			return written * r.channels, io.EOF
		}

		out := dst[written*r.channels : (written+1)*r.channels]
		x := float32(r.pos)
		for c := range out {
			y0 := r.ring[1][c]
			if r.valid[0] {
				y0 = r.ring[0][c]
			}
			y3 := r.ring[2][c]
			if r.valid[3] {
				y3 = r.ring[3][c]
			}
			out[c] = utils.CubicInterpolate(y0, r.ring[1][c], r.ring[2][c], y3, x)
		}

		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}
