// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"time"
)

// consecutive empty reads tolerated before a source is declared stuck
const maxIdleReads = 64

// Buffer is a fully decoded clip held in memory as interleaved float32.
// A Buffer is immutable once built and may be shared by many voices.
type Buffer struct {
	Samples    []float32
	SampleRate int
	Channels   int
}

// Frames returns the number of sample frames in the clip.
func (b *Buffer) Frames() int {
	if b == nil || b.Channels <= 0 {
		return 0
	}
	return len(b.Samples) / b.Channels
}

// Duration returns the playback length of the clip.
func (b *Buffer) Duration() time.Duration {
	if b == nil || b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(b.Frames()) * time.Second / time.Duration(b.SampleRate)
}

// FrameAt converts a playback offset into a frame index, clamped to the
// clip bounds.
func (b *Buffer) FrameAt(offset time.Duration) int {
	if b == nil || offset <= 0 {
		return 0
	}
	f := int(offset * time.Duration(b.SampleRate) / time.Second)

	return min(f, b.Frames())
}

// Conform wraps src so it yields the given rate and channel layout.
// Stages that would be no-ops are skipped.
func Conform(src Source, sampleRate, channels int) Source {
	out := src
	if sampleRate > 0 && out.SampleRate() != sampleRate {
		out = NewResampler(out, sampleRate)
	}
	if channels > 0 && out.Channels() != channels {
		out = NewChannelMixer(out, channels)
	}
	return out
}

// ReadBuffer drains src into a Buffer, reading bufferSize values at a time.
// When src reports its length through FrameCounter the sample slice is
// allocated once.
func ReadBuffer(src Source, bufferSize int) (*Buffer, error) {
	channels := src.Channels()
	if channels <= 0 {
		return nil, ErrInvalidChannels
	}
	if bufferSize < channels {
		bufferSize = channels
	}
	bufferSize -= bufferSize % channels

	var samples []float32
	if fc, ok := src.(FrameCounter); ok {
		if n := fc.Frames(); n > 0 {
			samples = make([]float32, 0, n*int64(channels))
		}
	}

	chunk := make([]float32, bufferSize)
	idle := 0
	for {
		n, err := src.ReadSamples(chunk)
		samples = append(samples, chunk[:n]...)

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}

		if n > 0 {
			idle = 0
		} else if idle++; idle > maxIdleReads {
			return nil, io.ErrNoProgress
		}
	}

	if len(samples) < channels {
		return nil, ErrEmptyBuffer
	}

	return &Buffer{
		Samples:    samples[:len(samples)-len(samples)%channels],
		SampleRate: src.SampleRate(),
		Channels:   channels,
	}, nil
}
