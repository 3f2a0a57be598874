// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ChannelMixer remaps the channel layout of src. Folding down averages
// every source channel that maps onto an output channel; spreading up
// repeats source channels cyclically.
type ChannelMixer struct {
	src      Source
	channels int
	tmp      []float32
}

func NewChannelMixer(src Source, channels int) *ChannelMixer {
	return &ChannelMixer{
		src:      src,
		channels: channels,
		tmp:      make([]float32, 4096),
	}
}

// NewMonoMixer folds src down to a single channel.
func NewMonoMixer(src Source) *ChannelMixer {
	return NewChannelMixer(src, 1)
}

func (m *ChannelMixer) SampleRate() int { return m.src.SampleRate() }
func (m *ChannelMixer) Channels() int   { return m.channels }
func (m *ChannelMixer) BufSize() int    { return m.src.BufSize() }

func (m *ChannelMixer) Frames() int64 {
	if fc, ok := m.src.(FrameCounter); ok {
		return fc.Frames()
	}
	return -1
}

func (m *ChannelMixer) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (m *ChannelMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if m.channels <= 0 {
		return 0, ErrInvalidChannels
	}
	if len(dst)%m.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	in := m.src.Channels()
	if in == m.channels {
		return m.src.ReadSamples(dst)
	}

	frames := len(dst) / m.channels
	need := frames * in
	if cap(m.tmp) < need {
		m.tmp = make([]float32, max(need, 8192))
	}
	tmp := m.tmp[:need]

	n, err := m.src.ReadSamples(tmp)
	if n == 0 {
		return 0, err
	}
	frames = n / in

	switch {
	case in == 2 && m.channels == 1:
		for f := range frames {
			dst[f] = (tmp[2*f] + tmp[2*f+1]) * 0.5
		}
	case in == 1:
		for f := range frames {
			v := tmp[f]
			row := dst[f*m.channels : (f+1)*m.channels]
			for c := range row {
				row[c] = v
			}
		}
	case in < m.channels:
		for f := range frames {
			src := tmp[f*in : (f+1)*in]
			row := dst[f*m.channels : (f+1)*m.channels]
			for c := range row {
				row[c] = src[c%in]
			}
		}
	default:
		for f := range frames {
			src := tmp[f*in : (f+1)*in]
			row := dst[f*m.channels : (f+1)*m.channels]
			for c := range row {
				var sum float32
				var count int
				for k := c; k < in; k += m.channels {
					sum += src[k]
					count++
				}
				row[c] = sum / float32(count)
			}
		}
	}

	return frames * m.channels, err
}
