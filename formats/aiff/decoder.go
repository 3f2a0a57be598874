// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	"github.com/ik5/sndbridge/audio"
	"github.com/ik5/sndbridge/formats/internal/intpcm"
)

type Decoder struct{}

// Decode opens a big-endian integer PCM AIFF stream of 8, 16, 24 or 32
// bits per sample.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := intpcm.Seekable(r)
	if err != nil {
		return nil, fmt.Errorf("reading aiff data: %w", err)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	depth := int(dec.BitDepth)
	switch depth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, depth)
	}

	format := dec.Format()
	if format == nil || format.NumChannels <= 0 || format.SampleRate <= 0 {
		return nil, ErrUnsupportedAiffLayout
	}

	return intpcm.New(dec, intpcm.Layout{
		SampleRate: format.SampleRate,
		Channels:   format.NumChannels,
		BitDepth:   depth,
		Frames:     int64(dec.NumSampleFrames),
	}), nil
}
