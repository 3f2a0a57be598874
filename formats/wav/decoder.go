// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	gowav "github.com/go-audio/wav"
	"github.com/ik5/sndbridge/audio"
	"github.com/ik5/sndbridge/formats/internal/intpcm"
)

// WAVE format tags accepted by the decoder.
const (
	formatPCM        = 0x0001
	formatExtensible = 0xFFFE
)

type Decoder struct{}

// Decode opens an integer PCM WAV stream. 8, 16, 24 and 32 bit samples
// are supported; 8-bit data is offset binary as the format requires.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := intpcm.Seekable(r)
	if err != nil {
		return nil, fmt.Errorf("reading wav data: %w", err)
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	if dec.WavAudioFormat != formatPCM && dec.WavAudioFormat != formatExtensible {
		return nil, fmt.Errorf("%w: format tag %#04x", ErrOnlyPCMSupported, dec.WavAudioFormat)
	}

	depth := int(dec.BitDepth)
	switch depth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, depth)
	}

	if dec.SampleRate == 0 {
		return nil, ErrUnsupportedWavLayout
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingData, err)
	}
	if dec.PCMChunk == nil {
		return nil, ErrMissingData
	}

	channels := int(dec.NumChans)
	frameBytes := int64(channels * depth / 8)

	return intpcm.New(dec, intpcm.Layout{
		SampleRate: int(dec.SampleRate),
		Channels:   channels,
		BitDepth:   depth,
		Unsigned:   depth == 8,
		Frames:     dec.PCMLen() / frameBytes,
	}), nil
}
