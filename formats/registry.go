// SPDX-License-Identifier: EPL-2.0

// Package formats wires every bundled decoder into an audio.Registry.
package formats

import (
	"github.com/ik5/sndbridge/audio"
	"github.com/ik5/sndbridge/formats/aiff"
	"github.com/ik5/sndbridge/formats/mp3"
	"github.com/ik5/sndbridge/formats/vorbis"
	"github.com/ik5/sndbridge/formats/wav"
)

// NewRegistry returns a registry that knows WAV, AIFF, Ogg Vorbis and MP3,
// keyed by the names audio.Sniff reports.
func NewRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register(audio.FormatWAV, wav.Decoder{})
	r.Register(audio.FormatAIFF, aiff.Decoder{})
	r.Register(audio.FormatVorbis, vorbis.Decoder{})
	r.Register(audio.FormatMP3, mp3.Decoder{})

	return r
}
