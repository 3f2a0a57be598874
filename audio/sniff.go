// SPDX-License-Identifier: EPL-2.0

package audio

import "bytes"

// Format keys understood by Sniff.
const (
	FormatWAV    = "wav"
	FormatAIFF   = "aiff"
	FormatVorbis = "ogg"
	FormatMP3    = "mp3"
)

var (
	magicRIFF = []byte("RIFF")
	magicWAVE = []byte("WAVE")
	magicFORM = []byte("FORM")
	magicAIFF = []byte("AIFF")
	magicAIFC = []byte("AIFC")
	magicOggS = []byte("OggS")
	magicID3  = []byte("ID3")
)

// Sniff returns the format key of an encoded clip based on its leading
// bytes, or "" when nothing matches.
func Sniff(data []byte) string {
	switch {
	case len(data) >= 12 && bytes.Equal(data[0:4], magicRIFF) && bytes.Equal(data[8:12], magicWAVE):
		return FormatWAV
	case len(data) >= 12 && bytes.Equal(data[0:4], magicFORM) &&
		(bytes.Equal(data[8:12], magicAIFF) || bytes.Equal(data[8:12], magicAIFC)):
		return FormatAIFF
	case bytes.HasPrefix(data, magicOggS):
		return FormatVorbis
	case bytes.HasPrefix(data, magicID3):
		return FormatMP3
	case len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		// bare MPEG frame sync
		return FormatMP3
	}

	return ""
}
