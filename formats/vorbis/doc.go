// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis audio.
//
// This package uses github.com/jfreymuth/oggvorbis.
//
// # Supported Formats
//
// The decoder handles:
//   - Ogg Vorbis in any channel count
//   - Variable bitrates
//   - Any sample rate
//
// # Decoding Vorbis Clips
//
// Decoder implements audio.Decoder:
//
//	src, err := vorbis.Decoder{}.Decode(bytes.NewReader(clip))
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
//
// # Output Format
//
// Vorbis decodes to float32 natively, so samples pass through unchanged:
//   - Sample format: float32 in [-1.0, 1.0]
//   - Channels: that of the stream
//   - Sample rate: that of the stream
//
// Stereo samples are interleaved:
//
//	[L0, R0, L1, R1, L2, R2, ...]
//
// # Length
//
// Seekable inputs report their length in frames through
// audio.FrameCounter. Reads are trimmed to whole frames. A few empty
// packets in a row make ReadSamples return 0 with no error;
// audio.ReadBuffer turns a long run of those into io.ErrNoProgress.
//
// # Limitations
//
//   - Decoding only; there is no Vorbis encoder
//   - Ogg Opus and FLAC-in-Ogg are not recognized
package vorbis
