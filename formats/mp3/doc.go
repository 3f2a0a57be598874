// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG audio layer III.
//
// This package uses github.com/hajimehoshi/go-mp3.
//
// # Supported Formats
//
// The decoder handles:
//   - MPEG-1 and MPEG-2 layer III
//   - Constant and variable bitrates
//
// # Decoding MP3 Clips
//
// Decoder implements audio.Decoder:
//
//	src, err := mp3.Decoder{}.Decode(bytes.NewReader(clip))
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
// go-mp3 always produces 16-bit stereo, so the source reports:
//   - Sample format: float32 in [-1.0, 1.0]
//   - Channels: 2, even for mono streams
//   - Sample rate: that of the stream
//
// Use audio.Conform to reach the output layout:
//
//	out := audio.Conform(src, 8000, 1)
//
// # Length
//
// When the input is seekable go-mp3 knows the decoded length up front,
// and the source reports it through audio.FrameCounter. Otherwise the
// length is unknown and buffers grow while reading.
//
// Reads always cover whole stereo frames; a trailing partial frame in
// the stream is dropped.
//
// # Limitations
//
//   - Decoding only; there is no MP3 encoder
//   - Output is always stereo
package mp3
