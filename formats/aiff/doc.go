// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF (Audio Interchange File Format) audio.
//
// This package uses github.com/go-audio/aiff to parse the container and
// shares its integer PCM conversion with the wav package.
//
// # Supported Formats
//
// Currently supported:
//   - AIFF and uncompressed AIFC
//   - 8, 16, 24 and 32 bits per sample
//   - Any channel count and sample rate
//
// # Decoding AIFF Clips
//
// Decoder implements audio.Decoder:
//
//	src, err := aiff.Decoder{}.Decode(bytes.NewReader(clip))
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
//
// Samples come out interleaved as float32 in [-1.0, 1.0]. The frame
// count from the COMM chunk is exposed through audio.FrameCounter.
//
// go-audio needs an io.ReadSeeker; plain readers are buffered in memory
// first.
//
// # Error Handling
//
// The package defines:
//   - ErrNotAiffFile: the input is not a FORM/AIFF stream
//   - ErrUnsupportedBitDepth: the sample size is not 8/16/24/32
//   - ErrUnsupportedAiffLayout: the COMM chunk has no usable format
//
// Example:
//
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    // try another decoder
//	}
//
// In practice audio.Registry sniffs the FORM header first, so the
// decoder only sees AIFF input.
//
// # AIFF vs. WAV
//
// AIFF is close to WAV but:
//   - Samples are big-endian (WAV is little-endian)
//   - The sample rate is an 80-bit extended float
//   - 8-bit samples are signed (WAV 8-bit is unsigned)
//
// The decoder handles these differences; callers see the same float32
// stream either way.
//
// # Limitations
//
//   - Decoding only; there is no AIFF writer
//   - Compressed AIFC variants are not supported
package aiff
