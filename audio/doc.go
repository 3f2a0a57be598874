// SPDX-License-Identifier: EPL-2.0

// Package audio holds the decode side of the engine: the pull-based
// Source stream, the format Registry, and the conversion stages that
// bring a decoded clip to the output device layout.
//
// # Source Interface
//
// Every decoder and processing stage is a Source:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Samples are interleaved float32 in [-1.0, 1.0]. ReadSamples returns the
// number of values written; io.EOF marks the end of the stream. Sources
// that know their length up front also implement FrameCounter, which lets
// ReadBuffer size its allocation once.
//
// # Format Detection
//
// Clips arrive as raw bytes with no name or MIME type, so the Registry
// picks a decoder by sniffing the container magic:
//
//	registry := formats.NewRegistry()
//	src, format, err := registry.Decode(data)
//
// RIFF/WAVE, FORM/AIFF, OggS and MPEG (ID3 or frame sync) are recognized.
//
// # Conversion
//
// Resampler changes the sample rate with Catmull-Rom interpolation and a
// light low-pass when downsampling. ChannelMixer folds or spreads the
// channel layout. Conform chains the two and skips stages that have
// nothing to do:
//
//	out := audio.Conform(src, 48000, 2)
//	buf, err := audio.ReadBuffer(out, 4096)
//
// The resulting Buffer is immutable and shared by every voice that plays
// the clip.
package audio
