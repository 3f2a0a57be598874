// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and writes RIFF/WAVE audio.
//
// Decoding goes through github.com/go-audio/wav; writing is a small
// streaming encoder for 16-bit PCM.
//
// # Supported Formats
//
// The decoder accepts:
//   - Integer PCM (format tag 1) and WAVE_FORMAT_EXTENSIBLE (0xFFFE)
//   - 8, 16, 24 and 32 bits per sample
//   - Any channel count and sample rate
//
// 8-bit data is unsigned, as the format defines, and is re-centered
// before conversion. IEEE float and compressed tags are rejected.
//
// # Decoding WAV Clips
//
// Decoder implements audio.Decoder:
//
//	src, err := wav.Decoder{}.Decode(bytes.NewReader(clip))
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
//
// Samples come out interleaved as float32 in [-1.0, 1.0]. The source
// implements audio.FrameCounter, taken from the data chunk size, so
// audio.ReadBuffer can allocate the whole clip at once.
//
// Plain io.Readers are buffered in memory first, because go-audio needs
// to seek between chunks.
//
// # Writing WAV Files
//
// WriteWAV16 writes interleaved 16-bit PCM with a canonical 44-byte
// header:
//
//	pcm, _ := sndbridge.DecodePCM16(nil, clip, 48000, 2)
//	f, _ := os.Create("out.wav")
//	err := wav.WriteWAV16(f, 48000, 2, pcm)
//
// It writes straight to any io.Writer, so it works with a bytes.Buffer
// as well as a file. Test fixtures in this module are built that way.
//
// # Error Handling
//
// Decoding errors:
//   - ErrNotWavFile: the input is not a RIFF/WAVE stream
//   - ErrOnlyPCMSupported: the format tag is not integer PCM
//   - ErrUnsupportedBitDepth: the sample size is not 8/16/24/32
//   - ErrUnsupportedWavLayout: the fmt chunk has no usable sample rate
//   - ErrMissingData: no data chunk follows the header
//
// Writing errors:
//   - ErrInvalidChannels: the channel count is not positive
//   - ErrSampleLayout: the sample count is not whole frames
//
// Errors are wrapped with detail, so compare with errors.Is:
//
//	if errors.Is(err, wav.ErrOnlyPCMSupported) {
//	    // float or compressed WAV
//	}
//
// # File Format
//
// A WAV file consists of:
//   - RIFF header (12 bytes)
//   - fmt chunk: format tag, channels, sample rate, bit depth
//   - data chunk: little-endian interleaved samples
//
// Other chunks (LIST, fact, cue) are skipped by the decoder.
package wav
