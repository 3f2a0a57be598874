// SPDX-License-Identifier: EPL-2.0

package sndbridge

import (
	"errors"
	"testing"
	"time"

	"github.com/ik5/sndbridge/audio"
	"github.com/ik5/sndbridge/internal/audiotest"
)

func TestDecodePCM16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rate     int
		channels int
		minLen   int
		maxLen   int
	}{
		{"same layout", 8000, 1, 8000, 8000},
		{"upmix", 8000, 2, 16000, 16000},
		{"downsample", 4000, 1, 3980, 4020},
	}
	clip := audiotest.ToneWAV(8000, 1, time.Second)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pcm, err := DecodePCM16(nil, clip, tt.rate, tt.channels)
			if err != nil {
				t.Fatalf("DecodePCM16() error = %v", err)
			}
			if len(pcm) < tt.minLen || len(pcm) > tt.maxLen {
				t.Errorf("len = %d, want %d..%d", len(pcm), tt.minLen, tt.maxLen)
			}
			if len(pcm)%tt.channels != 0 {
				t.Errorf("len %d is not whole frames of %d channels", len(pcm), tt.channels)
			}
		})
	}
}

func TestDecodePCM16_Unknown(t *testing.T) {
	t.Parallel()

	if _, err := DecodePCM16(nil, []byte("nope"), 8000, 1); !errors.Is(err, audio.ErrUnknownFormat) {
		t.Errorf("error = %v, want ErrUnknownFormat", err)
	}
}

func BenchmarkDecodePCM16(b *testing.B) {
	clip := audiotest.ToneWAV(44100, 2, time.Second)

	b.ReportAllocs()
	for b.Loop() {
		if _, err := DecodePCM16(nil, clip, 8000, 1); err != nil {
			b.Fatal(err)
		}
	}
}
