package audio

import (
	"errors"
	"io"
	"math"
	"testing"
)

func drain(t *testing.T, src Source, chunk int) []float32 {
	t.Helper()

	var out []float32
	buf := make([]float32, chunk)
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestResampler_Metadata(t *testing.T) {
	t.Parallel()

	r := NewResampler(newConstantSource(44100, 2, 100, 0), 8000)
	if r.SampleRate() != 8000 || r.Channels() != 2 {
		t.Errorf("Resampler = %d Hz x%d, want 8000 Hz x2", r.SampleRate(), r.Channels())
	}
	if r.Frames() != -1 {
		t.Errorf("Frames() = %d for a source of unknown length", r.Frames())
	}

	counted := NewResampler(countedSource{newConstantSource(48000, 1, 48000, 0)}, 24000)
	if counted.Frames() != 24000 {
		t.Errorf("Frames() = %d, want 24000", counted.Frames())
	}
}

func TestResampler_OutputLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		srcRate int
		dstRate int
	}{
		{"down 44.1k to 8k", 44100, 8000},
		{"down 48k to 16k", 48000, 16000},
		{"up 8k to 48k", 8000, 48000},
		{"up 22.05k to 44.1k", 22050, 44100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := newSineSource(tt.srcRate, 1, tt.srcRate, 440)
			out := drain(t, NewResampler(src, tt.dstRate), 1024)

			// the interpolation window drops a few source frames at the edges
			slack := tt.dstRate/1000 + 8
			if diff := len(out) - tt.dstRate; diff < -slack || diff > slack {
				t.Errorf("one second resampled to %d frames, want about %d", len(out), tt.dstRate)
			}
		})
	}
}

func TestResampler_PreservesConstant(t *testing.T) {
	t.Parallel()

	out := drain(t, NewResampler(newConstantSource(8000, 2, 400, 0.5), 12000), 64)
	if len(out) == 0 {
		t.Fatal("no samples produced")
	}
	for i, v := range out {
		if math.Abs(float64(v-0.5)) > 1e-3 {
			t.Fatalf("out[%d] = %v, want 0.5", i, v)
		}
	}
}

func TestResampler_InvalidDst(t *testing.T) {
	t.Parallel()

	r := NewResampler(newConstantSource(8000, 2, 10, 0), 16000)
	if _, err := r.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples(3) error = %v, want ErrInvalidDstSize", err)
	}
}

func TestResampler_ShortSources(t *testing.T) {
	t.Parallel()

	empty := NewResampler(newConstantSource(8000, 1, 0, 0), 16000)
	if n, err := empty.ReadSamples(make([]float32, 8)); n != 0 || err != io.EOF {
		t.Errorf("empty source = %d, %v; want 0, EOF", n, err)
	}

	single := drain(t, NewResampler(newConstantSource(8000, 1, 1, 0.25), 16000), 8)
	if len(single) == 0 || single[0] != 0.25 {
		t.Errorf("single frame source produced %v", single)
	}
}
