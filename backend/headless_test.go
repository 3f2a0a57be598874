// SPDX-License-Identifier: EPL-2.0

package backend_test

import (
	"errors"
	"testing"
	"time"

	"github.com/ik5/sndbridge/audio"
	"github.com/ik5/sndbridge/backend"
	"github.com/ik5/sndbridge/internal/audiotest"
)

// oneSecond is a mono 8kHz clip lasting exactly one second.
func oneSecond() *audio.Buffer {
	return &audio.Buffer{Samples: make([]float32, 8000), SampleRate: 8000, Channels: 1}
}

func newHeadless(t *testing.T) (*backend.Headless, *audiotest.FakeClock) {
	t.Helper()

	clock := audiotest.NewFakeClock()
	return backend.NewHeadless(clock, 8000, 1), clock
}

func TestHeadless_NaturalEnd(t *testing.T) {
	t.Parallel()

	h, clock := newHeadless(t)
	src, err := h.NewSource(oneSecond(), nil)
	if err != nil {
		t.Fatalf("NewSource() error = %v", err)
	}

	ended := 0
	src.OnEnded(func() { ended++ })
	if err := src.Start(250 * time.Millisecond); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := src.Start(0); !errors.Is(err, backend.ErrAlreadyStarted) {
		t.Errorf("second Start() error = %v, want ErrAlreadyStarted", err)
	}

	clock.Advance(749 * time.Millisecond)
	if ended != 0 || len(h.Playing()) != 1 {
		t.Fatalf("ended early: ended=%d playing=%d", ended, len(h.Playing()))
	}

	clock.Advance(time.Millisecond)
	if ended != 1 || len(h.Playing()) != 0 {
		t.Errorf("at natural end ended=%d playing=%d", ended, len(h.Playing()))
	}

	src.Stop()
	if ended != 1 {
		t.Errorf("Stop() after end fired ended again")
	}
}

func TestHeadless_LoopUntilCleared(t *testing.T) {
	t.Parallel()

	h, clock := newHeadless(t)
	src, _ := h.NewSource(oneSecond(), nil)
	voice := src.(*backend.HeadlessVoice)

	ended := 0
	src.OnEnded(func() { ended++ })
	src.SetLoop(true)
	_ = src.Start(0)

	clock.Advance(3500 * time.Millisecond)
	if ended != 0 {
		t.Fatal("looping voice ended")
	}
	if got := voice.Position(); got != 500*time.Millisecond {
		t.Errorf("Position() = %v, want 500ms", got)
	}

	// finishes the current pass
	src.SetLoop(false)
	clock.Advance(499 * time.Millisecond)
	if ended != 0 {
		t.Fatal("ended before the pass finished")
	}
	clock.Advance(time.Millisecond)
	if ended != 1 {
		t.Errorf("ended = %d after the pass, want 1", ended)
	}
}

func TestHeadless_StopFiresOnce(t *testing.T) {
	t.Parallel()

	h, clock := newHeadless(t)

	idle, _ := h.NewSource(oneSecond(), nil)
	idleEnded := false
	idle.OnEnded(func() { idleEnded = true })
	idle.Stop()
	if idleEnded {
		t.Error("Stop() before Start() fired ended")
	}

	src, _ := h.NewSource(oneSecond(), nil)
	ended := 0
	src.OnEnded(func() { ended++ })
	_ = src.Start(0)
	src.Stop()
	src.Stop()
	clock.Advance(2 * time.Second)

	if ended != 1 {
		t.Errorf("ended fired %d times, want 1", ended)
	}
}

func TestHeadless_Layout(t *testing.T) {
	t.Parallel()

	h, _ := newHeadless(t)
	stereo := &audio.Buffer{Samples: make([]float32, 16), SampleRate: 8000, Channels: 2}
	if _, err := h.NewSource(stereo, nil); !errors.Is(err, backend.ErrLayout) {
		t.Errorf("NewSource(stereo) error = %v, want ErrLayout", err)
	}
	if _, err := h.NewSource(nil, nil); !errors.Is(err, backend.ErrLayout) {
		t.Errorf("NewSource(nil) error = %v, want ErrLayout", err)
	}
}

func TestHeadless_Close(t *testing.T) {
	t.Parallel()

	h, _ := newHeadless(t)
	src, _ := h.NewSource(oneSecond(), nil)
	ended := false
	src.OnEnded(func() { ended = true })
	_ = src.Start(0)

	if err := h.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !ended {
		t.Error("Close() did not stop the playing voice")
	}
	if _, err := h.NewSource(oneSecond(), nil); !errors.Is(err, backend.ErrClosed) {
		t.Errorf("NewSource() after Close error = %v, want ErrClosed", err)
	}
}

func TestHeadless_GainFollowsClock(t *testing.T) {
	t.Parallel()

	h, clock := newHeadless(t)
	g := h.NewGain()
	if g.Value() != 1 {
		t.Fatalf("new gain = %v, want 1", g.Value())
	}

	g.SetValue(0)
	g.LinearRampTo(1, 100*time.Millisecond)
	clock.Advance(25 * time.Millisecond)
	if got := g.Value(); got != 0.25 {
		t.Errorf("Value() = %v, want 0.25", got)
	}
}
