// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"context"
	"testing"
	"time"

	"github.com/ik5/sndbridge/backend"
	"github.com/ik5/sndbridge/internal/audiotest"
)

type rig struct {
	t     *testing.T
	e     *Engine
	out   *backend.Headless
	clock *audiotest.FakeClock
}

func newRig(t *testing.T, opts ...Option) *rig {
	t.Helper()

	return newRigOn(t, audiotest.NewFakeClock(), opts...)
}

func newRigOn(t *testing.T, clock *audiotest.FakeClock, opts ...Option) *rig {
	t.Helper()

	out := backend.NewHeadless(clock, 8000, 1)
	e := New(out, append([]Option{WithDecodeWorkers(1)}, opts...)...)
	t.Cleanup(func() { _ = e.Close() })

	return &rig{t: t, e: e, out: out, clock: clock}
}

// tone loads a decoded tone of the given length.
func (r *rig) tone(length time.Duration) SoundID {
	r.t.Helper()

	id, err := r.e.Load(audiotest.ToneWAV(8000, 1, length))
	if err != nil {
		r.t.Fatalf("Load() error = %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.e.WaitLoaded(ctx, id); err != nil {
		r.t.Fatalf("WaitLoaded(%d) error = %v", id, err)
	}
	return id
}

// advance moves the clock and waits until the loop has handled every
// callback that fell due.
func (r *rig) advance(d time.Duration) {
	r.t.Helper()

	r.clock.Advance(d)
	r.sync()
}

func (r *rig) sync() {
	r.t.Helper()

	if err := r.e.call(func() {}); err != nil {
		r.t.Fatalf("sync: %v", err)
	}
}

func (r *rig) play(id SoundID, looping bool, fadeIn time.Duration) Handle {
	r.t.Helper()

	h, err := r.e.Play(id, looping, fadeIn)
	if err != nil {
		r.t.Fatalf("Play(%d) error = %v", id, err)
	}
	return h
}

func (r *rig) playing(h Handle) bool {
	r.t.Helper()

	ok, err := r.e.IsPlaying(h)
	if err != nil {
		r.t.Fatalf("IsPlaying(%v) error = %v", h, err)
	}
	return ok
}

// lastVoice is the most recently created source.
func (r *rig) lastVoice() *backend.HeadlessVoice {
	r.t.Helper()

	voices := r.out.Voices()
	if len(voices) == 0 {
		r.t.Fatal("no voice was created")
	}
	return voices[len(voices)-1]
}

func toneClip(length time.Duration) []byte {
	return audiotest.ToneWAV(8000, 1, length)
}
