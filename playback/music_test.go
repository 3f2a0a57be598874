// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"errors"
	"testing"
	"time"

	"github.com/ik5/sndbridge/internal/audiotest"
)

func (r *rig) music() MusicStatus {
	r.t.Helper()

	st, err := r.e.Music()
	if err != nil {
		r.t.Fatal(err)
	}
	return st
}

func TestMusic_QueueIsSequential(t *testing.T) {
	t.Parallel()

	r := newRig(t)
	a := r.tone(2 * time.Second)
	b := r.tone(time.Second)

	if err := r.e.PlayMusic(a, 0); err != nil {
		t.Fatal(err)
	}
	r.advance(time.Second)
	trackA := r.lastVoice()

	if err := r.e.QueueMusic(b, 300*time.Millisecond, 300*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if st := r.music(); !st.Playing || !st.Queued || st.Current != a {
		t.Fatalf("after QueueMusic status = %+v", st)
	}

	r.advance(299 * time.Millisecond)
	if !trackA.Playing() {
		t.Fatal("track A stopped before its fade out ended")
	}
	if n := len(r.out.Voices()); n != 1 {
		t.Fatalf("track B started while A was still fading (%d voices)", n)
	}
	if playing, _ := r.e.MusicPlaying(); !playing {
		t.Fatal("MusicPlaying() false during the crossfade")
	}

	r.advance(time.Millisecond)
	if trackA.Playing() {
		t.Fatal("track A still playing after the fade out")
	}
	st := r.music()
	if st.Current != b || !st.Playing || !st.Audible || st.Queued {
		t.Fatalf("after the handover status = %+v", st)
	}
	trackB := r.lastVoice()
	if trackB == trackA || !trackB.Loop() || trackB.StartOffset() != 0 {
		t.Error("track B should be a new looping voice starting at 0")
	}
	if v := trackB.Gain().Value(); v != 0 {
		t.Errorf("track B gain at start = %v, want 0", v)
	}
	r.advance(300 * time.Millisecond)
	if v := trackB.Gain().Value(); v != 1 {
		t.Errorf("track B gain after fade in = %v, want 1", v)
	}
}

func TestMusic_QueueRestartsRegardlessOfTimerOrder(t *testing.T) {
	t.Parallel()

	clocks := []struct {
		name  string
		clock func() *audiotest.FakeClock
	}{
		{"oldest first", audiotest.NewFakeClock},
		{"newest first", audiotest.NewFakeClockNewestFirst},
	}
	for _, c := range clocks {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			r := newRigOn(t, c.clock())
			a := r.tone(2 * time.Second)
			if err := r.e.PlayMusic(a, 0); err != nil {
				t.Fatal(err)
			}
			r.advance(time.Second)
			old := r.lastVoice()

			if err := r.e.QueueMusic(a, 300*time.Millisecond, 300*time.Millisecond); err != nil {
				t.Fatal(err)
			}
			r.advance(299 * time.Millisecond)
			if !old.Playing() || len(r.out.Voices()) != 1 {
				t.Fatal("queued track started before the fade out ended")
			}

			r.advance(time.Millisecond)
			if old.Playing() {
				t.Fatal("old voice kept playing after the queued fade out")
			}
			if n := len(r.out.Voices()); n != 2 {
				t.Fatalf("voices = %d, want the queued track restarted on a new voice", n)
			}
			next := r.lastVoice()
			if !next.Playing() || next.StartOffset() != 0 {
				t.Errorf("queued voice playing=%v offset=%v, want playing from 0", next.Playing(), next.StartOffset())
			}
			if st := r.music(); st.Current != a || !st.Playing || !st.Audible || st.Fading || st.Queued {
				t.Errorf("status after the handover = %+v", st)
			}
		})
	}
}

func TestMusic_QueueWithoutVoiceIsImmediate(t *testing.T) {
	t.Parallel()

	r := newRig(t)
	b := r.tone(time.Second)

	if err := r.e.QueueMusic(b, time.Second, 0); err != nil {
		t.Fatal(err)
	}
	if st := r.music(); st.Current != b || !st.Audible {
		t.Errorf("queue with nothing playing status = %+v, want b audible", st)
	}
}

func TestMusic_NewerQueueWins(t *testing.T) {
	t.Parallel()

	r := newRig(t)
	a := r.tone(time.Second)
	b := r.tone(time.Second)
	c := r.tone(time.Second)

	if err := r.e.PlayMusic(a, 0); err != nil {
		t.Fatal(err)
	}
	if err := r.e.QueueMusic(b, 500*time.Millisecond, 0); err != nil {
		t.Fatal(err)
	}
	r.advance(100 * time.Millisecond)
	if err := r.e.QueueMusic(c, 500*time.Millisecond, 0); err != nil {
		t.Fatal(err)
	}

	r.advance(400 * time.Millisecond)
	if st := r.music(); st.Current != a || st.Audible || !st.Queued {
		t.Fatalf("status when the replaced queue was due = %+v, want %d silent with a queued play", st, a)
	}
	r.advance(100 * time.Millisecond)
	if st := r.music(); st.Current != c || !st.Audible {
		t.Errorf("final status = %+v, want %d audible", st, c)
	}
}

func TestMusic_PauseResume(t *testing.T) {
	t.Parallel()

	r := newRig(t)
	a := r.tone(2 * time.Second)
	if err := r.e.PlayMusic(a, 0); err != nil {
		t.Fatal(err)
	}

	r.advance(500 * time.Millisecond)
	if err := r.e.PauseMusic(100 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if playing, _ := r.e.MusicPlaying(); playing {
		t.Error("MusicPlaying() should turn false as soon as pause is called")
	}
	if st := r.music(); !st.Audible || !st.Fading {
		t.Errorf("status during pause fade = %+v", st)
	}
	if err := r.e.PauseMusic(time.Second); err != nil {
		t.Fatal(err)
	}

	r.advance(100 * time.Millisecond)
	if st := r.music(); st.Audible {
		t.Fatal("music still audible after the pause fade")
	}

	r.advance(time.Second)
	if err := r.e.ResumeMusic(0); err != nil {
		t.Fatal(err)
	}
	if playing, _ := r.e.MusicPlaying(); !playing {
		t.Error("MusicPlaying() false after resume")
	}
	if off := r.lastVoice().StartOffset(); off != 600*time.Millisecond {
		t.Errorf("resume offset = %v, want 600ms", off)
	}
}

func TestMusic_StopRewinds(t *testing.T) {
	t.Parallel()

	r := newRig(t)
	a := r.tone(2 * time.Second)
	if err := r.e.PlayMusic(a, 0); err != nil {
		t.Fatal(err)
	}
	r.advance(700 * time.Millisecond)

	if err := r.e.StopMusic(200 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	r.advance(200 * time.Millisecond)
	if st := r.music(); st.Audible || st.Playing {
		t.Fatalf("status after stop = %+v", st)
	}

	if err := r.e.ResumeMusic(0); err != nil {
		t.Fatal(err)
	}
	if off := r.lastVoice().StartOffset(); off != 0 {
		t.Errorf("resume after stop offset = %v, want 0", off)
	}
}

func TestMusic_PlaySameTrack(t *testing.T) {
	t.Parallel()

	r := newRig(t)
	a := r.tone(time.Second)
	if err := r.e.PlayMusic(a, 0); err != nil {
		t.Fatal(err)
	}

	if err := r.e.PlayMusic(a, 0); err != nil {
		t.Fatal(err)
	}
	if n := len(r.out.Voices()); n != 1 {
		t.Fatalf("replaying the live track created %d voices", n)
	}

	if err := r.e.PauseMusic(200 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	r.advance(100 * time.Millisecond)
	if err := r.e.PlayMusic(a, 100*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	r.advance(time.Second)

	st := r.music()
	if !st.Audible || st.Fading || !st.Playing {
		t.Errorf("replaying a fading track should reverse the fade, status = %+v", st)
	}
	if n := len(r.out.Voices()); n != 1 {
		t.Errorf("voices = %d, want the first voice kept", n)
	}
}

func TestMusic_SwitchTrack(t *testing.T) {
	t.Parallel()

	r := newRig(t)
	a := r.tone(time.Second)
	b := r.tone(time.Second)
	if err := r.e.PlayMusic(a, 0); err != nil {
		t.Fatal(err)
	}
	first := r.lastVoice()

	if err := r.e.PlayMusic(b, 0); err != nil {
		t.Fatal(err)
	}
	if first.Playing() {
		t.Error("previous track kept playing after a switch")
	}
	if st := r.music(); st.Current != b || !st.Audible {
		t.Errorf("status = %+v, want %d audible", st, b)
	}
}

func TestMusic_UnknownTrack(t *testing.T) {
	t.Parallel()

	r := newRig(t)
	if err := r.e.PlayMusic(5, 0); !errors.Is(err, ErrNotFound) {
		t.Errorf("PlayMusic(5) error = %v, want ErrNotFound", err)
	}
	if err := r.e.QueueMusic(5, 0, 0); !errors.Is(err, ErrNotFound) {
		t.Errorf("QueueMusic(5) error = %v, want ErrNotFound", err)
	}
	if err := r.e.ResumeMusic(0); err != nil {
		t.Errorf("ResumeMusic() with no track error = %v", err)
	}
	if playing, _ := r.e.MusicPlaying(); playing {
		t.Error("MusicPlaying() true with no track")
	}
}

func TestMusic_PauseWhileDecoding(t *testing.T) {
	t.Parallel()

	r := newRig(t)
	id, err := r.e.Load(toneClip(3 * time.Second))
	if err != nil {
		t.Fatal(err)
	}
	if err := r.e.PlayMusic(id, 0); err != nil {
		t.Fatal(err)
	}
	if err := r.e.PauseMusic(0); err != nil {
		t.Fatal(err)
	}
	if err := r.e.WaitLoaded(t.Context(), id); err != nil {
		t.Fatal(err)
	}

	if st := r.music(); st.Audible || st.Playing {
		t.Errorf("paused music started after decode, status = %+v", st)
	}
}
