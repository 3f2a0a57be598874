// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"time"

	"github.com/ik5/sndbridge/audio"
	"github.com/ik5/sndbridge/backend"
	"github.com/ik5/sndbridge/utils"
)

// music is the single looping background track.
type music struct {
	current SoundID
	// playing is the caller's intent, set before any fade completes.
	playing bool

	played  time.Duration
	paused  time.Duration
	stamped bool

	buf    *audio.Buffer
	source backend.Source
	gain   backend.Gain
	fade   fader
	queued *Task

	// request invalidates decode waits of superseded plays.
	request uint64
	waiting bool
}

// MusicStatus is a snapshot of the music track.
type MusicStatus struct {
	Current SoundID
	Playing bool
	// Audible is true while a voice exists, including during a fade out.
	Audible bool
	Fading  bool
	Queued  bool
}

// PlayMusic switches the music to id. Playing the current track again
// does nothing unless it is fading out, which reverses the fade.
func (e *Engine) PlayMusic(id SoundID, fadeIn time.Duration) error {
	return e.musicCall(func() error { return e.playMusic(id, fadeIn) })
}

// PauseMusic fades the music out and keeps its position.
func (e *Engine) PauseMusic(fadeOut time.Duration) error {
	return e.musicCall(func() error { e.pauseMusic(fadeOut); return nil })
}

// StopMusic fades the music out and rewinds it.
func (e *Engine) StopMusic(fadeOut time.Duration) error {
	return e.musicCall(func() error { e.stopMusic(fadeOut); return nil })
}

// ResumeMusic continues the music where it was paused.
func (e *Engine) ResumeMusic(fadeIn time.Duration) error {
	return e.musicCall(func() error { return e.resumeMusic(fadeIn) })
}

// QueueMusic fades the current track out, then plays id. The two never
// overlap. A later queue replaces a pending one.
func (e *Engine) QueueMusic(id SoundID, fadeOut, fadeIn time.Duration) error {
	return e.musicCall(func() error { return e.queueMusic(id, fadeOut, fadeIn) })
}

// MusicPlaying reports whether music is meant to be playing. It turns
// true or false as soon as a call is made, not when its fade ends.
func (e *Engine) MusicPlaying() (bool, error) {
	var playing bool
	err := e.call(func() { playing = e.music.playing })
	return playing, err
}

// Music returns a snapshot of the music state.
func (e *Engine) Music() (MusicStatus, error) {
	var st MusicStatus
	err := e.call(func() {
		m := e.music
		st = MusicStatus{
			Current: m.current,
			Playing: m.playing,
			Audible: m.source != nil,
			Fading:  m.fade.pending(),
			Queued:  m.queued.Pending(),
		}
	})
	return st, err
}

func (e *Engine) musicCall(fn func() error) error {
	var err error
	if cerr := e.call(func() { err = fn() }); cerr != nil {
		return cerr
	}
	return err
}

func (e *Engine) playMusic(id SoundID, fadeIn time.Duration) error {
	m := e.music
	if !e.store.has(id) {
		e.log.Warn().Uint32("sound", uint32(id)).Msg("play of unknown music")
		return ErrNotFound
	}
	m.queued.Cancel()

	if id == m.current && (m.source != nil || m.waiting) {
		if m.fade.pending() {
			return e.resumeMusic(fadeIn)
		}
		m.playing = true
		return nil
	}

	e.dropMusicVoice()
	m.current = id
	m.buf = nil
	m.playing = true
	m.played, m.paused, m.stamped = 0, 0, false
	m.request++
	m.waiting = true

	req := m.request
	return e.store.whenReady(id, func(buf *audio.Buffer) {
		if m.request != req || !m.waiting {
			return
		}
		m.waiting = false
		m.buf = buf
		e.startMusic(0, fadeIn)
	})
}

func (e *Engine) pauseMusic(fadeOut time.Duration) {
	m := e.music
	m.queued.Cancel()
	m.playing = false

	if m.waiting {
		m.waiting = false
		m.request++
		return
	}
	if m.source == nil || m.fade.pending() {
		return
	}

	m.fade.fade(e.sched, m.gain, m.gain.Value(), 0, fadeOut, func() {
		e.dropMusicVoice()
		if m.stamped {
			m.paused = e.out.Now() - m.played
		}
	})
}

func (e *Engine) stopMusic(fadeOut time.Duration) {
	m := e.music
	m.played, m.paused, m.stamped = 0, 0, false
	e.pauseMusic(fadeOut)
}

func (e *Engine) resumeMusic(fadeIn time.Duration) error {
	m := e.music
	if m.current == 0 {
		return nil
	}
	m.queued.Cancel()
	if m.buf == nil {
		return e.playMusic(m.current, fadeIn)
	}
	m.playing = true

	if m.source != nil {
		if m.fade.cancel() {
			m.gain.CancelScheduled()
			m.gain.LinearRampTo(1, fadeIn)
		}
		return nil
	}
	e.startMusic(m.paused, fadeIn)
	return nil
}

func (e *Engine) queueMusic(id SoundID, fadeOut, fadeIn time.Duration) error {
	m := e.music
	if !e.store.has(id) {
		e.log.Warn().Uint32("sound", uint32(id)).Msg("queue of unknown music")
		return ErrNotFound
	}
	if m.source == nil {
		fadeOut = 0
	}
	e.stopMusic(fadeOut)
	m.playing = true

	// The fade completion may fire after this task; the queued track
	// always starts on a fresh voice.
	m.queued = e.sched.after(fadeOut, func() {
		e.dropMusicVoice()
		if err := e.playMusic(id, fadeIn); err != nil {
			e.log.Warn().Err(err).Uint32("sound", uint32(id)).Msg("queued music not played")
		}
	})
	return nil
}

// startMusic creates a looping voice at offset into the current track.
func (e *Engine) startMusic(offset time.Duration, fadeIn time.Duration) {
	m := e.music
	gain := e.out.NewGain()
	gain.SetValue(0)
	gain.LinearRampTo(1, fadeIn)

	src, err := e.out.NewSource(m.buf, gain)
	if err != nil {
		e.log.Error().Err(err).Uint32("sound", uint32(m.current)).Msg("could not start music")
		return
	}
	src.SetLoop(true)

	offset = utils.ModDuration(offset, m.buf.Duration())
	if err := src.Start(offset); err != nil {
		e.log.Error().Err(err).Uint32("sound", uint32(m.current)).Msg("could not start music")
		return
	}
	m.source, m.gain = src, gain
	m.played = e.out.Now() - offset
	m.stamped = true
}

func (e *Engine) dropMusicVoice() {
	m := e.music
	m.fade.cancel()
	if src := m.source; src != nil {
		m.source, m.gain = nil, nil
		src.Stop()
	}
}

// haltMusic silences the music and clears intent and pending work.
func (e *Engine) haltMusic() {
	m := e.music
	m.queued.Cancel()
	m.queued = nil
	e.dropMusicVoice()
	m.playing = false
	m.waiting = false
	m.request++
}
