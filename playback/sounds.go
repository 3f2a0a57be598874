// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"errors"
	"time"
)

// Play starts a new instance of id and returns its handle. The sound may
// still be decoding; it starts as soon as it is ready.
func (e *Engine) Play(id SoundID, looping bool, fadeIn time.Duration) (Handle, error) {
	var (
		h   Handle
		err error
	)
	if cerr := e.call(func() { h, err = e.play(id, looping, fadeIn) }); cerr != nil {
		return Handle{}, cerr
	}
	return h, err
}

func (e *Engine) play(id SoundID, looping bool, fadeIn time.Duration) (Handle, error) {
	if !e.store.has(id) {
		e.log.Warn().Uint32("sound", uint32(id)).Msg("play of unknown sound")
		return Handle{}, ErrNotFound
	}
	ps := e.table.allocate(id, looping)
	h := ps.handle()
	e.activate(ps, fadeIn)
	return h, nil
}

// Loop sets the loop flag. A stale handle starts a new instance and the
// returned handle replaces it.
func (e *Engine) Loop(h Handle, looping bool) (Handle, error) {
	out, err := h, error(nil)
	if cerr := e.call(func() {
		ps, lerr := e.lookup(h)
		switch {
		case errors.Is(lerr, ErrStale):
			out, err = e.play(h.Sound, looping, 0)
		case lerr != nil:
			err = lerr
		default:
			ps.looping = looping
			if ps.source != nil {
				ps.source.SetLoop(looping)
			}
		}
	}); cerr != nil {
		return h, cerr
	}
	if err != nil {
		return h, err
	}
	return out, nil
}

// Stop ends an instance. With finish set, an active voice plays out its
// current pass first and the slot is freed at its natural end.
func (e *Engine) Stop(h Handle, finish bool) error {
	var err error
	if cerr := e.call(func() {
		ps, lerr := e.lookup(h)
		if lerr != nil {
			err = dropStale(lerr)
			return
		}

		if ps.state == slotActive {
			ps.looping = false
			if finish && !ps.fade.pending() {
				ps.source.SetLoop(false)
				return
			}
		}
		e.table.release(ps)
	}); cerr != nil {
		return cerr
	}
	return err
}

// Pause fades an instance out and keeps its position for Resume.
// Pausing a paused or already fading instance does nothing.
func (e *Engine) Pause(h Handle, fadeOut time.Duration) error {
	var err error
	if cerr := e.call(func() {
		ps, lerr := e.lookup(h)
		if lerr != nil {
			err = dropStale(lerr)
			return
		}

		switch ps.state {
		case slotPending:
			ps.state = slotPaused
			ps.offset = 0
		case slotActive:
			if ps.fade.pending() {
				return
			}
			ps.fade.fade(e.sched, ps.gain, ps.gain.Value(), 0, fadeOut, func() {
				e.finishPause(ps)
			})
		}
	}); cerr != nil {
		return cerr
	}
	return err
}

// Resume continues a paused instance or reverses a pause fade. A stale
// handle starts a new instance and the returned handle replaces it.
func (e *Engine) Resume(h Handle, fadeIn time.Duration) (Handle, error) {
	out, err := h, error(nil)
	if cerr := e.call(func() {
		ps, lerr := e.lookup(h)
		switch {
		case errors.Is(lerr, ErrStale):
			out, err = e.play(h.Sound, false, fadeIn)
			return
		case lerr != nil:
			err = lerr
			return
		}

		switch ps.state {
		case slotPaused:
			e.activate(ps, fadeIn)
		case slotActive:
			if ps.fade.cancel() {
				ps.gain.CancelScheduled()
				ps.gain.LinearRampTo(1, fadeIn)
			}
		}
	}); cerr != nil {
		return h, cerr
	}
	if err != nil {
		return h, err
	}
	return out, nil
}

// IsPlaying reports whether the instance is audible or fading out. A
// stale handle reports false.
func (e *Engine) IsPlaying(h Handle) (bool, error) {
	return e.query(h, func(ps *playingSound) bool { return ps.state == slotActive })
}

// IsLooping reports the instance's loop flag.
func (e *Engine) IsLooping(h Handle) (bool, error) {
	return e.query(h, func(ps *playingSound) bool { return ps.looping })
}

func (e *Engine) query(h Handle, fn func(*playingSound) bool) (bool, error) {
	var (
		ok  bool
		err error
	)
	if cerr := e.call(func() {
		ps, lerr := e.lookup(h)
		if lerr != nil {
			err = dropStale(lerr)
			return
		}
		ok = fn(ps)
	}); cerr != nil {
		return false, cerr
	}
	return ok, err
}

// lookup resolves h and logs handles that never existed.
func (e *Engine) lookup(h Handle) (*playingSound, error) {
	ps, err := e.table.lookup(h)
	if errors.Is(err, ErrNotFound) {
		e.log.Warn().
			Uint32("slot", h.Slot).
			Uint32("sound", uint32(h.Sound)).
			Msg("handle does not exist")
	}
	return ps, err
}

func dropStale(err error) error {
	if errors.Is(err, ErrStale) {
		return nil
	}
	return err
}
