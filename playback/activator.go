// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"time"

	"github.com/ik5/sndbridge/audio"
	"github.com/ik5/sndbridge/backend"
	"github.com/ik5/sndbridge/utils"
)

// activate starts ps once its sound is decoded. The slot must not be
// free; it waits in the pending state until the buffer arrives. A later
// activate supersedes the wait of an earlier one, so its fade-in wins.
func (e *Engine) activate(ps *playingSound, fadeIn time.Duration) {
	ps.state = slotPending
	if ps.buf != nil {
		e.startVoice(ps, ps.buf, fadeIn)
		return
	}

	ps.activation++
	gen, act := ps.gen, ps.activation
	err := e.store.whenReady(ps.sound, func(buf *audio.Buffer) {
		if ps.gen != gen || ps.activation != act || ps.state != slotPending {
			return
		}
		e.startVoice(ps, buf, fadeIn)
	})
	if err != nil {
		e.log.Warn().
			Uint32("sound", uint32(ps.sound)).
			Uint32("slot", ps.slot).
			Msg("sound is gone, dropping playback")
		e.table.release(ps)
	}
}

// startVoice builds fresh nodes for ps and starts them at the stored
// offset, wrapped to the clip length.
func (e *Engine) startVoice(ps *playingSound, buf *audio.Buffer, fadeIn time.Duration) {
	gain := e.out.NewGain()
	gain.SetValue(0)
	gain.LinearRampTo(1, fadeIn)

	src, err := e.out.NewSource(buf, gain)
	if err != nil {
		e.voiceFailed(ps, err)
		return
	}
	src.SetLoop(ps.looping)

	gen := ps.gen
	src.OnEnded(func() {
		e.post(func() { e.voiceEnded(ps, gen, src) })
	})

	offset := utils.ModDuration(ps.offset, buf.Duration())
	if err := src.Start(offset); err != nil {
		e.voiceFailed(ps, err)
		return
	}

	ps.buf = buf
	ps.source, ps.gain = src, gain
	ps.started = e.out.Now() - offset
	ps.offset = 0
	ps.state = slotActive
}

func (e *Engine) voiceFailed(ps *playingSound, err error) {
	e.log.Error().Err(err).
		Uint32("sound", uint32(ps.sound)).
		Uint32("slot", ps.slot).
		Msg("could not start voice")
	e.table.release(ps)
}

// voiceEnded frees the slot after a natural end. Events from replaced
// nodes, reused slots and looping voices are ignored.
func (e *Engine) voiceEnded(ps *playingSound, gen uint16, src backend.Source) {
	if ps.gen != gen || ps.source != src || ps.state != slotActive || ps.looping {
		return
	}
	e.log.Debug().
		Uint32("sound", uint32(ps.sound)).
		Uint32("slot", ps.slot).
		Msg("sound finished")
	e.table.release(ps)
}

// finishPause runs when a pause fade completes.
func (e *Engine) finishPause(ps *playingSound) {
	src := ps.source
	ps.offset = e.out.Now() - ps.started
	ps.source, ps.gain = nil, nil
	ps.state = slotPaused
	if src != nil {
		src.Stop()
	}
}
