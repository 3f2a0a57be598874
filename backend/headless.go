// SPDX-License-Identifier: EPL-2.0

package backend

import (
	"sync"
	"time"

	"github.com/ik5/sndbridge/audio"
	"github.com/ik5/sndbridge/utils"
)

// Headless is an output without a device. Voices track their position on
// the clock and end when their buffer would have finished playing, which
// makes it suitable for servers and for driving the engine with a fake
// clock in tests.
type Headless struct {
	clock      Clock
	sampleRate int
	channels   int

	mu     sync.Mutex
	voices []*HeadlessVoice
	closed bool
}

// NewHeadless returns a headless output. A nil clock selects the system
// clock.
func NewHeadless(clock Clock, sampleRate, channels int) *Headless {
	if clock == nil {
		clock = NewSystemClock()
	}
	return &Headless{clock: clock, sampleRate: sampleRate, channels: channels}
}

func (h *Headless) Now() time.Duration                        { return h.clock.Now() }
func (h *Headless) AfterFunc(d time.Duration, f func()) Timer { return h.clock.AfterFunc(d, f) }
func (h *Headless) SampleRate() int                           { return h.sampleRate }
func (h *Headless) Channels() int                             { return h.channels }
func (h *Headless) NewGain() Gain                             { return newParam(h.clock, 1) }

func (h *Headless) NewSource(buf *audio.Buffer, gain Gain) (Source, error) {
	if buf == nil || buf.SampleRate != h.sampleRate || buf.Channels != h.channels {
		return nil, ErrLayout
	}
	if gain == nil {
		gain = h.NewGain()
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrClosed
	}

	v := &HeadlessVoice{clock: h.clock, buf: buf, gain: gain}
	h.voices = append(h.voices, v)

	return v, nil
}

// Voices returns every source created so far, in creation order.
func (h *Headless) Voices() []*HeadlessVoice {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]*HeadlessVoice(nil), h.voices...)
}

// Playing returns the sources that have started and not yet ended.
func (h *Headless) Playing() []*HeadlessVoice {
	var out []*HeadlessVoice
	for _, v := range h.Voices() {
		if v.Playing() {
			out = append(out, v)
		}
	}
	return out
}

// Close stops every voice. Further NewSource calls fail.
func (h *Headless) Close() error {
	h.mu.Lock()
	h.closed = true
	voices := h.voices
	h.voices = nil
	h.mu.Unlock()

	for _, v := range voices {
		v.Stop()
	}
	return nil
}

// HeadlessVoice is the Source produced by Headless.
type HeadlessVoice struct {
	clock Clock
	buf   *audio.Buffer
	gain  Gain

	mu          sync.Mutex
	loop        bool
	started     bool
	done        bool
	startOffset time.Duration

	// position is base + (now - since), wrapped when looping
	base  time.Duration
	since time.Duration
	timer Timer
	armed uint64
	ended func()
}

func (v *HeadlessVoice) Buffer() *audio.Buffer { return v.buf }
func (v *HeadlessVoice) Gain() Gain            { return v.gain }

func (v *HeadlessVoice) Loop() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.loop
}

func (v *HeadlessVoice) SetLoop(loop bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.started && !v.done {
		v.rebase()
	}
	v.loop = loop
	if v.started && !v.done {
		v.arm()
	}
}

func (v *HeadlessVoice) Start(offset time.Duration) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.started || v.done {
		return ErrAlreadyStarted
	}

	dur := v.buf.Duration()
	offset = min(max(offset, 0), dur)

	v.started = true
	v.startOffset = offset
	v.base = offset
	v.since = v.clock.Now()
	v.arm()

	return nil
}

func (v *HeadlessVoice) Stop() {
	v.mu.Lock()
	if v.done {
		v.mu.Unlock()
		return
	}
	v.done = true
	if v.timer != nil {
		v.timer.Stop()
		v.timer = nil
	}
	fire := v.started
	fn := v.ended
	v.mu.Unlock()

	if fire && fn != nil {
		fn()
	}
}

func (v *HeadlessVoice) OnEnded(fn func()) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.ended = fn
}

// StartOffset is the offset the voice was started at.
func (v *HeadlessVoice) StartOffset() time.Duration {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.startOffset
}

// Playing reports whether the voice has started and not ended.
func (v *HeadlessVoice) Playing() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.started && !v.done
}

// Position is the current read position inside the buffer.
func (v *HeadlessVoice) Position() time.Duration {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.started {
		return 0
	}
	return v.position()
}

// position is called with mu held.
func (v *HeadlessVoice) position() time.Duration {
	dur := v.buf.Duration()
	p := v.base + v.clock.Now() - v.since
	if v.loop {
		return utils.ModDuration(p, dur)
	}
	return min(p, dur)
}

// rebase folds elapsed time into base. Called with mu held.
func (v *HeadlessVoice) rebase() {
	v.base = v.position()
	v.since = v.clock.Now()
}

// arm schedules the natural end of a non-looping voice. Called with mu held.
func (v *HeadlessVoice) arm() {
	if v.timer != nil {
		v.timer.Stop()
		v.timer = nil
	}
	v.armed++
	if v.loop {
		return
	}
	remaining := v.buf.Duration() - v.position()
	gen := v.armed
	v.timer = v.clock.AfterFunc(remaining, func() { v.finish(gen) })
}

// finish ends the voice unless the timer that called it was replaced.
func (v *HeadlessVoice) finish(gen uint64) {
	v.mu.Lock()
	if v.done || gen != v.armed {
		v.mu.Unlock()
		return
	}
	v.done = true
	v.timer = nil
	fn := v.ended
	v.mu.Unlock()

	if fn != nil {
		fn()
	}
}
