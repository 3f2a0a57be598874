//go:build !headless

// SPDX-License-Identifier: EPL-2.0

package backend

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/ik5/sndbridge/audio"
)

// OtoOptions configures the device output.
type OtoOptions struct {
	SampleRate int
	// Channels is 1 or 2.
	Channels int
	// BufferSize is the device buffer; 0 picks the driver default.
	BufferSize time.Duration
}

// Oto plays voices on the system audio device through ebitengine/oto.
// Every voice is its own oto.Player; oto mixes them.
type Oto struct {
	*SystemClock

	ctx        *oto.Context
	sampleRate int
	channels   int

	mu     sync.Mutex
	voices map[*otoVoice]struct{}
	closed bool
}

// NewOto opens the audio device. Only one oto context may exist per
// process, so NewOto must not be called again after Close.
func NewOto(opts OtoOptions) (*Oto, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   opts.SampleRate,
		ChannelCount: opts.Channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   opts.BufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("oto context: %w", err)
	}
	<-ready

	return &Oto{
		SystemClock: NewSystemClock(),
		ctx:         ctx,
		sampleRate:  opts.SampleRate,
		channels:    opts.Channels,
		voices:      make(map[*otoVoice]struct{}),
	}, nil
}

func (o *Oto) SampleRate() int { return o.sampleRate }
func (o *Oto) Channels() int   { return o.channels }
func (o *Oto) NewGain() Gain   { return newParam(o.SystemClock, 1) }

func (o *Oto) NewSource(buf *audio.Buffer, gain Gain) (Source, error) {
	if buf == nil || buf.SampleRate != o.sampleRate || buf.Channels != o.channels {
		return nil, ErrLayout
	}
	if gain == nil {
		gain = o.NewGain()
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return nil, ErrClosed
	}

	v := &otoVoice{out: o, buf: buf, gain: gain}
	o.voices[v] = struct{}{}

	return v, nil
}

func (o *Oto) forget(v *otoVoice) {
	o.mu.Lock()
	defer o.mu.Unlock()

	delete(o.voices, v)
}

// Close stops every voice and suspends the device.
func (o *Oto) Close() error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return nil
	}
	o.closed = true
	voices := make([]*otoVoice, 0, len(o.voices))
	for v := range o.voices {
		voices = append(voices, v)
	}
	o.mu.Unlock()

	for _, v := range voices {
		v.Stop()
	}

	if err := o.ctx.Suspend(); err != nil {
		return fmt.Errorf("oto suspend: %w", err)
	}
	return nil
}

// otoVoice is an io.Reader handed to oto; oto pulls from it on its own
// goroutine.
type otoVoice struct {
	out  *Oto
	buf  *audio.Buffer
	gain Gain

	mu      sync.Mutex
	loop    bool
	cursor  int
	started bool
	done    bool
	player  *oto.Player
	ended   func()
}

func (v *otoVoice) Loop() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.loop
}

func (v *otoVoice) SetLoop(loop bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.loop = loop
}

func (v *otoVoice) OnEnded(fn func()) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.ended = fn
}

func (v *otoVoice) Start(offset time.Duration) error {
	v.mu.Lock()
	if v.started || v.done {
		v.mu.Unlock()
		return ErrAlreadyStarted
	}
	v.started = true
	v.cursor = v.buf.FrameAt(offset)
	v.mu.Unlock()

	p := v.out.ctx.NewPlayer(v)
	v.mu.Lock()
	v.player = p
	v.mu.Unlock()
	p.Play()

	return nil
}

func (v *otoVoice) Stop() {
	v.mu.Lock()
	if v.done {
		v.mu.Unlock()
		return
	}
	v.done = true
	p := v.player
	fire := v.started
	fn := v.ended
	v.mu.Unlock()

	if p != nil {
		p.Pause()
		_ = p.Close()
	}
	v.out.forget(v)

	if fire && fn != nil {
		fn()
	}
}

// Read renders the next chunk for oto.
func (v *otoVoice) Read(p []byte) (int, error) {
	now := v.out.Now()
	g := rampOf(v.gain, now)

	v.mu.Lock()
	if v.done {
		v.mu.Unlock()
		return 0, io.EOF
	}
	n, cursor := renderFloat32LE(p, v.buf, v.cursor, v.loop, g, now)
	v.cursor = cursor
	finished := !v.loop && cursor >= v.buf.Frames()
	if finished {
		v.done = true
	}
	player := v.player
	fn := v.ended
	v.mu.Unlock()

	written := n * 4 * v.buf.Channels
	if !finished {
		return written, nil
	}

	v.out.forget(v)
	// oto holds its own lock while calling Read
	if player != nil {
		go func() { _ = player.Close() }()
	}
	if fn != nil {
		fn()
	}

	return written, io.EOF
}
