// SPDX-License-Identifier: EPL-2.0

package backend

import (
	"errors"
	"time"

	"github.com/ik5/sndbridge/audio"
)

var (
	// ErrAlreadyStarted is returned by a second Start on the same Source.
	ErrAlreadyStarted = errors.New("source already started")
	// ErrClosed is returned when creating nodes on a closed backend.
	ErrClosed = errors.New("backend closed")
	// ErrLayout is returned for a buffer that does not match the output.
	ErrLayout = errors.New("buffer layout does not match output")
)

// Timer is a pending AfterFunc call.
type Timer interface {
	// Stop prevents the call from firing. It reports whether the call was
	// still pending.
	Stop() bool
}

// Clock is the time base shared by the engine and the output.
type Clock interface {
	// Now is the time elapsed since the clock was created.
	Now() time.Duration
	// AfterFunc calls f on its own goroutine once d has elapsed.
	AfterFunc(d time.Duration, f func()) Timer
}

// Gain is a volume control with a single pending linear ramp.
type Gain interface {
	// SetValue jumps to v now.
	SetValue(v float64)
	// LinearRampTo moves from the current value to v over d. A
	// non-positive d jumps immediately.
	LinearRampTo(v float64, d time.Duration)
	// CancelScheduled freezes the gain at its current value.
	CancelScheduled()
	// Value is the gain at the current clock time.
	Value() float64
}

// Source is a one-shot voice playing a Buffer through a Gain.
type Source interface {
	// SetLoop toggles looping; it may be called while playing.
	SetLoop(loop bool)
	Loop() bool
	// Start begins playback at offset into the buffer. A Source starts
	// at most once.
	Start(offset time.Duration) error
	// Stop halts playback. Ended fires if the source had started.
	Stop()
	// OnEnded registers a callback that runs once, on natural end or Stop.
	// It may run on any goroutine.
	OnEnded(fn func())
}

// Backend creates voices on an output device.
type Backend interface {
	Clock

	SampleRate() int
	Channels() int

	NewGain() Gain
	NewSource(buf *audio.Buffer, gain Gain) (Source, error)

	Close() error
}
