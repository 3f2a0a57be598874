// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"github.com/ik5/sndbridge/audio"
	"github.com/rs/zerolog"
)

const (
	defaultDecodeWorkers    = 2
	defaultDecodeBufferSize = 4096
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The engine adds a session field to it.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithRegistry replaces the bundled decoders.
func WithRegistry(r *audio.Registry) Option {
	return func(e *Engine) { e.registry = r }
}

// WithDecodeWorkers bounds how many clips decode at once.
func WithDecodeWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithDecodeBufferSize sets the chunk size, in samples, used while
// draining a decoder.
func WithDecodeBufferSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.bufSize = n
		}
	}
}
