// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ik5/sndbridge/audio"
	"github.com/ik5/sndbridge/backend"
	"github.com/ik5/sndbridge/formats"
	"github.com/remeh/sizedwaitgroup"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Engine plays decoded clips through a Backend. Every method is safe for
// concurrent use; state changes run in order on one loop goroutine.
type Engine struct {
	out      backend.Backend
	log      zerolog.Logger
	registry *audio.Registry
	workers  int
	bufSize  int

	mail    *mailbox
	jobs    *mailbox
	ctx     context.Context
	cancel  context.CancelFunc
	group   *errgroup.Group
	decodes sizedwaitgroup.SizedWaitGroup

	closeOnce sync.Once
	closeErr  error

	// loop only
	store *store
	table *table
	sched *scheduler
	music *music
}

// New starts an engine on out. The engine owns out and closes it in Close.
func New(out backend.Backend, opts ...Option) *Engine {
	e := &Engine{
		out:     out,
		log:     zerolog.Nop(),
		workers: defaultDecodeWorkers,
		bufSize: defaultDecodeBufferSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.registry == nil {
		e.registry = formats.NewRegistry()
	}
	e.log = e.log.With().Str("session", uuid.NewString()).Logger()

	e.mail = newMailbox()
	e.jobs = newMailbox()
	e.decodes = sizedwaitgroup.New(e.workers)
	e.store = newStore()
	e.table = &table{}
	e.sched = &scheduler{clock: out, post: e.post}
	e.music = &music{}

	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.group, e.ctx = errgroup.WithContext(ctx)
	e.group.Go(func() error {
		return e.mail.serve(e.ctx, func(fn func()) { fn() })
	})
	e.group.Go(func() error {
		return e.dispatchDecodes(e.ctx)
	})

	e.log.Debug().
		Int("sample_rate", out.SampleRate()).
		Int("channels", out.Channels()).
		Int("decode_workers", e.workers).
		Msg("engine started")
	return e
}

// Close stops every sound, waits for the loop and in-flight decodes, and
// closes the backend. Later calls return ErrClosed.
func (e *Engine) Close() error {
	e.closeOnce.Do(func() {
		_ = e.call(e.stopAll)
		e.mail.close()
		e.jobs.close()
		e.cancel()
		err := e.group.Wait()
		e.decodes.Wait()
		e.closeErr = errors.Join(err, e.out.Close())
		e.log.Debug().Msg("engine closed")
	})
	return e.closeErr
}

// Load copies data, reserves an id and decodes the clip in the
// background. The id is usable immediately; playback waits for decode.
func (e *Engine) Load(data []byte) (SoundID, error) {
	clip := bytes.Clone(data)

	var id SoundID
	err := e.call(func() {
		id = e.store.reserve(len(clip)).id
		e.jobs.post(func() { e.decode(id, clip) })
	})
	return id, err
}

// Delete forgets a sound. Playing instances keep their buffer.
func (e *Engine) Delete(id SoundID) error {
	var err error
	if cerr := e.call(func() {
		if !e.store.remove(id) {
			e.log.Warn().Uint32("sound", uint32(id)).Msg("delete of unknown sound")
			err = ErrNotFound
		}
	}); cerr != nil {
		return cerr
	}
	return err
}

// SoundInfo reports the state of a stored clip.
func (e *Engine) SoundInfo(id SoundID) (SoundInfo, error) {
	var (
		info SoundInfo
		err  error
	)
	if cerr := e.call(func() {
		ent, ok := e.store.get(id)
		if !ok {
			err = ErrNotFound
			return
		}
		info = ent.info()
	}); cerr != nil {
		return info, cerr
	}
	return info, err
}

// WaitLoaded blocks until the clip has decoded. It returns the decode
// error for a clip that failed, and ErrNotFound if it was deleted.
func (e *Engine) WaitLoaded(ctx context.Context, id SoundID) error {
	var settled <-chan struct{}
	if err := e.call(func() {
		if ent, ok := e.store.get(id); ok {
			settled = ent.settled
		}
	}); err != nil {
		return err
	}
	if settled == nil {
		return ErrNotFound
	}

	select {
	case <-settled:
	case <-ctx.Done():
		return ctx.Err()
	case <-e.ctx.Done():
		return ErrClosed
	}

	info, err := e.SoundInfo(id)
	if err != nil {
		return err
	}
	return info.Err
}

// StopAll stops every sound and the music. Handles go stale.
func (e *Engine) StopAll() error {
	return e.call(e.stopAll)
}

// Reset stops everything and forgets all sounds, slots and music state.
// Sound ids are not reused.
func (e *Engine) Reset() error {
	return e.call(func() {
		e.stopAll()
		e.table.reset()
		e.store.reset()
		e.music = &music{}
		e.log.Debug().Msg("engine reset")
	})
}

func (e *Engine) stopAll() {
	for _, ps := range e.table.live() {
		e.table.release(ps)
	}
	e.haltMusic()
}

// decode runs on a worker goroutine.
func (e *Engine) decode(id SoundID, clip []byte) {
	start := time.Now()
	buf, format, err := e.decodeClip(clip)
	took := time.Since(start)

	e.post(func() {
		if err != nil {
			err = fmt.Errorf("%w: %w", ErrDecode, err)
		}
		ent, waiters := e.store.resolve(id, buf, format, err)
		if ent == nil {
			e.log.Debug().Uint32("sound", uint32(id)).Msg("decoded sound was deleted")
			return
		}
		if err != nil {
			e.log.Error().Err(err).
				Uint32("sound", uint32(id)).
				Str("format", format).
				Int("bytes", len(clip)).
				Msg("could not decode sound")
			return
		}

		e.log.Debug().
			Uint32("sound", uint32(id)).
			Str("format", format).
			Dur("duration", buf.Duration()).
			Dur("took", took).
			Msg("sound decoded")
		for _, w := range waiters {
			w(buf)
		}
	})
}

func (e *Engine) decodeClip(clip []byte) (*audio.Buffer, string, error) {
	src, format, err := e.registry.Decode(clip)
	if err != nil {
		return nil, format, err
	}
	defer src.Close()

	buf, err := audio.ReadBuffer(audio.Conform(src, e.out.SampleRate(), e.out.Channels()), e.bufSize)
	if err != nil {
		return nil, format, fmt.Errorf("read %s: %w", format, err)
	}
	return buf, format, nil
}
