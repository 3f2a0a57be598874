// SPDX-License-Identifier: EPL-2.0

package sndbridge

import (
	"errors"
	"fmt"
	"slices"

	"github.com/ik5/sndbridge/playback"
	"github.com/ik5/sndbridge/utils"
	"github.com/rs/zerolog"
)

// Host binds an engine to guest memory and exposes the flat operations a
// guest imports. Unknown sounds and stale handles never fail a call; the
// engine logs them and the call does nothing. Errors are memory faults
// and a closed engine.
type Host struct {
	engine *playback.Engine
	mem    Memory
	log    zerolog.Logger
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithHostLogger sets the logger used for memory faults.
func WithHostLogger(l zerolog.Logger) HostOption {
	return func(h *Host) { h.log = l }
}

func NewHost(engine *playback.Engine, mem Memory, opts ...HostOption) *Host {
	h := &Host{engine: engine, mem: mem, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Engine returns the engine behind the host.
func (h *Host) Engine() *playback.Engine { return h.engine }

// settle drops the outcomes the guest is not told about.
func settle(err error) error {
	if errors.Is(err, playback.ErrNotFound) || errors.Is(err, playback.ErrStale) {
		return nil
	}
	return err
}

func (h *Host) fault(op string, err error) error {
	h.log.Error().Err(err).Str("op", op).Msg("guest memory fault")
	return fmt.Errorf("%s: %w", op, err)
}

// LoadSound reads n bytes at ptr and starts decoding them.
func (h *Host) LoadSound(ptr, n uint32) (playback.SoundID, error) {
	data, err := h.mem.LoadBytes(ptr, n)
	if err != nil {
		return 0, h.fault("load_sound", err)
	}
	return h.engine.Load(data)
}

// LoadMusic is LoadSound; music and sound clips share one store.
func (h *Host) LoadMusic(ptr, n uint32) (playback.SoundID, error) {
	return h.LoadSound(ptr, n)
}

func (h *Host) DeleteSound(id uint32) error {
	return settle(h.engine.Delete(playback.SoundID(id)))
}

// PlaySound starts a sound and writes its handle at addr.
func (h *Host) PlaySound(id uint32, looped bool, fadeInMs, addr uint32) error {
	hd, err := h.engine.Play(playback.SoundID(id), looped, utils.Millis(fadeInMs))
	if err != nil {
		return settle(err)
	}
	if err := WriteHandle(h.mem, addr, hd); err != nil {
		_ = h.engine.Stop(hd, false)
		return h.fault("play_sound", err)
	}
	return nil
}

// LoopSound sets the loop flag of the handle at addr. A stale handle is
// replaced with a fresh one.
func (h *Host) LoopSound(addr uint32, looped bool) error {
	return h.rewrite("loop_sound", addr, func(hd playback.Handle) (playback.Handle, error) {
		return h.engine.Loop(hd, looped)
	})
}

func (h *Host) StopSound(addr uint32, finish bool) error {
	hd, err := ReadHandle(h.mem, addr)
	if err != nil {
		return h.fault("stop_sound", err)
	}
	return settle(h.engine.Stop(hd, finish))
}

func (h *Host) PauseSound(addr, fadeOutMs uint32) error {
	hd, err := ReadHandle(h.mem, addr)
	if err != nil {
		return h.fault("pause_sound", err)
	}
	return settle(h.engine.Pause(hd, utils.Millis(fadeOutMs)))
}

// ResumeSound resumes the handle at addr. A stale handle is replaced with
// a fresh one.
func (h *Host) ResumeSound(addr, fadeInMs uint32) error {
	return h.rewrite("resume_sound", addr, func(hd playback.Handle) (playback.Handle, error) {
		return h.engine.Resume(hd, utils.Millis(fadeInMs))
	})
}

func (h *Host) SoundIsPlaying(addr uint32) (bool, error) {
	hd, err := ReadHandle(h.mem, addr)
	if err != nil {
		return false, h.fault("sound_is_playing", err)
	}
	ok, err := h.engine.IsPlaying(hd)
	return ok, settle(err)
}

func (h *Host) SoundIsLooping(addr uint32) (bool, error) {
	hd, err := ReadHandle(h.mem, addr)
	if err != nil {
		return false, h.fault("sound_is_looping", err)
	}
	ok, err := h.engine.IsLooping(hd)
	return ok, settle(err)
}

func (h *Host) rewrite(op string, addr uint32, fn func(playback.Handle) (playback.Handle, error)) error {
	hd, err := ReadHandle(h.mem, addr)
	if err != nil {
		return h.fault(op, err)
	}
	next, err := fn(hd)
	if err != nil {
		return settle(err)
	}
	if next == hd {
		return nil
	}
	if err := WriteHandle(h.mem, addr, next); err != nil {
		return h.fault(op, err)
	}
	return nil
}

func (h *Host) PlayMusic(id, fadeInMs uint32) error {
	return settle(h.engine.PlayMusic(playback.SoundID(id), utils.Millis(fadeInMs)))
}

func (h *Host) StopMusic(fadeOutMs uint32) error {
	return settle(h.engine.StopMusic(utils.Millis(fadeOutMs)))
}

func (h *Host) PauseMusic(fadeOutMs uint32) error {
	return settle(h.engine.PauseMusic(utils.Millis(fadeOutMs)))
}

func (h *Host) ResumeMusic(fadeInMs uint32) error {
	return settle(h.engine.ResumeMusic(utils.Millis(fadeInMs)))
}

// QueueMusic fades the current track out, then plays id.
func (h *Host) QueueMusic(id, fadeOutMs, fadeInMs uint32) error {
	return settle(h.engine.QueueMusic(playback.SoundID(id), utils.Millis(fadeOutMs), utils.Millis(fadeInMs)))
}

func (h *Host) MusicPlaying() (bool, error) {
	return h.engine.MusicPlaying()
}

// StopAll silences every sound and the music.
func (h *Host) StopAll() error {
	return h.engine.StopAll()
}

type operation struct {
	arity int
	call  func(h *Host, a []uint64) (uint64, error)
}

func u32(v uint64) uint32 { return uint32(v) }

func flag(v uint64) bool { return v != 0 }

func boolResult(ok bool, err error) (uint64, error) {
	if ok {
		return 1, err
	}
	return 0, err
}

func noResult(err error) (uint64, error) { return 0, err }

var operations = map[string]operation{
	"load_sound": {2, func(h *Host, a []uint64) (uint64, error) {
		id, err := h.LoadSound(u32(a[0]), u32(a[1]))
		return uint64(id), err
	}},
	"load_music": {2, func(h *Host, a []uint64) (uint64, error) {
		id, err := h.LoadMusic(u32(a[0]), u32(a[1]))
		return uint64(id), err
	}},
	"delete_sound": {1, func(h *Host, a []uint64) (uint64, error) {
		return noResult(h.DeleteSound(u32(a[0])))
	}},
	"play_sound": {4, func(h *Host, a []uint64) (uint64, error) {
		return noResult(h.PlaySound(u32(a[0]), flag(a[1]), u32(a[2]), u32(a[3])))
	}},
	"loop_sound": {2, func(h *Host, a []uint64) (uint64, error) {
		return noResult(h.LoopSound(u32(a[0]), flag(a[1])))
	}},
	"stop_sound": {2, func(h *Host, a []uint64) (uint64, error) {
		return noResult(h.StopSound(u32(a[0]), flag(a[1])))
	}},
	"pause_sound": {2, func(h *Host, a []uint64) (uint64, error) {
		return noResult(h.PauseSound(u32(a[0]), u32(a[1])))
	}},
	"resume_sound": {2, func(h *Host, a []uint64) (uint64, error) {
		return noResult(h.ResumeSound(u32(a[0]), u32(a[1])))
	}},
	"sound_is_playing": {1, func(h *Host, a []uint64) (uint64, error) {
		return boolResult(h.SoundIsPlaying(u32(a[0])))
	}},
	"sound_is_looping": {1, func(h *Host, a []uint64) (uint64, error) {
		return boolResult(h.SoundIsLooping(u32(a[0])))
	}},
	"play_music": {2, func(h *Host, a []uint64) (uint64, error) {
		return noResult(h.PlayMusic(u32(a[0]), u32(a[1])))
	}},
	"stop_music": {1, func(h *Host, a []uint64) (uint64, error) {
		return noResult(h.StopMusic(u32(a[0])))
	}},
	"pause_music": {1, func(h *Host, a []uint64) (uint64, error) {
		return noResult(h.PauseMusic(u32(a[0])))
	}},
	"resume_music": {1, func(h *Host, a []uint64) (uint64, error) {
		return noResult(h.ResumeMusic(u32(a[0])))
	}},
	"queue_music": {3, func(h *Host, a []uint64) (uint64, error) {
		return noResult(h.QueueMusic(u32(a[0]), u32(a[1]), u32(a[2])))
	}},
	"music_playing": {0, func(h *Host, _ []uint64) (uint64, error) {
		return boolResult(h.MusicPlaying())
	}},
	"stop_all": {0, func(h *Host, _ []uint64) (uint64, error) {
		return noResult(h.StopAll())
	}},
}

// Call dispatches an operation by its import name. Booleans are passed
// and returned as 0 or 1, durations as milliseconds.
func (h *Host) Call(name string, args ...uint64) (uint64, error) {
	op, ok := operations[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
	}
	if len(args) != op.arity {
		return 0, fmt.Errorf("%w: %s takes %d, got %d", ErrArity, name, op.arity, len(args))
	}
	return op.call(h, args)
}

// Operations lists the names Call accepts.
func Operations() []string {
	names := make([]string, 0, len(operations))
	for name := range operations {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
