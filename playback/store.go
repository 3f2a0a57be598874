// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"time"

	"github.com/ik5/sndbridge/audio"
)

// SoundID names a loaded clip. Zero is never issued.
type SoundID uint32

// SoundState is the decode state of a clip.
type SoundState int

const (
	SoundPending SoundState = iota
	SoundReady
)

func (s SoundState) String() string {
	if s == SoundReady {
		return "ready"
	}
	return "pending"
}

// SoundInfo describes a stored clip.
type SoundInfo struct {
	ID         SoundID
	State      SoundState
	Format     string
	Size       int
	Duration   time.Duration
	SampleRate int
	Channels   int
	// Err is set when decoding failed. The entry stays pending.
	Err error
}

type soundEntry struct {
	id      SoundID
	size    int
	format  string
	buf     *audio.Buffer
	err     error
	waiters []func(*audio.Buffer)
	settled chan struct{}
	closed  bool
}

func (s *soundEntry) settle() {
	if !s.closed {
		s.closed = true
		close(s.settled)
	}
}

func (s *soundEntry) info() SoundInfo {
	info := SoundInfo{
		ID:     s.id,
		Format: s.format,
		Size:   s.size,
		Err:    s.err,
	}
	if s.buf != nil {
		info.State = SoundReady
		info.Duration = s.buf.Duration()
		info.SampleRate = s.buf.SampleRate
		info.Channels = s.buf.Channels
	}
	return info
}

// store maps ids to decoded clips. Only the loop touches it.
type store struct {
	last    SoundID
	entries map[SoundID]*soundEntry
}

func newStore() *store {
	return &store{entries: make(map[SoundID]*soundEntry)}
}

// reserve issues the next id. Ids keep growing across reset.
func (s *store) reserve(size int) *soundEntry {
	s.last++
	e := &soundEntry{
		id:      s.last,
		size:    size,
		settled: make(chan struct{}),
	}
	s.entries[e.id] = e
	return e
}

func (s *store) get(id SoundID) (*soundEntry, bool) {
	e, ok := s.entries[id]
	return e, ok
}

func (s *store) has(id SoundID) bool {
	_, ok := s.entries[id]
	return ok
}

// remove drops the entry and its waiters.
func (s *store) remove(id SoundID) bool {
	e, ok := s.entries[id]
	if !ok {
		return false
	}
	delete(s.entries, id)
	e.waiters = nil
	e.settle()
	return true
}

// resolve records a decode result and returns the waiters to run.
func (s *store) resolve(id SoundID, buf *audio.Buffer, format string, err error) (*soundEntry, []func(*audio.Buffer)) {
	e, ok := s.entries[id]
	if !ok {
		return nil, nil
	}
	e.format = format
	defer e.settle()

	if err != nil {
		e.err = err
		return e, nil
	}
	e.buf = buf
	waiters := e.waiters
	e.waiters = nil
	return e, waiters
}

// whenReady runs fn once the clip is decoded, right away if it already is.
func (s *store) whenReady(id SoundID, fn func(*audio.Buffer)) error {
	e, ok := s.entries[id]
	if !ok {
		return ErrNotFound
	}
	if e.buf != nil {
		fn(e.buf)
		return nil
	}
	e.waiters = append(e.waiters, fn)
	return nil
}

func (s *store) reset() {
	for id := range s.entries {
		s.remove(id)
	}
}
