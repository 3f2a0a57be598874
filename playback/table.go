// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"fmt"
	"time"

	"github.com/ik5/sndbridge/audio"
	"github.com/ik5/sndbridge/backend"
)

// Handle refers to one playing instance of a sound. A handle stays valid
// until its slot is freed; after that the generation no longer matches.
type Handle struct {
	Slot  uint32
	Gen   uint16
	Sound SoundID
}

func (h Handle) String() string {
	return fmt.Sprintf("%d:%d/%d", h.Slot, h.Gen, h.Sound)
}

type slotState int

const (
	slotFree slotState = iota
	slotPending
	slotActive
	slotPaused
)

func (s slotState) String() string {
	switch s {
	case slotPending:
		return "pending"
	case slotActive:
		return "active"
	case slotPaused:
		return "paused"
	default:
		return "free"
	}
}

type playingSound struct {
	slot    uint32
	gen     uint16
	sound   SoundID
	state   slotState
	looping bool
	// started is the clock time at which offset zero would have played.
	started time.Duration
	offset  time.Duration

	// activation counts activate calls; only the latest decode waiter
	// may start a voice.
	activation uint64

	buf    *audio.Buffer
	source backend.Source
	gain   backend.Gain
	fade   fader
}

func (ps *playingSound) handle() Handle {
	return Handle{Slot: ps.slot, Gen: ps.gen, Sound: ps.sound}
}

// table holds playing sounds in 1-based slots with a LIFO free list.
type table struct {
	slots []*playingSound
	free  []uint32
}

func (t *table) allocate(sound SoundID, looping bool) *playingSound {
	var ps *playingSound
	if n := len(t.free); n > 0 {
		ps = t.slots[t.free[n-1]-1]
		t.free = t.free[:n-1]
	} else {
		ps = &playingSound{slot: uint32(len(t.slots) + 1)}
		t.slots = append(t.slots, ps)
	}

	ps.sound = sound
	ps.looping = looping
	ps.state = slotPending
	ps.started, ps.offset = 0, 0
	ps.buf = nil
	return ps
}

func (t *table) lookup(h Handle) (*playingSound, error) {
	if h.Slot == 0 || int(h.Slot) > len(t.slots) {
		return nil, ErrNotFound
	}
	ps := t.slots[h.Slot-1]
	if ps.gen != h.Gen || ps.state == slotFree {
		return nil, ErrStale
	}
	return ps, nil
}

// release tears down the slot's nodes and returns it to the free list.
// The generation wraps after 65536 reuses of one slot.
func (t *table) release(ps *playingSound) {
	if ps.state == slotFree {
		return
	}
	ps.fade.cancel()
	ps.state = slotFree
	ps.gen++
	ps.buf = nil
	if src := ps.source; src != nil {
		ps.source, ps.gain = nil, nil
		src.Stop()
	}
	t.free = append(t.free, ps.slot)
}

// live returns every non-free slot.
func (t *table) live() []*playingSound {
	var out []*playingSound
	for _, ps := range t.slots {
		if ps.state != slotFree {
			out = append(out, ps)
		}
	}
	return out
}

// reset frees every slot and forgets the table. Older handles then
// report not found.
func (t *table) reset() {
	for _, ps := range t.live() {
		t.release(ps)
	}
	t.slots, t.free = nil, nil
}
