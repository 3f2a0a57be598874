// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"sort"
	"sync"
	"time"

	"github.com/ik5/sndbridge/backend"
)

// FakeClock is a backend.Clock that only moves when Advance is called.
// Due callbacks run synchronously inside Advance, ordered by deadline and
// then by registration.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	seq    uint64
	timers []*fakeTimer
	// newestFirst reverses the order of timers sharing a deadline.
	newestFirst bool
}

type fakeTimer struct {
	clock *FakeClock
	at    time.Duration
	seq   uint64
	fn    func()
}

func NewFakeClock() *FakeClock {
	return &FakeClock{}
}

// NewFakeClockNewestFirst is a FakeClock that fires timers sharing a
// deadline in reverse registration order. Real timers give no ordering
// between equal deadlines; code must behave the same on either clock.
func NewFakeClockNewestFirst() *FakeClock {
	return &FakeClock{newestFirst: true}
}

func (c *FakeClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *FakeClock) AfterFunc(d time.Duration, f func()) backend.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	t := &fakeTimer{clock: c, at: c.now + max(d, 0), seq: c.seq, fn: f}
	c.timers = append(c.timers, t)

	return t
}

// Pending is the number of timers that have not fired or been stopped.
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.timers)
}

// Advance moves the clock forward by d, firing every timer that falls due
// on the way, including timers those callbacks register.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()

	for {
		c.mu.Lock()
		next := c.popDue(target)
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		c.now = max(c.now, next.at)
		c.mu.Unlock()

		next.fn()
	}
}

// popDue removes and returns the earliest timer due by target. Called
// with mu held.
func (c *FakeClock) popDue(target time.Duration) *fakeTimer {
	if len(c.timers) == 0 {
		return nil
	}

	sort.SliceStable(c.timers, func(i, j int) bool {
		if c.timers[i].at != c.timers[j].at {
			return c.timers[i].at < c.timers[j].at
		}
		if c.newestFirst {
			return c.timers[i].seq > c.timers[j].seq
		}
		return c.timers[i].seq < c.timers[j].seq
	})

	t := c.timers[0]
	if t.at > target {
		return nil
	}
	c.timers = c.timers[1:]

	return t
}

func (t *fakeTimer) Stop() bool {
	c := t.clock
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, other := range c.timers {
		if other == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return true
		}
	}
	return false
}
