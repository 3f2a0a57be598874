// SPDX-License-Identifier: EPL-2.0

package backend

import (
	"sync"
	"time"

	"github.com/ik5/sndbridge/utils"
)

// ramp is a linear transition between two gain values.
type ramp struct {
	from, to   float64
	start, end time.Duration
}

func (r ramp) at(t time.Duration) float64 {
	if t >= r.end {
		return r.to
	}
	if t <= r.start {
		return r.from
	}
	return utils.Lerp(r.from, r.to, float64(t-r.start)/float64(r.end-r.start))
}

// param is a Gain evaluated against a Clock. It is safe for concurrent
// use; render goroutines read it through snapshot.
type param struct {
	clock Clock

	mu    sync.Mutex
	value float64
	ramp  *ramp
}

func newParam(clock Clock, v float64) *param {
	return &param{clock: clock, value: v}
}

// settle folds a finished ramp into value. Callers hold mu.
func (p *param) settle(now time.Duration) float64 {
	if p.ramp == nil {
		return p.value
	}
	v := p.ramp.at(now)
	if now >= p.ramp.end {
		p.value = v
		p.ramp = nil
	}
	return v
}

func (p *param) SetValue(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.value = v
	p.ramp = nil
}

func (p *param) LinearRampTo(v float64, d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.clock.Now()
	from := p.settle(now)
	if d <= 0 {
		p.value = v
		p.ramp = nil
		return
	}
	p.ramp = &ramp{from: from, to: v, start: now, end: now + d}
}

func (p *param) CancelScheduled() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.value = p.settle(p.clock.Now())
	p.ramp = nil
}

func (p *param) Value() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.settle(p.clock.Now())
}

// snapshot returns a ramp that evaluates the gain at any time from now on
// without locking.
func (p *param) snapshot() ramp {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.clock.Now()
	v := p.settle(now)
	if p.ramp == nil {
		return ramp{from: v, to: v, start: now, end: now}
	}
	return *p.ramp
}
