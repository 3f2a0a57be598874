// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"context"
	"sync"
)

// mailbox is an unbounded FIFO of closures. post never blocks, so it is
// safe from timer callbacks, decode workers and the loop itself.
type mailbox struct {
	mu     sync.Mutex
	queue  []func()
	closed bool
	signal chan struct{}
}

func newMailbox() *mailbox {
	return &mailbox{signal: make(chan struct{}, 1)}
}

// post appends fn and wakes the consumer. It reports false once closed.
func (m *mailbox) post(fn func()) bool {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return false
	}
	m.queue = append(m.queue, fn)
	m.mu.Unlock()

	select {
	case m.signal <- struct{}{}:
	default:
	}
	return true
}

func (m *mailbox) drain() []func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	q := m.queue
	m.queue = nil
	return q
}

func (m *mailbox) close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.queue = nil
}

// serve runs posted closures in order until ctx is done.
func (m *mailbox) serve(ctx context.Context, run func(func())) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-m.signal:
			for _, fn := range m.drain() {
				run(fn)
			}
		}
	}
}

// post schedules fn on the engine loop.
func (e *Engine) post(fn func()) bool {
	return e.mail.post(fn)
}

// call runs fn on the engine loop and waits for it.
func (e *Engine) call(fn func()) error {
	done := make(chan struct{})
	if !e.mail.post(func() {
		defer close(done)
		fn()
	}) {
		return ErrClosed
	}

	select {
	case <-done:
		return nil
	case <-e.ctx.Done():
		select {
		case <-done:
			return nil
		default:
			return ErrClosed
		}
	}
}

// dispatchDecodes starts queued decode jobs, at most e.workers at a time.
// It is the only goroutine that adds to e.decodes.
func (e *Engine) dispatchDecodes(ctx context.Context) error {
	return e.jobs.serve(ctx, func(job func()) {
		if err := e.decodes.AddWithContext(ctx); err != nil {
			return
		}
		go func() {
			defer e.decodes.Done()
			job()
		}()
	})
}
