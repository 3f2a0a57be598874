// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"time"

	"github.com/ik5/sndbridge/backend"
)

// Task is a deferred action on the engine loop.
type Task struct {
	timer    backend.Timer
	canceled bool
	done     bool
}

// Cancel prevents the action from running. It reports whether the task
// was still pending. Safe on a nil Task.
func (t *Task) Cancel() bool {
	if t == nil || t.canceled || t.done {
		return false
	}
	t.canceled = true
	if t.timer != nil {
		t.timer.Stop()
	}
	return true
}

// Pending reports whether the action is still due to run.
func (t *Task) Pending() bool {
	return t != nil && !t.canceled && !t.done
}

type scheduler struct {
	clock backend.Clock
	post  func(func()) bool
}

// after runs fn on the loop once d has elapsed. A non-positive d runs fn
// before returning. The timer only posts; the canceled check happens on
// the loop, so a callback already queued behind a Cancel is dropped.
func (s *scheduler) after(d time.Duration, fn func()) *Task {
	t := &Task{}
	if d <= 0 {
		t.done = true
		fn()
		return t
	}

	t.timer = s.clock.AfterFunc(d, func() {
		s.post(func() {
			if t.canceled || t.done {
				return
			}
			t.done = true
			fn()
		})
	})
	return t
}

// fader owns the single pending fade of one gain target.
type fader struct {
	task *Task
}

// fade ramps g from one level to another and runs done when the ramp
// ends. An older pending fade is canceled first.
func (f *fader) fade(s *scheduler, g backend.Gain, from, to float64, d time.Duration, done func()) {
	f.cancel()
	g.CancelScheduled()
	g.SetValue(from)
	g.LinearRampTo(to, d)
	f.task = s.after(d, done)
}

func (f *fader) pending() bool {
	return f.task.Pending()
}

func (f *fader) cancel() bool {
	ok := f.task.Cancel()
	f.task = nil
	return ok
}
