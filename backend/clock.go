// SPDX-License-Identifier: EPL-2.0

package backend

import "time"

// SystemClock measures time on the monotonic wall clock.
type SystemClock struct {
	epoch time.Time
}

func NewSystemClock() *SystemClock {
	return &SystemClock{epoch: time.Now()}
}

func (c *SystemClock) Now() time.Duration {
	return time.Since(c.epoch)
}

func (c *SystemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
