// SPDX-License-Identifier: EPL-2.0

package utils

import "time"

// ModDuration wraps d into [0, period). A non-positive period yields 0.
func ModDuration(d, period time.Duration) time.Duration {
	if period <= 0 {
		return 0
	}
	d %= period
	if d < 0 {
		d += period
	}
	return d
}

// Millis converts a host millisecond count to a duration.
func Millis(ms uint32) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// Lerp returns the value at fraction t of the way from a to b, with t
// clamped to [0,1].
func Lerp(a, b, t float64) float64 {
	switch {
	case t <= 0:
		return a
	case t >= 1:
		return b
	}
	return a + (b-a)*t
}
