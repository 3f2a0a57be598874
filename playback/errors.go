// SPDX-License-Identifier: EPL-2.0

package playback

import "errors"

var (
	// ErrNotFound is returned for unknown sound ids and out-of-range slots.
	ErrNotFound = errors.New("not found")
	// ErrStale marks a handle whose slot has been reused.
	ErrStale = errors.New("stale handle")
	// ErrClosed is returned once the engine has shut down.
	ErrClosed = errors.New("engine closed")
	// ErrDecode wraps the reason a clip could not be decoded.
	ErrDecode = errors.New("decode failed")
)
