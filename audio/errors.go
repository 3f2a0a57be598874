// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize  = errors.New("dst size must be multiple of channels")
	ErrUnknownFormat   = errors.New("unrecognized audio container")
	ErrNoDecoder       = errors.New("no decoder registered for format")
	ErrInvalidChannels = errors.New("channel count must be positive")
	ErrEmptyBuffer     = errors.New("decoded clip has no samples")
)
