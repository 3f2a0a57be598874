// SPDX-License-Identifier: EPL-2.0

package sndbridge

import "errors"

var (
	// ErrOutOfBounds is returned for memory accesses past the end of a
	// LinearMemory.
	ErrOutOfBounds = errors.New("memory access out of bounds")
	// ErrUnknownOperation is returned by Call for a name not in the table.
	ErrUnknownOperation = errors.New("unknown operation")
	// ErrArity is returned by Call when the argument count is wrong.
	ErrArity = errors.New("wrong number of arguments")
)
