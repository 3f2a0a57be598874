// SPDX-License-Identifier: EPL-2.0

package sndbridge

import (
	"encoding/binary"
	"fmt"
)

// Memory is the guest address space the host reads clips and handles
// from. Values are little-endian.
type Memory interface {
	LoadBytes(ptr, n uint32) ([]byte, error)
	LoadU16(addr uint32) (uint16, error)
	LoadU32(addr uint32) (uint32, error)
	StoreU16(addr uint32, v uint16) error
	StoreU32(addr uint32, v uint32) error
}

// LinearMemory is a Memory over a flat byte slice, such as a wasm
// instance's exported memory.
type LinearMemory []byte

func (m LinearMemory) span(addr, n uint32) ([]byte, error) {
	end := uint64(addr) + uint64(n)
	if end > uint64(len(m)) {
		return nil, fmt.Errorf("%w: [%d,%d) of %d", ErrOutOfBounds, addr, end, len(m))
	}
	return m[addr:end], nil
}

// LoadBytes returns a view of n bytes at ptr. It is not a copy.
func (m LinearMemory) LoadBytes(ptr, n uint32) ([]byte, error) {
	return m.span(ptr, n)
}

func (m LinearMemory) LoadU16(addr uint32) (uint16, error) {
	b, err := m.span(addr, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (m LinearMemory) LoadU32(addr uint32) (uint32, error) {
	b, err := m.span(addr, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (m LinearMemory) StoreU16(addr uint32, v uint16) error {
	b, err := m.span(addr, 2)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint16(b, v)
	return nil
}

func (m LinearMemory) StoreU32(addr uint32, v uint32) error {
	b, err := m.span(addr, 4)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(b, v)
	return nil
}
