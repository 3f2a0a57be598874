// SPDX-License-Identifier: EPL-2.0

package sndbridge

import "github.com/ik5/sndbridge/playback"

// HandleSize is the number of bytes a handle occupies in guest memory:
// slot u32, generation u16, sound id u32.
const HandleSize = 10

const (
	handleSlot  = 0
	handleGen   = 4
	handleSound = 6
)

// ReadHandle decodes the handle stored at addr.
func ReadHandle(mem Memory, addr uint32) (playback.Handle, error) {
	var h playback.Handle

	slot, err := mem.LoadU32(addr + handleSlot)
	if err != nil {
		return h, err
	}
	gen, err := mem.LoadU16(addr + handleGen)
	if err != nil {
		return h, err
	}
	sound, err := mem.LoadU32(addr + handleSound)
	if err != nil {
		return h, err
	}

	h.Slot, h.Gen, h.Sound = slot, gen, playback.SoundID(sound)
	return h, nil
}

// WriteHandle stores h at addr.
func WriteHandle(mem Memory, addr uint32, h playback.Handle) error {
	if err := mem.StoreU32(addr+handleSlot, h.Slot); err != nil {
		return err
	}
	if err := mem.StoreU16(addr+handleGen, h.Gen); err != nil {
		return err
	}
	return mem.StoreU32(addr+handleSound, uint32(h.Sound))
}
