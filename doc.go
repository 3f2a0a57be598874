// SPDX-License-Identifier: EPL-2.0

// Package sndbridge exposes a sound engine to a guest program that shares
// only a flat, little-endian memory with its host, such as a wasm module.
//
// A guest loads encoded clips (WAV, AIFF, MP3 or Ogg Vorbis) by pointer
// and length and gets back a sound id. Playing a sound writes a
// HandleSize byte handle into guest memory; later calls pass the address
// of that handle. Handles go stale once their sound ends, and operations
// that revive a sound (loop_sound, resume_sound) overwrite the stale
// handle in place.
//
// The engine itself lives in the playback package. Host adapts it to the
// guest calling convention, both as typed methods and through Call, which
// dispatches by import name:
//
//	mem := sndbridge.LinearMemory(instanceMemory)
//	host := sndbridge.NewHost(engine, mem)
//	id, _ := host.Call("load_sound", ptr, n)
//	_, _ = host.Call("play_sound", id, 1, 250, handleAddr)
//
// DecodePCM16 runs the same decode pipeline offline, for tools that want
// the converted samples rather than playback.
package sndbridge
