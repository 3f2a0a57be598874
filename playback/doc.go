// SPDX-License-Identifier: EPL-2.0

// Package playback is a handle based sound engine.
//
// Clips are loaded as encoded bytes and decoded in the background into
// buffers that match the output layout. Each Play allocates a slot in a
// table of playing sounds and returns a Handle made of the slot index, a
// generation counter and the sound id. When a slot is freed its
// generation is bumped, so handles held by callers go stale instead of
// pointing at a stranger's sound. Loop and Resume on a stale handle start
// a fresh instance of the same sound and return the new handle.
//
// Pausing fades the voice out and records its position; resuming builds
// a new voice at that position, wrapped to the clip length. A single
// music track plays alongside, with pause, resume and a sequential
// crossfade to a queued track.
//
// All state belongs to one loop goroutine. Public methods hand work to
// it and wait; timers, decode results and end-of-voice events are posted
// to the same queue, so everything observes one order. Time comes from
// the backend clock, which lets tests drive the engine with a fake clock
// and a headless backend.
package playback
