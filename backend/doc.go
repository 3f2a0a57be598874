// SPDX-License-Identifier: EPL-2.0

// Package backend is the output side of the engine: a clock, gain
// parameters with linear ramps, and one-shot voices that play a decoded
// audio.Buffer.
//
// Two outputs are provided. Oto plays through the system device with
// github.com/ebitengine/oto/v3, one oto.Player per voice. Headless renders
// nothing and ends voices on the clock, which makes playback deterministic
// when paired with a fake clock. Building with the headless tag drops the
// oto dependency entirely.
//
// Voices follow a strict lifecycle: created, started at most once, then
// ended exactly once, either naturally or through Stop. The ended
// callback may run on any goroutine, so consumers hand it off to their own
// loop.
package backend
