// SPDX-License-Identifier: EPL-2.0

package backend

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/ik5/sndbridge/audio"
)

// rampOf captures the gain curve of g from now on.
func rampOf(g Gain, now time.Duration) ramp {
	if p, ok := g.(*param); ok {
		return p.snapshot()
	}
	v := g.Value()
	return ramp{from: v, to: v, start: now, end: now}
}

// renderFloat32LE writes frames from buf starting at cursor into p as
// little-endian float32, scaled by the gain curve. It returns the number
// of frames written and the new cursor. When loop is set the cursor wraps
// to the start of the buffer.
func renderFloat32LE(p []byte, buf *audio.Buffer, cursor int, loop bool, g ramp, now time.Duration) (int, int) {
	ch := buf.Channels
	total := buf.Frames()
	want := len(p) / (4 * ch)
	step := time.Second / time.Duration(buf.SampleRate)

	n := 0
	for n < want {
		if cursor >= total {
			if !loop || total == 0 {
				break
			}
			cursor = 0
		}

		gain := float32(g.at(now + time.Duration(n)*step))
		frame := buf.Samples[cursor*ch : (cursor+1)*ch]
		out := p[n*4*ch:]
		for c, s := range frame {
			binary.LittleEndian.PutUint32(out[4*c:], math.Float32bits(s*gain))
		}

		cursor++
		n++
	}

	return n, cursor
}
