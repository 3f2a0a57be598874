// SPDX-License-Identifier: EPL-2.0

package sndbridge

import (
	"fmt"

	"github.com/ik5/sndbridge/audio"
	"github.com/ik5/sndbridge/formats"
	"github.com/ik5/sndbridge/utils"
)

// DecodePCM16 decodes an encoded clip into interleaved 16-bit PCM at the
// requested rate and channel count. A nil registry selects every bundled
// format. This is the same pipeline the engine runs before playback.
func DecodePCM16(reg *audio.Registry, data []byte, sampleRate, channels int) ([]int16, error) {
	if reg == nil {
		reg = formats.NewRegistry()
	}

	src, format, err := reg.Decode(data)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	buf, err := audio.ReadBuffer(audio.Conform(src, sampleRate, channels), 4096)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", format, err)
	}

	pcm := make([]int16, len(buf.Samples))
	for i, s := range buf.Samples {
		pcm[i] = utils.Float32ToInt16(s)
	}
	return pcm, nil
}
