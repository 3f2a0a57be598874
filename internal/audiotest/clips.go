// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"math"
	"time"

	"github.com/ik5/sndbridge/formats/wav"
	"github.com/ik5/sndbridge/utils"
)

// ToneWAV encodes a 440Hz tone of the given length as 16-bit PCM WAV.
func ToneWAV(sampleRate, channels int, length time.Duration) []byte {
	frames := int(length * time.Duration(sampleRate) / time.Second)
	pcm := make([]int16, frames*channels)
	for f := range frames {
		v := utils.Float32ToInt16(float32(0.5 * math.Sin(2*math.Pi*440*float64(f)/float64(sampleRate))))
		for c := range channels {
			pcm[f*channels+c] = v
		}
	}

	var b bytes.Buffer
	if err := wav.WriteWAV16(&b, sampleRate, channels, pcm); err != nil {
		panic(err)
	}
	return b.Bytes()
}
