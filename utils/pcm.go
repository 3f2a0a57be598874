// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 clamps x to [-1,1] and scales it to the full int16 range.
func Float32ToInt16(x float32) int16 {
	switch {
	case x >= 1:
		return 32767
	case x <= -1:
		return -32768
	case x < 0:
		return int16(x * 32768.0)
	}

	return int16(x * 32767.0)
}

// IntToFloat32 normalizes a signed integer sample of the given bit depth
// into [-1,1).
func IntToFloat32(v int, bitDepth int) float32 {
	if bitDepth <= 0 || bitDepth > 32 {
		return 0
	}
	scale := float32(int64(1) << (bitDepth - 1))

	return float32(v) / scale
}
