// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"testing"
	"time"
)

func TestModDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		d      time.Duration
		period time.Duration
		want   time.Duration
	}{
		{"inside", 700 * time.Millisecond, 2 * time.Second, 700 * time.Millisecond},
		{"wraps", 4500 * time.Millisecond, 2 * time.Second, 500 * time.Millisecond},
		{"exact multiple", 4 * time.Second, 2 * time.Second, 0},
		{"negative", -500 * time.Millisecond, 2 * time.Second, 1500 * time.Millisecond},
		{"zero period", time.Second, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ModDuration(tt.d, tt.period); got != tt.want {
				t.Errorf("ModDuration(%v, %v) = %v, want %v", tt.d, tt.period, got, tt.want)
			}
		})
	}
}

func TestMillis(t *testing.T) {
	t.Parallel()

	if got := Millis(1500); got != 1500*time.Millisecond {
		t.Errorf("Millis(1500) = %v", got)
	}
}

func TestLerp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b, t float64
		want    float64
	}{
		{0, 1, 0.25, 0.25},
		{1, 0, 0.25, 0.75},
		{0, 1, -1, 0},
		{0, 1, 2, 1},
	}

	for _, tt := range tests {
		if got := Lerp(tt.a, tt.b, tt.t); got != tt.want {
			t.Errorf("Lerp(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.t, got, tt.want)
		}
	}
}
