package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 1.0, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}
	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	for i, v := range s {
		if v < -1 || v > 1 {
			t.Fatalf("s[%d] = %v out of range", i, v)
		}
	}
}

func TestHarmonicSeries(t *testing.T) {
	s := HarmonicSeries(64, 2, 1)
	want := DeterministicSine(2, 64, 1, 64)
	RequireSliceNearlyEqual(t, s, want, 1e-12)
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(7, 0.5, 256)
	b := DeterministicNoise(7, 0.5, 256)
	RequireSliceEqual(t, a, b)
	for i, v := range a {
		if v < -0.5 || v > 0.5 {
			t.Fatalf("a[%d] = %v out of range", i, v)
		}
	}
	if L2Distance(a, DeterministicNoise(8, 0.5, 256)) == 0 {
		t.Fatal("different seeds produced identical noise")
	}
}
