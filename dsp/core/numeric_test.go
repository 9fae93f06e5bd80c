package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -1, min: 0, max: 1, expected: 0},
		{name: "above", value: 2, min: 0, max: 1, expected: 1},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{in: 0, want: 0},
		{in: 0.25, want: 0.25},
		{in: 1, want: 0},
		{in: 1.5, want: 0.5},
		{in: -0.25, want: 0.75},
		{in: -3, want: 0},
		{in: -1e-18, want: 0},
	}

	for _, tt := range tests {
		got := Wrap(tt.in)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Fatalf("Wrap(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if got < 0 || got >= 1 {
			t.Fatalf("Wrap(%v) = %v outside [0,1)", tt.in, got)
		}
	}
}

func TestFraction(t *testing.T) {
	if got := Fraction(0.5, 0, 2, 1e-12); got != 0.25 {
		t.Fatalf("Fraction() = %v, want 0.25", got)
	}
	if got := Fraction(3, 0, 2, 1e-12); got != 1 {
		t.Fatalf("Fraction() above span = %v, want 1", got)
	}
	if got := Fraction(1, 1, 1, 1e-12); got != 0 {
		t.Fatalf("Fraction() degenerate = %v, want 0", got)
	}
}

func TestGainMapping(t *testing.T) {
	if got := GainToLinear(0.5); !NearlyEqual(got, 1, 1e-12) {
		t.Fatalf("GainToLinear(0.5) = %v, want 1", got)
	}
	if got := GainToLinear(0); got != 0 {
		t.Fatalf("GainToLinear(0) = %v, want 0", got)
	}
	if got := GainToLinear(1); !NearlyEqual(got, 4, 1e-12) {
		t.Fatalf("GainToLinear(1) = %v, want 4", got)
	}
	if !math.IsInf(GainToDB(0), -1) {
		t.Fatal("expected -Inf dB for zero gain")
	}

	prev := 0.0
	for g := 0.05; g <= 1; g += 0.05 {
		v := GainToLinear(g)
		if v <= prev {
			t.Fatalf("GainToLinear not increasing at %v: %v <= %v", g, v, prev)
		}
		prev = v
	}
}

func TestDBConversions(t *testing.T) {
	linear := DBToLinear(-6)
	db := LinearToDB(linear)
	if !NearlyEqual(db, -6, 1e-10) {
		t.Fatalf("LinearToDB(DBToLinear(-6)) = %v, want -6", db)
	}
	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("expected -Inf for zero")
	}
	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatal("expected NaN for negative amplitude")
	}
}
