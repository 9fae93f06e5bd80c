package core

import "math"

const defaultEpsilon = 1e-12

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// Lerp blends a towards b by t. t is not clamped.
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Fraction returns where p lies between lo and hi, clamped to [0, 1].
// A degenerate span (|hi-lo| <= eps) yields 0.
func Fraction(p, lo, hi, eps float64) float64 {
	span := hi - lo
	if math.Abs(span) <= eps {
		return 0
	}
	return Clamp((p-lo)/span, 0, 1)
}

// Wrap folds x into [0, 1).
func Wrap(x float64) float64 {
	if x >= 0 && x < 1 {
		return x
	}
	x -= math.Floor(x)
	// Tiny negative inputs round up to exactly 1.
	if x >= 1 {
		return 0
	}
	return x
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// GainToDB maps a normalised gain knob in [0, 1] to decibels.
// 0.5 is unity (0 dB), 1 is about +12 dB and 0 is -Inf.
func GainToDB(gain float64) float64 {
	gain = Clamp(gain, 0, 1)
	if gain == 0 {
		return math.Inf(-1)
	}
	return 40 * math.Log10(2*gain)
}

// GainToLinear maps a normalised gain knob in [0, 1] to a linear multiplier.
func GainToLinear(gain float64) float64 {
	if gain <= 0 {
		return 0
	}
	return DBToLinear(GainToDB(gain))
}
