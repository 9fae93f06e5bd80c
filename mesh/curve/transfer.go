package curve

import "math"

const transferSize = 1024

// transferTable tabulates a monotonic S-curve on [0, 1] with zero first and
// second derivatives at both ends. It is a two-term truncated Fourier series:
//
//	T(u) = u - (8 sin(2πu) - sin(4πu)) / (12π)
var transferTable = buildTransfer()

func buildTransfer() [transferSize + 1]float64 {
	var t [transferSize + 1]float64
	for i := range t {
		u := float64(i) / transferSize
		t[i] = u - (8*math.Sin(2*math.Pi*u)-math.Sin(4*math.Pi*u))/(12*math.Pi)
	}
	t[0], t[transferSize] = 0, 1
	return t
}

// transfer evaluates the S-curve at u in [0, 1].
func transfer(u float64) float64 {
	if u <= 0 {
		return 0
	}
	if u >= 1 {
		return 1
	}
	pos := u * transferSize
	i := int(pos)
	frac := pos - float64(i)
	return transferTable[i] + frac*(transferTable[i+1]-transferTable[i])
}
