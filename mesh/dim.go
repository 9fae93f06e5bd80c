package mesh

// Dim identifies one of the six vertex coordinates.
type Dim int

const (
	Time Dim = iota
	Phase
	Amp
	Red
	Blue
	Curve
)

// NumDims is the number of scalar coordinates per vertex.
const NumDims = 6

var dimNames = [NumDims]string{"time", "phase", "amp", "red", "blue", "curve"}

// String returns the lowercase coordinate name.
func (d Dim) String() string {
	if d < 0 || int(d) >= NumDims {
		return "unknown"
	}
	return dimNames[d]
}

// ParseDim resolves a coordinate name produced by [Dim.String].
func ParseDim(name string) (Dim, bool) {
	for i, n := range dimNames {
		if n == name {
			return Dim(i), true
		}
	}
	return 0, false
}

// IsMorph reports whether d is one of the cube lattice axes (Time, Red, Blue).
func (d Dim) IsMorph() bool {
	return d == Time || d == Red || d == Blue
}

// cornerBit returns the corner-index bit that selects the pole along a morph
// axis. It returns -1 for curve coordinates.
func (d Dim) cornerBit() int {
	switch d {
	case Time:
		return 0
	case Red:
		return 1
	case Blue:
		return 2
	default:
		return -1
	}
}

// otherMorphDims returns the two lattice axes that are not sweep, in
// corner-bit order.
func otherMorphDims(sweep Dim) (u, w Dim) {
	switch sweep {
	case Red:
		return Time, Blue
	case Blue:
		return Time, Red
	default:
		return Red, Blue
	}
}

// Morph is a position in (Time, Red, Blue) morph space.
type Morph struct {
	Time float64
	Red  float64
	Blue float64
}

// At returns the coordinate of m along a morph axis. Curve coordinates
// return 0.
func (m Morph) At(d Dim) float64 {
	switch d {
	case Time:
		return m.Time
	case Red:
		return m.Red
	case Blue:
		return m.Blue
	default:
		return 0
	}
}

// With returns a copy of m with the coordinate along d replaced.
func (m Morph) With(d Dim, v float64) Morph {
	switch d {
	case Time:
		m.Time = v
	case Red:
		m.Red = v
	case Blue:
		m.Blue = v
	}
	return m
}
