package curve

import (
	"github.com/cwbudde/algo-mesh/dsp/core"
	"github.com/cwbudde/algo-mesh/mesh/intercept"
)

// MaxResIndex is the coarsest resolution index. Pieces that are exactly
// linear use it.
const MaxResIndex = 8

// spacingEpsilon below which neighbouring anchors count as coincident.
const spacingEpsilon = 1e-9

// Piece is a three-point curve segment. Its anchors use AdjustedX as the
// x coordinate.
type Piece struct {
	A, B, C intercept.Intercept
	// ResIndex controls sample density; higher is coarser.
	ResIndex int
}

// Value evaluates the piece at x. The result blends the parabola through
// A, B and C with the polyline A-B-C by B's sharpness.
func (p *Piece) Value(x float64) float64 {
	sharp := p.polyline(x)
	if p.B.Shape >= 1 {
		return sharp
	}
	smooth, ok := p.parabola(x)
	if !ok {
		return sharp
	}
	return smooth + p.B.Shape*(sharp-smooth)
}

// IsLinear reports whether the piece evaluates to straight lines only.
func (p *Piece) IsLinear() bool {
	if p.B.Shape >= 1 {
		return true
	}
	ax, bx, cx := p.A.AdjustedX, p.B.AdjustedX, p.C.AdjustedX
	if bx-ax <= spacingEpsilon || cx-bx <= spacingEpsilon {
		return true
	}
	s0 := (p.B.Y - p.A.Y) / (bx - ax)
	s1 := (p.C.Y - p.B.Y) / (cx - bx)
	return core.NearlyEqual(s0, s1, spacingEpsilon)
}

func (p *Piece) polyline(x float64) float64 {
	if x <= p.B.AdjustedX {
		return segment(x, p.A, p.B)
	}
	return segment(x, p.B, p.C)
}

func segment(x float64, a, b intercept.Intercept) float64 {
	if b.AdjustedX-a.AdjustedX <= spacingEpsilon {
		return b.Y
	}
	return core.Lerp(a.Y, b.Y, core.Fraction(x, a.AdjustedX, b.AdjustedX, spacingEpsilon))
}

// parabola evaluates the Lagrange quadratic through the anchors. It reports
// false when two anchors coincide.
func (p *Piece) parabola(x float64) (float64, bool) {
	ax, bx, cx := p.A.AdjustedX, p.B.AdjustedX, p.C.AdjustedX
	if bx-ax <= spacingEpsilon || cx-bx <= spacingEpsilon {
		return 0, false
	}
	la := (x - bx) * (x - cx) / ((ax - bx) * (ax - cx))
	lb := (x - ax) * (x - cx) / ((bx - ax) * (bx - cx))
	lc := (x - ax) * (x - bx) / ((cx - ax) * (cx - bx))
	return p.A.Y*la + p.B.Y*lb + p.C.Y*lc, true
}
