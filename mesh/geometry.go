package mesh

import (
	"math"

	"github.com/cwbudde/algo-mesh/dsp/core"
)

// spanEpsilon guards fractions over degenerate cube extents.
const spanEpsilon = 1e-12

// Face returns the four corners of c on the low (pole 0) or high (pole 1)
// side along the morph axis d. Corners are ordered by the remaining two
// axes in corner-bit order, so index j = u | w<<1.
func (m *Mesh) Face(c CubeID, d Dim, pole int) [4]VertexID {
	var face [4]VertexID
	bit := d.cornerBit()
	if bit < 0 {
		bit = 0
	}
	cube := &m.cubes[c]
	n := 0
	for corner := 0; corner < NumCorners; corner++ {
		if (corner>>bit)&1 == pole&1 {
			face[n] = cube.Verts[corner]
			n++
		}
	}
	return face
}

// Bounds returns the extent of c along d over all eight corners.
func (m *Mesh) Bounds(c CubeID, d Dim) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range m.cubes[c].Verts {
		x := m.verts[v].Values[d]
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	return lo, hi
}

// InBounds reports whether pos lies inside the projection of c onto the two
// morph axes other than sweep. Upper bounds are exclusive so that adjacent
// cells never both claim a shared boundary; the top edge of morph space
// (upper bound >= 1) stays inclusive.
func (m *Mesh) InBounds(c CubeID, sweep Dim, pos Morph) bool {
	u, w := otherMorphDims(sweep)
	return m.inSpan(c, u, pos.At(u)) && m.inSpan(c, w, pos.At(w))
}

func (m *Mesh) inSpan(c CubeID, d Dim, p float64) bool {
	lo, hi := m.Bounds(c, d)
	return within(p, lo, hi)
}

// within reports lo <= p < hi, accepting p == hi on the top edge of morph
// space and p == lo on a degenerate span.
func within(p, lo, hi float64) bool {
	if p < lo {
		return false
	}
	if p < hi {
		return true
	}
	return p == hi && (hi >= 1 || hi-lo <= spanEpsilon)
}

// InterceptsFast resolves the cross-section of c at pos into two vertices
// bounding the query along sweep. v0 lies on the low face, v1 on the high
// face; both are bilinear blends of their face at the fixed coordinates of
// the other two morph axes. ok is false when pos is outside the cube on any
// of the three morph axes. Along sweep the span between v0 and v1 follows
// the same exclusive-upper rule as InBounds, so cells chained along sweep
// claim their shared face once.
func (m *Mesh) InterceptsFast(c CubeID, sweep Dim, pos Morph) (v0, v1 Vertex, ok bool) {
	if !m.InBounds(c, sweep, pos) {
		return Vertex{}, Vertex{}, false
	}
	u, w := otherMorphDims(sweep)
	pu, pw := pos.At(u), pos.At(w)

	v0 = m.bilinear(m.Face(c, sweep, 0), u, w, pu, pw)
	v1 = m.bilinear(m.Face(c, sweep, 1), u, w, pu, pw)
	lo, hi := v0.At(sweep), v1.At(sweep)
	if lo > hi {
		lo, hi = hi, lo
	}
	if !within(pos.At(sweep), lo, hi) {
		return Vertex{}, Vertex{}, false
	}
	return v0, v1, true
}

// FinalIntercept is the trilinear lookup: two bilinear face blends from
// InterceptsFast followed by a linear blend along sweep.
func (m *Mesh) FinalIntercept(c CubeID, sweep Dim, pos Morph) (Vertex, bool) {
	v0, v1, ok := m.InterceptsFast(c, sweep, pos)
	if !ok {
		return Vertex{}, false
	}
	t := core.Fraction(pos.At(sweep), v0.At(sweep), v1.At(sweep), spanEpsilon)
	return Lerp(v0, v1, t), true
}

func (m *Mesh) bilinear(face [4]VertexID, u, w Dim, pu, pw float64) Vertex {
	a0, a1 := m.verts[face[0]], m.verts[face[1]]
	b0, b1 := m.verts[face[2]], m.verts[face[3]]

	a := Lerp(a0, a1, core.Fraction(pu, a0.At(u), a1.At(u), spanEpsilon))
	b := Lerp(b0, b1, core.Fraction(pu, b0.At(u), b1.At(u), spanEpsilon))
	return Lerp(a, b, core.Fraction(pw, a.At(w), b.At(w), spanEpsilon))
}

// AdjacentCube returns the cube sharing the pole face of c along d: the
// neighbour whose opposite face holds the same diagonal vertex pair.
func (m *Mesh) AdjacentCube(c CubeID, d Dim, pole int) (CubeID, bool) {
	if !d.IsMorph() || !m.validCube(c) {
		return NoCube, false
	}
	face := m.Face(c, d, pole)
	for o := range m.cubes {
		if CubeID(o) == c {
			continue
		}
		other := m.Face(CubeID(o), d, 1-pole&1)
		if other[0] == face[0] && other[3] == face[3] {
			return CubeID(o), true
		}
	}
	return NoCube, false
}

// ChainPosition reports how many cubes precede and follow c along d through
// shared faces. It stops after NumCubes steps so cyclic chains terminate.
func (m *Mesh) ChainPosition(c CubeID, d Dim) (before, after int) {
	limit := len(m.cubes)
	for cur, n := c, 0; n < limit; n++ {
		prev, ok := m.AdjacentCube(cur, d, 0)
		if !ok {
			break
		}
		before++
		cur = prev
	}
	for cur, n := c, 0; n < limit; n++ {
		next, ok := m.AdjacentCube(cur, d, 1)
		if !ok {
			break
		}
		after++
		cur = next
	}
	return before, after
}
