package mesh

import "github.com/cwbudde/algo-mesh/dsp/core"

// VertexID indexes a vertex inside its mesh arena.
type VertexID int

// CubeID indexes a cube inside its mesh arena.
type CubeID int

// NoCube is returned by queries that find no cube.
const NoCube CubeID = -1

// Vertex is one control point of the lattice.
type Vertex struct {
	Values [NumDims]float64

	owners []CubeID
}

// NewVertex builds a vertex from its six coordinates.
func NewVertex(time, phase, amp, red, blue, curve float64) Vertex {
	return Vertex{Values: [NumDims]float64{time, phase, amp, red, blue, curve}}
}

// At returns the coordinate along d.
func (v Vertex) At(d Dim) float64 {
	return v.Values[d]
}

// Set replaces the coordinate along d.
func (v *Vertex) Set(d Dim, value float64) {
	v.Values[d] = value
}

// Owners returns the cubes referencing v as of the last [Mesh.Validate].
// The returned slice must not be modified.
func (v Vertex) Owners() []CubeID {
	return v.owners
}

// IsOwnedBy reports whether c is listed as an owner of v.
func (v Vertex) IsOwnedBy(c CubeID) bool {
	for _, o := range v.owners {
		if o == c {
			return true
		}
	}
	return false
}

// Lerp blends the coordinates of a towards b by t. Owners are not carried.
func Lerp(a, b Vertex, t float64) Vertex {
	var out Vertex
	for d := range out.Values {
		out.Values[d] = core.Lerp(a.Values[d], b.Values[d], t)
	}
	return out
}
