// Package preset builds small ready-made meshes for demos, tools and tests.
package preset

import (
	"fmt"

	"github.com/cwbudde/algo-mesh/mesh"
)

// Point is the curve-space part of a vertex.
type Point struct {
	Phase float64
	Amp   float64
	Curve float64
}

// CornerFunc returns the curve-space point for a cube corner given its
// Time, Red and Blue poles.
type CornerFunc func(t, r, b int) Point

// AddCube appends a unit cube spanning [0,1]^3 in morph space whose corners
// carry the points returned by corner.
func AddCube(m *mesh.Mesh, corner CornerFunc) (mesh.CubeID, error) {
	var ids [mesh.NumCorners]mesh.VertexID
	for t := 0; t < 2; t++ {
		for r := 0; r < 2; r++ {
			for b := 0; b < 2; b++ {
				p := corner(t, r, b)
				v := mesh.NewVertex(float64(t), p.Phase, p.Amp, float64(r), float64(b), p.Curve)
				ids[mesh.Corner(t, r, b)] = m.AddVertex(v)
			}
		}
	}
	return m.AddCube(ids)
}

// Constant returns a CornerFunc that places p on every corner.
func Constant(p Point) CornerFunc {
	return func(int, int, int) Point { return p }
}

// Morphing returns a CornerFunc that moves from lo at Time 0 to hi at
// Time 1. The Red pole sharpens the curve and the Blue pole pulls the
// amplitude halfway towards the centre line.
func Morphing(lo, hi Point) CornerFunc {
	return func(t, r, b int) Point {
		p := lo
		if t == 1 {
			p = hi
		}
		if r == 1 {
			p.Curve = 1
		}
		if b == 1 {
			p.Amp = 0.5 + (p.Amp-0.5)*0.5
		}
		return p
	}
}

// Saw returns a single-cycle voice mesh: a saw at Time 0 morphing into a
// triangle at Time 1.
func Saw() *mesh.Mesh {
	saw := []Point{{Phase: 0, Amp: 0.5}, {Phase: 0.02, Amp: 1}, {Phase: 0.98, Amp: 0}}
	tri := []Point{{Phase: 0, Amp: 0.5}, {Phase: 0.25, Amp: 1}, {Phase: 0.75, Amp: 0}}
	return mustBuild(saw, tri)
}

// Pulse returns a voice mesh approximating a square wave with sharp corners.
func Pulse() *mesh.Mesh {
	lo := []Point{
		{Phase: 0, Amp: 0.9, Curve: 1},
		{Phase: 0.48, Amp: 0.9, Curve: 1},
		{Phase: 0.52, Amp: 0.1, Curve: 1},
		{Phase: 0.96, Amp: 0.1, Curve: 1},
	}
	hi := []Point{
		{Phase: 0, Amp: 0.9, Curve: 1},
		{Phase: 0.23, Amp: 0.9, Curve: 1},
		{Phase: 0.27, Amp: 0.1, Curve: 1},
		{Phase: 0.96, Amp: 0.1, Curve: 1},
	}
	return mustBuild(lo, hi)
}

// ADSR returns an envelope mesh with a sustain cube and a release tail but no
// loop region.
func ADSR() *mesh.Mesh {
	lo := []Point{
		{Phase: 0, Amp: 0},
		{Phase: 0.1, Amp: 1},
		{Phase: 0.3, Amp: 0.6},
		{Phase: 0.8, Amp: 0},
	}
	hi := []Point{
		{Phase: 0, Amp: 0},
		{Phase: 0.3, Amp: 1},
		{Phase: 0.6, Amp: 0.6},
		{Phase: 1.4, Amp: 0},
	}
	m := mustBuild(lo, hi)
	mustTag(m.TagSustain(2))
	return m
}

// LoopingEnvelope returns an envelope mesh whose decay segment between the
// loop cube and the sustain cube repeats while the note is held.
func LoopingEnvelope() *mesh.Mesh {
	lo := []Point{
		{Phase: 0, Amp: 0},
		{Phase: 0.1, Amp: 1},
		{Phase: 0.25, Amp: 0.3},
		{Phase: 0.4, Amp: 0.7},
		{Phase: 0.9, Amp: 0},
	}
	hi := []Point{
		{Phase: 0, Amp: 0},
		{Phase: 0.2, Amp: 1},
		{Phase: 0.4, Amp: 0.2},
		{Phase: 0.6, Amp: 0.8},
		{Phase: 1.2, Amp: 0},
	}
	m := mustBuild(lo, hi)
	mustTag(m.TagLoop(1))
	mustTag(m.TagSustain(3))
	return m
}

// Build creates one cube per point pair, morphing lo[i] into hi[i] along
// Time.
func Build(lo, hi []Point) (*mesh.Mesh, error) {
	if len(lo) != len(hi) {
		return nil, fmt.Errorf("preset: %d low points but %d high points", len(lo), len(hi))
	}
	m := mesh.New()
	for i := range lo {
		if _, err := AddCube(m, Morphing(lo[i], hi[i])); err != nil {
			return nil, fmt.Errorf("preset: cube %d: %w", i, err)
		}
	}
	return m, nil
}

// Names lists the presets understood by ByName.
func Names() []string {
	return []string{"saw", "pulse", "adsr", "looping"}
}

// ByName returns a fresh copy of the named preset.
func ByName(name string) (*mesh.Mesh, error) {
	switch name {
	case "saw":
		return Saw(), nil
	case "pulse":
		return Pulse(), nil
	case "adsr":
		return ADSR(), nil
	case "looping":
		return LoopingEnvelope(), nil
	default:
		return nil, fmt.Errorf("preset: unknown preset %q", name)
	}
}

func mustBuild(lo, hi []Point) *mesh.Mesh {
	m, err := Build(lo, hi)
	if err != nil {
		panic(err)
	}
	return m
}

func mustTag(err error) {
	if err != nil {
		panic(err)
	}
}
