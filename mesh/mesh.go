package mesh

import (
	"fmt"
	"slices"
)

// Mesh is an insertion-ordered arena of vertices and cubes.
//
// Structural edits (AddCube, RemoveCube, Prune) keep owner lists current.
// Callers that edit Cube.Verts directly must call Validate afterwards.
//
// A Mesh is not safe for concurrent mutation. Rasterizers only read it.
type Mesh struct {
	verts []Vertex
	cubes []Cube

	loop    []CubeID
	sustain []CubeID
}

// New returns an empty mesh.
func New() *Mesh {
	return &Mesh{}
}

// NumVertices returns the number of vertices.
func (m *Mesh) NumVertices() int { return len(m.verts) }

// NumCubes returns the number of cubes.
func (m *Mesh) NumCubes() int { return len(m.cubes) }

// Vertex returns the vertex with the given id. The pointer is invalidated by
// structural edits.
func (m *Mesh) Vertex(id VertexID) *Vertex {
	return &m.verts[id]
}

// Cube returns the cube with the given id. The pointer is invalidated by
// structural edits.
func (m *Mesh) Cube(id CubeID) *Cube {
	return &m.cubes[id]
}

// AddVertex appends v and returns its id. The vertex has no owners until a
// cube references it.
func (m *Mesh) AddVertex(v Vertex) VertexID {
	v.owners = nil
	m.verts = append(m.verts, v)
	return VertexID(len(m.verts) - 1)
}

// AddCube appends a cube over the given corners.
func (m *Mesh) AddCube(verts [NumCorners]VertexID) (CubeID, error) {
	return m.AppendCube(NewCube(verts))
}

// AppendCube appends a fully specified cube, including its deformation
// settings.
func (m *Mesh) AppendCube(c Cube) (CubeID, error) {
	if err := m.checkCorners(c.Verts); err != nil {
		return NoCube, err
	}
	id := CubeID(len(m.cubes))
	m.cubes = append(m.cubes, c)
	for _, v := range c.Verts {
		m.verts[v].owners = append(m.verts[v].owners, id)
	}
	return id, nil
}

// RemoveCube deletes a cube, drops vertices left without owners and
// renumbers the remaining ids. Loop and sustain tags follow their cubes.
func (m *Mesh) RemoveCube(id CubeID) error {
	if !m.validCube(id) {
		return fmt.Errorf("%w: %d", ErrInvalidCube, id)
	}

	m.cubes = slices.Delete(m.cubes, int(id), int(id)+1)
	m.loop = dropTag(m.loop, id)
	m.sustain = dropTag(m.sustain, id)

	return m.Prune()
}

// Prune removes every vertex that no cube references, renumbers vertex ids
// and revalidates the mesh.
func (m *Mesh) Prune() error {
	used := make([]bool, len(m.verts))
	for ci := range m.cubes {
		for _, v := range m.cubes[ci].Verts {
			if int(v) >= 0 && int(v) < len(used) {
				used[v] = true
			}
		}
	}

	remap := make([]VertexID, len(m.verts))
	kept := m.verts[:0]
	for i, v := range m.verts {
		if !used[i] {
			remap[i] = -1
			continue
		}
		remap[i] = VertexID(len(kept))
		kept = append(kept, v)
	}
	clear(m.verts[len(kept):])
	m.verts = kept

	for ci := range m.cubes {
		for k, v := range m.cubes[ci].Verts {
			if int(v) >= 0 && int(v) < len(remap) {
				m.cubes[ci].Verts[k] = remap[v]
			}
		}
	}

	return m.Validate()
}

// Validate rebuilds every vertex owner list from cube membership and checks
// that each cube references eight distinct, existing vertices. On error the
// owner lists are left untouched.
func (m *Mesh) Validate() error {
	for ci := range m.cubes {
		if err := m.checkCorners(m.cubes[ci].Verts); err != nil {
			return fmt.Errorf("cube %d: %w", ci, err)
		}
	}
	for i := range m.verts {
		m.verts[i].owners = m.verts[i].owners[:0]
	}
	for ci := range m.cubes {
		for _, v := range m.cubes[ci].Verts {
			m.verts[v].owners = append(m.verts[v].owners, CubeID(ci))
		}
	}
	return nil
}

// Verify checks the owner invariant without modifying the mesh. It is the
// read-only counterpart of Validate used by consumers holding a shared mesh.
func (m *Mesh) Verify() error {
	for ci := range m.cubes {
		if err := m.checkCorners(m.cubes[ci].Verts); err != nil {
			return fmt.Errorf("cube %d: %w", ci, err)
		}
		for _, v := range m.cubes[ci].Verts {
			if !m.verts[v].IsOwnedBy(CubeID(ci)) {
				return fmt.Errorf("%w: vertex %d does not list cube %d", ErrOwnerMismatch, v, ci)
			}
		}
	}
	for vi, v := range m.verts {
		for _, o := range v.owners {
			if !m.validCube(o) || !m.cubes[o].Contains(VertexID(vi)) {
				return fmt.Errorf("%w: vertex %d lists stale cube %d", ErrOwnerMismatch, vi, o)
			}
		}
	}
	return nil
}

// TagLoop marks c as a loop-start cube of an envelope mesh.
func (m *Mesh) TagLoop(c CubeID) error {
	if !m.validCube(c) {
		return fmt.Errorf("%w: %d", ErrInvalidCube, c)
	}
	m.loop = addTag(m.loop, c)
	return nil
}

// TagSustain marks c as a sustain cube of an envelope mesh.
func (m *Mesh) TagSustain(c CubeID) error {
	if !m.validCube(c) {
		return fmt.Errorf("%w: %d", ErrInvalidCube, c)
	}
	m.sustain = addTag(m.sustain, c)
	return nil
}

// UntagLoop clears the loop tag of c.
func (m *Mesh) UntagLoop(c CubeID) {
	if i := slices.Index(m.loop, c); i >= 0 {
		m.loop = slices.Delete(m.loop, i, i+1)
	}
}

// UntagSustain clears the sustain tag of c.
func (m *Mesh) UntagSustain(c CubeID) {
	if i := slices.Index(m.sustain, c); i >= 0 {
		m.sustain = slices.Delete(m.sustain, i, i+1)
	}
}

// IsLoop reports whether c is tagged as a loop cube.
func (m *Mesh) IsLoop(c CubeID) bool { return slices.Contains(m.loop, c) }

// IsSustain reports whether c is tagged as a sustain cube.
func (m *Mesh) IsSustain(c CubeID) bool { return slices.Contains(m.sustain, c) }

// LoopCubes returns the loop-tagged cubes in ascending order.
func (m *Mesh) LoopCubes() []CubeID { return slices.Clone(m.loop) }

// SustainCubes returns the sustain-tagged cubes in ascending order.
func (m *Mesh) SustainCubes() []CubeID { return slices.Clone(m.sustain) }

// Clone returns a deep copy of m. Editors use it to hand a stable snapshot to
// rasterizers while continuing to edit the original.
func (m *Mesh) Clone() *Mesh {
	out := &Mesh{
		verts:   make([]Vertex, len(m.verts)),
		cubes:   slices.Clone(m.cubes),
		loop:    slices.Clone(m.loop),
		sustain: slices.Clone(m.sustain),
	}
	for i, v := range m.verts {
		out.verts[i] = Vertex{Values: v.Values, owners: slices.Clone(v.owners)}
	}
	return out
}

func (m *Mesh) validCube(c CubeID) bool {
	return c >= 0 && int(c) < len(m.cubes)
}

func (m *Mesh) checkCorners(verts [NumCorners]VertexID) error {
	for i, v := range verts {
		if v < 0 || int(v) >= len(m.verts) {
			return fmt.Errorf("%w: corner %d references %d", ErrInvalidVertex, i, v)
		}
		for j := 0; j < i; j++ {
			if verts[j] == v {
				return fmt.Errorf("%w: vertex %d at corners %d and %d", ErrDuplicateVertex, v, j, i)
			}
		}
	}
	return nil
}

func addTag(tags []CubeID, c CubeID) []CubeID {
	i, found := slices.BinarySearch(tags, c)
	if found {
		return tags
	}
	return slices.Insert(tags, i, c)
}

// dropTag removes c from tags and shifts every later id down by one.
func dropTag(tags []CubeID, c CubeID) []CubeID {
	out := tags[:0]
	for _, t := range tags {
		switch {
		case t == c:
			continue
		case t > c:
			out = append(out, t-1)
		default:
			out = append(out, t)
		}
	}
	return out
}
