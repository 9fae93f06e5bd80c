package mesh_test

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-mesh/mesh"
	"github.com/cwbudde/algo-mesh/mesh/preset"
)

func unitCube(t *testing.T, m *mesh.Mesh, lo, hi preset.Point) mesh.CubeID {
	t.Helper()
	id, err := preset.AddCube(m, preset.Morphing(lo, hi))
	if err != nil {
		t.Fatalf("AddCube() error = %v", err)
	}
	return id
}

func TestAddCubeRecordsOwners(t *testing.T) {
	m := mesh.New()
	c := unitCube(t, m, preset.Point{Phase: 0.1, Amp: 0.2}, preset.Point{Phase: 0.3, Amp: 0.4})

	if m.NumVertices() != 8 || m.NumCubes() != 1 {
		t.Fatalf("vertices/cubes = %d/%d, want 8/1", m.NumVertices(), m.NumCubes())
	}
	for _, v := range m.Cube(c).Verts {
		if !m.Vertex(v).IsOwnedBy(c) {
			t.Fatalf("vertex %d does not list cube %d", v, c)
		}
	}
	if err := m.Verify(); err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
}

func TestAddCubeRejectsBadCorners(t *testing.T) {
	m := mesh.New()
	for i := 0; i < 8; i++ {
		m.AddVertex(mesh.Vertex{})
	}

	dup := [mesh.NumCorners]mesh.VertexID{0, 1, 2, 3, 4, 5, 6, 6}
	if _, err := m.AddCube(dup); !errors.Is(err, mesh.ErrDuplicateVertex) {
		t.Fatalf("AddCube(dup) error = %v, want ErrDuplicateVertex", err)
	}

	oob := [mesh.NumCorners]mesh.VertexID{0, 1, 2, 3, 4, 5, 6, 9}
	if _, err := m.AddCube(oob); !errors.Is(err, mesh.ErrInvalidVertex) {
		t.Fatalf("AddCube(oob) error = %v, want ErrInvalidVertex", err)
	}
}

func TestSharedVertexHasTwoOwners(t *testing.T) {
	m := mesh.New()
	for i := 0; i < 12; i++ {
		m.AddVertex(mesh.Vertex{})
	}
	a, err := m.AddCube([mesh.NumCorners]mesh.VertexID{0, 1, 2, 3, 4, 5, 6, 7})
	if err != nil {
		t.Fatal(err)
	}
	b, err := m.AddCube([mesh.NumCorners]mesh.VertexID{1, 8, 3, 9, 5, 10, 7, 11})
	if err != nil {
		t.Fatal(err)
	}

	owners := m.Vertex(1).Owners()
	if len(owners) != 2 || owners[0] != a || owners[1] != b {
		t.Fatalf("owners = %v, want [%d %d]", owners, a, b)
	}
}

func TestVerifyDetectsStaleOwners(t *testing.T) {
	m := mesh.New()
	c := unitCube(t, m, preset.Point{}, preset.Point{})
	extra := m.AddVertex(mesh.Vertex{})

	m.Cube(c).Verts[0] = extra
	if err := m.Verify(); !errors.Is(err, mesh.ErrOwnerMismatch) {
		t.Fatalf("Verify() error = %v, want ErrOwnerMismatch", err)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if err := m.Verify(); err != nil {
		t.Fatalf("Verify() after Validate error = %v", err)
	}
}

func TestValidateFailureKeepsOwners(t *testing.T) {
	m := mesh.New()
	a := unitCube(t, m, preset.Point{Phase: 0.1}, preset.Point{Phase: 0.1})
	b := unitCube(t, m, preset.Point{Phase: 0.5}, preset.Point{Phase: 0.5})

	corners := m.Cube(a).Verts
	m.Cube(a).Verts[7] = corners[0]
	if err := m.Validate(); !errors.Is(err, mesh.ErrDuplicateVertex) {
		t.Fatalf("Validate() error = %v, want ErrDuplicateVertex", err)
	}
	for _, v := range m.Cube(b).Verts {
		if !m.Vertex(v).IsOwnedBy(b) {
			t.Fatalf("vertex %d lost owner %d after failed Validate", v, b)
		}
	}
	if !m.Vertex(corners[7]).IsOwnedBy(a) {
		t.Fatalf("vertex %d lost owner %d after failed Validate", corners[7], a)
	}
}

func TestRemoveCubePrunesAndRenumbers(t *testing.T) {
	m := mesh.New()
	a := unitCube(t, m, preset.Point{Phase: 0.1}, preset.Point{Phase: 0.1})
	b := unitCube(t, m, preset.Point{Phase: 0.5}, preset.Point{Phase: 0.5})
	c := unitCube(t, m, preset.Point{Phase: 0.9}, preset.Point{Phase: 0.9})
	if err := m.TagLoop(b); err != nil {
		t.Fatal(err)
	}
	if err := m.TagSustain(c); err != nil {
		t.Fatal(err)
	}

	if err := m.RemoveCube(a); err != nil {
		t.Fatalf("RemoveCube() error = %v", err)
	}

	if m.NumCubes() != 2 || m.NumVertices() != 16 {
		t.Fatalf("cubes/vertices = %d/%d, want 2/16", m.NumCubes(), m.NumVertices())
	}
	if !m.IsLoop(0) || !m.IsSustain(1) {
		t.Fatalf("tags did not follow cubes: loop=%v sustain=%v", m.LoopCubes(), m.SustainCubes())
	}
	if got := m.Vertex(m.Cube(0).Verts[0]).At(mesh.Phase); got != 0.5 {
		t.Fatalf("first remaining cube phase = %v, want 0.5", got)
	}
	if err := m.Verify(); err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
}

func TestRemoveCubeKeepsSharedVertices(t *testing.T) {
	m := mesh.New()
	for i := 0; i < 12; i++ {
		m.AddVertex(mesh.Vertex{Values: [mesh.NumDims]float64{mesh.Phase: float64(i)}})
	}
	if _, err := m.AddCube([mesh.NumCorners]mesh.VertexID{0, 1, 2, 3, 4, 5, 6, 7}); err != nil {
		t.Fatal(err)
	}
	if _, err := m.AddCube([mesh.NumCorners]mesh.VertexID{1, 8, 3, 9, 5, 10, 7, 11}); err != nil {
		t.Fatal(err)
	}

	if err := m.RemoveCube(0); err != nil {
		t.Fatal(err)
	}
	if m.NumVertices() != 8 {
		t.Fatalf("vertices = %d, want 8", m.NumVertices())
	}
	if got := m.Vertex(m.Cube(0).Verts[0]).At(mesh.Phase); got != 1 {
		t.Fatalf("shared vertex phase = %v, want 1", got)
	}
	if err := m.RemoveCube(5); !errors.Is(err, mesh.ErrInvalidCube) {
		t.Fatalf("RemoveCube(5) error = %v, want ErrInvalidCube", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	m := preset.Saw()
	c := m.Clone()

	m.Vertex(0).Set(mesh.Phase, 0.77)
	if c.Vertex(0).At(mesh.Phase) == 0.77 {
		t.Fatal("clone shares vertex storage")
	}
	if err := c.Verify(); err != nil {
		t.Fatalf("clone Verify() error = %v", err)
	}
}

func TestDimNames(t *testing.T) {
	for d := mesh.Dim(0); d < mesh.NumDims; d++ {
		got, ok := mesh.ParseDim(d.String())
		if !ok || got != d {
			t.Fatalf("ParseDim(%q) = %v, %v", d.String(), got, ok)
		}
	}
	if _, ok := mesh.ParseDim("green"); ok {
		t.Fatal("ParseDim accepted unknown name")
	}
}
