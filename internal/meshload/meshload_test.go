package meshload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-mesh/mesh"
	"github.com/cwbudde/algo-mesh/mesh/intercept"
	"github.com/cwbudde/algo-mesh/mesh/preset"
)

func TestLoadPreset(t *testing.T) {
	m, err := Load(" ADSR ")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if m.NumCubes() != preset.ADSR().NumCubes() {
		t.Fatalf("cubes = %d", m.NumCubes())
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.xml")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := preset.LoopingEnvelope().Encode(f); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !m.IsLoop(1) || !m.IsSustain(3) {
		t.Fatalf("tags lost: loop=%v sustain=%v", m.LoopCubes(), m.SustainCubes())
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.xml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParseFlags(t *testing.T) {
	if k, err := ParseKind("Bilinear"); err != nil || k != intercept.KindBilinear {
		t.Fatalf("ParseKind() = %v, %v", k, err)
	}
	if _, err := ParseKind("cubic"); err == nil {
		t.Fatal("expected error for unknown interpolator")
	}
	if d, err := ParseSweep("RED"); err != nil || d != mesh.Red {
		t.Fatalf("ParseSweep() = %v, %v", d, err)
	}
	if _, err := ParseSweep("phase"); err == nil {
		t.Fatal("expected error for non-morph axis")
	}
}
