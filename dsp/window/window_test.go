package window

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestGenerateAllTypes(t *testing.T) {
	for _, typ := range Types() {
		t.Run(typ.String(), func(t *testing.T) {
			w := Generate(typ, 64)
			if len(w) != 64 {
				t.Fatalf("len=%d, want 64", len(w))
			}
			for i, v := range w {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("coefficient[%d] invalid: %v", i, v)
				}
			}
		})
	}
}

func TestGenerateRejectsEmpty(t *testing.T) {
	if w := Generate(TypeHann, 0); w != nil {
		t.Fatalf("Generate(0) = %v, want nil", w)
	}
}

func TestPeriodicDiffersFromSymmetric(t *testing.T) {
	a := Generate(TypeHann, 16)
	b := Generate(TypeHann, 16, WithPeriodic())

	if !almostEqual(a[15], 0, 1e-12) {
		t.Fatalf("symmetric end = %v, want 0", a[15])
	}
	if almostEqual(a[15], b[15], 1e-12) {
		t.Fatal("expected different end coefficient for periodic form")
	}
	if !almostEqual(b[8], 1, 1e-12) {
		t.Fatalf("periodic centre = %v, want 1", b[8])
	}
}

func TestCoherentGainMatchesMetadata(t *testing.T) {
	for _, typ := range Types() {
		w := Generate(typ, 1024, WithPeriodic())
		sum := 0.0
		for _, v := range w {
			sum += v
		}
		if got, want := sum/1024, Info(typ).CoherentGain; !almostEqual(got, want, 1e-9) {
			t.Fatalf("%v coherent gain = %v, want %v", typ, got, want)
		}
	}
}

func TestApplyInPlaceByType(t *testing.T) {
	buf := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	Apply(TypeRectangular, buf)

	for i, v := range buf {
		if v != float64(i+1) {
			t.Fatalf("rectangular should be passthrough at %d: %v", i, v)
		}
	}

	Apply(TypeHann, buf)

	if buf[0] != 0 {
		t.Fatalf("hann first sample should be 0, got %v", buf[0])
	}
}

func TestParse(t *testing.T) {
	for _, typ := range Types() {
		got, err := Parse(typ.String())
		if err != nil || got != typ {
			t.Fatalf("Parse(%q) = %v, %v", typ.String(), got, err)
		}
	}
	if got, err := Parse("hann"); err != nil || got != TypeHann {
		t.Fatalf("Parse(hann) = %v, %v", got, err)
	}
	if _, err := Parse("kaiser"); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("Parse(kaiser) error = %v, want ErrUnknownType", err)
	}
	if Info(Type(99)).Name != "" || Type(99).String() != "unknown" {
		t.Fatal("unknown type reported metadata")
	}
}
