package core

import "testing"

func TestEnsureLenReuse(t *testing.T) {
	buf := make([]float64, 4, 8)

	out := EnsureLen(buf, 6)
	if len(out) != 6 {
		t.Fatalf("len = %d, want 6", len(out))
	}

	if cap(out) != cap(buf) {
		t.Fatalf("cap = %d, want %d", cap(out), cap(buf))
	}
}

func TestEnsureCap(t *testing.T) {
	buf := make([]float64, 3, 16)

	out := EnsureCap(buf, 10)
	if len(out) != 0 || cap(out) != 16 {
		t.Fatalf("len/cap = %d/%d, want 0/16", len(out), cap(out))
	}

	out = EnsureCap(buf, 32)
	if cap(out) < 32 {
		t.Fatalf("cap = %d, want >= 32", cap(out))
	}
}

func TestZero(t *testing.T) {
	buf := []float64{1, 2, 3}
	Zero(buf)

	for i, v := range buf {
		if v != 0 {
			t.Fatalf("buf[%d] = %v, want 0", i, v)
		}
	}
}
