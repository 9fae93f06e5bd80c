package curve

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-mesh/mesh/intercept"
)

func points(xy ...float64) []intercept.Intercept {
	out := make([]intercept.Intercept, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, intercept.Intercept{X: xy[i], AdjustedX: xy[i], Y: xy[i+1]})
	}
	return out
}

func newBuilder(t *testing.T, opts ...Option) *Builder {
	t.Helper()
	b, err := NewBuilder(opts...)
	if err != nil {
		t.Fatalf("NewBuilder() error = %v", err)
	}
	return b
}

func TestBuildLegacyPadding(t *testing.T) {
	b := newBuilder(t)
	if _, err := b.Build(points(0, 0.2, 0.4, 0.5, 0.9, 0.8), PadLegacyFixed, 1); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	pieces := b.Pieces()
	if len(pieces) != 5 {
		t.Fatalf("pieces=%d, want 5", len(pieces))
	}

	first := pieces[0]
	if first.A.X != -1 || first.B.X != -0.5 || first.C.X != 0 {
		t.Fatalf("first piece anchors = %v %v %v, want -1 -0.5 0", first.A.X, first.B.X, first.C.X)
	}
	if first.A.Y != 0.2 || first.B.Y != 0.2 {
		t.Fatalf("front pad values = %v %v, want 0.2", first.A.Y, first.B.Y)
	}

	last := pieces[4]
	if last.A.X != 0.9 || last.B.X != 1.5 || last.C.X != 2 {
		t.Fatalf("last piece anchors = %v %v %v, want 0.9 1.5 2", last.A.X, last.B.X, last.C.X)
	}
	if last.B.Y != 0.8 || last.C.Y != 0.8 {
		t.Fatalf("back pad values = %v %v, want 0.8", last.B.Y, last.C.Y)
	}
}

func TestTablePassesThroughPoints(t *testing.T) {
	tests := []struct {
		name  string
		shape float64
	}{
		{name: "smooth", shape: 0},
		{name: "half", shape: 0.5},
		{name: "sharp", shape: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ins := points(0.1, 0.2, 0.4, 0.9, 0.7, 0.1)
			for i := range ins {
				ins[i].Shape = tt.shape
			}
			b := newBuilder(t)
			table, err := b.Build(ins, PadRelease, 1)
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			for _, p := range ins {
				if got := table.Sample(p.X); math.Abs(got-p.Y) > 1e-9 {
					t.Fatalf("Sample(%v)=%v, want %v", p.X, got, p.Y)
				}
			}
		})
	}
}

func TestSharpSegmentsAreStraight(t *testing.T) {
	ins := points(0, 0.2, 0.4, 0.5, 0.9, 0.8)
	for i := range ins {
		ins[i].Shape = 1
	}
	b := newBuilder(t)
	table, err := b.Build(ins, PadLegacyFixed, 1)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := table.Sample(0.2); math.Abs(got-0.35) > 1e-9 {
		t.Fatalf("Sample(0.2)=%v, want 0.35", got)
	}
	for _, p := range b.Pieces() {
		if !p.IsLinear() || p.ResIndex != MaxResIndex {
			t.Fatalf("sharp piece linear=%v res=%d, want linear at %d", p.IsLinear(), p.ResIndex, MaxResIndex)
		}
	}
}

func TestTableLayout(t *testing.T) {
	b := newBuilder(t)
	table, err := b.Build(points(0.9, 0.8, 0, 0.2, 0.4, 0.5), PadLegacyFixed, 1)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	n := table.Len()
	if len(table.Y) != n || len(table.Slope) != n {
		t.Fatalf("array lengths X=%d Y=%d Slope=%d", n, len(table.Y), len(table.Slope))
	}
	if table.MinX() != -0.5 || table.MaxX() != 1.5 {
		t.Fatalf("range=[%v, %v], want [-0.5, 1.5]", table.MinX(), table.MaxX())
	}
	for i := 0; i+1 < n; i++ {
		dx := table.X[i+1] - table.X[i]
		if dx < 0 {
			t.Fatalf("X decreases at %d: %v -> %v", i, table.X[i], table.X[i+1])
		}
		want := (table.Y[i+1] - table.Y[i]) / math.Max(dx, slopeEpsilon)
		if math.Abs(table.Slope[i]-want) > 1e-9 {
			t.Fatalf("slope[%d]=%v, want %v", i, table.Slope[i], want)
		}
	}
	if table.Slope[n-1] != 0 {
		t.Fatalf("last slope=%v, want 0", table.Slope[n-1])
	}

	for _, tc := range []struct {
		idx   int
		bound float64
	}{{table.ZeroIndex, 0}, {table.OneIndex, 1}} {
		if tc.idx < 0 || table.X[tc.idx] > tc.bound {
			t.Fatalf("index %d does not satisfy X <= %v", tc.idx, tc.bound)
		}
		if tc.idx+1 < n && table.X[tc.idx+1] <= tc.bound {
			t.Fatalf("index %d is not the last with X <= %v", tc.idx, tc.bound)
		}
	}
}

func TestIndicesMissing(t *testing.T) {
	b := newBuilder(t)
	table, err := b.Build(points(3, 0.1, 4, 0.9), PadRelease, 1)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if table.ZeroIndex != -1 || table.OneIndex != -1 {
		t.Fatalf("ZeroIndex=%d OneIndex=%d, want -1 -1", table.ZeroIndex, table.OneIndex)
	}
}

func TestCursorMatchesSample(t *testing.T) {
	b := newBuilder(t, WithSamplesPerUnit(64))
	table, err := b.Build(points(0, 0.5, 0.3, 1, 0.6, 0, 0.8, 0.4), PadLoop, 1)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	var c Cursor
	queries := make([]float64, 0, 600)
	for i := 0; i < 300; i++ {
		queries = append(queries, -0.5+2*float64(i)/300)
	}
	for i := 0; i < 300; i++ {
		queries = append(queries, 1.3-1.5*float64(i)/300)
	}
	for _, x := range queries {
		got := c.Sample(table, x)
		want := table.Sample(x)
		if got != want {
			t.Fatalf("cursor Sample(%v)=%v, binary search=%v", x, got, want)
		}
	}
}

func TestOutsideRangeClamps(t *testing.T) {
	b := newBuilder(t)
	table, err := b.Build(points(0, 0.2, 1, 0.7), PadRelease, 1)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := table.Sample(-10); got != table.Y[0] {
		t.Fatalf("Sample(-10)=%v, want %v", got, table.Y[0])
	}
	if got := table.Sample(10); got != table.Y[table.Len()-1] {
		t.Fatalf("Sample(10)=%v, want %v", got, table.Y[table.Len()-1])
	}
}

func TestLoopPaddingIsPeriodic(t *testing.T) {
	b := newBuilder(t)
	table, err := b.Build(points(0.1, 0.3, 0.5, 0.9, 0.8, 0.2), PadLoop, 1)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if table.MinX() > 0 || table.MaxX() < 1 {
		t.Fatalf("range=[%v, %v] does not cover [0, 1]", table.MinX(), table.MaxX())
	}
	for _, x := range []float64{0, 0.05, 0.09} {
		if d := math.Abs(table.Sample(x) - table.Sample(x+1)); d > 1e-6 {
			t.Fatalf("Sample(%v) and Sample(%v) differ by %v", x, x+1, d)
		}
	}
}

func TestTooFewIntercepts(t *testing.T) {
	b := newBuilder(t)
	for _, ins := range [][]intercept.Intercept{nil, points(0.5, 0.5)} {
		if _, err := b.Build(ins, PadLoop, 1); !errors.Is(err, ErrTooFewIntercepts) {
			t.Fatalf("Build(%d intercepts) error = %v, want ErrTooFewIntercepts", len(ins), err)
		}
	}
	if b.Table().Len() != 0 || b.Points() != nil {
		t.Fatal("failed build left state behind")
	}
}

func TestBuildDoesNotModifyInput(t *testing.T) {
	ins := points(0.9, 0.1, 0.1, 0.9)
	b := newBuilder(t)
	if _, err := b.Build(ins, PadRelease, 1); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if ins[0].X != 0.9 || ins[1].X != 0.1 {
		t.Fatalf("input reordered: %v", ins)
	}
	if pts := b.Points(); pts[0].X != 0.1 || pts[1].X != 0.9 {
		t.Fatalf("Points() not sorted: %v", pts)
	}
}

func TestCapacityCoarsens(t *testing.T) {
	ins := points(0, 0.2, 0.3, 0.9, 0.6, 0.1, 0.9, 0.7)
	free := newBuilder(t)
	full, err := free.Build(ins, PadLoop, 1)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	bounded := newBuilder(t, WithCapacity(200))
	small, err := bounded.Build(ins, PadLoop, 1)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if small.Len() > 200 || small.Len() >= full.Len() {
		t.Fatalf("bounded len=%d, unbounded len=%d", small.Len(), full.Len())
	}
	for _, p := range ins {
		if d := math.Abs(small.Sample(p.X) - p.Y); d > 1e-9 {
			t.Fatalf("coarse table misses point %v by %v", p.X, d)
		}
	}
}

func TestBuildFailsBeyondReservedCapacity(t *testing.T) {
	ins := points(0, 0.2, 0.3, 0.9, 0.6, 0.1, 0.9, 0.7)

	few := newBuilder(t)
	few.Reserve(2, 1<<14)
	if _, err := few.Build(ins, PadLoop, 1); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("too many intercepts: error = %v, want ErrCapacityExceeded", err)
	}

	tiny := newBuilder(t)
	tiny.Reserve(16, 4)
	if _, err := tiny.Build(ins, PadLoop, 1); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("table too small: error = %v, want ErrCapacityExceeded", err)
	}
	if tiny.Table().Len() != 0 || tiny.Points() != nil {
		t.Fatal("failed Build left a table behind")
	}

	allocs := testing.AllocsPerRun(50, func() {
		_, _ = few.Build(ins, PadLoop, 1)
		_, _ = tiny.Build(ins, PadLoop, 1)
	})
	if allocs != 0 {
		t.Fatalf("allocs per failed Build = %v, want 0", allocs)
	}
}

func TestResolutionReducesSamples(t *testing.T) {
	ins := points(0, 0.2, 0.5, 0.9, 0.9, 0.4)
	b := newBuilder(t)
	fine, err := b.Build(ins, PadLoop, 1)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	fineLen := fine.Len()

	b.SetResolution(3)
	coarse, err := b.Build(ins, PadLoop, 1)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if coarse.Len() >= fineLen {
		t.Fatalf("resolution 3 len=%d, resolution 0 len=%d", coarse.Len(), fineLen)
	}
}

func TestOptionsValidation(t *testing.T) {
	bad := []Option{
		WithSamplesPerUnit(0),
		WithSamplesPerUnit(math.NaN()),
		WithResolution(-1),
		WithResolution(MaxResIndex + 1),
		WithMinSegmentSamples(0),
		WithCapacity(-1),
	}
	for i, opt := range bad {
		if _, err := NewBuilder(opt); err == nil {
			t.Fatalf("option %d: expected error", i)
		}
	}
	if _, err := NewBuilder(nil); err != nil {
		t.Fatalf("nil option: %v", err)
	}
}

func TestTransferShape(t *testing.T) {
	if transfer(0) != 0 || transfer(1) != 1 {
		t.Fatalf("transfer ends = %v %v", transfer(0), transfer(1))
	}
	if d := math.Abs(transfer(0.5) - 0.5); d > 1e-12 {
		t.Fatalf("transfer(0.5)=%v", transfer(0.5))
	}
	prev := 0.0
	for i := 1; i <= 4096; i++ {
		v := transfer(float64(i) / 4096)
		if v < prev {
			t.Fatalf("transfer decreases at %d", i)
		}
		prev = v
	}
}

func TestBuildZeroAllocsAfterReserve(t *testing.T) {
	ins := points(0, 0.5, 0.25, 1, 0.5, 0.5, 0.75, 0)
	b := newBuilder(t)
	b.Reserve(16, 1<<14)
	if _, err := b.Build(ins, PadLoop, 1); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	allocs := testing.AllocsPerRun(50, func() {
		_, _ = b.Build(ins, PadLoop, 1)
	})
	if allocs != 0 {
		t.Fatalf("allocs per Build = %v, want 0", allocs)
	}
}

func BenchmarkBuild(b *testing.B) {
	ins := points(0, 0.5, 0.1, 0.9, 0.3, 0.2, 0.5, 0.7, 0.8, 0.1)
	builder, err := NewBuilder()
	if err != nil {
		b.Fatal(err)
	}
	builder.Reserve(16, 1<<14)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := builder.Build(ins, PadLoop, 1); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCursorSample(b *testing.B) {
	builder, err := NewBuilder()
	if err != nil {
		b.Fatal(err)
	}
	table, err := builder.Build(points(0, 0.5, 0.3, 1, 0.7, 0), PadLoop, 1)
	if err != nil {
		b.Fatal(err)
	}
	var c Cursor
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = c.Sample(table, float64(i%1024)/1024)
	}
}
