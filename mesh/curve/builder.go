package curve

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-mesh/dsp/core"
	"github.com/cwbudde/algo-mesh/mesh"
	"github.com/cwbudde/algo-mesh/mesh/intercept"
)

// ErrTooFewIntercepts is returned when fewer than two intercepts are given.
var ErrTooFewIntercepts = errors.New("curve: at least two intercepts are required")

// ErrCapacityExceeded is returned when a build cannot fit the storage
// reserved by Reserve, even at the coarsest resolution.
var ErrCapacityExceeded = errors.New("curve: reserved capacity exceeded")

// Padding selects how synthetic end points are added around the real
// intercepts.
type Padding int

const (
	// PadLegacyFixed anchors at x = -1, -0.5 before and x = 1.5, 2 after,
	// holding the first and last real values.
	PadLegacyFixed Padding = iota
	// PadLoop wraps the last two points to the front and the first two to
	// the back, shifted by the period.
	PadLoop
	// PadRelease continues flat at the first and last real values.
	PadRelease
)

// String returns the policy name.
func (p Padding) String() string {
	switch p {
	case PadLegacyFixed:
		return "legacy"
	case PadLoop:
		return "loop"
	case PadRelease:
		return "release"
	default:
		return "unknown"
	}
}

const (
	padPoints      = 2
	slopeEpsilon   = 1e-9
	maxCoarsenStep = 24

	defaultSamplesPerUnit = 1024
	defaultMinSegment     = 2
)

// Option configures a Builder.
type Option func(*config) error

type config struct {
	samplesPerUnit float64
	resolution     int
	minSegment     int
	capacity       int
	maxIntercepts  int
}

func defaultConfig() config {
	return config{
		samplesPerUnit: defaultSamplesPerUnit,
		minSegment:     defaultMinSegment,
	}
}

// WithSamplesPerUnit sets the sample density per unit of x at resolution 0.
func WithSamplesPerUnit(n float64) Option {
	return func(c *config) error {
		if n <= 0 || math.IsNaN(n) || math.IsInf(n, 0) {
			return fmt.Errorf("curve: samples per unit must be > 0 and finite: %f", n)
		}
		c.samplesPerUnit = n
		return nil
	}
}

// WithResolution sets the base resolution index in [0, MaxResIndex]. Each
// step halves the sample density.
func WithResolution(idx int) Option {
	return func(c *config) error {
		if idx < 0 || idx > MaxResIndex {
			return fmt.Errorf("curve: resolution index must be in [0, %d]: %d", MaxResIndex, idx)
		}
		c.resolution = idx
		return nil
	}
}

// WithMinSegmentSamples sets the minimum samples written between two
// neighbouring points.
func WithMinSegmentSamples(n int) Option {
	return func(c *config) error {
		if n < 1 {
			return fmt.Errorf("curve: minimum segment samples must be >= 1: %d", n)
		}
		c.minSegment = n
		return nil
	}
}

// WithCapacity bounds the table length. Builds that would exceed it are
// coarsened until they fit. 0 means unbounded.
func WithCapacity(n int) Option {
	return func(c *config) error {
		if n < 0 {
			return fmt.Errorf("curve: capacity must be >= 0: %d", n)
		}
		c.capacity = n
		return nil
	}
}

// Builder converts intercepts into pieces and a baked Table. It owns all
// working memory; the returned Table is valid until the next Build.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	cfg config

	padded []intercept.Intercept
	pieces []Piece
	table  Table
}

// NewBuilder creates a Builder.
func NewBuilder(opts ...Option) (*Builder, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	b := &Builder{cfg: cfg}
	b.table.reset()
	return b, nil
}

// Reserve preallocates storage for up to maxIntercepts real intercepts and
// maxTable samples, and bounds the table length to maxTable when it is
// positive.
func (b *Builder) Reserve(maxIntercepts, maxTable int) {
	if maxIntercepts > 0 {
		b.cfg.maxIntercepts = maxIntercepts
		n := maxIntercepts + 2*padPoints
		if cap(b.padded) < n {
			b.padded = make([]intercept.Intercept, 0, n)
		}
		if cap(b.pieces) < n {
			b.pieces = make([]Piece, 0, n)
		}
	}
	if maxTable > 0 {
		b.cfg.capacity = maxTable
		b.table.X = core.EnsureCap(b.table.X, maxTable)
		b.table.Y = core.EnsureCap(b.table.Y, maxTable)
		b.table.Slope = core.EnsureCap(b.table.Slope, maxTable)
	}
}

// SetResolution changes the base resolution index, clamped to
// [0, MaxResIndex].
func (b *Builder) SetResolution(idx int) {
	b.cfg.resolution = min(max(idx, 0), MaxResIndex)
}

// Pieces returns the pieces of the last successful Build.
func (b *Builder) Pieces() []Piece {
	return b.pieces
}

// Points returns the real intercepts of the last successful Build in the
// order used for the curve (sorted by AdjustedX).
func (b *Builder) Points() []intercept.Intercept {
	if len(b.padded) < 2*padPoints {
		return nil
	}
	return b.padded[padPoints : len(b.padded)-padPoints]
}

// Table returns the table of the last Build. It is empty after a failed
// Build.
func (b *Builder) Table() *Table {
	return &b.table
}

// Build pads ins with the given policy, constructs the pieces and bakes the
// table. period is the loop length used by PadLoop; values <= 0 mean 1.
// ins is not modified.
//
// After Reserve, Build never allocates: more than maxIntercepts inputs, or a
// table that exceeds maxTable samples at the coarsest resolution, fail with
// ErrCapacityExceeded.
func (b *Builder) Build(ins []intercept.Intercept, pad Padding, period float64) (*Table, error) {
	if len(ins) < 2 {
		b.fail()
		return nil, ErrTooFewIntercepts
	}
	if b.cfg.maxIntercepts > 0 && len(ins) > b.cfg.maxIntercepts {
		b.fail()
		return nil, ErrCapacityExceeded
	}
	if period <= 0 {
		period = 1
	}

	var none intercept.Intercept
	b.padded = append(b.padded[:0], none, none)
	b.padded = append(b.padded, ins...)
	b.padded = append(b.padded, none, none)
	intercept.SortAdjusted(b.Points())

	b.pad(pad, period)
	b.buildPieces()
	if err := b.bake(); err != nil {
		b.fail()
		return nil, err
	}
	return &b.table, nil
}

func (b *Builder) fail() {
	b.padded = b.padded[:0]
	b.pieces = b.pieces[:0]
	b.table.reset()
}

func synthetic(x float64, src intercept.Intercept) intercept.Intercept {
	return intercept.Intercept{X: x, AdjustedX: x, Y: src.Y, Shape: src.Shape, Cube: mesh.NoCube}
}

func (b *Builder) pad(policy Padding, period float64) {
	pts := b.Points()
	n := len(pts)
	first, last := pts[0], pts[n-1]
	end := len(b.padded)

	var f0, f1, b0, b1 intercept.Intercept
	switch policy {
	case PadLoop:
		f0 = synthetic(pts[n-2].AdjustedX-period, pts[n-2])
		f1 = synthetic(last.AdjustedX-period, last)
		b0 = synthetic(first.AdjustedX+period, first)
		b1 = synthetic(pts[1].AdjustedX+period, pts[1])
	case PadRelease:
		flatFirst := intercept.Intercept{Y: first.Y}
		flatLast := intercept.Intercept{Y: last.Y}
		f0 = synthetic(first.AdjustedX-1, flatFirst)
		f1 = synthetic(first.AdjustedX-0.5, flatFirst)
		b0 = synthetic(last.AdjustedX+0.5, flatLast)
		b1 = synthetic(last.AdjustedX+1, flatLast)
	default:
		flatFirst := intercept.Intercept{Y: first.Y}
		flatLast := intercept.Intercept{Y: last.Y}
		f0 = synthetic(-1, flatFirst)
		f1 = synthetic(-0.5, flatFirst)
		b0 = synthetic(1.5, flatLast)
		b1 = synthetic(2, flatLast)
	}

	// Keep the padded sequence monotonic when real points leave the
	// nominal range.
	f1.X = math.Min(f1.X, first.AdjustedX)
	f0.X = math.Min(f0.X, f1.X)
	b0.X = math.Max(b0.X, last.AdjustedX)
	b1.X = math.Max(b1.X, b0.X)
	f0.AdjustedX, f1.AdjustedX = f0.X, f1.X
	b0.AdjustedX, b1.AdjustedX = b0.X, b1.X

	b.padded[0], b.padded[1] = f0, f1
	b.padded[end-2], b.padded[end-1] = b0, b1
}

func (b *Builder) buildPieces() {
	b.pieces = b.pieces[:0]
	for k := 0; k+2 < len(b.padded); k++ {
		p := Piece{A: b.padded[k], B: b.padded[k+1], C: b.padded[k+2], ResIndex: b.cfg.resolution}
		if p.IsLinear() {
			p.ResIndex = MaxResIndex
		}
		b.pieces = append(b.pieces, p)
	}
}

// segmentSamples returns how many samples cover a segment of the given
// width at resolution index res.
func (b *Builder) segmentSamples(width float64, res int) int {
	if width <= spacingEpsilon {
		return 1
	}
	n := int(math.Ceil(width * math.Ldexp(b.cfg.samplesPerUnit, -res)))
	return max(n, b.cfg.minSegment)
}

func (b *Builder) countSamples(coarsen int) int {
	total := 1
	for j := 0; j+1 < len(b.pieces); j++ {
		left, right := &b.pieces[j], &b.pieces[j+1]
		res := min(left.ResIndex, right.ResIndex) + coarsen
		total += b.segmentSamples(right.B.AdjustedX-left.B.AdjustedX, res)
	}
	return total
}

func (b *Builder) bake() error {
	coarsen := 0
	total := b.countSamples(coarsen)
	for b.cfg.capacity > 0 && total > b.cfg.capacity && coarsen < maxCoarsenStep {
		coarsen++
		total = b.countSamples(coarsen)
	}
	if b.cfg.capacity > 0 && total > b.cfg.capacity {
		return ErrCapacityExceeded
	}

	t := &b.table
	t.X = core.EnsureCap(t.X, total)
	t.Y = core.EnsureCap(t.Y, total)
	t.Slope = core.EnsureCap(t.Slope, total)

	// Between two piece centres both overlapping pieces are defined; the
	// transfer curve fades from the left piece to the right one.
	for j := 0; j+1 < len(b.pieces); j++ {
		left, right := &b.pieces[j], &b.pieces[j+1]
		x0, x1 := left.B.AdjustedX, right.B.AdjustedX
		res := min(left.ResIndex, right.ResIndex) + coarsen
		n := b.segmentSamples(x1-x0, res)
		for i := 0; i < n; i++ {
			u := float64(i) / float64(n)
			x := x0 + u*(x1-x0)
			l := left.Value(x)
			r := right.Value(x)
			t.X = append(t.X, x)
			t.Y = append(t.Y, l+transfer(u)*(r-l))
		}
	}
	end := b.pieces[len(b.pieces)-1].B
	t.X = append(t.X, end.AdjustedX)
	t.Y = append(t.Y, end.Y)

	t.ZeroIndex, t.OneIndex = -1, -1
	for i := range t.X {
		if i+1 < len(t.X) {
			dx := math.Max(t.X[i+1]-t.X[i], slopeEpsilon)
			t.Slope = append(t.Slope, (t.Y[i+1]-t.Y[i])/dx)
		} else {
			t.Slope = append(t.Slope, 0)
		}
		if t.X[i] <= 0 {
			t.ZeroIndex = i
		}
		if t.X[i] <= 1 {
			t.OneIndex = i
		}
	}
	return nil
}
