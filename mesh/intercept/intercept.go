// Package intercept resolves a mesh cross-section at a morph position into an
// ordered list of control points.
//
// Three interpolators are provided:
//
//   - [Trilinear]: full lookup over Time, Red and Blue
//   - [Bilinear]:  Blue pinned to each cube's low face
//   - [Simple]:    single-axis blend along the sweep axis only
//
// All of them append into a caller-supplied slice and sort the result by X
// with ties kept in cube insertion order.
package intercept

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/cwbudde/algo-mesh/dsp/core"
	"github.com/cwbudde/algo-mesh/mesh"
)

// Intercept is a transient control point of a cross-section.
type Intercept struct {
	// X is the phase of the point as interpolated from the mesh.
	X float64
	// AdjustedX is X after deformation and phase wrapping.
	AdjustedX float64
	Y         float64
	// Shape is the curve sharpness in [0, 1].
	Shape float64
	// Cube is the source cube, used later for deformation lookups.
	Cube mesh.CubeID
}

// Interpolator produces the sorted intercepts of m at pos.
type Interpolator interface {
	Intercepts(dst []Intercept, m *mesh.Mesh, pos mesh.Morph) []Intercept
}

// Kind selects an interpolator at runtime.
type Kind int

const (
	KindTrilinear Kind = iota
	KindBilinear
	KindSimple
)

// String returns the interpolator name.
func (k Kind) String() string {
	switch k {
	case KindTrilinear:
		return "trilinear"
	case KindBilinear:
		return "bilinear"
	case KindSimple:
		return "simple"
	default:
		return "unknown"
	}
}

// Option configures an interpolator.
type Option func(*config) error

type config struct {
	sweep mesh.Dim
	wrap  bool
}

func defaultConfig() config {
	return config{sweep: mesh.Time}
}

// WithSweep selects the morph axis resolved by the final linear blend.
func WithSweep(d mesh.Dim) Option {
	return func(c *config) error {
		if !d.IsMorph() {
			return fmt.Errorf("intercept: sweep axis must be time, red or blue: %v", d)
		}
		c.sweep = d
		return nil
	}
}

// WithWrapPhases folds every X into [0, 1) before sorting. Cyclic
// rasterizers use it; envelopes keep the unbounded phase axis.
func WithWrapPhases(wrap bool) Option {
	return func(c *config) error {
		c.wrap = wrap
		return nil
	}
}

func applyOptions(opts []Option) (config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return config{}, err
		}
	}
	return cfg, nil
}

// New returns the interpolator selected by kind.
func New(kind Kind, opts ...Option) (Interpolator, error) {
	switch kind {
	case KindTrilinear:
		return NewTrilinear(opts...)
	case KindBilinear:
		return NewBilinear(opts...)
	case KindSimple:
		return NewSimple(opts...)
	default:
		return nil, fmt.Errorf("intercept: unknown interpolator kind %d", kind)
	}
}

// Sort orders ins by X, keeping insertion order for equal X.
func Sort(ins []Intercept) {
	slices.SortStableFunc(ins, func(a, b Intercept) int {
		return cmp.Compare(a.X, b.X)
	})
}

// SortAdjusted orders ins by AdjustedX, keeping insertion order for ties.
func SortAdjusted(ins []Intercept) {
	slices.SortStableFunc(ins, func(a, b Intercept) int {
		return cmp.Compare(a.AdjustedX, b.AdjustedX)
	})
}

// WrapAdjusted folds every AdjustedX into [0, 1).
func WrapAdjusted(ins []Intercept) {
	for i := range ins {
		ins[i].AdjustedX = core.Wrap(ins[i].AdjustedX)
	}
}

// pinFunc rewrites the query for one cube before the trilinear lookup.
type pinFunc func(m *mesh.Mesh, c mesh.CubeID, pos mesh.Morph) mesh.Morph

func collect(dst []Intercept, m *mesh.Mesh, pos mesh.Morph, cfg config, pin pinFunc) []Intercept {
	dst = dst[:0]
	if m == nil {
		return dst
	}
	for i := 0; i < m.NumCubes(); i++ {
		c := mesh.CubeID(i)
		p := pos
		if pin != nil {
			p = pin(m, c, pos)
		}
		v, ok := m.FinalIntercept(c, cfg.sweep, p)
		if !ok {
			continue
		}
		x := v.At(mesh.Phase)
		if cfg.wrap {
			x = core.Wrap(x)
		}
		dst = append(dst, Intercept{
			X:         x,
			AdjustedX: x,
			Y:         v.At(mesh.Amp),
			Shape:     core.Clamp(v.At(mesh.Curve), 0, 1),
			Cube:      c,
		})
	}
	Sort(dst)
	return dst
}
