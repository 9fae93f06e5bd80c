package deform

import (
	"fmt"

	"github.com/cwbudde/algo-mesh/dsp/core"
	"github.com/cwbudde/algo-mesh/mesh"
	"github.com/cwbudde/algo-mesh/mesh/intercept"
)

const progressEpsilon = 1e-12

// Option configures an Applier.
type Option func(*config) error

type config struct {
	seed   uint64
	jitter float64
	sweep  mesh.Dim
}

func defaultConfig() config {
	return config{seed: 1, jitter: 0.01, sweep: mesh.Time}
}

// WithSeed sets the per-instance jitter seed.
func WithSeed(seed uint64) Option {
	return func(c *config) error {
		c.seed = seed
		return nil
	}
}

// WithJitter sets the jitter amount in [0, 1]. 0 makes every instance read
// the tables identically.
func WithJitter(amount float64) Option {
	return func(c *config) error {
		if amount < 0 || amount > 1 {
			return fmt.Errorf("deform: jitter must be in [0, 1]: %f", amount)
		}
		c.jitter = amount
		return nil
	}
}

// WithSweep selects the morph axis whose progress drives the Phase, Amp and
// Curve channels.
func WithSweep(d mesh.Dim) Option {
	return func(c *config) error {
		if !d.IsMorph() {
			return fmt.Errorf("deform: sweep axis must be time, red or blue: %v", d)
		}
		c.sweep = d
		return nil
	}
}

// Applier adds table-driven offsets to intercepts.
//
// Progress along a chain of face-sharing cubes is cached per mesh by Bind.
// Without a current binding Apply walks the chains on every call, which is
// quadratic in the number of cubes.
type Applier struct {
	tables *Tables
	jitter Jitter
	sweep  mesh.Dim

	bound  *mesh.Mesh
	chains []chainPos
}

// chainPos holds, per morph axis, the cubes before and after a cube in its
// face-sharing chain.
type chainPos [3][2]int

var morphAxes = [3]mesh.Dim{mesh.Time, mesh.Red, mesh.Blue}

func morphIndex(d mesh.Dim) int {
	switch d {
	case mesh.Red:
		return 1
	case mesh.Blue:
		return 2
	default:
		return 0
	}
}

// NewApplier creates an Applier reading from tables.
func NewApplier(tables *Tables, opts ...Option) (*Applier, error) {
	if tables.NumChannels() == 0 {
		return nil, errNoChannels
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	return &Applier{
		tables: tables,
		jitter: NewJitter(cfg.seed, tables.NumChannels(), cfg.jitter),
		sweep:  cfg.sweep,
	}, nil
}

// Bind caches the chain layout of m for later Apply calls. Call it again
// after structural edits to m. A nil mesh clears the binding.
func (a *Applier) Bind(m *mesh.Mesh) {
	a.bound = m
	if m == nil {
		a.chains = a.chains[:0]
		return
	}
	n := m.NumCubes()
	if cap(a.chains) < n {
		a.chains = make([]chainPos, n)
	}
	a.chains = a.chains[:n]
	for c := range a.chains {
		a.chains[c] = chainPos{}
		if !m.Cube(mesh.CubeID(c)).HasDeform() {
			continue
		}
		for k, d := range morphAxes {
			before, after := m.ChainPosition(mesh.CubeID(c), d)
			a.chains[c][k] = [2]int{before, after}
		}
	}
}

// Bound reports whether the cached chain layout belongs to m.
func (a *Applier) Bound(m *mesh.Mesh) bool {
	return m != nil && a.bound == m && len(a.chains) == m.NumCubes()
}

// Apply perturbs ins in place. Time, Red, Blue and Phase channels shift
// AdjustedX, Amp channels shift Y and Curve channels shift Shape (clamped to
// [0, 1]). Channels outside the table set are ignored. Apply does not
// allocate.
func (a *Applier) Apply(ins []intercept.Intercept, m *mesh.Mesh, pos mesh.Morph) {
	channels := a.tables.NumChannels()
	for i := range ins {
		in := &ins[i]
		cube := m.Cube(in.Cube)
		if !cube.HasDeform() {
			continue
		}
		for d := mesh.Dim(0); d < mesh.NumDims; d++ {
			ch := cube.DeformChan[d]
			if ch < 0 || ch >= channels {
				continue
			}
			phase := a.progress(m, in.Cube, d, pos) + a.jitter.Phase(ch)
			v := a.tables.Value(ch, phase, a.jitter.Index(ch)) * core.GainToLinear(cube.DeformGain[d])

			switch d {
			case mesh.Amp:
				in.Y += v
			case mesh.Curve:
				in.Shape = core.Clamp(in.Shape+v, 0, 1)
			default:
				in.AdjustedX += v
			}
		}
	}
}

// progress returns where pos sits along the axis that drives channel d,
// normalised over the chain of face-sharing cubes so the lookup phase is
// continuous across cell boundaries.
func (a *Applier) progress(m *mesh.Mesh, c mesh.CubeID, d mesh.Dim, pos mesh.Morph) float64 {
	axis := d
	if !axis.IsMorph() {
		axis = a.sweep
	}
	lo, hi := m.Bounds(c, axis)
	local := core.Fraction(pos.At(axis), lo, hi, progressEpsilon)

	var before, after int
	if a.Bound(m) {
		pos := a.chains[c][morphIndex(axis)]
		before, after = pos[0], pos[1]
	} else {
		before, after = m.ChainPosition(c, axis)
	}
	return (float64(before) + local) / float64(before+after+1)
}
