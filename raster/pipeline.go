package raster

import (
	"fmt"

	"github.com/cwbudde/algo-mesh/dsp/core"
	"github.com/cwbudde/algo-mesh/mesh"
	"github.com/cwbudde/algo-mesh/mesh/curve"
	"github.com/cwbudde/algo-mesh/mesh/intercept"
)

// policy captures everything that differs between rasterizers in the
// shared build path.
type policy struct {
	padding curve.Padding
	// wrap folds intercept phases into [0, 1) before and after deformation.
	wrap   bool
	period float64
}

var (
	loopPolicy    = policy{padding: curve.PadLoop, wrap: true, period: 1}
	releasePolicy = policy{padding: curve.PadRelease, period: 1}
)

// interpKey identifies the interpolator configuration.
type interpKey struct {
	kind  intercept.Kind
	sweep mesh.Dim
	wrap  bool
}

// pipeline is the intercept → deform → curve path shared by all
// rasterizers. It caches the baked table until controls or the mesh change.
type pipeline struct {
	cfg      config
	policyOf func(Controls) policy
	policy   policy

	mesh     *mesh.Mesh
	controls Controls
	prepared bool

	dirty      bool
	sampleable bool

	key     interpKey
	interp  intercept.Interpolator
	builder *curve.Builder
	ins     []intercept.Intercept
	table   *curve.Table
	cursor  curve.Cursor
}

func (p *pipeline) init(policyOf func(Controls) policy, opts []Option) error {
	cfg, err := applyOptions(opts)
	if err != nil {
		return err
	}
	builder, err := curve.NewBuilder(cfg.builderOpts...)
	if err != nil {
		return fmt.Errorf("raster: %w", err)
	}
	p.cfg = cfg
	p.policyOf = policyOf
	p.builder = builder
	p.dirty = true
	return p.applyControls(Controls{})
}

// Prepare reserves working memory. It must be called before rendering.
func (p *pipeline) Prepare(caps Capacities) error {
	caps, err := caps.normalize()
	if err != nil {
		return err
	}
	p.builder.Reserve(caps.MaxIntercepts, caps.MaxTableSize)
	if cap(p.ins) < caps.MaxIntercepts {
		p.ins = make([]intercept.Intercept, 0, caps.MaxIntercepts)
	}
	p.prepared = true
	p.dirty = true
	return nil
}

// SetMesh installs the mesh to render. The rasterizer keeps the pointer but
// does not own the mesh. A mesh that fails verification is rejected and the
// previous one stays active. A nil mesh detaches the rasterizer.
func (p *pipeline) SetMesh(m *mesh.Mesh) error {
	if m != nil {
		if err := m.Verify(); err != nil {
			return fmt.Errorf("raster: %w", err)
		}
	}
	p.mesh = m
	p.bindDeformer()
	p.dirty = true
	return nil
}

// Mesh returns the installed mesh.
func (p *pipeline) Mesh() *mesh.Mesh {
	return p.mesh
}

// SetControls replaces the control snapshot. The curve is rebuilt on the
// next render if anything changed.
func (p *pipeline) SetControls(c Controls) error {
	return p.applyControls(c)
}

// Controls returns the active control snapshot.
func (p *pipeline) Controls() Controls {
	return p.controls
}

// Invalidate forces a rebuild on the next render. Call it after editing the
// installed mesh in place.
func (p *pipeline) Invalidate() {
	p.bindDeformer()
	p.dirty = true
}

func (p *pipeline) bindDeformer() {
	if p.cfg.deformer != nil {
		p.cfg.deformer.Bind(p.mesh)
	}
}

func (p *pipeline) applyControls(c Controls) error {
	if err := c.validate(); err != nil {
		return err
	}
	pol := p.policyOf(c)
	key := interpKey{kind: c.Interpolation, sweep: c.Sweep, wrap: pol.wrap}
	if p.interp == nil || key != p.key {
		interp, err := intercept.New(key.kind, intercept.WithSweep(key.sweep), intercept.WithWrapPhases(key.wrap))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidControls, err)
		}
		p.interp = interp
		p.key = key
		p.dirty = true
	}
	if c != p.controls || pol != p.policy {
		p.dirty = true
	}
	p.controls = c
	p.policy = pol
	return nil
}

func (p *pipeline) ready() bool {
	return p.prepared && p.mesh != nil
}

// refresh rebuilds the table if needed and reports whether it can be
// sampled and whether a rebuild happened.
func (p *pipeline) refresh() (sampleable, rebuilt bool) {
	if !p.dirty {
		return p.sampleable, false
	}
	p.dirty = false
	p.rebuild()
	return p.sampleable, true
}

func (p *pipeline) rebuild() {
	// Each cube yields at most one intercept; larger meshes would outgrow
	// the reserved buffer.
	if p.mesh.NumCubes() > cap(p.ins) {
		p.ins = p.ins[:0]
		p.table = nil
		p.sampleable = false
		p.cursor.Reset()
		return
	}
	pos := p.controls.Morph
	p.ins = p.interp.Intercepts(p.ins, p.mesh, pos)
	if p.cfg.deformer != nil {
		p.cfg.deformer.Apply(p.ins, p.mesh, pos)
	}
	if p.policy.wrap {
		intercept.WrapAdjusted(p.ins)
	}
	if p.controls.Scaling == Bipolar {
		for i := range p.ins {
			p.ins[i].Y = 2*p.ins[i].Y - 1
		}
	}

	p.builder.SetResolution(p.controls.Resolution)
	table, err := p.builder.Build(p.ins, p.policy.padding, p.policy.period)
	p.table = table
	p.sampleable = err == nil
	p.cursor.Reset()
}

// sample evaluates the table sequentially.
func (p *pipeline) sample(x float64) float64 {
	return p.cursor.Sample(p.table, x)
}

// Points returns the real intercepts behind the current table, sorted by
// AdjustedX. The slice is owned by the rasterizer and changes on rebuild.
func (p *pipeline) Points() []intercept.Intercept {
	if !p.sampleable {
		return nil
	}
	return p.builder.Points()
}

// Table returns the baked table, or nil when the rasterizer has not built
// one yet or the cross-section is unsampleable.
func (p *pipeline) Table() *curve.Table {
	if !p.sampleable {
		return nil
	}
	return p.table
}

// silence zeroes out and reports an unsampleable render.
func silence(out []float64) Result {
	core.Zero(out)
	return Result{SamplesWritten: len(out)}
}
