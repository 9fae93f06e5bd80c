package raster

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-mesh/mesh"
	"github.com/cwbudde/algo-mesh/mesh/curve"
	"github.com/cwbudde/algo-mesh/mesh/intercept"
)

// ErrInvalidRequest is returned for render requests that cannot be honoured.
var ErrInvalidRequest = errors.New("raster: invalid render request")

// ErrInvalidControls is returned by SetControls for out-of-range settings.
var ErrInvalidControls = errors.New("raster: invalid controls")

// ErrInvalidCapacities is returned by Prepare for unusable capacities.
var ErrInvalidCapacities = errors.New("raster: invalid capacities")

// Scaling maps curve values to the output range.
type Scaling int

const (
	// Unipolar leaves values as stored in the mesh, nominally [0, 1].
	Unipolar Scaling = iota
	// Bipolar maps y to 2y-1, nominally [-1, 1].
	Bipolar
)

// String returns the scaling name.
func (s Scaling) String() string {
	switch s {
	case Unipolar:
		return "unipolar"
	case Bipolar:
		return "bipolar"
	default:
		return "unknown"
	}
}

// Controls is the control snapshot a rasterizer renders with. The zero
// value is a unipolar trilinear cross-section at the morph origin swept
// along Time.
type Controls struct {
	Morph   mesh.Morph
	Scaling Scaling
	// Cyclic selects wrap-around playback for EffectCurve and Graphic.
	// Voices are always cyclic and envelopes never are.
	Cyclic        bool
	Interpolation intercept.Kind
	// Sweep is the morph axis resolved by the final linear blend.
	Sweep mesh.Dim
	// Resolution is the base curve resolution index; higher is coarser.
	Resolution int
}

func (c Controls) validate() error {
	if c.Scaling != Unipolar && c.Scaling != Bipolar {
		return fmt.Errorf("%w: scaling %d", ErrInvalidControls, c.Scaling)
	}
	if !c.Sweep.IsMorph() {
		return fmt.Errorf("%w: sweep axis %v", ErrInvalidControls, c.Sweep)
	}
	if c.Resolution < 0 || c.Resolution > curve.MaxResIndex {
		return fmt.Errorf("%w: resolution %d outside [0, %d]", ErrInvalidControls, c.Resolution, curve.MaxResIndex)
	}
	return nil
}

const (
	defaultMaxIntercepts = 64
	defaultMaxTableSize  = 16384
)

// Capacities sizes the working memory reserved by Prepare. Zero fields use
// the defaults (64 intercepts, 16384 table samples).
//
// Rendering never allocates after Prepare. A mesh with more cubes than
// MaxIntercepts, or a curve that needs more than MaxTableSize samples at the
// coarsest resolution, leaves the rasterizer unsampleable: it writes silence
// and reports Rendered false.
type Capacities struct {
	MaxIntercepts int
	MaxTableSize  int
}

func (c Capacities) normalize() (Capacities, error) {
	if c.MaxIntercepts == 0 {
		c.MaxIntercepts = defaultMaxIntercepts
	}
	if c.MaxTableSize == 0 {
		c.MaxTableSize = defaultMaxTableSize
	}
	if c.MaxIntercepts < 2 {
		return c, fmt.Errorf("%w: max intercepts %d < 2", ErrInvalidCapacities, c.MaxIntercepts)
	}
	if c.MaxTableSize < 2 {
		return c, fmt.Errorf("%w: max table size %d < 2", ErrInvalidCapacities, c.MaxTableSize)
	}
	return c, nil
}

// Request describes one render call.
type Request struct {
	NumSamples int
	// DeltaX is the position increment per output sample.
	DeltaX float64
	// TempoScale multiplies DeltaX. Values <= 0 mean 1.
	TempoScale float64
	// Scale divides DeltaX. Values < 1 mean 1.
	Scale int
}

// Step returns the effective position increment per sample.
func (r Request) Step() float64 {
	tempo := r.TempoScale
	if !(tempo > 0) {
		tempo = 1
	}
	scale := max(r.Scale, 1)
	return r.DeltaX * tempo / float64(scale)
}

func (r Request) validate(out []float64) error {
	if r.NumSamples < 0 {
		return fmt.Errorf("%w: negative sample count %d", ErrInvalidRequest, r.NumSamples)
	}
	if !(r.DeltaX > 0) || math.IsInf(r.DeltaX, 0) {
		return fmt.Errorf("%w: delta x must be > 0 and finite: %v", ErrInvalidRequest, r.DeltaX)
	}
	if len(out) < r.NumSamples {
		return fmt.Errorf("%w: output holds %d samples, need %d", ErrInvalidRequest, len(out), r.NumSamples)
	}
	return nil
}

// Result reports what a render call produced.
type Result struct {
	// Rendered is false when the rasterizer was not ready or the current
	// cross-section could not be sampled.
	Rendered       bool
	SamplesWritten int
}

// Renderer is the audio-rate surface shared by all rasterizers.
type Renderer interface {
	Prepare(caps Capacities) error
	SetMesh(m *mesh.Mesh) error
	SetControls(c Controls) error
	RenderAudio(req Request, out []float64) (Result, error)
}

var (
	_ Renderer = (*Voice)(nil)
	_ Renderer = (*EffectCurve)(nil)
	_ Renderer = (*Graphic)(nil)
	_ Renderer = (*Envelope)(nil)
)
