package raster

import (
	"math"

	"github.com/cwbudde/algo-mesh/dsp/core"
)

// EffectCurve renders a modulation curve over [0, 1]. With Controls.Cyclic
// it wraps like a Voice; otherwise it runs once and holds the value at 1.
type EffectCurve struct {
	pipeline
	pos float64
}

func cyclicPolicy(c Controls) policy {
	if c.Cyclic {
		return loopPolicy
	}
	return releasePolicy
}

// NewEffectCurve creates an unprepared EffectCurve.
func NewEffectCurve(opts ...Option) (*EffectCurve, error) {
	e := &EffectCurve{}
	if err := e.init(cyclicPolicy, opts); err != nil {
		return nil, err
	}
	return e, nil
}

// Position returns the position of the next sample.
func (e *EffectCurve) Position() float64 {
	return e.pos
}

// SetPosition moves the curve to x. Cyclic curves fold x into [0, 1), the
// others clamp it to [0, 1].
func (e *EffectCurve) SetPosition(x float64) {
	if e.controls.Cyclic {
		e.pos = core.Wrap(x)
		return
	}
	e.pos = core.Clamp(x, 0, 1)
}

// Reset moves the curve back to its start.
func (e *EffectCurve) Reset() {
	e.pos = 0
	e.cursor.Reset()
}

// Done reports whether a one-shot curve has reached its end.
func (e *EffectCurve) Done() bool {
	return !e.controls.Cyclic && e.pos >= 1
}

// RenderAudio writes req.NumSamples samples into out.
func (e *EffectCurve) RenderAudio(req Request, out []float64) (Result, error) {
	if err := req.validate(out); err != nil {
		return Result{}, err
	}
	if !e.ready() {
		return Result{}, nil
	}
	out = out[:req.NumSamples]
	if ok, _ := e.refresh(); !ok {
		return silence(out), nil
	}

	step := req.Step()
	pos := e.pos
	if e.controls.Cyclic {
		pos = core.Wrap(pos)
		for i := range out {
			out[i] = e.sample(pos)
			pos += step
			if pos >= 1 {
				pos = core.Wrap(pos)
			}
		}
	} else {
		for i := range out {
			out[i] = e.sample(pos)
			pos = math.Min(pos+step, 1)
		}
	}
	e.pos = pos
	return Result{Rendered: true, SamplesWritten: len(out)}, nil
}
