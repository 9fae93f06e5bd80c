package raster

import "github.com/cwbudde/algo-mesh/dsp/core"

// Graphic renders stateless snapshots of a cross-section for display.
type Graphic struct {
	pipeline
}

// NewGraphic creates an unprepared Graphic.
func NewGraphic(opts ...Option) (*Graphic, error) {
	g := &Graphic{}
	if err := g.init(cyclicPolicy, opts); err != nil {
		return nil, err
	}
	return g, nil
}

// RenderGraphic fills out with the curve sampled at
// x_i = minX + i*(maxX-minX)/len(out). Cyclic curves fold x into [0, 1).
func (g *Graphic) RenderGraphic(out []float64, minX, maxX float64) Result {
	if !g.ready() {
		return Result{}
	}
	if ok, _ := g.refresh(); !ok {
		return silence(out)
	}

	if len(out) == 0 {
		return Result{Rendered: true}
	}
	step := (maxX - minX) / float64(len(out))
	for i := range out {
		out[i] = g.at(minX + float64(i)*step)
	}
	return Result{Rendered: true, SamplesWritten: len(out)}
}

// RenderAudio renders req.NumSamples samples starting at x = 0. No position
// is kept between calls.
func (g *Graphic) RenderAudio(req Request, out []float64) (Result, error) {
	if err := req.validate(out); err != nil {
		return Result{}, err
	}
	if !g.ready() {
		return Result{}, nil
	}
	out = out[:req.NumSamples]
	if ok, _ := g.refresh(); !ok {
		return silence(out), nil
	}

	step := req.Step()
	for i := range out {
		out[i] = g.at(float64(i) * step)
	}
	return Result{Rendered: true, SamplesWritten: len(out)}, nil
}

func (g *Graphic) at(x float64) float64 {
	if g.controls.Cyclic {
		x = core.Wrap(x)
	}
	return g.table.Sample(x)
}
