package raster

import "github.com/cwbudde/algo-mesh/dsp/core"

// Voice renders a mesh cross-section as a single-cycle oscillator. The
// phase runs over [0, 1) and survives between render calls.
type Voice struct {
	pipeline
	phase float64
}

// NewVoice creates an unprepared Voice.
func NewVoice(opts ...Option) (*Voice, error) {
	v := &Voice{}
	if err := v.init(func(Controls) policy { return loopPolicy }, opts); err != nil {
		return nil, err
	}
	return v, nil
}

// Phase returns the position of the next sample, in [0, 1).
func (v *Voice) Phase() float64 {
	return v.phase
}

// SetPhase moves the oscillator to phase, folded into [0, 1).
func (v *Voice) SetPhase(phase float64) {
	v.phase = core.Wrap(phase)
}

// Reset moves the oscillator back to phase 0.
func (v *Voice) Reset() {
	v.phase = 0
	v.cursor.Reset()
}

// RenderAudio writes req.NumSamples samples into out and advances the
// phase by req.Step() per sample.
func (v *Voice) RenderAudio(req Request, out []float64) (Result, error) {
	if err := req.validate(out); err != nil {
		return Result{}, err
	}
	if !v.ready() {
		return Result{}, nil
	}
	out = out[:req.NumSamples]
	if ok, _ := v.refresh(); !ok {
		return silence(out), nil
	}

	step := req.Step()
	phase := v.phase
	for i := range out {
		out[i] = v.sample(phase)
		phase += step
		if phase >= 1 {
			phase = core.Wrap(phase)
		}
	}
	v.phase = phase
	return Result{Rendered: true, SamplesWritten: len(out)}, nil
}
