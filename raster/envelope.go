package raster

import (
	"math"

	"github.com/cwbudde/algo-mesh/mesh"
)

// State is the gate state of an Envelope.
type State int

const (
	// StateNormal plays forward from the start towards the sustain point.
	StateNormal State = iota
	// StateLooping repeats the region between the loop and sustain points.
	StateLooping
	// StateReleasing plays the tail after the sustain point once.
	StateReleasing
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateLooping:
		return "looping"
	case StateReleasing:
		return "releasing"
	default:
		return "unknown"
	}
}

type event int

const (
	eventNoteOn event = iota
	eventNoteOff
	eventSustain
)

// effect is the one-time action a transition asks the envelope to run.
type effect int

const (
	effectNone effect = iota
	effectRestart
	effectArmRelease
	effectWrapLoop
	effectHold
)

// next is the envelope transition function.
func (s State) next(ev event, m *markers) (State, effect) {
	switch ev {
	case eventNoteOn:
		return StateNormal, effectRestart
	case eventNoteOff:
		if s != StateReleasing && m.hasRelease {
			return StateReleasing, effectArmRelease
		}
	case eventSustain:
		if s == StateReleasing {
			break
		}
		if m.hasLoop {
			return StateLooping, effectWrapLoop
		}
		return s, effectHold
	}
	return s, effectNone
}

const markerEpsilon = 1e-9

// markers are the envelope landmarks found in the sorted intercepts.
type markers struct {
	loopIndex    int
	sustainIndex int
	loopX        float64
	sustainX     float64
	lastX        float64
	loopLength   float64
	hasLoop      bool
	hasRelease   bool
	degenerate   bool
}

// Envelope renders a gated curve. Playback runs from x = 0 to the sustain
// point, optionally loops back to the loop point while the gate is held,
// and plays the release tail after NoteOff.
//
// The sustain point is the first intercept coming from a sustain-tagged
// cube, or the last intercept when none is tagged. The loop point is the
// first intercept coming from a loop-tagged cube before the sustain point.
type Envelope struct {
	pipeline

	state        State
	pos          float64
	lastLevel    float64
	releaseScale float64
	pending      bool
	marks        markers
}

// NewEnvelope creates an unprepared Envelope in StateNormal.
func NewEnvelope(opts ...Option) (*Envelope, error) {
	e := &Envelope{releaseScale: 1}
	if err := e.init(func(Controls) policy { return releasePolicy }, opts); err != nil {
		return nil, err
	}
	return e, nil
}

// State returns the current gate state.
func (e *Envelope) State() State {
	return e.state
}

// Position returns the curve position of the next sample.
func (e *Envelope) Position() float64 {
	return e.pos
}

// LoopRange returns the loop region [start, end) of the current curve and
// whether it exists.
func (e *Envelope) LoopRange() (start, end float64, ok bool) {
	return e.marks.loopX, e.marks.sustainX, e.marks.hasLoop
}

// Finished reports whether the release tail has played to its end.
func (e *Envelope) Finished() bool {
	return e.state == StateReleasing && !e.pending && e.pos >= e.marks.lastX
}

// ReleasePending reports whether a NoteOff transition is waiting for its
// release setup.
func (e *Envelope) ReleasePending() bool {
	return e.pending
}

// NoteOn restarts the envelope from x = 0.
func (e *Envelope) NoteOn() {
	e.apply(eventNoteOn)
}

// NoteOff releases the gate. If the curve has a release tail the envelope
// enters StateReleasing and the next render continues from the sustain
// point, scaled so the output stays continuous. Without a tail NoteOff has
// no effect.
func (e *Envelope) NoteOff() {
	if e.ready() {
		e.update()
	}
	e.apply(eventNoteOff)
}

// ConsumeReleaseTrigger runs the pending release setup and reports whether
// there was one. It returns true once per NoteOff transition; RenderAudio
// calls it implicitly.
func (e *Envelope) ConsumeReleaseTrigger() bool {
	if !e.pending {
		return false
	}
	e.pending = false
	if e.ready() {
		e.dirty = true
		e.update()
	}
	e.beginRelease()
	return true
}

func (e *Envelope) apply(ev event) {
	state, eff := e.state.next(ev, &e.marks)
	e.state = state
	switch eff {
	case effectRestart:
		e.pos = 0
		e.lastLevel = 0
		e.releaseScale = 1
		e.pending = false
		e.cursor.Reset()
	case effectArmRelease:
		e.pending = true
	case effectWrapLoop:
		m := &e.marks
		e.pos = m.loopX + math.Mod(e.pos-m.loopX, m.loopLength)
		if e.pos >= m.sustainX || e.pos < m.loopX {
			e.pos = m.loopX
		}
	case effectHold:
		e.pos = e.marks.sustainX
	}
}

// update refreshes the curve and re-derives the markers after a rebuild.
func (e *Envelope) update() bool {
	ok, rebuilt := e.refresh()
	if rebuilt {
		e.findMarkers()
		if e.state == StateLooping && !e.marks.hasLoop {
			e.state = StateNormal
		}
	}
	return ok && !e.marks.degenerate
}

func (e *Envelope) findMarkers() {
	pts := e.Points()
	m := markers{loopIndex: -1, sustainIndex: -1}
	if len(pts) == 0 || e.mesh == nil {
		e.marks = m
		return
	}
	for i, p := range pts {
		if p.Cube == mesh.NoCube {
			continue
		}
		if m.sustainIndex < 0 && e.mesh.IsSustain(p.Cube) {
			m.sustainIndex = i
		}
		if m.loopIndex < 0 && e.mesh.IsLoop(p.Cube) {
			m.loopIndex = i
		}
	}
	if m.sustainIndex < 0 {
		m.sustainIndex = len(pts) - 1
	}
	if m.loopIndex > m.sustainIndex {
		m.loopIndex = -1
	}

	m.sustainX = pts[m.sustainIndex].AdjustedX
	m.lastX = pts[len(pts)-1].AdjustedX
	m.hasRelease = m.sustainIndex < len(pts)-1
	if m.loopIndex >= 0 && m.sustainIndex-m.loopIndex >= 1 {
		m.loopX = pts[m.loopIndex].AdjustedX
		m.loopLength = m.sustainX - m.loopX
		m.hasLoop = m.loopLength > markerEpsilon
		m.degenerate = !m.hasLoop
	}
	e.marks = m
}

func (e *Envelope) beginRelease() {
	m := &e.marks
	e.pos = m.sustainX
	e.cursor.Reset()
	e.releaseScale = 1
	if e.table == nil || !e.sampleable {
		return
	}
	if level := e.table.Sample(m.sustainX); math.Abs(level) > markerEpsilon {
		e.releaseScale = e.lastLevel / level
	}
}

// RenderAudio writes req.NumSamples samples into out and advances the
// envelope by req.Step() per sample.
func (e *Envelope) RenderAudio(req Request, out []float64) (Result, error) {
	if err := req.validate(out); err != nil {
		return Result{}, err
	}
	if !e.ready() {
		return Result{}, nil
	}
	out = out[:req.NumSamples]
	e.ConsumeReleaseTrigger()
	if !e.update() {
		return silence(out), nil
	}

	step := req.Step()
	m := &e.marks
	for i := range out {
		if e.state == StateReleasing {
			out[i] = e.sample(e.pos) * e.releaseScale
			e.pos = math.Min(e.pos+step, m.lastX)
			continue
		}
		y := e.sample(e.pos)
		out[i] = y
		e.lastLevel = y
		e.pos += step
		if e.pos >= m.sustainX {
			e.apply(eventSustain)
		}
	}
	return Result{Rendered: true, SamplesWritten: len(out)}, nil
}
