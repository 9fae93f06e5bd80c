// Package harmonics measures the harmonic content of rendered periodic
// signals such as single-cycle voice output.
package harmonics

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-mesh/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by the analyzer.
var (
	ErrInvalidSize   = errors.New("harmonics: size must be a power of two >= 8")
	ErrInvalidCycles = errors.New("harmonics: invalid cycle count")
	ErrSizeMismatch  = errors.New("harmonics: signal length does not match analyzer size")
	ErrInvalidWindow = errors.New("harmonics: unsupported window")
)

// Option configures an Analyzer.
type Option func(*config) error

type config struct {
	window window.Type
}

// WithWindow selects the analysis window. The default is Hann.
func WithWindow(t window.Type) Option {
	return func(c *config) error {
		if window.Info(t).CoherentGain <= 0 {
			return fmt.Errorf("%w: %v", ErrInvalidWindow, t)
		}
		c.window = t
		return nil
	}
}

// Result holds the harmonic analysis of a periodic signal.
type Result struct {
	// Amplitudes holds the peak amplitude of harmonics 1..N.
	Amplitudes []float64
	// Relative holds Amplitudes normalised to the fundamental.
	Relative []float64
	// THD is the RMS sum of harmonics 2..N relative to the fundamental.
	THD  float64
	DC   float64
	Peak float64
	RMS  float64
	// Crest is Peak / RMS, or 0 for a silent signal.
	Crest float64
}

// Analyzer performs repeated analyses of signals of a fixed power-of-two
// length. It keeps its FFT plan and scratch buffers between calls and is
// not safe for concurrent use.
type Analyzer struct {
	size   int
	plan   *algofft.Plan[complex128]
	kind   window.Type
	window []float64
	scale  float64
	buf    []float64
	in     []complex128
	out    []complex128
	re     []float64
	im     []float64
	mag    []float64
}

// NewAnalyzer creates an Analyzer for signals of length size.
func NewAnalyzer(size int, opts ...Option) (*Analyzer, error) {
	if size < 8 || size&(size-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	cfg := config{window: window.TypeHann}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("harmonics: failed to create FFT plan: %w", err)
	}

	// A windowed sinusoid of amplitude A on an exact bin has magnitude
	// A*size*gain/2.
	gain := window.Info(cfg.window).CoherentGain

	half := size/2 + 1
	return &Analyzer{
		size:   size,
		plan:   plan,
		kind:   cfg.window,
		window: window.Generate(cfg.window, size, window.WithPeriodic()),
		scale:  2 / (float64(size) * gain),
		buf:    make([]float64, size),
		in:     make([]complex128, size),
		out:    make([]complex128, size),
		re:     make([]float64, half),
		im:     make([]float64, half),
		mag:    make([]float64, half),
	}, nil
}

// Size returns the signal length the analyzer accepts.
func (a *Analyzer) Size() int {
	return a.size
}

// Window returns the analysis window type.
func (a *Analyzer) Window() window.Type {
	return a.kind
}

// MinCycles returns the fewest periods a signal must hold so that the main
// lobes of DC and neighbouring harmonics do not overlap.
func (a *Analyzer) MinCycles() int {
	return max(window.Info(a.kind).MainLobeBins, 2)
}

// Analyze measures up to numHarmonics harmonics of signal, which must hold
// exactly cycles periods. cycles must be at least MinCycles. Harmonics
// above Nyquist are omitted.
func (a *Analyzer) Analyze(signal []float64, cycles, numHarmonics int) (Result, error) {
	if len(signal) != a.size {
		return Result{}, fmt.Errorf("%w: got %d, want %d", ErrSizeMismatch, len(signal), a.size)
	}
	if lo := a.MinCycles(); cycles < lo || cycles >= a.size/2 {
		return Result{}, fmt.Errorf("%w: %d (need %d <= cycles < %d)", ErrInvalidCycles, cycles, lo, a.size/2)
	}
	numHarmonics = min(max(numHarmonics, 1), (a.size/2)/cycles)

	var res Result
	sumSq := 0.0
	for _, v := range signal {
		res.DC += v
		sumSq += v * v
		res.Peak = math.Max(res.Peak, math.Abs(v))
	}
	res.DC /= float64(a.size)
	res.RMS = math.Sqrt(sumSq / float64(a.size))
	if res.RMS > 0 {
		res.Crest = res.Peak / res.RMS
	}

	copy(a.buf, signal)
	vecmath.MulBlockInPlace(a.buf, a.window)
	for i, v := range a.buf {
		a.in[i] = complex(v, 0)
	}
	if err := a.plan.Forward(a.out, a.in); err != nil {
		return Result{}, fmt.Errorf("harmonics: forward FFT failed: %w", err)
	}
	for k := range a.mag {
		a.re[k] = real(a.out[k])
		a.im[k] = imag(a.out[k])
	}
	vecmath.Magnitude(a.mag, a.re, a.im)

	res.Amplitudes = make([]float64, numHarmonics)
	res.Relative = make([]float64, numHarmonics)
	for h := range res.Amplitudes {
		res.Amplitudes[h] = a.mag[(h+1)*cycles] * a.scale
	}

	fundamental := res.Amplitudes[0]
	if fundamental > 0 {
		distortion := 0.0
		for h, amp := range res.Amplitudes {
			res.Relative[h] = amp / fundamental
			if h > 0 {
				distortion += amp * amp
			}
		}
		res.THD = math.Sqrt(distortion) / fundamental
	}
	return res, nil
}

// Analyze is a one-shot analysis. See Analyzer.Analyze.
func Analyze(signal []float64, cycles, numHarmonics int, opts ...Option) (Result, error) {
	a, err := NewAnalyzer(len(signal), opts...)
	if err != nil {
		return Result{}, err
	}
	return a.Analyze(signal, cycles, numHarmonics)
}
