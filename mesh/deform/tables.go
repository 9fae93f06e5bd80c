// Package deform perturbs intercepts with per-cube indirection into shared
// lookup tables.
//
// [Tables] is an explicit read-only resource handed to an [Applier] at
// construction. Each Applier carries its own seeded [Jitter], so several
// renderers sharing one mesh and one set of tables produce correlated but
// non-identical variation.
package deform

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-mesh/dsp/core"
)

// TableSize is the number of entries per deformation channel.
const TableSize = 8192

var errNoChannels = errors.New("deform: at least one channel is required")

// Tables is an immutable set of deformation channels.
type Tables struct {
	chans [][]float64
}

// NewTables copies channels into a Tables value. Every channel must hold
// exactly TableSize finite entries.
func NewTables(channels [][]float64) (*Tables, error) {
	if len(channels) == 0 {
		return nil, errNoChannels
	}
	t := &Tables{chans: make([][]float64, len(channels))}
	for i, ch := range channels {
		if len(ch) != TableSize {
			return nil, fmt.Errorf("deform: channel %d has %d entries, want %d", i, len(ch), TableSize)
		}
		for k, v := range ch {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("deform: channel %d entry %d is not finite: %f", i, k, v)
			}
		}
		t.chans[i] = append([]float64(nil), ch...)
	}
	return t, nil
}

// NoiseTables builds channels of smoothed deterministic noise with peak
// magnitude amplitude. The same seed always yields the same tables.
func NoiseTables(seed uint64, channels int, amplitude float64) *Tables {
	if channels < 1 {
		channels = 1
	}
	const smoothing = 64

	t := &Tables{chans: make([][]float64, channels)}
	raw := make([]float64, TableSize)
	for i := range t.chans {
		rng := rand.New(rand.NewPCG(seed, uint64(i)))
		for k := range raw {
			raw[k] = rng.Float64()*2 - 1
		}

		// Circular moving average keeps the table seamless at the wrap point.
		ch := make([]float64, TableSize)
		sum := 0.0
		for k := -smoothing / 2; k < smoothing/2; k++ {
			sum += raw[(k+TableSize)%TableSize]
		}
		peak := 0.0
		for k := range ch {
			ch[k] = sum / smoothing
			peak = math.Max(peak, math.Abs(ch[k]))
			sum += raw[(k+smoothing/2)%TableSize] - raw[(k-smoothing/2+TableSize)%TableSize]
		}
		if peak > 0 {
			for k := range ch {
				ch[k] *= amplitude / peak
			}
		}
		t.chans[i] = ch
	}
	return t
}

// NumChannels returns the number of channels.
func (t *Tables) NumChannels() int {
	if t == nil {
		return 0
	}
	return len(t.chans)
}

// Value reads channel ch at a phase in [0, 1), wrapping outside that range,
// with linear interpolation between entries. offset shifts the read index.
func (t *Tables) Value(ch int, phase float64, offset int) float64 {
	table := t.chans[ch]
	pos := core.Wrap(phase) * TableSize
	i := int(pos)
	frac := pos - float64(i)
	i = (i + offset) % TableSize
	if i < 0 {
		i += TableSize
	}
	j := i + 1
	if j == TableSize {
		j = 0
	}
	return table[i] + frac*(table[j]-table[i])
}

// Jitter holds per-instance offsets for every channel: a phase offset added
// to the lookup phase and an index offset added to the table index.
type Jitter struct {
	phase []float64
	index []int
}

// NewJitter derives offsets for channels from seed. amount scales the phase
// jitter (in table periods) and the index jitter (as a fraction of
// TableSize); 0 disables both.
func NewJitter(seed uint64, channels int, amount float64) Jitter {
	j := Jitter{
		phase: make([]float64, channels),
		index: make([]int, channels),
	}
	if amount <= 0 {
		return j
	}
	rng := rand.New(rand.NewPCG(seed, 0x9e3779b97f4a7c15))
	for i := range j.phase {
		j.phase[i] = (rng.Float64()*2 - 1) * amount
		j.index[i] = int(rng.Float64() * amount * TableSize)
	}
	return j
}

// Phase returns the phase offset of channel ch.
func (j Jitter) Phase(ch int) float64 {
	if ch < 0 || ch >= len(j.phase) {
		return 0
	}
	return j.phase[ch]
}

// Index returns the table-index offset of channel ch.
func (j Jitter) Index(ch int) int {
	if ch < 0 || ch >= len(j.index) {
		return 0
	}
	return j.index[ch]
}
