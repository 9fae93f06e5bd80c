package intercept

import "github.com/cwbudde/algo-mesh/mesh"

// Trilinear resolves every cube with two bilinear face lookups and one
// linear blend along the sweep axis.
type Trilinear struct {
	cfg config
}

// NewTrilinear creates a trilinear interpolator.
func NewTrilinear(opts ...Option) (*Trilinear, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	return &Trilinear{cfg: cfg}, nil
}

// Intercepts appends the cross-section of m at pos to dst[:0].
func (t *Trilinear) Intercepts(dst []Intercept, m *mesh.Mesh, pos mesh.Morph) []Intercept {
	return collect(dst, m, pos, t.cfg, nil)
}

// Bilinear interpolates over the sweep axis and one other morph axis. Each
// cube is sampled on its low face along the remaining axis, which is Blue,
// or Red when Blue is the sweep axis.
type Bilinear struct {
	cfg   config
	fixed mesh.Dim
}

// NewBilinear creates a bilinear interpolator.
func NewBilinear(opts ...Option) (*Bilinear, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	fixed := mesh.Blue
	if cfg.sweep == mesh.Blue {
		fixed = mesh.Red
	}
	return &Bilinear{cfg: cfg, fixed: fixed}, nil
}

// Intercepts appends the cross-section of m at pos to dst[:0].
func (b *Bilinear) Intercepts(dst []Intercept, m *mesh.Mesh, pos mesh.Morph) []Intercept {
	return collect(dst, m, pos, b.cfg, func(m *mesh.Mesh, c mesh.CubeID, pos mesh.Morph) mesh.Morph {
		lo, _ := m.Bounds(c, b.fixed)
		return pos.With(b.fixed, lo)
	})
}

// Simple blends each cube along the sweep axis only, using the corners at
// the low pole of both other morph axes.
type Simple struct {
	cfg config
}

// NewSimple creates a single-axis interpolator.
func NewSimple(opts ...Option) (*Simple, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	return &Simple{cfg: cfg}, nil
}

// Intercepts appends the cross-section of m at pos to dst[:0].
func (s *Simple) Intercepts(dst []Intercept, m *mesh.Mesh, pos mesh.Morph) []Intercept {
	return collect(dst, m, pos, s.cfg, func(m *mesh.Mesh, c mesh.CubeID, pos mesh.Morph) mesh.Morph {
		for _, d := range [...]mesh.Dim{mesh.Time, mesh.Red, mesh.Blue} {
			if d == s.cfg.sweep {
				continue
			}
			lo, _ := m.Bounds(c, d)
			pos = pos.With(d, lo)
		}
		return pos
	})
}
