// Package meshload resolves mesh arguments and control flags shared by the
// command-line tools.
package meshload

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/cwbudde/algo-mesh/mesh"
	"github.com/cwbudde/algo-mesh/mesh/intercept"
	"github.com/cwbudde/algo-mesh/mesh/preset"
)

// Load returns the named preset, or decodes name as an XML mesh file when
// it is not a preset name.
func Load(name string) (*mesh.Mesh, error) {
	name = strings.TrimSpace(name)
	if slices.Contains(preset.Names(), strings.ToLower(name)) {
		return preset.ByName(strings.ToLower(name))
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("meshload: %q is neither a preset nor a readable file: %w", name, err)
	}
	defer f.Close()

	m, err := mesh.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("meshload: %s: %w", name, err)
	}
	return m, nil
}

// ParseKind resolves an interpolator name.
func ParseKind(name string) (intercept.Kind, error) {
	for _, k := range []intercept.Kind{intercept.KindTrilinear, intercept.KindBilinear, intercept.KindSimple} {
		if strings.EqualFold(name, k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("meshload: unknown interpolator %q (want trilinear, bilinear or simple)", name)
}

// ParseSweep resolves a morph axis name.
func ParseSweep(name string) (mesh.Dim, error) {
	d, ok := mesh.ParseDim(strings.ToLower(name))
	if !ok || !d.IsMorph() {
		return 0, fmt.Errorf("meshload: sweep axis must be time, red or blue: %q", name)
	}
	return d, nil
}
