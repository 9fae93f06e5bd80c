// Command meshplot renders a mesh cross-section to a PNG image.
//
// Usage:
//
//	meshplot [flags] preset-or-file
//
// Examples:
//
//	meshplot -o saw.png saw
//	meshplot -time 0.5 -red 1 -o morph.png saw
//	meshplot -one-shot -max 1.5 -o env.png adsr
package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"

	"github.com/cwbudde/algo-mesh/internal/meshload"
	"github.com/cwbudde/algo-mesh/mesh"
	"github.com/cwbudde/algo-mesh/raster"
)

func main() {
	output := flag.String("o", "mesh.png", "output PNG file")
	width := flag.Int("width", 800, "image width in pixels")
	height := flag.Int("height", 300, "image height in pixels")
	minX := flag.Float64("min", 0, "first curve position")
	maxX := flag.Float64("max", 1, "last curve position")
	timePos := flag.Float64("time", 0, "morph position on the time axis")
	redPos := flag.Float64("red", 0, "morph position on the red axis")
	bluePos := flag.Float64("blue", 0, "morph position on the blue axis")
	interp := flag.String("interp", "trilinear", "interpolator: trilinear, bilinear or simple")
	oneShot := flag.Bool("one-shot", false, "plot without wrap-around (envelopes, one-shot curves)")
	bipolar := flag.Bool("bipolar", false, "map curve values to [-1, 1]")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: meshplot [flags] preset-or-file\n\n")
		fmt.Fprintf(os.Stderr, "Renders a mesh cross-section to a PNG image.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	if *width < 2 || *height < 2 {
		fmt.Fprintf(os.Stderr, "error: image must be at least 2x2 pixels\n")
		os.Exit(2)
	}

	kind, err := meshload.ParseKind(*interp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	m, err := meshload.Load(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	controls := raster.Controls{
		Morph:         mesh.Morph{Time: *timePos, Red: *redPos, Blue: *bluePos},
		Cyclic:        !*oneShot,
		Interpolation: kind,
	}
	st := plotStyle{width: *width, height: *height, lo: 0, hi: 1, lineWidth: 2}
	if *bipolar {
		controls.Scaling = raster.Bipolar
		st.lo = -1
	}

	values, err := snapshot(m, controls, *width, *minX, *maxX)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Create(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := png.Encode(f, plot(values, st)); err != nil {
		_ = f.Close()
		fmt.Fprintf(os.Stderr, "error: failed to encode image: %v\n", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// snapshot samples the cross-section at n evenly spaced positions including
// both ends of [minX, maxX].
func snapshot(m *mesh.Mesh, controls raster.Controls, n int, minX, maxX float64) ([]float64, error) {
	g, err := raster.NewGraphic()
	if err != nil {
		return nil, err
	}
	if err := g.Prepare(raster.Capacities{MaxIntercepts: max(m.NumCubes(), 2)}); err != nil {
		return nil, err
	}
	if err := g.SetMesh(m); err != nil {
		return nil, err
	}
	if err := g.SetControls(controls); err != nil {
		return nil, err
	}

	values := make([]float64, n)
	last := maxX + (maxX-minX)/float64(n-1)
	if res := g.RenderGraphic(values, minX, last); !res.Rendered {
		return nil, fmt.Errorf("cross-section cannot be sampled at this morph position")
	}
	return values, nil
}
