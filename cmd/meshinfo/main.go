// Command meshinfo prints structure and harmonic content of meshes.
//
// Usage:
//
//	meshinfo [flags] [preset-or-file ...]
//
// Without arguments it prints info for all built-in presets. Each mesh is
// rendered as a voice at the given morph position and the resulting cycle is
// analysed.
//
// Examples:
//
//	meshinfo saw pulse
//	meshinfo -time 1 -red 0.5 saw
//	meshinfo -interp simple -harmonics 12 my-mesh.xml
//	meshinfo -window blackman saw
//	meshinfo -list
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-mesh/dsp/core"
	"github.com/cwbudde/algo-mesh/dsp/window"
	"github.com/cwbudde/algo-mesh/internal/meshload"
	"github.com/cwbudde/algo-mesh/measure/harmonics"
	"github.com/cwbudde/algo-mesh/mesh"
	"github.com/cwbudde/algo-mesh/mesh/preset"
	"github.com/cwbudde/algo-mesh/raster"
)

const analysisCycles = 4

func main() {
	size := flag.Int("size", 4096, "analysis length in samples (power of two)")
	numHarmonics := flag.Int("harmonics", 6, "number of harmonics to report")
	timePos := flag.Float64("time", 0, "morph position on the time axis")
	redPos := flag.Float64("red", 0, "morph position on the red axis")
	bluePos := flag.Float64("blue", 0, "morph position on the blue axis")
	interp := flag.String("interp", "trilinear", "interpolator: trilinear, bilinear or simple")
	sweep := flag.String("sweep", "time", "sweep axis: time, red or blue")
	bipolar := flag.Bool("bipolar", false, "map curve values to [-1, 1] before analysis")
	windowName := flag.String("window", "hann", "analysis window: rectangular, hann, hamming, blackman or blackman-harris")
	list := flag.Bool("list", false, "list built-in presets")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: meshinfo [flags] [preset-or-file ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints structure and harmonic content of meshes.\n")
		fmt.Fprintf(os.Stderr, "Without arguments, prints info for all presets.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  meshinfo saw pulse\n")
		fmt.Fprintf(os.Stderr, "  meshinfo -time 1 -red 0.5 saw\n")
		fmt.Fprintf(os.Stderr, "  meshinfo -list\n")
	}
	flag.Parse()

	if *list {
		for _, n := range preset.Names() {
			fmt.Println(n)
		}
		return
	}

	kind, err := meshload.ParseKind(*interp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	axis, err := meshload.ParseSweep(*sweep)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	controls := raster.Controls{
		Morph:         mesh.Morph{Time: *timePos, Red: *redPos, Blue: *bluePos},
		Interpolation: kind,
		Sweep:         axis,
	}
	if *bipolar {
		controls.Scaling = raster.Bipolar
	}

	names := flag.Args()
	if len(names) == 0 {
		names = preset.Names()
	}

	win, err := window.Parse(*windowName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	analyzer, err := harmonics.NewAnalyzer(*size, harmonics.WithWindow(win))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	var rows []row
	for _, name := range names {
		r, err := inspect(name, controls, analyzer, *numHarmonics)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			continue
		}
		rows = append(rows, r)
	}
	if len(rows) == 0 {
		fmt.Fprintf(os.Stderr, "error: no mesh could be analysed\n")
		os.Exit(1)
	}
	printRows(rows, *numHarmonics)
}

type row struct {
	name       string
	vertices   int
	cubes      int
	loop       []mesh.CubeID
	sustain    []mesh.CubeID
	intercepts int
	tableLen   int
	rendered   bool
	result     harmonics.Result
}

func inspect(name string, controls raster.Controls, analyzer *harmonics.Analyzer, numHarmonics int) (row, error) {
	m, err := meshload.Load(name)
	if err != nil {
		return row{}, err
	}

	v, err := raster.NewVoice()
	if err != nil {
		return row{}, err
	}
	if err := v.Prepare(raster.Capacities{MaxIntercepts: max(m.NumCubes(), 2)}); err != nil {
		return row{}, err
	}
	if err := v.SetMesh(m); err != nil {
		return row{}, fmt.Errorf("%s: %w", name, err)
	}
	if err := v.SetControls(controls); err != nil {
		return row{}, err
	}

	out := make([]float64, analyzer.Size())
	res, err := v.RenderAudio(raster.Request{
		NumSamples: len(out),
		DeltaX:     float64(analysisCycles) / float64(len(out)),
	}, out)
	if err != nil {
		return row{}, err
	}

	r := row{
		name:     name,
		vertices: m.NumVertices(),
		cubes:    m.NumCubes(),
		loop:     m.LoopCubes(),
		sustain:  m.SustainCubes(),
		rendered: res.Rendered,
	}
	if table := v.Table(); table != nil {
		r.tableLen = table.Len()
	}
	r.intercepts = len(v.Points())
	if res.Rendered {
		r.result, err = analyzer.Analyze(out, analysisCycles, numHarmonics)
		if err != nil {
			return row{}, err
		}
	}
	return r, nil
}

func printRows(rows []row, numHarmonics int) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	header := []string{"Mesh", "Verts", "Cubes", "Loop", "Sustain", "Points", "Table", "DC", "Crest", "THD"}
	for h := 2; h <= numHarmonics; h++ {
		header = append(header, fmt.Sprintf("H%d [dB]", h))
	}
	rule := make([]string, len(header))
	for i, h := range header {
		rule[i] = strings.Repeat("-", len(h))
	}
	for _, line := range [][]string{header, rule} {
		if _, err := fmt.Fprintln(tw, strings.Join(line, "\t")); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
			return
		}
	}

	for _, r := range rows {
		cells := []string{
			r.name,
			fmt.Sprint(r.vertices),
			fmt.Sprint(r.cubes),
			ids(r.loop),
			ids(r.sustain),
			fmt.Sprint(r.intercepts),
			fmt.Sprint(r.tableLen),
		}
		if r.rendered {
			cells = append(cells,
				fmt.Sprintf("%.4f", r.result.DC),
				fmt.Sprintf("%.3f", r.result.Crest),
				fmt.Sprintf("%.2f%%", 100*r.result.THD),
			)
			for h := 1; h < numHarmonics; h++ {
				if h < len(r.result.Relative) {
					cells = append(cells, fmt.Sprintf("%.1f", core.LinearToDB(r.result.Relative[h])))
				} else {
					cells = append(cells, "-")
				}
			}
		} else {
			cells = append(cells, "silent")
		}
		if _, err := fmt.Fprintln(tw, strings.Join(cells, "\t")); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output row: %v\n", err)
			return
		}
	}
	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

func ids(tags []mesh.CubeID) string {
	if len(tags) == 0 {
		return "-"
	}
	parts := make([]string, len(tags))
	for i, c := range tags {
		parts[i] = fmt.Sprint(c)
	}
	return strings.Join(parts, ",")
}
