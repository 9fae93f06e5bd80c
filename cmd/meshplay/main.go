// Command meshplay plays a mesh voice through the default audio device.
//
// Usage:
//
//	meshplay [flags] [voice-preset-or-file]
//
// The voice is gated by an envelope mesh: it is held for -gate seconds,
// then released, and the program exits when the release has finished.
//
// Examples:
//
//	meshplay saw
//	meshplay -freq 110 -env looping -gate 3 pulse
//	meshplay -time 0.8 -red 0.5 my-voice.xml
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/cwbudde/algo-mesh/internal/meshload"
	"github.com/cwbudde/algo-mesh/mesh"
	"github.com/cwbudde/algo-mesh/raster"
)

func main() {
	sampleRate := flag.Int("rate", 48000, "output sample rate in Hz")
	freq := flag.Float64("freq", 220, "oscillator frequency in Hz")
	gain := flag.Float64("gain", 0.3, "output gain")
	envName := flag.String("env", "adsr", "envelope preset or file; empty plays an ungated tone")
	envSeconds := flag.Float64("env-seconds", 2, "seconds per envelope x unit")
	gate := flag.Duration("gate", 1500*time.Millisecond, "time until note off")
	timePos := flag.Float64("time", 0, "voice morph position on the time axis")
	redPos := flag.Float64("red", 0, "voice morph position on the red axis")
	bluePos := flag.Float64("blue", 0, "voice morph position on the blue axis")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: meshplay [flags] [voice-preset-or-file]\n\n")
		fmt.Fprintf(os.Stderr, "Plays a mesh voice through the default audio device.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	voiceName := "saw"
	if flag.NArg() > 0 {
		voiceName = flag.Arg(0)
	}
	if *freq <= 0 || *sampleRate <= 0 || *freq >= float64(*sampleRate)/2 {
		fmt.Fprintf(os.Stderr, "error: frequency must be in (0, rate/2)\n")
		os.Exit(2)
	}

	controls := raster.Controls{
		Morph:   mesh.Morph{Time: *timePos, Red: *redPos, Blue: *bluePos},
		Scaling: raster.Bipolar,
	}
	voice, err := newVoice(voiceName, controls)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	var env *raster.Envelope
	if *envName != "" {
		env, err = newEnvelope(*envName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	src := newSource(voice, env, *freq, float64(*sampleRate), *envSeconds, *gain)
	if err := play(src, *sampleRate, *gate); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newVoice(name string, controls raster.Controls) (*raster.Voice, error) {
	m, err := meshload.Load(name)
	if err != nil {
		return nil, err
	}
	v, err := raster.NewVoice()
	if err != nil {
		return nil, err
	}
	if err := v.Prepare(raster.Capacities{MaxIntercepts: max(m.NumCubes(), 2)}); err != nil {
		return nil, err
	}
	if err := v.SetMesh(m); err != nil {
		return nil, err
	}
	return v, v.SetControls(controls)
}

func newEnvelope(name string) (*raster.Envelope, error) {
	m, err := meshload.Load(name)
	if err != nil {
		return nil, err
	}
	e, err := raster.NewEnvelope()
	if err != nil {
		return nil, err
	}
	if err := e.Prepare(raster.Capacities{MaxIntercepts: max(m.NumCubes(), 2)}); err != nil {
		return nil, err
	}
	return e, e.SetMesh(m)
}

func play(src *source, sampleRate int, gate time.Duration) error {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   20 * time.Millisecond,
	})
	if err != nil {
		return fmt.Errorf("audio: %w", err)
	}
	<-ready

	src.noteOn()
	player := ctx.NewPlayer(src)
	player.Play()
	defer player.Close()

	time.Sleep(gate)
	src.noteOff()
	if src.env == nil {
		return nil
	}

	// Give up after a generous bound in case the envelope has no tail.
	deadline := time.Now().Add(30 * time.Second)
	for !src.finished() && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	return player.Err()
}
