package main

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/cwbudde/algo-mesh/dsp/core"
	"github.com/cwbudde/algo-mesh/raster"
)

// source renders a voice through an optional envelope as mono float32
// little-endian PCM. It implements io.Reader for the audio player.
type source struct {
	mu sync.Mutex

	voice *raster.Voice
	env   *raster.Envelope
	gain  float64

	voiceReq raster.Request
	envReq   raster.Request

	wave  []float64
	level []float64
}

func newSource(voice *raster.Voice, env *raster.Envelope, freq, sampleRate, envSeconds, gain float64) *source {
	s := &source{
		voice:    voice,
		env:      env,
		gain:     gain,
		voiceReq: raster.Request{DeltaX: freq / sampleRate},
	}
	if env != nil && envSeconds > 0 {
		s.envReq = raster.Request{DeltaX: 1 / (envSeconds * sampleRate)}
	}
	return s
}

// noteOn restarts the voice and the envelope.
func (s *source) noteOn() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voice.Reset()
	if s.env != nil {
		s.env.NoteOn()
	}
}

// noteOff releases the envelope.
func (s *source) noteOff() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.env != nil {
		s.env.NoteOff()
	}
}

// finished reports whether the envelope has played its release.
func (s *source) finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.env != nil && s.env.Finished()
}

func (s *source) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(p) / 4
	if n == 0 {
		return 0, nil
	}
	s.wave = core.EnsureLen(s.wave, n)
	s.level = core.EnsureLen(s.level, n)
	wave, level := s.wave, s.level

	s.voiceReq.NumSamples = n
	res, err := s.voice.RenderAudio(s.voiceReq, wave)
	if err != nil || !res.Rendered {
		clear(wave)
	}

	if s.env != nil {
		s.envReq.NumSamples = n
		res, err := s.env.RenderAudio(s.envReq, level)
		if err != nil || !res.Rendered {
			clear(level)
		}
	} else {
		for i := range level {
			level[i] = 1
		}
	}

	for i := 0; i < n; i++ {
		v := float32(math.Max(-1, math.Min(1, wave[i]*level[i]*s.gain)))
		binary.LittleEndian.PutUint32(p[4*i:], math.Float32bits(v))
	}
	return 4 * n, nil
}
