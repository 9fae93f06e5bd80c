// Package raster renders mesh cross-sections into sample buffers.
//
// Four rasterizers share one intercept → curve pipeline and differ only in
// how they walk the baked table:
//
//   - [Voice]: a single-cycle oscillator over [0, 1) with a persistent,
//     re-settable phase
//   - [EffectCurve]: a modulation curve that either wraps like a voice or
//     runs once and holds its end value
//   - [Graphic]: a stateless snapshot for display, sampled over an arbitrary
//     x range
//   - [Envelope]: a gated curve with sustain, loop and release handling
//     driven by an explicit state machine
//
// Every rasterizer must be prepared with [Capacities] and given a mesh before
// it renders. Control changes mark the cached curve dirty; the next render
// rebuilds it. After Prepare the render path does not allocate.
//
// A rasterizer is owned by one caller and is not safe for concurrent use.
// Several rasterizers may share a mesh as long as the mesh is not edited
// while any of them renders; call Invalidate after editing a mesh in place.
package raster
