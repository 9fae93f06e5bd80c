// Package mesh models the sparse control-point lattice that drives the curve
// engine.
//
// A [Mesh] is an arena of vertices and cubes. Every vertex carries six
// scalars: three morph coordinates (Time, Red, Blue) and three curve
// coordinates (Phase, Amp, Curve sharpness). A [Cube] references eight
// vertices arranged on the corners of a cell in (Time, Red, Blue) morph space
// and contributes one control point to every cross-section that passes
// through it.
//
// Vertices keep non-owning back-references to the cubes that use them. These
// are plain indices into the arena and are rebuilt by [Mesh.Validate] after
// every structural edit.
//
// The geometric queries [Mesh.Face], [Mesh.InterceptsFast],
// [Mesh.FinalIntercept] and [Mesh.AdjacentCube] implement the trilinear
// lookup used by the interpolators in package intercept.
package mesh
