// Package curve turns an ordered intercept list into a dense sampled table.
//
// Building runs in three steps:
//
//  1. Padding: two synthetic points are added on each side of the real
//     intercepts according to a [Padding] policy, so every real point has
//     neighbours.
//  2. Pieces: every three consecutive points form a [Piece]. A piece blends
//     the parabola through its points with the polyline through them,
//     weighted by the middle point's sharpness.
//  3. Bake: between two consecutive piece centres the two overlapping pieces
//     are cross-faded with a fixed S-shaped transfer function and sampled
//     into the parallel X, Y and Slope arrays of a [Table].
//
// A [Table] answers point queries either by binary search ([Table.Sample])
// or with a position-tracking [Cursor] that is amortised O(1) for
// monotonically advancing queries.
package curve
