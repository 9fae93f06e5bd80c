package curve

import "sort"

// Table is a baked curve: three parallel arrays of sample positions, values
// and per-segment slopes. X is non-decreasing.
type Table struct {
	X     []float64
	Y     []float64
	Slope []float64

	// ZeroIndex is the last index with X <= 0, or -1.
	ZeroIndex int
	// OneIndex is the last index with X <= 1, or -1.
	OneIndex int
}

// Len returns the number of samples.
func (t *Table) Len() int {
	return len(t.X)
}

// MinX returns the first sample position.
func (t *Table) MinX() float64 {
	if len(t.X) == 0 {
		return 0
	}
	return t.X[0]
}

// MaxX returns the last sample position.
func (t *Table) MaxX() float64 {
	if len(t.X) == 0 {
		return 0
	}
	return t.X[len(t.X)-1]
}

// Index returns the last sample index with X <= x, or -1 when x lies before
// the table.
func (t *Table) Index(x float64) int {
	return sort.Search(len(t.X), func(k int) bool { return t.X[k] > x }) - 1
}

// Sample evaluates the table at x using binary search. Positions outside the
// table clamp to the end values. Sample suits random access; use a Cursor
// for sequential playback.
func (t *Table) Sample(x float64) float64 {
	n := len(t.X)
	if n == 0 {
		return 0
	}
	if x <= t.X[0] {
		return t.Y[0]
	}
	if x >= t.X[n-1] {
		return t.Y[n-1]
	}
	i := t.Index(x)
	return t.Y[i] + t.Slope[i]*(x-t.X[i])
}

func (t *Table) reset() {
	t.X = t.X[:0]
	t.Y = t.Y[:0]
	t.Slope = t.Slope[:0]
	t.ZeroIndex, t.OneIndex = -1, -1
}

// Cursor tracks a position in a Table. For monotonically advancing queries
// each Sample call is amortised O(1); moving backwards scans back. Results
// are identical to Table.Sample for every x.
type Cursor struct {
	i int
}

// Reset moves the cursor to the start of the table.
func (c *Cursor) Reset() {
	c.i = 0
}

// Sample evaluates t at x starting the search at the cursor position.
func (c *Cursor) Sample(t *Table, x float64) float64 {
	n := len(t.X)
	if n == 0 {
		return 0
	}
	if x <= t.X[0] {
		c.i = 0
		return t.Y[0]
	}
	if x >= t.X[n-1] {
		c.i = n - 1
		return t.Y[n-1]
	}

	i := c.i
	if i < 0 || i >= n {
		i = 0
	}
	for i > 0 && t.X[i] > x {
		i--
	}
	for i+1 < n && t.X[i+1] <= x {
		i++
	}
	c.i = i
	return t.Y[i] + t.Slope[i]*(x-t.X[i])
}
