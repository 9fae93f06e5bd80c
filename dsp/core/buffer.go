package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// EnsureCap returns buf truncated to zero length with capacity of at least n.
// Existing storage is kept when it is already large enough.
func EnsureCap(buf []float64, n int) []float64 {
	if cap(buf) >= n {
		return buf[:0]
	}
	return make([]float64, 0, n)
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}
