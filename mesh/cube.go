package mesh

// NumCorners is the number of vertices of a cube.
const NumCorners = 8

// NoChannel marks an axis without a deformation channel.
const NoChannel = -1

// UnityGain is the deformation gain that leaves a channel unscaled.
const UnityGain = 0.5

// Cube is one cell of the lattice.
//
// Verts is indexed by corner: bit 0 selects the Time pole, bit 1 the Red
// pole and bit 2 the Blue pole.
type Cube struct {
	Verts [NumCorners]VertexID

	// DeformChan holds the deformation channel per axis, or NoChannel.
	DeformChan [NumDims]int
	// DeformGain holds the per-axis channel gain in [0, 1].
	DeformGain [NumDims]float64
}

// NewCube returns a cube over verts with no deformation channels.
func NewCube(verts [NumCorners]VertexID) Cube {
	c := Cube{Verts: verts}
	for d := range c.DeformChan {
		c.DeformChan[d] = NoChannel
		c.DeformGain[d] = UnityGain
	}
	return c
}

// Corner returns the corner index for the given poles (0 or 1).
func Corner(timePole, redPole, bluePole int) int {
	return (timePole & 1) | (redPole&1)<<1 | (bluePole&1)<<2
}

// SetDeform assigns a deformation channel and gain to one axis.
func (c *Cube) SetDeform(d Dim, channel int, gain float64) {
	if channel < 0 {
		channel = NoChannel
	}
	c.DeformChan[d] = channel
	c.DeformGain[d] = gain
}

// HasDeform reports whether any axis of c uses a deformation channel.
func (c *Cube) HasDeform() bool {
	for _, ch := range c.DeformChan {
		if ch >= 0 {
			return true
		}
	}
	return false
}

// Contains reports whether v is one of the corners of c.
func (c *Cube) Contains(v VertexID) bool {
	for _, id := range c.Verts {
		if id == v {
			return true
		}
	}
	return false
}
