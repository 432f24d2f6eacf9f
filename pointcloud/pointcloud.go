package pointcloud

import "slices"

// Cloud is an ordered, randomly indexable 3D point set.
//
// Coordinates are kept as three parallel planes (struct-of-arrays) so that
// per-point kernels can iterate each axis as a contiguous slice. Points are
// immutable once appended.
type Cloud struct {
	xs, ys, zs []float64
}

// New creates an empty cloud with capacity for n points.
func New(n int) *Cloud {
	return &Cloud{
		xs: make([]float64, 0, n),
		ys: make([]float64, 0, n),
		zs: make([]float64, 0, n),
	}
}

// FromVecs creates a cloud from a slice of points.
func FromVecs(points []Vec3) *Cloud {
	c := New(len(points))
	for _, p := range points {
		c.Append(p)
	}
	return c
}

// Append adds a point to the cloud.
func (c *Cloud) Append(p Vec3) {
	c.xs = append(c.xs, p.X)
	c.ys = append(c.ys, p.Y)
	c.zs = append(c.zs, p.Z)
}

// AppendXYZ adds a point given by its coordinates.
func (c *Cloud) AppendXYZ(x, y, z float64) {
	c.xs = append(c.xs, x)
	c.ys = append(c.ys, y)
	c.zs = append(c.zs, z)
}

// Len returns the number of points in the cloud.
func (c *Cloud) Len() int {
	return len(c.xs)
}

// At returns the point at index i. It panics if i is out of range.
func (c *Cloud) At(i int) Vec3 {
	return Vec3{X: c.xs[i], Y: c.ys[i], Z: c.zs[i]}
}

// XYZ returns the coordinate planes of the cloud.
//
// The returned slices alias the cloud's storage and MUST NOT be mutated.
// They exist so scoring kernels can stream coordinates without per-point
// accessor calls.
func (c *Cloud) XYZ() (xs, ys, zs []float64) {
	return c.xs, c.ys, c.zs
}

// Clone returns an independent deep copy of the cloud.
func (c *Cloud) Clone() *Cloud {
	return &Cloud{
		xs: slices.Clone(c.xs),
		ys: slices.Clone(c.ys),
		zs: slices.Clone(c.zs),
	}
}

// AllIndices returns the identity index list 0..Len()-1.
func (c *Cloud) AllIndices() []int {
	idx := make([]int, c.Len())
	for i := range idx {
		idx[i] = i
	}
	return idx
}
