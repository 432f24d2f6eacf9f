package pointcloud

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloud(t *testing.T) {
	t.Run("AppendAndAt", func(t *testing.T) {
		c := New(4)
		c.Append(Vec3{X: 1, Y: 2, Z: 3})
		c.AppendXYZ(4, 5, 6)

		require.Equal(t, 2, c.Len())
		assert.Equal(t, Vec3{X: 1, Y: 2, Z: 3}, c.At(0))
		assert.Equal(t, Vec3{X: 4, Y: 5, Z: 6}, c.At(1))
	})

	t.Run("FromVecs", func(t *testing.T) {
		pts := []Vec3{{X: 1}, {Y: 1}, {Z: 1}}
		c := FromVecs(pts)
		require.Equal(t, 3, c.Len())
		for i, p := range pts {
			assert.Equal(t, p, c.At(i))
		}
	})

	t.Run("XYZAliasesStorage", func(t *testing.T) {
		c := FromVecs([]Vec3{{X: 1, Y: 2, Z: 3}, {X: 4, Y: 5, Z: 6}})
		xs, ys, zs := c.XYZ()
		assert.Equal(t, []float64{1, 4}, xs)
		assert.Equal(t, []float64{2, 5}, ys)
		assert.Equal(t, []float64{3, 6}, zs)
	})

	t.Run("CloneIsIndependent", func(t *testing.T) {
		c := FromVecs([]Vec3{{X: 1}})
		clone := c.Clone()
		clone.AppendXYZ(7, 8, 9)

		assert.Equal(t, 1, c.Len())
		assert.Equal(t, 2, clone.Len())
	})

	t.Run("AllIndices", func(t *testing.T) {
		c := FromVecs([]Vec3{{}, {}, {}})
		assert.Equal(t, []int{0, 1, 2}, c.AllIndices())
		assert.Empty(t, New(0).AllIndices())
	})
}

func TestVec3(t *testing.T) {
	t.Run("Arithmetic", func(t *testing.T) {
		a := Vec3{X: 1, Y: 2, Z: 3}
		b := Vec3{X: 4, Y: 5, Z: 6}

		assert.Equal(t, Vec3{X: 5, Y: 7, Z: 9}, a.Add(b))
		assert.Equal(t, Vec3{X: -3, Y: -3, Z: -3}, a.Sub(b))
		assert.Equal(t, Vec3{X: 2, Y: 4, Z: 6}, a.Scale(2))
		assert.Equal(t, float64(32), a.Dot(b))
	})

	t.Run("NormAndDistance", func(t *testing.T) {
		assert.Equal(t, 5.0, Vec3{X: 3, Y: 4}.Norm())
		assert.Equal(t, 5.0, Vec3{X: 3, Y: 4}.Distance(Vec3{}))
	})

	t.Run("Normalize", func(t *testing.T) {
		u := Vec3{X: 0, Y: 0, Z: 2}.Normalize()
		assert.InDelta(t, 1.0, u.Norm(), 1e-15)
		assert.Equal(t, Vec3{}, Vec3{}.Normalize())
	})

	t.Run("IsFinite", func(t *testing.T) {
		assert.True(t, Vec3{X: 1, Y: 2, Z: 3}.IsFinite())
		assert.False(t, Vec3{X: math.NaN()}.IsFinite())
		assert.False(t, Vec3{Z: math.Inf(1)}.IsFinite())
	})
}
