package simd

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomCloud(t *testing.T, n int, seed int64) (xs, ys, zs []float64) {
	t.Helper()

	rng := rand.New(rand.NewSource(seed))
	xs = make([]float64, n)
	ys = make([]float64, n)
	zs = make([]float64, n)
	for i := 0; i < n; i++ {
		xs[i] = rng.NormFloat64() * 10
		ys[i] = rng.NormFloat64() * 10
		zs[i] = rng.NormFloat64() * 10
	}
	return xs, ys, zs
}

func allIndices(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// All widths must return identical counts, including on lengths that
// exercise the scalar tails of the wide kernels.
func TestCountSphereWidthsAgree(t *testing.T) {
	const cx, cy, cz, r = 1.5, -2.0, 0.5, 8.0

	for _, n := range []int{0, 1, 2, 3, 4, 5, 7, 8, 9, 15, 16, 17, 100, 1023} {
		xs, ys, zs := randomCloud(t, n, int64(n)+1)
		idx := allIndices(n)

		for _, threshold := range []float64{0, 0.5, 2.0, 100.0} {
			scalar := countSphereScalar(xs, ys, zs, idx, cx, cy, cz, r, threshold)
			wide4 := countSphere4(xs, ys, zs, idx, cx, cy, cz, r, threshold)
			wide8 := countSphere8(xs, ys, zs, idx, cx, cy, cz, r, threshold)

			require.Equal(t, scalar, wide4, "n=%d threshold=%v", n, threshold)
			require.Equal(t, scalar, wide8, "n=%d threshold=%v", n, threshold)
		}
	}
}

func TestCountSphereInliers(t *testing.T) {
	t.Run("UnitSphere", func(t *testing.T) {
		// 6 points exactly on the unit sphere, 1 far outlier.
		xs := []float64{1, -1, 0, 0, 0, 0, 50}
		ys := []float64{0, 0, 1, -1, 0, 0, 50}
		zs := []float64{0, 0, 0, 0, 1, -1, 50}

		got := CountSphereInliers(xs, ys, zs, allIndices(7), 0, 0, 0, 1, 0.01)
		assert.Equal(t, 6, got)
	})

	t.Run("InclusiveThreshold", func(t *testing.T) {
		// Residual exactly equal to the threshold counts as an inlier.
		xs := []float64{2.5}
		ys := []float64{0}
		zs := []float64{0}

		assert.Equal(t, 1, CountSphereInliers(xs, ys, zs, []int{0}, 0, 0, 0, 2, 0.5))
		assert.Equal(t, 0, CountSphereInliers(xs, ys, zs, []int{0}, 0, 0, 0, 2, 0.49))
	})

	t.Run("NaNNeverCounts", func(t *testing.T) {
		xs := []float64{math.NaN(), 1}
		ys := []float64{0, 0}
		zs := []float64{0, 0}

		for _, f := range []func([]float64, []float64, []float64, []int, float64, float64, float64, float64, float64) int{
			countSphereScalar, countSphere4, countSphere8,
		} {
			assert.Equal(t, 1, f(xs, ys, zs, []int{0, 1}, 0, 0, 0, 1, 0.1))
		}
	})

	t.Run("EmptyIndices", func(t *testing.T) {
		xs, ys, zs := randomCloud(t, 8, 42)
		assert.Equal(t, 0, CountSphereInliers(xs, ys, zs, nil, 0, 0, 0, 1, 10))
	})
}

func TestSphereResiduals(t *testing.T) {
	xs := []float64{2, 0, math.Inf(1)}
	ys := []float64{0, 3, 0}
	zs := []float64{0, 0, 0}

	dst := SphereResiduals(xs, ys, zs, []int{0, 1, 2}, 0, 0, 0, 1, nil)
	require.Len(t, dst, 3)
	assert.InDelta(t, 1.0, dst[0], 1e-15)
	assert.InDelta(t, 2.0, dst[1], 1e-15)
	assert.True(t, math.IsInf(dst[2], 1))

	// dst reuse keeps capacity.
	dst2 := SphereResiduals(xs, ys, zs, []int{1}, 0, 0, 0, 1, dst)
	require.Len(t, dst2, 1)
	assert.InDelta(t, 2.0, dst2[0], 1e-15)
}

func TestSelectSphereInliers(t *testing.T) {
	xs, ys, zs := randomCloud(t, 257, 7)
	idx := allIndices(257)
	const cx, cy, cz, r, threshold = 0.5, 0.5, 0.5, 9.0, 3.0

	selected := SelectSphereInliers(xs, ys, zs, idx, cx, cy, cz, r, threshold, nil)

	// Selection must agree with counting and preserve ascending order.
	assert.Equal(t, CountSphereInliers(xs, ys, zs, idx, cx, cy, cz, r, threshold), len(selected))
	assert.True(t, sortedAscending(selected))

	for _, j := range selected {
		dx, dy, dz := xs[j]-cx, ys[j]-cy, zs[j]-cz
		assert.LessOrEqual(t, math.Abs(math.Sqrt(dx*dx+dy*dy+dz*dz)-r), threshold)
	}
}

func sortedAscending(idx []int) bool {
	for i := 1; i < len(idx); i++ {
		if idx[i] <= idx[i-1] {
			return false
		}
	}
	return true
}

func TestCapability(t *testing.T) {
	t.Run("ParseWidth", func(t *testing.T) {
		for s, want := range map[string]Width{
			"scalar": Scalar,
			"WIDE4":  Wide4,
			" wide8": Wide8,
		} {
			got, ok := ParseWidth(s)
			assert.True(t, ok)
			assert.Equal(t, want, got)
		}

		_, ok := ParseWidth("avx512")
		assert.False(t, ok)
	})

	t.Run("WidthStringsAndLanes", func(t *testing.T) {
		assert.Equal(t, "scalar", Scalar.String())
		assert.Equal(t, "wide4", Wide4.String())
		assert.Equal(t, "wide8", Wide8.String())
		assert.Equal(t, "unknown", Width(99).String())

		assert.Equal(t, 1, Scalar.Lanes())
		assert.Equal(t, 4, Wide4.Lanes())
		assert.Equal(t, 8, Wide8.Lanes())
		assert.Equal(t, 1, Width(99).Lanes())
	})

	t.Run("ActiveWidthIsAvailable", func(t *testing.T) {
		assert.True(t, isWidthAvailable(ActiveWidth()))
	})

	t.Run("ScalarAlwaysAvailable", func(t *testing.T) {
		assert.True(t, isWidthAvailable(Scalar))
		assert.False(t, isWidthAvailable(Width(99)))
	})
}

func BenchmarkCountSphere(b *testing.B) {
	const n = 4096
	rng := rand.New(rand.NewSource(1))
	xs := make([]float64, n)
	ys := make([]float64, n)
	zs := make([]float64, n)
	for i := 0; i < n; i++ {
		xs[i] = rng.NormFloat64()
		ys[i] = rng.NormFloat64()
		zs[i] = rng.NormFloat64()
	}
	idx := allIndices(n)

	benches := []struct {
		name string
		fn   func([]float64, []float64, []float64, []int, float64, float64, float64, float64, float64) int
	}{
		{"Scalar", countSphereScalar},
		{"Wide4", countSphere4},
		{"Wide8", countSphere8},
	}

	for _, bb := range benches {
		b.Run(bb.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				bb.fn(xs, ys, zs, idx, 0, 0, 0, 1, 0.1)
			}
		})
	}
}
