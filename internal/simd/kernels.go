package simd

import "math"

// countSphereImpl is the implementation bound for the active width.
var countSphereImpl = countSphereScalar

func init() {
	switch activeWidth {
	case Wide4:
		countSphereImpl = countSphere4
	case Wide8:
		countSphereImpl = countSphere8
	}
}

// CountSphereInliers counts the points whose radial residual to the sphere
// (cx,cy,cz,r) is within threshold: |dist(p, center) - r| <= threshold.
//
// xs, ys, zs are the coordinate planes of the cloud; indices selects the
// points to score. NaN or Inf coordinates produce NaN/Inf residuals, which
// never satisfy the comparison and are therefore not counted.
//
// SAFETY: every index MUST be within range of the coordinate planes.
// No bounds normalization is performed on the hot path.
func CountSphereInliers(xs, ys, zs []float64, indices []int, cx, cy, cz, r, threshold float64) int {
	return countSphereImpl(xs, ys, zs, indices, cx, cy, cz, r, threshold)
}

// countSphereScalar is the one-point-at-a-time reference implementation.
func countSphereScalar(xs, ys, zs []float64, indices []int, cx, cy, cz, r, threshold float64) int {
	count := 0
	for _, j := range indices {
		dx := xs[j] - cx
		dy := ys[j] - cy
		dz := zs[j] - cz
		if math.Abs(math.Sqrt(dx*dx+dy*dy+dz*dz)-r) <= threshold {
			count++
		}
	}
	return count
}

// countSphere4 processes 4 points per step with a scalar tail.
// Lane-local arithmetic matches the scalar path operation for operation,
// so counts are identical across widths.
func countSphere4(xs, ys, zs []float64, indices []int, cx, cy, cz, r, threshold float64) int {
	count := 0
	n := len(indices)
	i := 0

	for ; i+4 <= n; i += 4 {
		j0, j1, j2, j3 := indices[i], indices[i+1], indices[i+2], indices[i+3]

		dx0, dy0, dz0 := xs[j0]-cx, ys[j0]-cy, zs[j0]-cz
		dx1, dy1, dz1 := xs[j1]-cx, ys[j1]-cy, zs[j1]-cz
		dx2, dy2, dz2 := xs[j2]-cx, ys[j2]-cy, zs[j2]-cz
		dx3, dy3, dz3 := xs[j3]-cx, ys[j3]-cy, zs[j3]-cz

		count += boolToInt(math.Abs(math.Sqrt(dx0*dx0+dy0*dy0+dz0*dz0)-r) <= threshold)
		count += boolToInt(math.Abs(math.Sqrt(dx1*dx1+dy1*dy1+dz1*dz1)-r) <= threshold)
		count += boolToInt(math.Abs(math.Sqrt(dx2*dx2+dy2*dy2+dz2*dz2)-r) <= threshold)
		count += boolToInt(math.Abs(math.Sqrt(dx3*dx3+dy3*dy3+dz3*dz3)-r) <= threshold)
	}

	return count + countSphereScalar(xs, ys, zs, indices[i:], cx, cy, cz, r, threshold)
}

// countSphere8 processes 8 points per step with a scalar tail.
func countSphere8(xs, ys, zs []float64, indices []int, cx, cy, cz, r, threshold float64) int {
	count := 0
	n := len(indices)
	i := 0

	for ; i+8 <= n; i += 8 {
		j0, j1, j2, j3 := indices[i], indices[i+1], indices[i+2], indices[i+3]
		j4, j5, j6, j7 := indices[i+4], indices[i+5], indices[i+6], indices[i+7]

		dx0, dy0, dz0 := xs[j0]-cx, ys[j0]-cy, zs[j0]-cz
		dx1, dy1, dz1 := xs[j1]-cx, ys[j1]-cy, zs[j1]-cz
		dx2, dy2, dz2 := xs[j2]-cx, ys[j2]-cy, zs[j2]-cz
		dx3, dy3, dz3 := xs[j3]-cx, ys[j3]-cy, zs[j3]-cz
		dx4, dy4, dz4 := xs[j4]-cx, ys[j4]-cy, zs[j4]-cz
		dx5, dy5, dz5 := xs[j5]-cx, ys[j5]-cy, zs[j5]-cz
		dx6, dy6, dz6 := xs[j6]-cx, ys[j6]-cy, zs[j6]-cz
		dx7, dy7, dz7 := xs[j7]-cx, ys[j7]-cy, zs[j7]-cz

		count += boolToInt(math.Abs(math.Sqrt(dx0*dx0+dy0*dy0+dz0*dz0)-r) <= threshold)
		count += boolToInt(math.Abs(math.Sqrt(dx1*dx1+dy1*dy1+dz1*dz1)-r) <= threshold)
		count += boolToInt(math.Abs(math.Sqrt(dx2*dx2+dy2*dy2+dz2*dz2)-r) <= threshold)
		count += boolToInt(math.Abs(math.Sqrt(dx3*dx3+dy3*dy3+dz3*dz3)-r) <= threshold)
		count += boolToInt(math.Abs(math.Sqrt(dx4*dx4+dy4*dy4+dz4*dz4)-r) <= threshold)
		count += boolToInt(math.Abs(math.Sqrt(dx5*dx5+dy5*dy5+dz5*dz5)-r) <= threshold)
		count += boolToInt(math.Abs(math.Sqrt(dx6*dx6+dy6*dy6+dz6*dz6)-r) <= threshold)
		count += boolToInt(math.Abs(math.Sqrt(dx7*dx7+dy7*dy7+dz7*dz7)-r) <= threshold)
	}

	return count + countSphereScalar(xs, ys, zs, indices[i:], cx, cy, cz, r, threshold)
}

// boolToInt converts a bool to 0 or 1 without branching.
// The compiler typically optimizes this to a conditional move.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// SphereResiduals writes |dist(p, center) - r| for every referenced point
// into dst, in indices order. dst is grown as needed and returned; callers
// should reuse it across calls when possible.
func SphereResiduals(xs, ys, zs []float64, indices []int, cx, cy, cz, r float64, dst []float64) []float64 {
	n := len(indices)
	if cap(dst) < n {
		dst = make([]float64, n)
	} else {
		dst = dst[:n]
	}
	for i, j := range indices {
		dx := xs[j] - cx
		dy := ys[j] - cy
		dz := zs[j] - cz
		dst[i] = math.Abs(math.Sqrt(dx*dx+dy*dy+dz*dz) - r)
	}
	return dst
}

// SelectSphereInliers appends to dst the indices (in indices order) of
// points whose radial residual is within threshold and returns the result.
// dst is reset to length zero first; callers should reuse it when possible.
func SelectSphereInliers(xs, ys, zs []float64, indices []int, cx, cy, cz, r, threshold float64, dst []int) []int {
	dst = dst[:0]
	for _, j := range indices {
		dx := xs[j] - cx
		dy := ys[j] - cy
		dz := zs[j] - cz
		if math.Abs(math.Sqrt(dx*dx+dy*dy+dz*dz)-r) <= threshold {
			dst = append(dst, j)
		}
	}
	return dst
}
