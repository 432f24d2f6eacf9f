package sacfit

import (
	"log/slog"
	"math"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/sacfit/internal/lsq"
	"github.com/hupe1980/sacfit/internal/simd"
	"github.com/hupe1980/sacfit/pointcloud"
)

const (
	sphereSampleSize = 4
	sphereModelSize  = 4

	// sampleDetEpsilon is the scale-relative determinant bound below which
	// a minimal sample is treated as degenerate. The determinant of the
	// 3x3 difference matrix is compared against the cube of the sample
	// extent, so metre- and millimetre-scale clouds behave identically.
	sampleDetEpsilon = 1e-8
)

// Sphere fits a sphere to a 3D point cloud under a sample-consensus regime.
// The coefficients are [center.x, center.y, center.z, radius].
//
// A Sphere is immutable after construction and safe for concurrent use as
// long as each caller owns its coefficient and result buffers.
type Sphere struct {
	cloud     *pointcloud.Cloud
	indices   []int
	radiusMin float64
	radiusMax float64
	logger    *slog.Logger
}

var _ Model = (*Sphere)(nil)

// NewSphere creates a sphere model over the given cloud. By default every
// point is considered; see WithIndices and WithRadiusLimits.
func NewSphere(cloud *pointcloud.Cloud, optFns ...Option) (*Sphere, error) {
	if cloud == nil || cloud.Len() == 0 {
		return nil, ErrEmptyCloud
	}

	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	indices := opts.indices
	if indices == nil {
		indices = cloud.AllIndices()
	}

	return &Sphere{
		cloud:     cloud,
		indices:   indices,
		radiusMin: opts.radiusMin,
		radiusMax: opts.radiusMax,
		logger:    opts.logger,
	}, nil
}

// Type returns ModelSphere.
func (s *Sphere) Type() ModelType { return ModelSphere }

// SampleSize returns the minimal sample size (4).
func (s *Sphere) SampleSize() int { return sphereSampleSize }

// ModelSize returns the number of coefficients (4).
func (s *Sphere) ModelSize() int { return sphereModelSize }

// Cloud returns the point cloud this model scores against.
func (s *Sphere) Cloud() *pointcloud.Cloud { return s.cloud }

// Indices returns a copy of the considered cloud indices.
func (s *Sphere) Indices() []int { return slices.Clone(s.indices) }

// RadiusLimits returns the configured radius bounds.
func (s *Sphere) RadiusLimits() (minRadius, maxRadius float64) {
	return s.radiusMin, s.radiusMax
}

// Clone returns an independent copy of the model. The underlying cloud is
// shared (it is read-only); indices and configuration are copied.
func (s *Sphere) Clone() *Sphere {
	return &Sphere{
		cloud:     s.cloud,
		indices:   slices.Clone(s.indices),
		radiusMin: s.radiusMin,
		radiusMax: s.radiusMax,
		logger:    s.logger,
	}
}

// ComputeModelCoefficients estimates sphere coefficients from exactly 4
// point indices using the general sphere equation
// x^2+y^2+z^2 + Dx + Ey + Fz + G = 0: pairing point 0 against points 1-3
// eliminates G and leaves a 3x3 linear system in (D, E, F).
//
// It returns ErrDegenerateSample when the system is singular (coincident,
// collinear, or coplanar points); use IsSampleGood to pre-check.
func (s *Sphere) ComputeModelCoefficients(sample []int) (Coefficients, error) {
	if len(sample) != sphereSampleSize {
		return nil, &ErrSampleSize{Expected: sphereSampleSize, Actual: len(sample)}
	}

	p0 := s.cloud.At(sample[0])
	n0 := p0.Dot(p0)

	a := mat.NewDense(3, 3, nil)
	b := mat.NewVecDense(3, nil)
	for i := 1; i < sphereSampleSize; i++ {
		p := s.cloud.At(sample[i])
		a.Set(i-1, 0, p.X-p0.X)
		a.Set(i-1, 1, p.Y-p0.Y)
		a.Set(i-1, 2, p.Z-p0.Z)
		b.SetVec(i-1, n0-p.Dot(p))
	}

	var def mat.VecDense
	if err := def.SolveVec(a, b); err != nil {
		s.logDebug("sphere sample is degenerate", "sample", sample)
		return nil, ErrDegenerateSample
	}

	center := pointcloud.Vec3{
		X: -def.AtVec(0) / 2,
		Y: -def.AtVec(1) / 2,
		Z: -def.AtVec(2) / 2,
	}
	radius := center.Distance(p0)

	coeffs := Coefficients{center.X, center.Y, center.Z, radius}
	if !coeffs.IsFinite() {
		s.logDebug("sphere sample produced non-finite coefficients", "sample", sample)
		return nil, ErrDegenerateSample
	}
	return coeffs, nil
}

// Distances returns |dist(p, center) - radius| for every considered point,
// in Indices order. NaN/Inf coordinates propagate into the residuals.
// dst is reused when it has sufficient capacity.
func (s *Sphere) Distances(coeffs Coefficients, dst []float64) []float64 {
	xs, ys, zs := s.cloud.XYZ()
	return simd.SphereResiduals(xs, ys, zs, s.indices, coeffs[0], coeffs[1], coeffs[2], coeffs[3], dst)
}

// SelectWithinDistance returns the considered indices whose residual is
// within threshold (inclusive), in Indices order. dst is reused when
// possible.
func (s *Sphere) SelectWithinDistance(coeffs Coefficients, threshold float64, dst []int) []int {
	xs, ys, zs := s.cloud.XYZ()
	return simd.SelectSphereInliers(xs, ys, zs, s.indices, coeffs[0], coeffs[1], coeffs[2], coeffs[3], threshold, dst)
}

// CountWithinDistance counts the considered points whose residual is within
// threshold (inclusive). The count is computed by the widest kernel the
// host CPU supports; all widths return identical counts.
func (s *Sphere) CountWithinDistance(coeffs Coefficients, threshold float64) int {
	xs, ys, zs := s.cloud.XYZ()
	return simd.CountSphereInliers(xs, ys, zs, s.indices, coeffs[0], coeffs[1], coeffs[2], coeffs[3], threshold)
}

// DoSamplesVerifyModel reports whether every referenced point has a
// residual within threshold. It short-circuits on the first failure.
func (s *Sphere) DoSamplesVerifyModel(indices []int, coeffs Coefficients, threshold float64) bool {
	center := pointcloud.Vec3{X: coeffs[0], Y: coeffs[1], Z: coeffs[2]}
	for _, j := range indices {
		if !(math.Abs(s.cloud.At(j).Distance(center)-coeffs[3]) <= threshold) {
			return false
		}
	}
	return true
}

// OptimizeModelCoefficients refines guess by minimizing the sum of squared
// radial residuals over the inlier set with Levenberg-Marquardt (50
// iteration cap, 1e-12 step/cost tolerance). On fewer than 4 inliers, a
// singular update, or non-convergence it returns a copy of guess unchanged.
func (s *Sphere) OptimizeModelCoefficients(inliers []int, guess Coefficients) Coefficients {
	if len(guess) != sphereModelSize {
		s.logDebug("sphere refinement skipped: bad guess size", "size", len(guess))
		return guess.Clone()
	}
	if len(inliers) < sphereSampleSize {
		s.logDebug("sphere refinement skipped: not enough inliers", "inliers", len(inliers))
		return guess.Clone()
	}

	xs, ys, zs := s.cloud.XYZ()

	problem := lsq.Problem{
		NumResiduals: len(inliers),
		Residuals: func(params, out []float64) {
			cx, cy, cz, r := params[0], params[1], params[2], params[3]
			for i, j := range inliers {
				dx := xs[j] - cx
				dy := ys[j] - cy
				dz := zs[j] - cz
				out[i] = math.Sqrt(dx*dx+dy*dy+dz*dz) - r
			}
		},
		Jacobian: func(params []float64, jac *mat.Dense) {
			cx, cy, cz := params[0], params[1], params[2]
			for i, j := range inliers {
				dx := xs[j] - cx
				dy := ys[j] - cy
				dz := zs[j] - cz
				d := math.Sqrt(dx*dx + dy*dy + dz*dz)
				if d == 0 {
					// The residual is not differentiable at the center;
					// a tiny distance keeps the row finite.
					d = 1e-12
				}
				jac.Set(i, 0, -dx/d)
				jac.Set(i, 1, -dy/d)
				jac.Set(i, 2, -dz/d)
				jac.Set(i, 3, -1)
			}
		},
	}

	refined, err := lsq.Solve(problem, guess, nil)
	if err != nil {
		s.logDebug("sphere refinement fell back to initial guess", "error", err)
		return guess.Clone()
	}
	return Coefficients(refined)
}

// ProjectPoints maps the referenced points onto the sphere surface:
// center + radius * normalize(p - center). A point coinciding with the
// center has no defined direction and is returned unmoved.
//
// With copyDataFields the result reproduces the full cloud with the
// referenced points projected in place; otherwise only the projected
// points are returned, in inliers order.
func (s *Sphere) ProjectPoints(inliers []int, coeffs Coefficients, copyDataFields bool) (*pointcloud.Cloud, error) {
	if len(coeffs) != sphereModelSize {
		return nil, ErrInvalidCoefficients
	}

	center := pointcloud.Vec3{X: coeffs[0], Y: coeffs[1], Z: coeffs[2]}
	radius := coeffs[3]

	if !copyDataFields {
		out := pointcloud.New(len(inliers))
		for _, j := range inliers {
			out.Append(projectOntoSphere(s.cloud.At(j), center, radius))
		}
		return out, nil
	}

	project := make([]bool, s.cloud.Len())
	for _, j := range inliers {
		project[j] = true
	}

	out := pointcloud.New(s.cloud.Len())
	for i := 0; i < s.cloud.Len(); i++ {
		p := s.cloud.At(i)
		if project[i] {
			p = projectOntoSphere(p, center, radius)
		}
		out.Append(p)
	}
	return out, nil
}

func projectOntoSphere(p, center pointcloud.Vec3, radius float64) pointcloud.Vec3 {
	dir := p.Sub(center)
	n := dir.Norm()
	if n == 0 {
		return p
	}
	return center.Add(dir.Scale(radius / n))
}

// IsSampleGood reports whether 4 sample points are well-conditioned enough
// to determine a sphere. It rejects duplicate indices and samples whose
// 3x3 difference matrix has a determinant below sampleDetEpsilon relative
// to the cube of the sample extent (coincident, collinear, or coplanar
// configurations).
func (s *Sphere) IsSampleGood(sample []int) bool {
	if len(sample) != sphereSampleSize {
		return false
	}
	for i := 0; i < len(sample); i++ {
		for j := i + 1; j < len(sample); j++ {
			if sample[i] == sample[j] {
				return false
			}
		}
	}

	p0 := s.cloud.At(sample[0])
	r1 := s.cloud.At(sample[1]).Sub(p0)
	r2 := s.cloud.At(sample[2]).Sub(p0)
	r3 := s.cloud.At(sample[3]).Sub(p0)

	scale := math.Max(r1.Norm(), math.Max(r2.Norm(), r3.Norm()))
	if scale == 0 {
		return false
	}

	// Scalar triple product = det of the difference matrix. Comparing
	// against the cube of the sample extent keeps the test scale-invariant
	// and rejects near-coincident pairs, whose row shrinks the determinant
	// relative to the extent.
	det := r1.X*(r2.Y*r3.Z-r2.Z*r3.Y) -
		r1.Y*(r2.X*r3.Z-r2.Z*r3.X) +
		r1.Z*(r2.X*r3.Y-r2.Y*r3.X)

	return math.Abs(det) > sampleDetEpsilon*scale*scale*scale
}

// IsModelValid reports whether coefficients have the right size, are
// finite, and carry a non-negative radius within the configured limits.
func (s *Sphere) IsModelValid(coeffs Coefficients) bool {
	if len(coeffs) != sphereModelSize || !coeffs.IsFinite() {
		return false
	}
	radius := coeffs[3]
	if radius < 0 {
		return false
	}
	if radius < s.radiusMin || radius > s.radiusMax {
		return false
	}
	return true
}

func (s *Sphere) logDebug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
