// Package sacfit provides sample-consensus primitive model fitting for 3D
// point clouds.
//
// A model couples a shape hypothesis with a read-only point cloud: it
// estimates coefficients from a minimal sample, scores the whole cloud
// against a candidate, refines a winning candidate with its inliers, and
// projects points onto the fitted surface. The iterative consensus driver
// (sampling, voting, trial bookkeeping) is deliberately not part of this
// package; it only needs the Model interface.
//
// # Quick Start
//
//	cloud := pointcloud.FromVecs(points)
//	sphere, _ := sacfit.NewSphere(cloud, sacfit.WithRadiusLimits(0.5, 2.0))
//
//	// One consensus trial:
//	if sphere.IsSampleGood(sample) {
//	    coeffs, err := sphere.ComputeModelCoefficients(sample)
//	    if err == nil && sphere.IsModelValid(coeffs) {
//	        score := sphere.CountWithinDistance(coeffs, 0.01)
//	        _ = score // driver keeps the best-scoring candidate
//	    }
//	}
//
//	// After the driver picked a winner:
//	inliers := sphere.SelectWithinDistance(best, 0.01, nil)
//	refined := sphere.OptimizeModelCoefficients(inliers, best)
//	projected, _ := sphere.ProjectPoints(inliers, refined, false)
//
// # Performance
//
// Inlier counting dispatches to scalar, 4-wide, or 8-wide kernels selected
// once at startup from the host CPU's vector capability (SSE4.1/NEON for
// 4-wide, AVX2 for 8-wide). All widths produce identical counts; the
// SACFIT_SIMD environment variable forces a specific width.
//
// All operations are pure and safe for concurrent use against the same
// cloud as long as each goroutine owns its coefficient and result buffers.
package sacfit
