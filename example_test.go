package sacfit_test

import (
	"fmt"

	"github.com/hupe1980/sacfit"
	"github.com/hupe1980/sacfit/pointcloud"
)

func ExampleSphere() {
	// Five points on the sphere centered at (1,0,0) with radius 2,
	// plus one far outlier.
	cloud := pointcloud.FromVecs([]pointcloud.Vec3{
		{X: 3}, {X: -1}, {X: 1, Y: 2}, {X: 1, Z: 2}, {X: 1, Y: -2},
		{X: 10, Y: 10, Z: 10},
	})

	sphere, err := sacfit.NewSphere(cloud, sacfit.WithRadiusLimits(0.5, 5))
	if err != nil {
		panic(err)
	}

	// One consensus trial: estimate from a minimal sample, score, refine.
	sample := []int{0, 1, 2, 3}
	if !sphere.IsSampleGood(sample) {
		panic("degenerate sample")
	}
	coeffs, err := sphere.ComputeModelCoefficients(sample)
	if err != nil {
		panic(err)
	}

	inliers := sphere.SelectWithinDistance(coeffs, 0.05, nil)
	refined := sphere.OptimizeModelCoefficients(inliers, coeffs)

	fmt.Printf("valid=%v inliers=%d radius=%.1f\n",
		sphere.IsModelValid(refined), len(inliers), refined[3])
	// Output:
	// valid=true inliers=5 radius=2.0
}
