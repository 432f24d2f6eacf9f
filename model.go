package sacfit

import (
	"fmt"
	"math"
	"slices"

	"github.com/hupe1980/sacfit/pointcloud"
)

// Coefficients holds the parameters of a fitted primitive. The layout is
// model-specific; for a sphere it is [center.x, center.y, center.z, radius].
type Coefficients []float64

// Clone returns an independent copy of the coefficients.
func (c Coefficients) Clone() Coefficients {
	return slices.Clone(c)
}

// IsFinite reports whether every coefficient is finite.
func (c Coefficients) IsFinite() bool {
	for _, v := range c {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// ModelType identifies the primitive shape a model fits.
type ModelType int

const (
	// ModelSphere fits a sphere (center + radius).
	ModelSphere ModelType = iota
)

func (m ModelType) String() string {
	switch m {
	case ModelSphere:
		return "Sphere"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// Model is the contract between a primitive shape and the iterative
// consensus driver. The driver depends only on this interface; each shape
// provides one concrete implementation.
//
// Index slices passed in are never mutated; returned index slices are in
// ascending point-cloud order. Operations taking a dst buffer reuse it when
// it has sufficient capacity.
type Model interface {
	// Type returns the shape identifier of this model.
	Type() ModelType

	// SampleSize returns the number of points in a minimal sample.
	SampleSize() int

	// ModelSize returns the number of model coefficients.
	ModelSize() int

	// Cloud returns the point cloud this model scores against.
	Cloud() *pointcloud.Cloud

	// Indices returns the subset of cloud indices the model considers.
	Indices() []int

	// ComputeModelCoefficients estimates coefficients from a minimal
	// sample. It fails with ErrDegenerateSample when the sample cannot
	// determine the shape.
	ComputeModelCoefficients(sample []int) (Coefficients, error)

	// Distances returns the residual of every considered point against
	// coeffs, in Indices order.
	Distances(coeffs Coefficients, dst []float64) []float64

	// SelectWithinDistance returns the considered points whose residual is
	// within threshold (inclusive).
	SelectWithinDistance(coeffs Coefficients, threshold float64, dst []int) []int

	// CountWithinDistance counts the considered points whose residual is
	// within threshold (inclusive).
	CountWithinDistance(coeffs Coefficients, threshold float64) int

	// OptimizeModelCoefficients refines guess against the given inliers.
	// On any failure it returns a copy of guess unchanged.
	OptimizeModelCoefficients(inliers []int, guess Coefficients) Coefficients

	// ProjectPoints maps the referenced points onto the model surface.
	ProjectPoints(inliers []int, coeffs Coefficients, copyDataFields bool) (*pointcloud.Cloud, error)

	// DoSamplesVerifyModel reports whether every referenced point has a
	// residual within threshold.
	DoSamplesVerifyModel(indices []int, coeffs Coefficients, threshold float64) bool

	// IsSampleGood reports whether a minimal sample is well-conditioned
	// enough to estimate from.
	IsSampleGood(sample []int) bool

	// IsModelValid reports whether coefficients are finite and satisfy the
	// model's configured constraints.
	IsModelValid(coeffs Coefficients) bool
}
