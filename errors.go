package sacfit

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCloud is returned when a model is constructed without points.
	ErrEmptyCloud = errors.New("point cloud is nil or empty")

	// ErrDegenerateSample is returned when a minimal sample yields a
	// singular linear system (coincident, collinear, or coplanar points).
	// The caller should discard the trial and resample.
	ErrDegenerateSample = errors.New("degenerate sample: linear system is singular")

	// ErrInvalidCoefficients is returned when a coefficient vector does not
	// match the model size.
	ErrInvalidCoefficients = errors.New("invalid model coefficients")
)

// ErrSampleSize indicates a minimal sample of the wrong size.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrSampleSize struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrSampleSize) Error() string {
	return fmt.Sprintf("sample size mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrSampleSize) Unwrap() error { return e.cause }
