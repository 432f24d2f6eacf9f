package sacfit

import (
	"log/slog"
	"math"
	"slices"
)

type options struct {
	indices   []int
	radiusMin float64
	radiusMax float64
	logger    *slog.Logger
}

func defaultOptions() options {
	return options{
		radiusMin: math.Inf(-1),
		radiusMax: math.Inf(1),
	}
}

// Option configures model construction. Configuration is immutable after
// construction; all operations consume it read-only, which keeps the model
// safe for concurrent calls.
type Option func(*options)

// WithIndices restricts the model to a subset of the cloud. The slice is
// copied; order is preserved for all scoring output. Defaults to every
// point in the cloud.
func WithIndices(indices []int) Option {
	return func(o *options) {
		o.indices = slices.Clone(indices)
	}
}

// WithRadiusLimits constrains which fitted radii IsModelValid accepts.
// Defaults to (-Inf, +Inf), imposing no constraint.
func WithRadiusLimits(minRadius, maxRadius float64) Option {
	return func(o *options) {
		o.radiusMin = minRadius
		o.radiusMax = maxRadius
	}
}

// WithLogger configures diagnostic logging for recoverable conditions
// (degenerate samples, refinement fallbacks). If nil, logging is disabled.
// The hot scoring paths never log.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
