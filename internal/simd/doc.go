// Package simd provides the data-parallel scoring kernels used by the
// sacfit inlier engine.
//
// Kernels exist in three widths: a scalar reference, a 4-points-per-step
// variant sized for 128-bit vector units, and an 8-points-per-step variant
// sized for 256-bit units. The widest width supported by the host CPU is
// bound once at package init; the wide variants use unrolled lane-local
// arithmetic that modern compilers auto-vectorize. Every width applies the
// same per-point operations in the same order, so all widths return
// identical results for identical inputs.
//
// The SACFIT_SIMD environment variable overrides auto-detection
// ("scalar", "wide4", "wide8"); an override wider than the hardware
// supports is ignored.
package simd
