package simd

import (
	"os"
	"strings"
)

// Width represents a kernel execution width in points per step.
type Width uint8

const (
	// Scalar processes one point at a time (no SIMD).
	Scalar Width = iota
	// Wide4 processes 4 points per step (128-bit vector units).
	Wide4
	// Wide8 processes 8 points per step (256-bit vector units).
	Wide8
)

// String returns the string representation of a Width.
func (w Width) String() string {
	switch w {
	case Scalar:
		return "scalar"
	case Wide4:
		return "wide4"
	case Wide8:
		return "wide8"
	default:
		return "unknown"
	}
}

// Lanes returns the number of points processed per step.
func (w Width) Lanes() int {
	switch w {
	case Wide4:
		return 4
	case Wide8:
		return 8
	default:
		return 1
	}
}

// ParseWidth parses a string into a Width value.
func ParseWidth(s string) (Width, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scalar":
		return Scalar, true
	case "wide4":
		return Wide4, true
	case "wide8":
		return Wide8, true
	default:
		return Scalar, false
	}
}

// Package-level state - initialized once at package init.
// No mutex needed: Go guarantees init() runs before any other code.
var (
	// activeWidth is the selected kernel width.
	activeWidth Width

	// hasOverride is true if SACFIT_SIMD was set.
	hasOverride bool

	// CPU feature flags (set by platform-specific init)
	has128 bool // 128-bit vector unit (SSE4.1 / NEON)
	has256 bool // 256-bit vector unit (AVX2)
)

// initCapabilities is called from platform-specific init functions
// after CPU features are detected.
func initCapabilities() {
	if override := os.Getenv("SACFIT_SIMD"); override != "" {
		if w, ok := ParseWidth(override); ok {
			hasOverride = true
			if isWidthAvailable(w) {
				activeWidth = w
				return
			}
			// Override not supported by this CPU - fall through.
		}
	}

	activeWidth = selectBestWidth()
}

// isWidthAvailable checks if a kernel width is supported on this CPU.
func isWidthAvailable(w Width) bool {
	switch w {
	case Scalar:
		return true
	case Wide4:
		return has128
	case Wide8:
		return has256
	default:
		return false
	}
}

// selectBestWidth chooses the widest kernel the CPU supports.
func selectBestWidth() Width {
	if has256 {
		return Wide8
	}
	if has128 {
		return Wide4
	}
	return Scalar
}

// ActiveWidth returns the currently active kernel width.
func ActiveWidth() Width {
	return activeWidth
}

// IsOverridden returns true if SACFIT_SIMD was set.
func IsOverridden() bool {
	return hasOverride
}
