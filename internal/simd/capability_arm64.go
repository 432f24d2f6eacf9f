//go:build arm64

package simd

import "golang.org/x/sys/cpu"

func init() {
	// NEON is 128-bit; there is no 256-bit unit on ARM64.
	has128 = cpu.ARM64.HasASIMD
	initCapabilities()
}
