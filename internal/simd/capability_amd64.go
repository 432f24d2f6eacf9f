//go:build amd64

package simd

import "golang.org/x/sys/cpu"

func init() {
	has128 = cpu.X86.HasSSE41
	has256 = cpu.X86.HasAVX2
	initCapabilities()
}
