//go:build amd64

package simd

import "golang.org/x/sys/cpu"

func init() {
	hasUnalignedLoads = cpu.X86.HasSSE2
	initCapabilities()
}
