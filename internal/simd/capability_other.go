//go:build !amd64 && !arm64

package simd

func init() {
	hasUnalignedLoads = false
	initCapabilities()
}
