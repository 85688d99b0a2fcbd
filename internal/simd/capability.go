package simd

import (
	"os"
	"strings"
)

// Kernel selects the inline-compare implementation.
type Kernel uint8

const (
	// Scalar is the byte-by-byte reference implementation.
	Scalar Kernel = iota
	// Words compares the 16-byte slot as two 64-bit lanes. Requires a CPU
	// with cheap unaligned word loads.
	Words
)

// String returns the kernel name.
func (k Kernel) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case Words:
		return "words"
	default:
		return "unknown"
	}
}

// ParseKernel parses a kernel name.
func ParseKernel(s string) (Kernel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scalar", "generic":
		return Scalar, true
	case "words":
		return Words, true
	default:
		return Scalar, false
	}
}

// Package-level state, fixed at init before any other code runs.
var (
	activeKernel Kernel

	// hasUnalignedLoads is set by the platform init when the CPU handles
	// unaligned 64-bit loads efficiently.
	hasUnalignedLoads bool
)

// initCapabilities is called from the platform init functions after CPU
// features are detected. SLOTWIRE_SIMD=scalar|words overrides detection,
// but never selects a kernel the CPU cannot run.
func initCapabilities() {
	if override := os.Getenv("SLOTWIRE_SIMD"); override != "" {
		if k, ok := ParseKernel(override); ok && kernelAvailable(k) {
			setKernel(k)
			return
		}
	}
	if hasUnalignedLoads {
		setKernel(Words)
		return
	}
	setKernel(Scalar)
}

func kernelAvailable(k Kernel) bool {
	return k == Scalar || hasUnalignedLoads
}

func setKernel(k Kernel) {
	activeKernel = k
	switch k {
	case Words:
		inlineEqualKernel = inlineEqualWords
	default:
		inlineEqualKernel = inlineEqualScalar
	}
}

// Active returns the kernel selected at startup.
func Active() Kernel { return activeKernel }
