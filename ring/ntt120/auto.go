package ntt120

import (
	"github.com/klauspost/cpuid/v2"

	"github.com/nilspace/torusfhe/ring"
)

// NewAuto mirrors fft64.NewAuto: pick the 2-wide-blocked accelerated path
// on hosts with wide integer SIMD, the portable reference path otherwise.
func NewAuto() ring.Backend {
	if cpuid.CPU.Supports(cpuid.AVX2) {
		return NewAccelerated()
	}
	return NewReference()
}
