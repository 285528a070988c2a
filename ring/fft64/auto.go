package fft64

import (
	"github.com/klauspost/cpuid/v2"

	"github.com/nilspace/torusfhe/ring"
)

// NewAuto probes the running CPU and returns the accelerated backend when
// the host supports the wide SIMD lanes the blocked VMP path assumes,
// falling back to the portable reference backend otherwise.
func NewAuto() ring.Backend {
	if cpuid.CPU.Supports(cpuid.AVX2, cpuid.FMA3) {
		return NewAccelerated()
	}
	return NewReference()
}
