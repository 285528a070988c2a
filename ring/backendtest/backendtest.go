// Package backendtest instantiates a reference and an accelerated Module
// for the same ring dimension and exposes small helpers _test.go files use
// to assert operation agreement between the two (testable property 7:
// backend agreement). It exists purely for test use.
package backendtest

import (
	"math"

	"github.com/nilspace/torusfhe/ring"
	"github.com/nilspace/torusfhe/ring/fft64"
	"github.com/nilspace/torusfhe/ring/ntt120"
)

// FFT64Pair returns a (reference, accelerated) Module pair sharing N.
func FFT64Pair(n int) (ref, acc *ring.Module) {
	return ring.NewModule(n, fft64.NewReference()), ring.NewModule(n, fft64.NewAccelerated())
}

// NTT120Pair returns a (reference, accelerated) Module pair sharing N.
func NTT120Pair(n int) (ref, acc *ring.Module) {
	return ring.NewModule(n, ntt120.NewReference()), ring.NewModule(n, ntt120.NewAccelerated())
}

// FloatULPWithin reports whether a and b agree to within tol absolute
// difference: a small absolute epsilon standing in for a ULP budget, not an
// exact ULP count. The FFT64 agreement test in ring compares the normalized
// integer results exactly and does not use it.
func FloatULPWithin(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
