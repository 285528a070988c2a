package ring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nilspace/torusfhe/ring"
	"github.com/nilspace/torusfhe/ring/backendtest"
)

// property 7 (integer path): NTT120's reference and accelerated VMPApply
// must agree bit-exactly, since that backend's arithmetic is all modular
// integer math with no rounding.
func TestBackendAgreementNTT120(t *testing.T) {
	const n = 32
	const limbs = 2

	ref, acc := backendtest.NTT120Pair(n)

	a := ring.AllocCoeffVec(n, 1, limbs)
	for l := 0; l < limbs; l++ {
		row := a.At(0, l)
		for i := range row {
			row[i] = int64((i*5+l)%11) - 5
		}
	}
	m := ring.AllocMatZnx(n, limbs, 1, 1, limbs)
	for l := 0; l < limbs; l++ {
		row := make([]int64, n)
		for i := range row {
			row[i] = int64((i*3+l*2)%9) - 4
		}
		copy(m.At(l, 0, 0, l), row)
	}

	runBoth := func(mod *ring.Module) ring.DftVec {
		prep := ring.AllocPreparedMat(mod.Backend, n, limbs, 1, 1, limbs)
		mod.Prepare(prep, m, nil)
		aDft := ring.AllocDftVec(mod.Backend, n, 1, limbs)
		for l := 0; l < limbs; l++ {
			mod.Forward(aDft, 0, l, a, 0, l)
		}
		rDft := ring.AllocDftVec(mod.Backend, n, 1, limbs)
		mod.VMPApply(rDft, aDft, prep, nil)
		return rDft
	}

	refOut := runBoth(ref)
	accOut := runBoth(acc)
	assert.Equal(t, refOut.Data, accOut.Data, "ntt120 reference and accelerated VMP results diverge")
}

// property 7 (FFT path): FFT64's reference and accelerated backends must
// agree to within one ULP per multiply on the inverse-transformed,
// normalized result.
func TestBackendAgreementFFT64(t *testing.T) {
	const n = 32
	const base2k = ring.Base2k(20)
	const limbs = 2

	ref, acc := backendtest.FFT64Pair(n)

	a := ring.AllocCoeffVec(n, 1, limbs)
	for l := 0; l < limbs; l++ {
		row := a.At(0, l)
		for i := range row {
			row[i] = int64((i*5+l)%11) - 5
		}
	}
	m := ring.AllocMatZnx(n, limbs, 1, 1, limbs)
	for l := 0; l < limbs; l++ {
		row := make([]int64, n)
		for i := range row {
			row[i] = int64((i*3+l*2)%9) - 4
		}
		copy(m.At(l, 0, 0, l), row)
	}

	runBoth := func(mod *ring.Module) ring.CoeffVec {
		prep := ring.AllocPreparedMat(mod.Backend, n, limbs, 1, 1, limbs)
		mod.Prepare(prep, m, nil)
		aDft := ring.AllocDftVec(mod.Backend, n, 1, limbs)
		for l := 0; l < limbs; l++ {
			mod.Forward(aDft, 0, l, a, 0, l)
		}
		rDft := ring.AllocDftVec(mod.Backend, n, 1, limbs)
		mod.VMPApply(rDft, aDft, prep, nil)
		big := ring.AllocBigVec(n, 1, limbs)
		for l := 0; l < limbs; l++ {
			mod.Inverse(big, 0, l, rDft, 0, l)
		}
		out := ring.AllocCoeffVec(n, 1, limbs)
		ring.Normalize(out, 0, big, 0, base2k, 0)
		return out
	}

	refOut := runBoth(ref)
	accOut := runBoth(acc)
	for l := 0; l < limbs; l++ {
		assert.Equal(t, refOut.At(0, l), accOut.At(0, l), "limb %d", l)
	}
}
