package ring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nilspace/torusfhe/ring"
	"github.com/nilspace/torusfhe/ring/fft64"
)

// S1 and property 1: normalize(idft(dft(a))) == a for a coefficient vector
// with small limbs.
func TestTransformRoundTrip(t *testing.T) {
	const n = 16
	const base2k = ring.Base2k(12)
	const limbs = 3

	m := ring.NewModule(n, fft64.NewReference())
	a := ring.AllocCoeffVec(n, 1, limbs)
	a.At(0, limbs-1)[0] = 1 // S1: a = [1, 0, ..., 0] in column 0, lowest limb

	dft := ring.AllocDftVec(m.Backend, n, 1, limbs)
	big := ring.AllocBigVec(n, 1, limbs)
	got := ring.AllocCoeffVec(n, 1, limbs)

	for l := 0; l < limbs; l++ {
		m.Forward(dft, 0, l, a, 0, l)
		m.Inverse(big, 0, l, dft, 0, l)
	}
	ring.Normalize(got, 0, big, 0, base2k, 0)

	for l := 0; l < limbs; l++ {
		assert.Equal(t, a.At(0, l), got.At(0, l), "limb %d", l)
	}
}

func TestNormalizeCarryScenarioS2(t *testing.T) {
	const n = 16
	const base2k = ring.Base2k(12)
	const limbs = 3

	a := ring.AllocCoeffVec(n, 1, limbs)
	a.At(0, limbs-1)[0] = 1 << 11

	big := ring.AllocBigVec(n, 1, limbs)
	big.LoadCoeffVec(a)
	big.AddInt64(0, limbs-1, 0, 1<<11) // add(a, a): least-significant limb index 0 becomes 2^12

	out := ring.AllocCoeffVec(n, 1, limbs)
	ring.Normalize(out, 0, big, 0, base2k, 0)

	assert.EqualValues(t, 0, out.At(0, limbs-1)[0], "digit overflows to 0, carry absorbed upward")
	assert.EqualValues(t, 1, out.At(0, limbs-2)[0], "carry of +1 lands in the next limb up")
	for l := 0; l < limbs; l++ {
		for i, v := range out.At(0, l) {
			if l == limbs-1 && i == 0 {
				continue
			}
			if l == limbs-2 && i == 0 {
				continue
			}
			assert.EqualValuesf(t, 0, v, "limb %d index %d should be zero", l, i)
		}
	}
}
