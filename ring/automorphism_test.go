package ring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nilspace/torusfhe/ring"
)

// property 4 (additive half): auto_k(a + b) == auto_k(a) + auto_k(b).
func TestAutomorphismIsAdditiveHomomorphism(t *testing.T) {
	const n = 16
	const limbs = 2
	const k = 3

	a := ring.AllocCoeffVec(n, 1, limbs)
	b := ring.AllocCoeffVec(n, 1, limbs)
	for l := 0; l < limbs; l++ {
		ra, rb := a.At(0, l), b.At(0, l)
		for i := range ra {
			ra[i] = int64(i + l)
			rb[i] = int64(2*i - l)
		}
	}

	sum := ring.AllocCoeffVec(n, 1, limbs)
	ring.AddVec(sum, 0, a, 0, b, 0)
	autoSum := ring.AllocCoeffVec(n, 1, limbs)
	ring.Automorphism(k, autoSum, sum)

	autoA := ring.AllocCoeffVec(n, 1, limbs)
	autoB := ring.AllocCoeffVec(n, 1, limbs)
	ring.Automorphism(k, autoA, a)
	ring.Automorphism(k, autoB, b)
	sumOfAuto := ring.AllocCoeffVec(n, 1, limbs)
	ring.AddVec(sumOfAuto, 0, autoA, 0, autoB, 0)

	for l := 0; l < limbs; l++ {
		assert.Equal(t, sumOfAuto.At(0, l), autoSum.At(0, l), "limb %d", l)
	}
}

// S4 and property 5: applying k=3 then its inverse 11 mod 2*16 (3*11=33=2*16+1)
// returns the original value bit-exactly.
func TestAutomorphismScenarioS4Involution(t *testing.T) {
	const n = 16
	const limbs = 2

	a := ring.AllocCoeffVec(n, 1, limbs)
	for l := 0; l < limbs; l++ {
		row := a.At(0, l)
		for i := range row {
			row[i] = int64(i*3 + l + 1)
		}
	}

	g := ring.NewGaloisIndex(n, 3)
	assert.Equal(t, 11, g.Inverse())

	once := ring.AllocCoeffVec(n, 1, limbs)
	ring.Automorphism(3, once, a)
	twice := ring.AllocCoeffVec(n, 1, limbs)
	ring.Automorphism(g.Inverse(), twice, once)

	for l := 0; l < limbs; l++ {
		assert.Equal(t, a.At(0, l), twice.At(0, l), "limb %d", l)
	}
}
