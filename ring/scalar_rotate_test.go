package ring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nilspace/torusfhe/ring"
)

// S3: rotating a limb of all-ones by p=1 wraps the last coefficient to
// index 0 with a sign flip, negacyclic-style.
func TestRotateScenarioS3(t *testing.T) {
	const n = 16
	const limbs = 3

	a := ring.AllocCoeffVec(n, 1, limbs)
	row := a.At(0, limbs-1)
	for i := range row {
		row[i] = 1
	}

	got := ring.AllocCoeffVec(n, 1, limbs)
	ring.RotateVec(got, 0, a, 0, 1)

	out := got.At(0, limbs-1)
	assert.EqualValues(t, -1, out[0])
	for i := 1; i < n; i++ {
		assert.EqualValuesf(t, 1, out[i], "index %d", i)
	}
}

// property 6: rotate(-N, a) == -a, and rotate(p, a) + rotate(N-p, a) == 0
// for p in (0, N).
func TestRotateNegacyclicProperty(t *testing.T) {
	const n = 16
	const limbs = 2

	a := ring.AllocCoeffVec(n, 1, limbs)
	for l := 0; l < limbs; l++ {
		row := a.At(0, l)
		for i := range row {
			row[i] = int64(i + l*5 + 1)
		}
	}

	negA := ring.AllocCoeffVec(n, 1, limbs)
	ring.NegateVec(negA, 0, a, 0)

	rotNegN := ring.AllocCoeffVec(n, 1, limbs)
	ring.RotateVec(rotNegN, 0, a, 0, -n)
	for l := 0; l < limbs; l++ {
		assert.Equal(t, negA.At(0, l), rotNegN.At(0, l), "limb %d", l)
	}

	for p := 1; p < n; p++ {
		rp := ring.AllocCoeffVec(n, 1, limbs)
		rNp := ring.AllocCoeffVec(n, 1, limbs)
		ring.RotateVec(rp, 0, a, 0, p)
		ring.RotateVec(rNp, 0, a, 0, n-p)
		sum := ring.AllocCoeffVec(n, 1, limbs)
		ring.AddVec(sum, 0, rp, 0, rNp, 0)
		for l := 0; l < limbs; l++ {
			for i, v := range sum.At(0, l) {
				assert.EqualValuesf(t, 0, v, "p=%d limb %d index %d", p, l, i)
			}
		}
	}
}

// regression: rotate amounts whose normalized form pp = p mod 2N falls in
// (N, 2N) used to wrap the index only once and could still land >= n,
// panicking. rotate(N, a) == -a, so for any q in (0, N), rotate(N+q, a)
// must equal -rotate(q, a); this exercises pp in (N, 2N) (and, via
// negative p, the modulo-reduction path) without panicking.
func TestRotateDoubleWrapRegression(t *testing.T) {
	const n = 16
	const limbs = 2

	a := ring.AllocCoeffVec(n, 1, limbs)
	for l := 0; l < limbs; l++ {
		row := a.At(0, l)
		for i := range row {
			row[i] = int64(i + l*5 + 1)
		}
	}

	check := func(p int) {
		got := ring.AllocCoeffVec(n, 1, limbs)
		ring.RotateVec(got, 0, a, 0, p)

		q := p - n
		want := ring.AllocCoeffVec(n, 1, limbs)
		ring.RotateVec(want, 0, a, 0, q)
		negWant := ring.AllocCoeffVec(n, 1, limbs)
		ring.NegateVec(negWant, 0, want, 0)

		for l := 0; l < limbs; l++ {
			assert.Equalf(t, negWant.At(0, l), got.At(0, l), "p=%d limb %d", p, l)
		}
	}

	for p := n + 1; p < 2*n; p++ {
		check(p)
	}
	// from the review: N=16, p=-1 (pp=31) and p=-5 (pp=27) both panicked.
	check(31)
	check(27)

	for _, p := range []int{-1, -5} {
		got := ring.AllocCoeffVec(n, 1, limbs)
		ring.RotateVec(got, 0, a, 0, p)
		want := ring.AllocCoeffVec(n, 1, limbs)
		ring.RotateVec(want, 0, a, 0, p+2*n)
		for l := 0; l < limbs; l++ {
			assert.Equalf(t, want.At(0, l), got.At(0, l), "p=%d limb %d", p, l)
		}
	}
}
