package ring_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nilspace/torusfhe/ring"
	"github.com/nilspace/torusfhe/ring/fft64"
)

// reconstructBig turns an L-limb balanced-digit column (most significant
// limb first, weight 2^((L-1-l)*k)) into its N per-coefficient big.Int
// values.
func reconstructBig(v ring.CoeffVec, col int, k uint) []*big.Int {
	n, limbs := v.N(), v.Limbs()
	out := make([]*big.Int, n)
	for i := range out {
		out[i] = new(big.Int)
	}
	for l := 0; l < limbs; l++ {
		weight := new(big.Int).Lsh(big.NewInt(1), uint(limbs-1-l)*k)
		row := v.At(col, l)
		for i, d := range row {
			term := new(big.Int).Mul(big.NewInt(d), weight)
			out[i].Add(out[i], term)
		}
	}
	return out
}

// negacyclicConvolve computes the O(N^2) reference product of two
// big.Int-coefficient polynomials over Z[X]/(X^N+1).
func negacyclicConvolve(a, m []*big.Int) []*big.Int {
	n := len(a)
	out := make([]*big.Int, n)
	for i := range out {
		out[i] = new(big.Int)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			term := new(big.Int).Mul(a[i], m[j])
			idx := i + j
			if idx < n {
				out[idx].Add(out[idx], term)
			} else {
				out[idx-n].Sub(out[idx-n], term)
			}
		}
	}
	return out
}

// S5: VMP applied against a diagonal gadget matrix (row l holds m at output
// limb l, zero elsewhere) reproduces the naive negacyclic convolution a*m,
// bit-exactly after normalize.
func TestVMPScenarioS5(t *testing.T) {
	const n = 64
	const base2k = ring.Base2k(16)
	const limbs = 4

	mod := ring.NewModule(n, fft64.NewReference())

	a := ring.AllocCoeffVec(n, 1, limbs)
	for l := 0; l < limbs; l++ {
		row := a.At(0, l)
		for i := range row {
			row[i] = int64((i*3+l*5)%21) - 10
		}
	}

	m := make([]int64, n)
	for i := range m {
		m[i] = int64((i*7)%17) - 8
	}

	mat := ring.AllocMatZnx(n, limbs, 1, 1, limbs)
	for l := 0; l < limbs; l++ {
		copy(mat.At(l, 0, 0, l), m)
	}

	prepared := ring.AllocPreparedMat(mod.Backend, n, limbs, 1, 1, limbs)
	mod.Prepare(prepared, mat, nil)

	aDft := ring.AllocDftVec(mod.Backend, n, 1, limbs)
	for l := 0; l < limbs; l++ {
		mod.Forward(aDft, 0, l, a, 0, l)
	}

	rDft := ring.AllocDftVec(mod.Backend, n, 1, limbs)
	mod.VMPApply(rDft, aDft, prepared, nil)

	rBig := ring.AllocBigVec(n, 1, limbs)
	for l := 0; l < limbs; l++ {
		mod.Inverse(rBig, 0, l, rDft, 0, l)
	}

	got := ring.AllocCoeffVec(n, 1, limbs)
	ring.Normalize(got, 0, rBig, 0, base2k, 0)

	aVal := reconstructBig(a, 0, uint(base2k))
	mVal := make([]*big.Int, n)
	for i, x := range m {
		mVal[i] = big.NewInt(x)
	}
	want := negacyclicConvolve(aVal, mVal)
	gotVal := reconstructBig(got, 0, uint(base2k))

	for i := 0; i < n; i++ {
		assert.Equalf(t, want[i].String(), gotVal[i].String(), "coefficient %d", i)
	}
}
