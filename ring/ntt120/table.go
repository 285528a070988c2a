// Package ntt120 implements the three-word-size-prime CRT backend: each
// ring dimension N gets three NTT-friendly primes q_a, q_b, q_c (each
// q ≡ 1 mod 2N, so a primitive 2N-th root of unity exists) whose product
// exceeds 2^120, giving enough precision to carry a full limb's worth of
// convolution without overflow before CRT reconstruction.
//
// Every DftVec/PreparedMat slot in this backend carries all three residues
// side by side (the spec leaves "which layout stores which residue" as an
// implementation choice; storing all three everywhere is the simplest
// correct one and is what this package does).
package ntt120

import (
	"math/big"
	"math/bits"
)

// primeRing holds one prime's NTT table: forward/inverse twiddle powers and
// the modular inverse of N, for one ring dimension.
type primeRing struct {
	q     uint64
	fwd   [][]uint64 // fwd[j][i] = root^{(2j+1)*i} mod q
	inv   [][]uint64 // inv[j][i] = root^{-(2j+1)*i} mod q
	nInv  uint64
}

// Table holds the three primeRings for one ring dimension N.
type Table struct {
	n          int
	A, B, C    primeRing
	modulus    *big.Int // qA*qB*qC
}

func mulMod(a, b, q uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	_, rem := bits.Div64(hi, lo, q)
	return rem
}

func addMod(a, b, q uint64) uint64 {
	s := a + b
	if s >= q || s < a {
		s -= q
	}
	return s
}

func subMod(a, b, q uint64) uint64 {
	if a >= b {
		return a - b
	}
	return a + q - b
}

func modPow(base, exp, q uint64) uint64 {
	result := uint64(1)
	base %= q
	for exp > 0 {
		if exp&1 == 1 {
			result = mulMod(result, base, q)
		}
		base = mulMod(base, base, q)
		exp >>= 1
	}
	return result
}

// findNTTPrime returns the first prime >= start congruent to 1 mod twoN.
func findNTTPrime(start uint64, twoN uint64) uint64 {
	c := start
	rem := c % twoN
	if rem != 1 {
		c += (twoN + 1 - rem) % twoN
	}
	for {
		if big.NewInt(0).SetUint64(c).ProbablyPrime(24) {
			return c
		}
		c += twoN
	}
}

// find2NthRoot returns a primitive (2n)-th root of unity mod q, given
// q-1 == 2n*t.
func find2NthRoot(q uint64, n int) uint64 {
	twoN := uint64(2 * n)
	t := (q - 1) / twoN
	for g := uint64(2); ; g++ {
		cand := modPow(g, t, q)
		if modPow(cand, uint64(n), q) == q-1 {
			return cand
		}
	}
}

func newPrimeRing(q uint64, n int) primeRing {
	root := find2NthRoot(q, n)
	rootInv := modPow(root, q-2, q)
	pr := primeRing{q: q, fwd: make([][]uint64, n), inv: make([][]uint64, n)}
	for j := 0; j < n; j++ {
		zeta := modPow(root, uint64(2*j+1), q)
		zetaInv := modPow(rootInv, uint64(2*j+1), q)
		row := make([]uint64, n)
		rowInv := make([]uint64, n)
		p, pInv := uint64(1), uint64(1)
		for i := 0; i < n; i++ {
			row[i] = p
			rowInv[i] = pInv
			p = mulMod(p, zeta, q)
			pInv = mulMod(pInv, zetaInv, q)
		}
		pr.fwd[j] = row
		pr.inv[j] = rowInv
	}
	pr.nInv = modPow(uint64(n), q-2, q)
	return pr
}

// NewTable builds the three-prime NTT table for ring dimension n. Prime
// search starts near 2^41 so the three-prime product comfortably exceeds
// 2^120.
func NewTable(n int) *Table {
	twoN := uint64(2 * n)
	qa := findNTTPrime(1<<41, twoN)
	qb := findNTTPrime(qa+twoN, twoN)
	qc := findNTTPrime(qb+twoN, twoN)
	t := &Table{n: n, A: newPrimeRing(qa, n), B: newPrimeRing(qb, n), C: newPrimeRing(qc, n)}
	t.modulus = new(big.Int).Mul(new(big.Int).Mul(big.NewInt(0).SetUint64(qa), big.NewInt(0).SetUint64(qb)), big.NewInt(0).SetUint64(qc))
	return t
}

func toMod(x int64, q uint64) uint64 {
	r := x % int64(q)
	if r < 0 {
		r += int64(q)
	}
	return uint64(r)
}

func (pr primeRing) forward(dst []uint64, src []int64, step, offset int) {
	n := len(pr.fwd)
	q := pr.q
	for j := 0; j < n; j++ {
		row := pr.fwd[j]
		var acc uint64
		idx := offset
		for i := 0; i < n; i++ {
			acc = addMod(acc, mulMod(toMod(src[idx], q), row[i], q), q)
			idx += step
			if idx >= len(src) {
				idx -= len(src)
			}
		}
		dst[j] = acc
	}
}

func (pr primeRing) inverse(dst []uint64, src []uint64) {
	n := len(pr.inv)
	q := pr.q
	for i := 0; i < n; i++ {
		var acc uint64
		for j := 0; j < n; j++ {
			acc = addMod(acc, mulMod(src[j], pr.inv[j][i], q), q)
		}
		dst[i] = mulMod(acc, pr.nInv, q)
	}
}

// crtBalanced reconstructs the balanced-representative big.Int value with
// residues (ra mod qa, rb mod qb, rc mod qc) via explicit CRT, returning a
// value in (-modulus/2, modulus/2].
func (t *Table) crtBalanced(ra, rb, rc uint64) *big.Int {
	qa, qb, qc := big.NewInt(0).SetUint64(t.A.q), big.NewInt(0).SetUint64(t.B.q), big.NewInt(0).SetUint64(t.C.q)
	x := new(big.Int)
	add := func(r uint64, qi *big.Int) {
		mi := new(big.Int).Div(t.modulus, qi)
		inv := new(big.Int).ModInverse(new(big.Int).Mod(mi, qi), qi)
		term := new(big.Int).Mul(mi, inv)
		term.Mul(term, big.NewInt(0).SetUint64(r))
		x.Add(x, term)
	}
	add(ra, qa)
	add(rb, qb)
	add(rc, qc)
	x.Mod(x, t.modulus)
	half := new(big.Int).Rsh(t.modulus, 1)
	if x.Cmp(half) > 0 {
		x.Sub(x, t.modulus)
	}
	return x
}
