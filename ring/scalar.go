package ring

// This file holds the per-polynomial scalar kernels: single-pass routines
// over contiguous []int64 slices of length N, all zero-allocation except
// scalarRotateInplace. The operations in vecops.go are column/limb-aware
// wrappers around these.

// scalarAdd computes dst[i] = a[i] + b[i] for all i, wrapping on overflow;
// no modular reduction happens here, normalize.go's carry chain does that.
func scalarAdd(dst, a, b []int64) {
	for i := range dst {
		dst[i] = a[i] + b[i]
	}
}

// scalarSub computes dst[i] = a[i] - b[i].
func scalarSub(dst, a, b []int64) {
	for i := range dst {
		dst[i] = a[i] - b[i]
	}
}

// scalarNegate computes dst[i] = -a[i].
func scalarNegate(dst, a []int64) {
	for i := range dst {
		dst[i] = -a[i]
	}
}

// scalarCopy copies a into dst.
func scalarCopy(dst, a []int64) { copy(dst, a) }

// scalarZero clears dst.
func scalarZero(dst []int64) {
	for i := range dst {
		dst[i] = 0
	}
}

// scalarMulPow2 computes dst[i] = a[i] << k when k >= 0, or a right-shift
// with sign preservation (arithmetic shift) when k < 0; both preserve sign.
func scalarMulPow2(dst, a []int64, k int) {
	switch {
	case k == 0:
		copy(dst, a)
	case k > 0:
		for i := range dst {
			dst[i] = a[i] << uint(k)
		}
	default:
		for i := range dst {
			dst[i] = a[i] >> uint(-k)
		}
	}
}

// scalarRotate performs the negacyclic rotation by p positions of a length-N
// polynomial: the coefficient of X^i moves to X^(i+p), and whenever that
// target index wraps past N-1 (equivalently X^N = -1), the coefficient is
// negated. Positive p rotates toward higher indices. p is taken modulo 2N
// with sign handling folded in, so callers may pass any int.
func scalarRotate(dst, a []int64, p int) {
	n := len(a)
	pp := normalizeRotation(p, n)
	for i := 0; i < n; i++ {
		j := i + pp
		neg := false
		for j >= n {
			j -= n
			neg = !neg
		}
		if neg {
			dst[j] = -a[i]
		} else {
			dst[j] = a[i]
		}
	}
}

// normalizeRotation folds an arbitrary signed rotation amount p into
// [0, 2N); callers recover the shift in [0, N) and the sign with a
// conditional negate during the index walk above. This is the single normalization
// point referenced by the rotation open question: every entry point funnels
// through here rather than expecting pre-reduced input.
func normalizeRotation(p, n int) int {
	twoN := 2 * n
	r := p % twoN
	if r < 0 {
		r += twoN
	}
	return r
}

// scalarRotateInplace rotates a in place, presenting the same signature as
// an in-place kernel even though it allocates a temporary internally; see
// the comment below for why.
func scalarRotateInplace(a []int64, p int) {
	n := len(a)
	pp := normalizeRotation(p, n)
	if pp == 0 {
		return
	}
	// Fall back to an explicit temporary: the sign flip on wraparound makes
	// the cycle-walk's in-place swap non-trivial to get right for every
	// p, and this kernel is not on the hot VMP path.
	tmp := make([]int64, n)
	scalarRotate(tmp, a, p)
	copy(a, tmp)
}

// switchRingDown rescales a length-N1 vector into a length-N2 one where N2
// divides N1, by subsampling every (N1/N2)-th coefficient starting at 0.
// Used when switching from a larger ring to a smaller one (e.g. dropping an
// automorphism subgroup).
func switchRingDown(dst, src []int64) {
	n1, n2 := len(src), len(dst)
	step := n1 / n2
	for i := 0; i < n2; i++ {
		dst[i] = src[i*step]
	}
}

// switchRingUp embeds a length-N1 vector into a length-N2 one (N1 divides
// N2) by zero-interleaving: dst[i*step] = src[i], all other entries zero.
func switchRingUp(dst, src []int64) {
	n2, n1 := len(dst), len(src)
	step := n2 / n1
	scalarZero(dst)
	for i := 0; i < n1; i++ {
		dst[i*step] = src[i]
	}
}
