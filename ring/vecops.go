package ring

// Vector operations are column/limb-aware wrappers around the scalar
// kernels that additionally implement the size-mismatch policy: when
// operands carry a different number of limbs than the result, the excess
// is copied (or negated, for subtraction) from the longer operand and
// anything beyond that is zeroed. This rule must be preserved bit-exactly
// (spec's canonical size-mismatch rule).

// AddVec computes res[resCol] = a[aCol] + b[bCol], honoring the
// size-mismatch policy across a.limbs, b.limbs and res.limbs.
func AddVec(res CoeffVec, resCol int, a CoeffVec, aCol int, b CoeffVec, bCol int) {
	combineVec(res, resCol, a, aCol, b, bCol, false)
}

// SubVec computes res[resCol] = a[aCol] - b[bCol].
func SubVec(res CoeffVec, resCol int, a CoeffVec, aCol int, b CoeffVec, bCol int) {
	combineVec(res, resCol, a, aCol, b, bCol, true)
}

func combineVec(res CoeffVec, resCol int, a CoeffVec, aCol int, b CoeffVec, bCol int, sub bool) {
	la, lb, lr := a.limbs, b.limbs, res.limbs
	common := minInt(minInt(la, lb), lr)
	for l := 0; l < common; l++ {
		if sub {
			scalarSub(res.At(resCol, l), a.At(aCol, l), b.At(bCol, l))
		} else {
			scalarAdd(res.At(resCol, l), a.At(aCol, l), b.At(bCol, l))
		}
	}
	longer, longerCol, longerLimbs := a, aCol, la
	if lb > la {
		longer, longerCol, longerLimbs = b, bCol, lb
	}
	tailEnd := minInt(maxInt(la, lb), lr)
	negTail := sub && longerLimbs == lb && lb > la
	for l := common; l < tailEnd; l++ {
		if negTail {
			scalarNegate(res.At(resCol, l), longer.At(longerCol, l))
		} else {
			scalarCopy(res.At(resCol, l), longer.At(longerCol, l))
		}
	}
	for l := tailEnd; l < lr; l++ {
		scalarZero(res.At(resCol, l))
	}
}

// NegateVec computes res[resCol] = -a[aCol] honoring the same truncate/zero
// tail policy as combineVec's copy path.
func NegateVec(res CoeffVec, resCol int, a CoeffVec, aCol int) {
	la, lr := a.limbs, res.limbs
	common := minInt(la, lr)
	for l := 0; l < common; l++ {
		scalarNegate(res.At(resCol, l), a.At(aCol, l))
	}
	for l := common; l < lr; l++ {
		scalarZero(res.At(resCol, l))
	}
}

// CopyVec copies a[aCol] into res[resCol], zero-filling any limbs res has
// beyond a's.
func CopyVec(res CoeffVec, resCol int, a CoeffVec, aCol int) {
	la, lr := a.limbs, res.limbs
	common := minInt(la, lr)
	for l := 0; l < common; l++ {
		scalarCopy(res.At(resCol, l), a.At(aCol, l))
	}
	for l := common; l < lr; l++ {
		scalarZero(res.At(resCol, l))
	}
}

// RotateVec rotates every limb of column aCol by p and writes into resCol.
func RotateVec(res CoeffVec, resCol int, a CoeffVec, aCol int, p int) {
	for l := 0; l < minInt(a.limbs, res.limbs); l++ {
		scalarRotate(res.At(resCol, l), a.At(aCol, l), p)
	}
}

// MulPow2Vec multiplies every limb of column aCol by +-2^k and writes into
// resCol.
func MulPow2Vec(res CoeffVec, resCol int, a CoeffVec, aCol int, k int) {
	for l := 0; l < minInt(a.limbs, res.limbs); l++ {
		scalarMulPow2(res.At(resCol, l), a.At(aCol, l), k)
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
