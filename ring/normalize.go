package ring

// Normalization turns a BigVec (or a column's worth of freshly
// inverse-transformed accumulator) into a canonical CoeffVec: every limb a
// balanced-representative base-2^k digit, carries propagated through the
// chain. Limbs are stored most-significant first (index 0 is j=0, the
// highest-order digit); carries therefore ripple from the least significant
// limb (the last index) toward the most significant one (index 0).
//
// FirstStep seeds the carry at the least significant limb, MiddleStep walks
// the remaining limbs propagating it, and FinalStep absorbs whatever is left
// into the most significant limb. Base2k is the k in base-2^k; its only
// constraint here is 1 <= base2k <= 62, wide enough to fit a digit in a
// native int64 with headroom for intermediate arithmetic.
type Base2k uint

func (k Base2k) modulusShift() uint { return uint(k) }

// normalizeLimb reduces a bigWord accumulator value to its balanced digit in
// (-2^(k-1), 2^(k-1)] and returns the exact carry toward the next
// (more significant) limb.
func normalizeLimb(v bigWord, k Base2k) (digit int64, carry bigWord) {
	shift := k.modulusShift()
	half := uint64(1) << (shift - 1)
	b := uint64(1) << shift

	var m uint64 // v mod b, folded into [0, b)
	r0 := v.lo & (b - 1)
	if !v.neg {
		m = r0
	} else if r0 == 0 {
		m = 0
	} else {
		m = b - r0
	}

	if m > half {
		digit = int64(m) - int64(b)
	} else {
		digit = int64(m)
	}

	rem := v
	rem.addInt64(-digit)
	carry = rem.shiftRightPow2(shift)
	return digit, carry
}

// FirstStep processes the least significant limb (index limbs-1) of a
// BigVec column, producing its balanced digit plus a carry fed into
// MiddleStep. dst receives the digit; dst must have the same N as big.
func FirstStep(dst []int64, big []bigWord, k Base2k) []bigWord {
	carry := make([]bigWord, len(big))
	for i, v := range big {
		d, c := normalizeLimb(v, k)
		dst[i] = d
		carry[i] = c
	}
	return carry
}

// MiddleStep processes one interior limb: it adds the incoming carry to
// big's raw value, emits the balanced digit into dst, and returns the next
// carry (overwriting carryInOut in place to avoid an extra allocation).
func MiddleStep(dst []int64, big []bigWord, carryInOut []bigWord, k Base2k) {
	for i, v := range big {
		v.addWord(carryInOut[i])
		d, c := normalizeLimb(v, k)
		dst[i] = d
		carryInOut[i] = c
	}
}

// FinalStep processes the most significant limb (index 0): it absorbs the
// incoming carry and still reduces to the balanced digit range, same as
// every other limb (property 3 holds for the top limb too). Any carry that
// would propagate past index 0 is dropped; a well-formed input whose true
// magnitude fits in limbs*k bits never produces one. Callers that need to
// observe that overflow instead of discarding it should use FinalStepCarry.
func FinalStep(dst []int64, big []bigWord, carryIn []bigWord, k Base2k) {
	for i, v := range big {
		v.addWord(carryIn[i])
		d, _ := normalizeLimb(v, k)
		dst[i] = d
	}
}

// FinalStepCarry is FinalStep's variant that still reports the digit's
// exact balanced reduction plus any residual carry, for callers (e.g. an
// external product result one limb wider than its declared L) that need to
// inspect overflow rather than silently truncate it.
func FinalStepCarry(dst []int64, big []bigWord, carryIn []bigWord, k Base2k) []bigWord {
	carry := make([]bigWord, len(big))
	for i, v := range big {
		v.addWord(carryIn[i])
		d, c := normalizeLimb(v, k)
		dst[i] = d
		carry[i] = c
	}
	return carry
}

func (w *bigWord) addWord(o bigWord) {
	w.addMag(o.neg, o.hi, o.lo)
}

// Normalize drives the full First/Middle/Final sequence over one column of
// a BigVec, writing the canonical balanced-limb result into dst (a CoeffVec
// column view of the same shape). An optional leading left-shift by lsh
// bits realigns the gadget scale before carry propagation begins (used by
// the external-product result); pass lsh=0 to skip it.
func Normalize(dst CoeffVec, dstCol int, big BigVec, bigCol int, k Base2k, lsh uint) {
	limbs := big.limbs
	n := big.n
	if limbs == 0 {
		return
	}
	work := make([]bigWord, n)
	copy(work, big.slot(bigCol, limbs-1))
	if lsh > 0 {
		for i := range work {
			work[i] = work[i].shiftLeftPow2(lsh)
		}
	}
	if limbs == 1 {
		// the single limb is both least and most significant: reduce it once
		// and drop the carry past index 0, as FinalStep does.
		FinalStep(dst.At(dstCol, 0), work, make([]bigWord, n), k)
		return
	}
	carry := FirstStep(dst.At(dstCol, limbs-1), work, k)
	for l := limbs - 2; l >= 1; l-- {
		copy(work, big.slot(bigCol, l))
		if lsh > 0 {
			for i := range work {
				work[i] = work[i].shiftLeftPow2(lsh)
			}
		}
		MiddleStep(dst.At(dstCol, l), work, carry, k)
	}
	copy(work, big.slot(bigCol, 0))
	if lsh > 0 {
		for i := range work {
			work[i] = work[i].shiftLeftPow2(lsh)
		}
	}
	FinalStep(dst.At(dstCol, 0), work, carry, k)
}

// NormalizeInplace normalizes a CoeffVec against itself: every limb is
// loaded as the initial BigVec value (no cross-limb accumulation beyond
// what normalize's own carry chain produces), so this is the idempotence
// check's (property 2) primary caller.
func NormalizeInplace(v CoeffVec, col int, k Base2k) {
	big := AllocBigVec(v.n, 1, v.limbs)
	big.LoadCoeffVec(CoeffVec{n: v.n, cols: 1, limbs: v.limbs, Coeffs: v.Column(col)})
	Normalize(v, col, big, 0, k, 0)
}
