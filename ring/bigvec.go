package ring

import (
	"encoding/binary"
	"math/big"
	"math/bits"
)

// bigWord is a sign-and-128-bit-magnitude accumulator, the "backend-specific
// wide scalar type" a BigVec slot holds: wide enough to absorb a VMP
// dot-product's worth of limb*limb partial products before normalize needs
// to run. Sign-and-magnitude (rather than two's complement) keeps the
// modulus/shift arithmetic normalize.go needs straightforward.
type bigWord struct {
	neg    bool
	hi, lo uint64
}

func (w *bigWord) addInt64(x int64) {
	if x == 0 {
		return
	}
	neg := x < 0
	var mag uint64
	if neg {
		mag = uint64(-x)
	} else {
		mag = uint64(x)
	}
	w.addMag(neg, 0, mag)
}

func (w *bigWord) addMag(neg bool, hi, lo uint64) {
	if w.hi == 0 && w.lo == 0 {
		w.neg, w.hi, w.lo = neg, hi, lo
		return
	}
	if w.neg == neg {
		var carry uint64
		w.lo, carry = bits.Add64(w.lo, lo, 0)
		w.hi, _ = bits.Add64(w.hi, hi, carry)
		return
	}
	if magGTE(w.hi, w.lo, hi, lo) {
		var borrow uint64
		w.lo, borrow = bits.Sub64(w.lo, lo, 0)
		w.hi, _ = bits.Sub64(w.hi, hi, borrow)
	} else {
		var borrow uint64
		lo2, b := bits.Sub64(lo, w.lo, 0)
		borrow = b
		hi2, _ := bits.Sub64(hi, w.hi, borrow)
		w.hi, w.lo, w.neg = hi2, lo2, neg
	}
	if w.hi == 0 && w.lo == 0 {
		w.neg = false
	}
}

func magGTE(hi1, lo1, hi2, lo2 uint64) bool {
	if hi1 != hi2 {
		return hi1 > hi2
	}
	return lo1 >= lo2
}

// shiftRightPow2 divides the magnitude of w by 1<<k (k in [1,63]) exactly,
// preserving sign. The caller is responsible for k dividing w's magnitude
// evenly; normalize.go only calls it after subtracting the exact remainder.
func (w bigWord) shiftRightPow2(k uint) bigWord {
	lo := (w.lo >> k) | (w.hi << (64 - k))
	hi := w.hi >> k
	if hi == 0 && lo == 0 {
		return bigWord{}
	}
	return bigWord{neg: w.neg, hi: hi, lo: lo}
}

// shiftLeftPow2 multiplies w by 1<<k, used by normalize's optional leading
// left-shift (spec's `lsh` realignment step).
func (w bigWord) shiftLeftPow2(k uint) bigWord {
	hi := (w.hi << k) | (w.lo >> (64 - k))
	lo := w.lo << k
	if hi == 0 && lo == 0 {
		return bigWord{}
	}
	return bigWord{neg: w.neg, hi: hi, lo: lo}
}

func (w bigWord) isZero() bool { return w.hi == 0 && w.lo == 0 }

// toInt64 is valid only once w's magnitude fits in an int64. FinalStep does
// not call it; it reduces through normalizeLimb like every other step.
func (w bigWord) toInt64() int64 {
	v := int64(w.lo)
	if w.neg {
		return -v
	}
	return v
}

// BigVec is the extended-precision accumulator parallel to CoeffVec: no
// range invariant holds until normalize runs.
type BigVec struct {
	n, cols, limbs int
	words          [][]bigWord
}

// AllocBigVec returns a zero-initialized BigVec of the given shape.
func AllocBigVec(n, cols, limbs int) BigVec {
	assertPow2(n, "BigVec.n")
	v := BigVec{n: n, cols: cols, limbs: limbs, words: make([][]bigWord, cols*limbs)}
	for i := range v.words {
		v.words[i] = make([]bigWord, n)
	}
	return v
}

func (v BigVec) N() int     { return v.n }
func (v BigVec) Cols() int  { return v.cols }
func (v BigVec) Limbs() int { return v.limbs }

func (v BigVec) slot(col, limb int) []bigWord {
	return v.words[col*v.limbs+limb]
}

// Zero clears every accumulator slot.
func (v BigVec) Zero() {
	for _, s := range v.words {
		for i := range s {
			s[i] = bigWord{}
		}
	}
}

// Zero1 clears only the (col, limb) slot, used by a backend's Inverse (as
// opposed to InverseAdd) so it does not have to touch limbs it is not
// writing.
func (v BigVec) Zero1(col, limb int) {
	s := v.slot(col, limb)
	for i := range s {
		s[i] = bigWord{}
	}
}

// AddBigInt accumulates an arbitrary-magnitude signed value into the
// (col, limb, idx) accumulator, used by the ntt120 backend's Inverse after
// CRT-reconstructing a coefficient beyond int64 range.
func (v BigVec) AddBigInt(col, limb, idx int, x *big.Int) {
	neg := x.Sign() < 0
	mag := new(big.Int).Abs(x)
	var buf [16]byte
	mag.FillBytes(buf[:])
	hi := binary.BigEndian.Uint64(buf[0:8])
	lo := binary.BigEndian.Uint64(buf[8:16])
	v.slot(col, limb)[idx].addMag(neg, hi, lo)
}

// AddInt64 accumulates x into the (col, limb, idx) accumulator.
func (v BigVec) AddInt64(col, limb, idx int, x int64) {
	s := v.slot(col, limb)
	s[idx].addInt64(x)
}

// LoadCoeffVec resets v and loads a's limbs verbatim as the initial
// accumulator values, min(a.limbs, v.limbs) limbs per column, the same
// truncate/zero-fill policy vecops.go uses elsewhere.
func (v BigVec) LoadCoeffVec(a CoeffVec) {
	v.Zero()
	lim := min(v.limbs, a.limbs)
	for col := 0; col < min(v.cols, a.cols); col++ {
		for l := 0; l < lim; l++ {
			dst := v.slot(col, l)
			src := a.At(col, l)
			for i, x := range src {
				dst[i] = bigWord{}
				dst[i].addInt64(x)
			}
		}
	}
}
