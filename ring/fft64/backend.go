package fft64

import (
	"math"
	"sync"

	"github.com/nilspace/torusfhe/ring"
)

// slotFloats is the number of float64 words one (col, limb) DftVec slot
// occupies: N reals followed by N imaginaries.
func slotFloats(n int) int { return 2 * n }

// reference is the portable, straight-line FFT64 implementation; accelerated
// processes the same math in 4-wide blocks. Both satisfy ring.Backend.
type reference struct {
	mu     sync.Mutex
	tables map[int]*Table
}

type accelerated struct {
	reference
}

// NewReference returns the portable FFT64 backend.
func NewReference() ring.Backend { return &reference{tables: map[int]*Table{}} }

// NewAccelerated returns the 4-lane-blocked FFT64 backend. It produces
// identical-up-to-rounding results to NewReference (testable property 7).
func NewAccelerated() ring.Backend { return &accelerated{reference{tables: map[int]*Table{}}} }

func (b *reference) Name() string { return "fft64.reference" }

func (b *accelerated) Name() string { return "fft64.accelerated" }

func (b *reference) table(n int) *Table {
	b.mu.Lock()
	defer b.mu.Unlock()
	t, ok := b.tables[n]
	if !ok {
		t = NewTable(n)
		b.tables[n] = t
	}
	return t
}

func (b *reference) DftVecBytes(n, cols, limbs int) int {
	return cols * limbs * slotFloats(n) * 8
}

func (b *reference) PreparedMatBytes(n, rows, colsIn, colsOut, limbs int) int {
	return rows * colsIn * colsOut * limbs * slotFloats(n) * 8
}

func reimSlot(data []byte, n int) (real, imag []float64) {
	f := bytesToFloat64(data)
	return f[:n], f[n : 2*n]
}

func (b *reference) Forward(n int, dst ring.DftVec, dstCol, dstLimb int, src []int64, step, offset int) {
	t := b.table(n)
	slot := dst.Slot(dstCol, dstLimb, slotFloats(n)*8)
	re, im := reimSlot(slot, n)
	t.Forward(re, im, src, step, offset)
}

func (b *reference) Inverse(n int, dst ring.BigVec, dstCol, dstLimb int, src ring.DftVec, srcCol, srcLimb int) {
	b.inverseInto(n, dst, dstCol, dstLimb, src, srcCol, srcLimb, false)
}

func (b *reference) InverseAdd(n int, dst ring.BigVec, dstCol, dstLimb int, src ring.DftVec, srcCol, srcLimb int) {
	b.inverseInto(n, dst, dstCol, dstLimb, src, srcCol, srcLimb, true)
}

func (b *reference) inverseInto(n int, dst ring.BigVec, dstCol, dstLimb int, src ring.DftVec, srcCol, srcLimb int, add bool) {
	t := b.table(n)
	slot := src.Slot(srcCol, srcLimb, slotFloats(n)*8)
	re, im := reimSlot(slot, n)
	tmp := make([]float64, n)
	t.Inverse(tmp, re, im)
	if !add {
		dst.Zero1(dstCol, dstLimb)
	}
	for i, v := range tmp {
		dst.AddInt64(dstCol, dstLimb, i, int64(math.Round(v)))
	}
}

func (b *reference) VMPPrepare(n int, dst ring.PreparedMat, src ring.MatZnx, scratch *ring.Scratch) {
	t := b.table(n)
	slotBytes := slotFloats(n) * 8
	idx := 0
	for row := 0; row < src.Rows(); row++ {
		for colIn := 0; colIn < src.ColsIn(); colIn++ {
			for colOut := 0; colOut < src.ColsOut(); colOut++ {
				for l := 0; l < src.Limbs(); l++ {
					slot := dst.Data[idx*slotBytes : (idx+1)*slotBytes]
					re, im := reimSlot(slot, n)
					t.Forward(re, im, src.At(row, colIn, colOut, l), 1, 0)
					idx++
				}
			}
		}
	}
}

func (b *reference) VMPPrepareTmpBytes(n, rows, colsIn, colsOut, limbs int) int { return 0 }

func (b *reference) VMPApply(n int, dst ring.DftVec, a ring.DftVec, mat ring.PreparedMat, scratch *ring.Scratch) {
	vmpApply(n, dst, a, mat, 0, false)
}

func (b *reference) VMPApplyAdd(n int, dst ring.DftVec, a ring.DftVec, mat ring.PreparedMat, limbOffset int, scratch *ring.Scratch) {
	vmpApply(n, dst, a, mat, limbOffset, true)
}

func (b *reference) VMPApplyTmpBytes(n, rows, colsIn, colsOut, limbs int) int { return 0 }

// vmpApply is the reference-path VMP accumulation: one (colIn, row) pair at
// a time. accelerated overrides this with a 4-wide blocked version below.
func vmpApply(n int, dst ring.DftVec, a ring.DftVec, mat ring.PreparedMat, limbOffset int, add bool) {
	slotBytes := slotFloats(n) * 8
	rows, colsIn, colsOut, limbs := mat.Rows(), mat.ColsIn(), mat.ColsOut(), mat.Limbs()
	for colOut := 0; colOut < colsOut; colOut++ {
		for l := limbOffset; l < limbs; l++ {
			accRe := make([]float64, n)
			accIm := make([]float64, n)
			for colIn := 0; colIn < colsIn; colIn++ {
				rowLimit := minInt(a.Limbs(), rows)
				for row := 0; row < rowLimit; row++ {
					aSlot := a.Slot(colIn, row, slotBytes)
					aRe, aIm := reimSlot(aSlot, n)
					mIdx := ((row*colsIn+colIn)*colsOut+colOut)*limbs + l
					mSlot := mat.Data[mIdx*slotBytes : (mIdx+1)*slotBytes]
					mRe, mIm := reimSlot(mSlot, n)
					for i := 0; i < n; i++ {
						// complex multiply-accumulate
						accRe[i] += aRe[i]*mRe[i] - aIm[i]*mIm[i]
						accIm[i] += aRe[i]*mIm[i] + aIm[i]*mRe[i]
					}
				}
			}
			dstSlot := dst.Slot(colOut, l, slotBytes)
			dRe, dIm := reimSlot(dstSlot, n)
			if add {
				for i := 0; i < n; i++ {
					dRe[i] += accRe[i]
					dIm[i] += accIm[i]
				}
			} else {
				copy(dRe, accRe)
				copy(dIm, accIm)
			}
		}
	}
}

func (b *accelerated) VMPApply(n int, dst ring.DftVec, a ring.DftVec, mat ring.PreparedMat, scratch *ring.Scratch) {
	vmpApplyBlocked(n, dst, a, mat, 0, false)
}

func (b *accelerated) VMPApplyAdd(n int, dst ring.DftVec, a ring.DftVec, mat ring.PreparedMat, limbOffset int, scratch *ring.Scratch) {
	vmpApplyBlocked(n, dst, a, mat, limbOffset, true)
}

// vmpApplyBlocked computes the identical accumulation as vmpApply but walks
// the (colIn, row) pairs four at a time, the lane width the FFT64 backend
// tiles VMP against.
func vmpApplyBlocked(n int, dst ring.DftVec, a ring.DftVec, mat ring.PreparedMat, limbOffset int, add bool) {
	slotBytes := slotFloats(n) * 8
	rows, colsIn, colsOut, limbs := mat.Rows(), mat.ColsIn(), mat.ColsOut(), mat.Limbs()

	type pair struct{ colIn, row int }
	var pairs []pair
	for colIn := 0; colIn < colsIn; colIn++ {
		rowLimit := minInt(a.Limbs(), rows)
		for row := 0; row < rowLimit; row++ {
			pairs = append(pairs, pair{colIn, row})
		}
	}

	for colOut := 0; colOut < colsOut; colOut++ {
		for l := limbOffset; l < limbs; l++ {
			accRe := make([]float64, n)
			accIm := make([]float64, n)
			p := 0
			for ; p+4 <= len(pairs); p += 4 {
				for lane := 0; lane < 4; lane++ {
					pr := pairs[p+lane]
					aSlot := a.Slot(pr.colIn, pr.row, slotBytes)
					aRe, aIm := reimSlot(aSlot, n)
					mIdx := ((pr.row*colsIn+pr.colIn)*colsOut+colOut)*limbs + l
					mSlot := mat.Data[mIdx*slotBytes : (mIdx+1)*slotBytes]
					mRe, mIm := reimSlot(mSlot, n)
					for i := 0; i < n; i++ {
						accRe[i] += aRe[i]*mRe[i] - aIm[i]*mIm[i]
						accIm[i] += aRe[i]*mIm[i] + aIm[i]*mRe[i]
					}
				}
			}
			for ; p < len(pairs); p++ {
				pr := pairs[p]
				aSlot := a.Slot(pr.colIn, pr.row, slotBytes)
				aRe, aIm := reimSlot(aSlot, n)
				mIdx := ((pr.row*colsIn+pr.colIn)*colsOut+colOut)*limbs + l
				mSlot := mat.Data[mIdx*slotBytes : (mIdx+1)*slotBytes]
				mRe, mIm := reimSlot(mSlot, n)
				for i := 0; i < n; i++ {
					accRe[i] += aRe[i]*mRe[i] - aIm[i]*mIm[i]
					accIm[i] += aRe[i]*mIm[i] + aIm[i]*mRe[i]
				}
			}
			dstSlot := dst.Slot(colOut, l, slotBytes)
			dRe, dIm := reimSlot(dstSlot, n)
			if add {
				for i := 0; i < n; i++ {
					dRe[i] += accRe[i]
					dIm[i] += accIm[i]
				}
			} else {
				copy(dRe, accRe)
				copy(dIm, accIm)
			}
		}
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
