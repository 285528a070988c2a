package ntt120

import (
	"sync"

	"github.com/nilspace/torusfhe/ring"
)

// reference is the portable three-prime NTT implementation; accelerated
// processes the same per-prime multiplies two (colIn, row) pairs at a time.
type reference struct {
	mu     sync.Mutex
	tables map[int]*Table
}

type accelerated struct {
	reference
}

// NewReference returns the portable NTT120 backend.
func NewReference() ring.Backend { return &reference{tables: map[int]*Table{}} }

// NewAccelerated returns the 2-wide-blocked NTT120 backend.
func NewAccelerated() ring.Backend { return &accelerated{reference{tables: map[int]*Table{}}} }

func (b *reference) Name() string   { return "ntt120.reference" }
func (b *accelerated) Name() string { return "ntt120.accelerated" }

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

// slotWords is the number of uint64 words one (col, limb) slot occupies:
// the qa, qb and qc residues of every coefficient, concatenated.
func slotWords(n int) int { return 3 * n }

func (b *reference) DftVecBytes(n, cols, limbs int) int {
	return cols * limbs * slotWords(n) * 8
}

func (b *reference) PreparedMatBytes(n, rows, colsIn, colsOut, limbs int) int {
	return rows * colsIn * colsOut * limbs * slotWords(n) * 8
}

func triple(data []byte, n int) (a, c, q []uint64) {
	u := bytesToUint64(data)
	return u[0:n], u[n : 2*n], u[2*n : 3*n]
}

func (b *reference) Forward(n int, dst ring.DftVec, dstCol, dstLimb int, src []int64, step, offset int) {
	t := b.table(n)
	slot := dst.Slot(dstCol, dstLimb, slotWords(n)*8)
	ra, rb, rc := triple(slot, n)
	t.A.forward(ra, src, step, offset)
	t.B.forward(rb, src, step, offset)
	t.C.forward(rc, src, step, offset)
}

func (b *reference) Inverse(n int, dst ring.BigVec, dstCol, dstLimb int, src ring.DftVec, srcCol, srcLimb int) {
	b.inverseInto(n, dst, dstCol, dstLimb, src, srcCol, srcLimb, false)
}

func (b *reference) InverseAdd(n int, dst ring.BigVec, dstCol, dstLimb int, src ring.DftVec, srcCol, srcLimb int) {
	b.inverseInto(n, dst, dstCol, dstLimb, src, srcCol, srcLimb, true)
}

func (b *reference) inverseInto(n int, dst ring.BigVec, dstCol, dstLimb int, src ring.DftVec, srcCol, srcLimb int, add bool) {
	t := b.table(n)
	slot := src.Slot(srcCol, srcLimb, slotWords(n)*8)
	ra, rb, rc := triple(slot, n)
	outA, outB, outC := make([]uint64, n), make([]uint64, n), make([]uint64, n)
	t.A.inverse(outA, ra)
	t.B.inverse(outB, rb)
	t.C.inverse(outC, rc)
	if !add {
		dst.Zero1(dstCol, dstLimb)
	}
	for i := 0; i < n; i++ {
		v := t.crtBalanced(outA[i], outB[i], outC[i])
		dst.AddBigInt(dstCol, dstLimb, i, v)
	}
}

func (b *reference) VMPPrepare(n int, dst ring.PreparedMat, src ring.MatZnx, scratch *ring.Scratch) {
	t := b.table(n)
	slotBytes := slotWords(n) * 8
	idx := 0
	for row := 0; row < src.Rows(); row++ {
		for colIn := 0; colIn < src.ColsIn(); colIn++ {
			for colOut := 0; colOut < src.ColsOut(); colOut++ {
				for l := 0; l < src.Limbs(); l++ {
					slot := dst.Data[idx*slotBytes : (idx+1)*slotBytes]
					ra, rb, rc := triple(slot, n)
					poly := src.At(row, colIn, colOut, l)
					t.A.forward(ra, poly, 1, 0)
					t.B.forward(rb, poly, 1, 0)
					t.C.forward(rc, poly, 1, 0)
					idx++
				}
			}
		}
	}
}

func (b *reference) VMPPrepareTmpBytes(n, rows, colsIn, colsOut, limbs int) int { return 0 }
func (b *reference) VMPApplyTmpBytes(n, rows, colsIn, colsOut, limbs int) int  { return 0 }

func (b *reference) VMPApply(n int, dst ring.DftVec, a ring.DftVec, mat ring.PreparedMat, scratch *ring.Scratch) {
	vmpApply(b.table(n), n, dst, a, mat, 0, false, 1)
}

func (b *reference) VMPApplyAdd(n int, dst ring.DftVec, a ring.DftVec, mat ring.PreparedMat, limbOffset int, scratch *ring.Scratch) {
	vmpApply(b.table(n), n, dst, a, mat, limbOffset, true, 1)
}

func (b *accelerated) VMPApply(n int, dst ring.DftVec, a ring.DftVec, mat ring.PreparedMat, scratch *ring.Scratch) {
	vmpApply(b.table(n), n, dst, a, mat, 0, false, 2)
}

func (b *accelerated) VMPApplyAdd(n int, dst ring.DftVec, a ring.DftVec, mat ring.PreparedMat, limbOffset int, scratch *ring.Scratch) {
	vmpApply(b.table(n), n, dst, a, mat, limbOffset, true, 2)
}

// vmpApply accumulates the three independent CRT component products, lane
// (colIn, row) pairs at a time. block is the lane width (1 for reference,
// 2 for accelerated); the result is identical either way.
func vmpApply(t *Table, n int, dst ring.DftVec, a ring.DftVec, mat ring.PreparedMat, limbOffset int, add bool, block int) {
	slotBytes := slotWords(n) * 8
	rows, colsIn, colsOut, limbs := mat.Rows(), mat.ColsIn(), mat.ColsOut(), mat.Limbs()
	rowLimit := a.Limbs()
	if rows < rowLimit {
		rowLimit = rows
	}

	type pair struct{ colIn, row int }
	var pairs []pair
	for colIn := 0; colIn < colsIn; colIn++ {
		for row := 0; row < rowLimit; row++ {
			pairs = append(pairs, pair{colIn, row})
		}
	}

	for colOut := 0; colOut < colsOut; colOut++ {
		for l := limbOffset; l < limbs; l++ {
			accA, accB, accC := make([]uint64, n), make([]uint64, n), make([]uint64, n)
			for p := 0; p < len(pairs); p += block {
				end := p + block
				if end > len(pairs) {
					end = len(pairs)
				}
				for _, pr := range pairs[p:end] {
					aSlot := a.Slot(pr.colIn, pr.row, slotBytes)
					aA, aB, aC := triple(aSlot, n)
					mIdx := ((pr.row*colsIn+pr.colIn)*colsOut+colOut)*limbs + l
					mSlot := mat.Data[mIdx*slotBytes : (mIdx+1)*slotBytes]
					mA, mB, mC := triple(mSlot, n)
					for i := 0; i < n; i++ {
						accA[i] = addMod(accA[i], mulMod(aA[i], mA[i], t.A.q), t.A.q)
						accB[i] = addMod(accB[i], mulMod(aB[i], mB[i], t.B.q), t.B.q)
						accC[i] = addMod(accC[i], mulMod(aC[i], mC[i], t.C.q), t.C.q)
					}
				}
			}
			dSlot := dst.Slot(colOut, l, slotBytes)
			dA, dB, dC := triple(dSlot, n)
			for i := 0; i < n; i++ {
				if add {
					dA[i] = addMod(dA[i], accA[i], t.A.q)
					dB[i] = addMod(dB[i], accB[i], t.B.q)
					dC[i] = addMod(dC[i], accC[i], t.C.q)
				} else {
					dA[i], dB[i], dC[i] = accA[i], accB[i], accC[i]
				}
			}
		}
	}
}
