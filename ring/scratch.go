package ring

import (
	"fmt"
	"unsafe"
)

// Scratch is a bump-allocated, strictly-LIFO byte arena that temporaries
// can be carved from. The shipped kernels do not draw on it: Normalize, the
// automorphism in-place path and the fft64/ntt120 Inverse and VMP paths
// allocate their temporaries with make, and the backends' *TmpBytes queries
// report 0. A Scratch never grows: exhausting it is a caller bug, reported
// via a panic naming the shortfall rather than silently reallocating.
type Scratch struct {
	buf    []byte
	cursor int
}

// NewScratch allocates an arena of exactly nBytes, once.
func NewScratch(nBytes int) *Scratch {
	return &Scratch{buf: alignedBytes(nBytes)}
}

// Avail reports the number of bytes still available to carve.
func (s *Scratch) Avail() int { return len(s.buf) - s.cursor }

// Alloc carves n bytes off the top of the arena and returns them alongside
// a child Scratch view of whatever remains. The parent must not be used
// again until the child is no longer referenced (strict LIFO discipline is
// a calling convention here, not enforced by the type system, since Go has
// no borrow checker to do it for us).
func (s *Scratch) Alloc(n int) ([]byte, *Scratch) {
	if n > s.Avail() {
		panic(fmt.Errorf("ring: scratch exhausted: need %d bytes, have %d", n, s.Avail()))
	}
	b := s.buf[s.cursor : s.cursor+n : s.cursor+n]
	return b, &Scratch{buf: s.buf, cursor: s.cursor + n}
}

// TakeInt64Slice carves a slice of nElems int64 words directly out of the
// arena's backing array (no copy, no separate allocation).
func TakeInt64Slice(s *Scratch, nElems int) ([]int64, *Scratch) {
	b, rest := s.Alloc(nElems * 8)
	if nElems == 0 {
		return nil, rest
	}
	return unsafe.Slice((*int64)(unsafe.Pointer(&b[0])), nElems), rest
}

// TakeFloat64Slice carves a slice of nElems float64 words.
func TakeFloat64Slice(s *Scratch, nElems int) ([]float64, *Scratch) {
	b, rest := s.Alloc(nElems * 8)
	if nElems == 0 {
		return nil, rest
	}
	return unsafe.Slice((*float64)(unsafe.Pointer(&b[0])), nElems), rest
}

const bigWordSize = int(unsafe.Sizeof(bigWord{}))

// TakeBigWordSlice carves a slice of nElems bigWord accumulators.
func TakeBigWordSlice(s *Scratch, nElems int) ([]bigWord, *Scratch) {
	b, rest := s.Alloc(nElems * bigWordSize)
	if nElems == 0 {
		return nil, rest
	}
	return unsafe.Slice((*bigWord)(unsafe.Pointer(&b[0])), nElems), rest
}

// TakeCoeffVec carves a CoeffVec of the given shape out of the arena.
func TakeCoeffVec(s *Scratch, n, cols, limbs int) (CoeffVec, *Scratch) {
	v := CoeffVec{n: n, cols: cols, limbs: limbs, Coeffs: make([][]int64, cols*limbs)}
	cur := s
	for i := range v.Coeffs {
		var sl []int64
		sl, cur = TakeInt64Slice(cur, n)
		v.Coeffs[i] = sl
	}
	return v, cur
}

// TakeBigVec carves a BigVec of the given shape out of the arena.
func TakeBigVec(s *Scratch, n, cols, limbs int) (BigVec, *Scratch) {
	v := BigVec{n: n, cols: cols, limbs: limbs, words: make([][]bigWord, cols*limbs)}
	cur := s
	for i := range v.words {
		var sl []bigWord
		sl, cur = TakeBigWordSlice(cur, n)
		v.words[i] = sl
	}
	return v, cur
}
