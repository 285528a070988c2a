package ring

import "fmt"

// VMPApply computes dst = a . m (the vector-matrix product gadget
// decomposition reduces to): for each output column and limb, the pointwise
// product of a's row-indexed slices against m's matching slices, accumulated
// across rows. Shape contract: a.cols == m.colsIn, dst.cols == m.colsOut,
// dst.limbs == m.limbs, a.limbs <= m.rows.
func (m *Module) VMPApply(dst DftVec, a DftVec, mat PreparedMat, scratch *Scratch) {
	assertVMPShape(a, mat, dst)
	dst.CheckBackend(m.Backend)
	a.CheckBackend(m.Backend)
	mat.CheckBackend(m.Backend)
	m.Backend.VMPApply(m.n, dst, a, mat, scratch)
}

// VMPApplyAdd is VMPApply's accumulating variant: dst must already hold
// valid data for limbs < limbOffset, and be zeroed (or otherwise owned) for
// limbs >= limbOffset.
func (m *Module) VMPApplyAdd(dst DftVec, a DftVec, mat PreparedMat, limbOffset int, scratch *Scratch) {
	assertVMPShape(a, mat, dst)
	dst.CheckBackend(m.Backend)
	a.CheckBackend(m.Backend)
	mat.CheckBackend(m.Backend)
	m.Backend.VMPApplyAdd(m.n, dst, a, mat, limbOffset, scratch)
}

// VMPApplyTmpBytes reports the scratch VMPApply/VMPApplyAdd need for the
// given matrix shape.
func (m *Module) VMPApplyTmpBytes(rows, colsIn, colsOut, limbs int) int {
	return m.Backend.VMPApplyTmpBytes(m.n, rows, colsIn, colsOut, limbs)
}

func assertVMPShape(a DftVec, mat PreparedMat, dst DftVec) {
	if a.cols != mat.colsIn {
		panic(fmt.Errorf("ring: vmp shape: a has %d columns, matrix expects %d", a.cols, mat.colsIn))
	}
	if dst.cols != mat.colsOut {
		panic(fmt.Errorf("ring: vmp shape: result has %d columns, matrix produces %d", dst.cols, mat.colsOut))
	}
	if dst.limbs != mat.limbs {
		panic(fmt.Errorf("ring: vmp shape: result has %d limbs, matrix has %d", dst.limbs, mat.limbs))
	}
	if a.limbs > mat.rows {
		panic(fmt.Errorf("ring: vmp shape: a has %d limbs, matrix only has %d rows", a.limbs, mat.rows))
	}
}
