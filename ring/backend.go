package ring

// Backend is the sealed trait surface every transform engine implements.
// ring itself never performs a transform or a VMP; it only defines the
// container shapes and routes every transform-domain operation through
// whichever Backend a Module was built with. This mirrors the teacher's
// Ring struct embedding a NumberTheoreticTransformer: the generic layer
// stays backend-agnostic, the concrete math lives one level down in
// ring/fft64 and ring/ntt120.
type Backend interface {
	// Name identifies the backend ("fft64.reference", "ntt120.accelerated", ...).
	Name() string

	// DftVecBytes and PreparedMatBytes report the backend-specific storage
	// width of a DftVec / PreparedMat of the given shape, for alloc/bytes_of.
	DftVecBytes(n, cols, limbs int) int
	PreparedMatBytes(n, rows, colsIn, colsOut, limbs int) int

	// Forward transforms one (col, limb) polynomial of src into the
	// matching slot of dst. step/offset select a sub-sampled/rotated view of
	// src (step=1, offset=0 is the plain transform), used by gadget
	// decomposition and by the convolution helper.
	Forward(n int, dst DftVec, dstCol, dstLimb int, src []int64, step, offset int)

	// Inverse accumulates (or overwrites, per add) the inverse transform of
	// one DftVec slot into the matching BigVec slot.
	Inverse(n int, dst BigVec, dstCol, dstLimb int, src DftVec, srcCol, srcLimb int)
	InverseAdd(n int, dst BigVec, dstCol, dstLimb int, src DftVec, srcCol, srcLimb int)

	// VMPPrepare forward-transforms and re-permutes src into dst's
	// VMP-friendly layout.
	VMPPrepare(n int, dst PreparedMat, src MatZnx, scratch *Scratch)

	// VMPApply computes dst = a . m; VMPApplyAdd accumulates into dst
	// instead, with limbOffset marking which output limbs the caller has
	// already initialized.
	VMPApply(n int, dst DftVec, a DftVec, m PreparedMat, scratch *Scratch)
	VMPApplyAdd(n int, dst DftVec, a DftVec, m PreparedMat, limbOffset int, scratch *Scratch)

	VMPApplyTmpBytes(n, rows, colsIn, colsOut, limbs int) int
	VMPPrepareTmpBytes(n, rows, colsIn, colsOut, limbs int) int
}

// Module owns the transform tables for a specific ring dimension N and a
// specific Backend; it is the method-receiver higher layers call every
// operation through. A Module is safe for concurrent read-only use: no
// method mutates Module state after NewModule.
type Module struct {
	n       int
	Backend Backend
}

// NewModule builds a Module for ring degree n routed through backend.
func NewModule(n int, backend Backend) *Module {
	assertPow2(n, "Module.n")
	return &Module{n: n, Backend: backend}
}

func (m *Module) N() int { return m.n }

func (m *Module) LogN() int {
	l := 0
	for v := m.n; v > 1; v >>= 1 {
		l++
	}
	return l
}

func (m *Module) CyclotomicOrder() int { return 2 * m.n }

// Forward transforms one (col, limb) polynomial into dst.
func (m *Module) Forward(dst DftVec, dstCol, dstLimb int, src CoeffVec, srcCol, srcLimb int) {
	m.Backend.Forward(m.n, dst, dstCol, dstLimb, src.At(srcCol, srcLimb), 1, 0)
}

// ForwardStrided is Forward's (step, offset) generalization, used to
// transform a sub-sampled or rotated view of src.
func (m *Module) ForwardStrided(dst DftVec, dstCol, dstLimb int, src []int64, step, offset int) {
	m.Backend.Forward(m.n, dst, dstCol, dstLimb, src, step, offset)
}

// Inverse inverse-transforms one DftVec slot into a BigVec slot.
func (m *Module) Inverse(dst BigVec, dstCol, dstLimb int, src DftVec, srcCol, srcLimb int) {
	m.Backend.Inverse(m.n, dst, dstCol, dstLimb, src, srcCol, srcLimb)
}

// InverseAdd accumulates the inverse transform instead of overwriting.
func (m *Module) InverseAdd(dst BigVec, dstCol, dstLimb int, src DftVec, srcCol, srcLimb int) {
	m.Backend.InverseAdd(m.n, dst, dstCol, dstLimb, src, srcCol, srcLimb)
}
