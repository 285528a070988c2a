package ring

// PreparedMat is the VMP-friendly, backend-prepared counterpart of a
// MatZnx: row-major over (ColsIn, Rows), inner (ColsOut, Limbs), produced
// only through Module.Prepare and otherwise opaque. Like DftVec it carries
// a backend identity and cannot be mixed across backends.
type PreparedMat struct {
	n, rows, colsIn, colsOut, limbs int
	backend                         Backend
	Data                            []byte
}

// AllocPreparedMat allocates a PreparedMat of the given shape for backend b.
func AllocPreparedMat(b Backend, n, rows, colsIn, colsOut, limbs int) PreparedMat {
	assertPow2(n, "PreparedMat.n")
	return PreparedMat{
		n: n, rows: rows, colsIn: colsIn, colsOut: colsOut, limbs: limbs, backend: b,
		Data: alignedBytes(b.PreparedMatBytes(n, rows, colsIn, colsOut, limbs)),
	}
}

func (p PreparedMat) N() int          { return p.n }
func (p PreparedMat) Rows() int       { return p.rows }
func (p PreparedMat) ColsIn() int     { return p.colsIn }
func (p PreparedMat) ColsOut() int    { return p.colsOut }
func (p PreparedMat) Limbs() int      { return p.limbs }
func (p PreparedMat) Backend() Backend { return p.backend }

func (p PreparedMat) CheckBackend(b Backend) {
	if p.backend == nil || p.backend.Name() != b.Name() {
		panic(backendMismatch(p.backend, b))
	}
}

// Prepare forward-transforms and re-permutes src into dst's VMP-friendly
// layout, via the Module's Backend. dst must have been allocated for the
// same backend and a matching shape.
func (m *Module) Prepare(dst PreparedMat, src MatZnx, scratch *Scratch) {
	dst.CheckBackend(m.Backend)
	m.Backend.VMPPrepare(m.n, dst, src, scratch)
}

// PrepareTmpBytes reports the scratch Prepare needs for the given shape.
func (m *Module) PrepareTmpBytes(rows, colsIn, colsOut, limbs int) int {
	return m.Backend.VMPPrepareTmpBytes(m.n, rows, colsIn, colsOut, limbs)
}
