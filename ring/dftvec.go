package ring

// DftVec is a transform-domain column vector: opaque raw storage whose
// layout is owned entirely by the Backend that produced it, tagged with
// that Backend's identity so it can never be fed to a different one.
type DftVec struct {
	n, cols, limbs int
	backend        Backend
	Data           []byte
}

// AllocDftVec allocates a DftVec of the given shape for backend b.
func AllocDftVec(b Backend, n, cols, limbs int) DftVec {
	assertPow2(n, "DftVec.n")
	return DftVec{n: n, cols: cols, limbs: limbs, backend: b, Data: alignedBytes(b.DftVecBytes(n, cols, limbs))}
}

func (v DftVec) N() int          { return v.n }
func (v DftVec) Cols() int       { return v.cols }
func (v DftVec) Limbs() int      { return v.limbs }
func (v DftVec) Backend() Backend { return v.backend }

// CheckBackend panics if v was not produced by backend b; every operation
// that takes a DftVec calls this first since mixing backends silently
// would produce meaningless results.
func (v DftVec) CheckBackend(b Backend) {
	if v.backend == nil || v.backend.Name() != b.Name() {
		panic(backendMismatch(v.backend, b))
	}
}

func backendMismatch(have, want Backend) error {
	haveName := "<nil>"
	if have != nil {
		haveName = have.Name()
	}
	return errBackendMismatch{have: haveName, want: want.Name()}
}

type errBackendMismatch struct{ have, want string }

func (e errBackendMismatch) Error() string {
	return "ring: backend mismatch: value belongs to " + e.have + ", operation routed through " + e.want
}

// Slot returns the byte range of the (col, limb) entry of v, given that
// backend's per-slot width slotBytes (DftVecBytes(n,1,1)). Backend
// packages use this to locate their own data inside the opaque buffer.
func (v DftVec) Slot(col, limb, slotBytes int) []byte {
	off := (col*v.limbs + limb) * slotBytes
	return v.Data[off : off+slotBytes]
}
