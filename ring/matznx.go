package ring

// MatZnx is the coefficient-domain matrix that is the input to `prepare`:
// N*Rows*ColsIn*ColsOut signed 64-bit-limb polynomials, carrying the same
// limb-range invariant as CoeffVec once normalized.
type MatZnx struct {
	n, rows, colsIn, colsOut, limbs int
	// Polys[((row*colsIn+colIn)*colsOut+colOut)*limbs+limb] is the length-N
	// limb slice at that (row, colIn, colOut, limb) coordinate.
	Polys [][]int64
}

// AllocMatZnx returns a zero-initialized MatZnx of the given shape.
func AllocMatZnx(n, rows, colsIn, colsOut, limbs int) MatZnx {
	assertPow2(n, "MatZnx.n")
	m := MatZnx{n: n, rows: rows, colsIn: colsIn, colsOut: colsOut, limbs: limbs,
		Polys: make([][]int64, rows*colsIn*colsOut*limbs)}
	for i := range m.Polys {
		m.Polys[i] = make([]int64, n)
	}
	return m
}

func (m MatZnx) N() int       { return m.n }
func (m MatZnx) Rows() int    { return m.rows }
func (m MatZnx) ColsIn() int  { return m.colsIn }
func (m MatZnx) ColsOut() int { return m.colsOut }
func (m MatZnx) Limbs() int   { return m.limbs }

func (m MatZnx) index(row, colIn, colOut, limb int) int {
	return ((row*m.colsIn+colIn)*m.colsOut+colOut)*m.limbs + limb
}

// At returns the length-N limb slice at (row, colIn, colOut, limb).
func (m MatZnx) At(row, colIn, colOut, limb int) []int64 {
	return m.Polys[m.index(row, colIn, colOut, limb)]
}
