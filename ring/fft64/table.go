// Package fft64 implements the real-FFT-of-dimension-2N backend: the
// forward transform evaluates a coefficient polynomial at the N roots of
// X^N+1 (the odd 2N-th roots of unity), storing the result as split
// real/imaginary halves (the "reim" layout).
package fft64

import "math"

// Table holds the precomputed twiddle powers for one ring dimension N,
// allocated once and reused by every Forward/Inverse call against that N.
type Table struct {
	n   int
	fwd [][]complex128 // fwd[j][i] = zeta_j^i, zeta_j = exp(i*pi*(2j+1)/n)
	inv [][]complex128 // inv[j][i] = conj(zeta_j)^i
}

// NewTable builds the twiddle table for ring dimension n.
func NewTable(n int) *Table {
	t := &Table{n: n, fwd: make([][]complex128, n), inv: make([][]complex128, n)}
	for j := 0; j < n; j++ {
		angle := math.Pi * float64(2*j+1) / float64(n)
		zeta := complex(math.Cos(angle), math.Sin(angle))
		zetaInv := complex(math.Cos(angle), -math.Sin(angle))
		row := make([]complex128, n)
		rowInv := make([]complex128, n)
		p, pInv := complex(1, 0), complex(1, 0)
		for i := 0; i < n; i++ {
			row[i] = p
			rowInv[i] = pInv
			p *= zeta
			pInv *= zetaInv
		}
		t.fwd[j] = row
		t.inv[j] = rowInv
	}
	return t
}

// Forward evaluates src (read with the given step/offset into a logical
// length-N view) at each of the N twiddle points, writing the real and
// imaginary halves into dstReal/dstImag.
func (t *Table) Forward(dstReal, dstImag []float64, src []int64, step, offset int) {
	n := t.n
	for j := 0; j < n; j++ {
		row := t.fwd[j]
		var acc complex128
		idx := offset
		for i := 0; i < n; i++ {
			acc += complex(float64(src[idx]), 0) * row[i]
			idx += step
			if idx >= len(src) {
				idx -= len(src)
			}
		}
		dstReal[j] = real(acc)
		dstImag[j] = imag(acc)
	}
}

// Inverse evaluates the inverse transform of (srcReal, srcImag) into a
// length-N float64 buffer (pre-rounding); scaling by 1/N is applied here.
func (t *Table) Inverse(dst []float64, srcReal, srcImag []float64) {
	n := t.n
	invN := 1.0 / float64(n)
	for i := 0; i < n; i++ {
		var acc complex128
		for j := 0; j < n; j++ {
			acc += complex(srcReal[j], srcImag[j]) * t.inv[j][i]
		}
		dst[i] = real(acc) * invN
	}
}
