package fft64

import "unsafe"

// bytesToFloat64 reinterprets a byte slice (sized as a whole number of
// float64 words) as a []float64 without copying, the same zero-copy
// reinterpretation ring.Scratch's Take*Slice helpers use.
func bytesToFloat64(b []byte) []float64 {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Slice((*float64)(unsafe.Pointer(&b[0])), len(b)/8)
}
