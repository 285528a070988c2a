package ntt120

import "unsafe"

// bytesToUint64 reinterprets a byte slice (sized as a whole number of
// uint64 words) as a []uint64 without copying.
func bytesToUint64(b []byte) []uint64 {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Slice((*uint64)(unsafe.Pointer(&b[0])), len(b)/8)
}
