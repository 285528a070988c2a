package ring

// minAlign documents the alignment owned layout buffers are meant to carry
// (wide enough for the 4-lane reim blocks the FFT64 backend tiles VMP
// against). Go gives no portable way to request it from the allocator and
// this module never drops to assembly kernels that would need it enforced,
// so it is kept as documentation rather than an enforced invariant; the
// typed []int64/[]float64 backing slices are already naturally aligned to
// their element size, which is all the pure-Go kernels below rely on.
const minAlign = 64

func alignedBytes(n int) []byte {
	return make([]byte, n)
}
