// Package ring implements the residue-polynomial arithmetic substrate for
// the torus FHE engine: a limb-decomposed (base-2^k) representation of
// polynomials in Z[X]/(X^N+1), their big (extended-precision) and
// transform-domain counterparts, and the operation kernels that move
// between them (normalize, automorphism, forward/inverse transform, and
// the gadget-decomposition vector-matrix product).
//
// The package itself is backend-agnostic: it defines the container shapes
// (CoeffVec, BigVec, DftVec, MatZnx, PreparedMat), the scalar kernels that
// only ever touch plain int64 limbs, and the Backend interface that routes
// every transform-domain operation to a concrete engine. Sub-packages
// ring/fft64 and ring/ntt120 provide the two shipped engines.
package ring
