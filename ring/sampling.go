package ring

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
)

// SeedSize is the width of a Source's seed and of a branch's replay seed,
// matching the file format's 32-byte seed field for compressed layouts.
const SeedSize = 32

// Source is a seeded, branchable entropy source. Branch derives an
// independent child stream and returns its seed, so a seed-compressed
// ciphertext's mask column can be reconstructed later by replaying the
// branch rather than storing N field elements.
type Source struct {
	seed   [SeedSize]byte
	stream io.Reader
}

// NewSource builds a blake2b-XOF-backed Source keyed by seed.
func NewSource(seed [SeedSize]byte) *Source {
	xof, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, seed[:])
	if err != nil {
		panic(fmt.Errorf("ring: blake2b xof init: %w", err))
	}
	return &Source{seed: seed, stream: xof}
}

// NewBLAKE3Source builds an equivalent Source backed by blake3's extendable
// output instead of blake2b's XOF, for callers that want a faster branch
// hash on the seed-compressed ciphertext path.
func NewBLAKE3Source(seed [SeedSize]byte) *Source {
	h := blake3.New()
	h.Write(seed[:])
	return &Source{seed: seed, stream: h.Digest()}
}

// NewRandomSource seeds a Source from the operating system's CSPRNG.
func NewRandomSource() *Source {
	var seed [SeedSize]byte
	if _, err := rand.Read(seed[:]); err != nil {
		panic(fmt.Errorf("ring: reading random seed: %w", err))
	}
	return NewSource(seed)
}

// Seed returns the seed this Source was constructed from.
func (s *Source) Seed() [SeedSize]byte { return s.seed }

// Read implements io.Reader over the underlying keystream.
func (s *Source) Read(p []byte) (int, error) { return s.stream.Read(p) }

// Branch derives an independent child Source keyed off this one and label,
// returning both the child and its 32-byte seed (the value a caller persists
// for later replay via NewSource).
func (s *Source) Branch(label string) (*Source, [SeedSize]byte) {
	h, err := blake2b.New256(s.seed[:])
	if err != nil {
		panic(fmt.Errorf("ring: blake2b branch init: %w", err))
	}
	h.Write([]byte(label))
	var seed [SeedSize]byte
	copy(seed[:], h.Sum(nil))
	return NewSource(seed), seed
}

func (s *Source) nextUint64() uint64 {
	var buf [8]byte
	if _, err := s.Read(buf[:]); err != nil {
		panic(fmt.Errorf("ring: source read: %w", err))
	}
	return binary.LittleEndian.Uint64(buf[:])
}

func (s *Source) nextFloat64() float64 {
	// top 53 bits give a uniform float64 in [0, 1).
	return float64(s.nextUint64()>>11) / (1 << 53)
}

// UniformFill draws every limb of column col independently and uniformly
// from the balanced range [-2^(k-1), 2^(k-1)).
func UniformFill(dst CoeffVec, col int, k Base2k, src *Source) {
	shift := k.modulusShift()
	mask := uint64(1)<<shift - 1
	half := int64(1) << (shift - 1)
	for l := 0; l < dst.limbs; l++ {
		d := dst.At(col, l)
		for i := range d {
			v := src.nextUint64() & mask
			d[i] = int64(v) - half
		}
	}
}

// DecompressUniform reconstructs a seed-compressed uniform column by
// replaying the branch that produced it; the caller must pass the same
// Base2k it was originally filled with, since the sampling kernel's
// byte-consumption order (and thus the reconstructed values) depends on it.
func DecompressUniform(dst CoeffVec, col int, k Base2k, seed [SeedSize]byte) {
	UniformFill(dst, col, k, NewSource(seed))
}

// GaussianFill samples a centered discrete Gaussian of standard deviation
// sigma, rejected outside +-bound*sigma, into the single limb that carries
// the target noise precision targetK (limb index ceil(targetK/k)-1),
// pre-scaled by 2^((limb+1)*k - targetK) so its magnitude lands at the
// right place in the digit chain.
func GaussianFill(dst CoeffVec, col int, k Base2k, targetK int, sigma, bound float64, src *Source) {
	shift := int(k.modulusShift())
	limb := (targetK+shift-1)/shift - 1
	if limb < 0 || limb >= dst.limbs {
		panic(fmt.Errorf("ring: gaussian target precision %d does not land within %d limbs of base 2^%d", targetK, dst.limbs, shift))
	}
	scaleExp := uint((limb+1)*shift - targetK)
	d := dst.At(col, limb)
	for i := range d {
		x := sampleDiscreteGaussian(src, sigma, bound)
		d[i] = x << scaleExp
	}
}

func sampleDiscreteGaussian(src *Source, sigma, bound float64) int64 {
	b := sigma * bound
	for {
		u1 := src.nextFloat64()
		if u1 < 1e-300 {
			u1 = 1e-300
		}
		u2 := src.nextFloat64()
		r := math.Sqrt(-2 * math.Log(u1))
		x := sigma * r * math.Cos(2*math.Pi*u2)
		if x >= -b && x <= b {
			return int64(math.Round(x))
		}
	}
}
