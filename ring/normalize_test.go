package ring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nilspace/torusfhe/ring"
)

// property 2: normalizing an already-normalized CoeffVec is a no-op.
func TestNormalizeIdempotence(t *testing.T) {
	const n = 16
	const base2k = ring.Base2k(12)
	const limbs = 4

	v := ring.AllocCoeffVec(n, 1, limbs)
	for l := 0; l < limbs; l++ {
		row := v.At(0, l)
		for i := range row {
			row[i] = int64((i*7+l*3)%4096) - 2048
		}
	}
	ring.NormalizeInplace(v, 0, base2k)
	before := v.CopyNew()

	ring.NormalizeInplace(v, 0, base2k)
	for l := 0; l < limbs; l++ {
		assert.Equal(t, before.At(0, l), v.At(0, l), "limb %d changed on re-normalize", l)
	}
}

// property 3: every limb of a normalized CoeffVec lies in (-2^(k-1), 2^(k-1)],
// even when the input was built from out-of-range raw digits (S2-style
// overflow at every limb, not just the bottom one).
func TestNormalizeRange(t *testing.T) {
	const n = 16
	const base2k = ring.Base2k(12)
	const limbs = 3
	half := int64(1) << (base2k - 1)

	v := ring.AllocCoeffVec(n, 1, limbs)
	for l := 0; l < limbs; l++ {
		row := v.At(0, l)
		for i := range row {
			// deliberately out of balanced range, including at limb 0 (the
			// most significant limb), to exercise FinalStep's own reduction.
			row[i] = half + int64(i) + 1
		}
	}
	ring.NormalizeInplace(v, 0, base2k)

	for l := 0; l < limbs; l++ {
		for i, d := range v.At(0, l) {
			assert.Truef(t, d > -half && d <= half, "limb %d index %d = %d out of range", l, i, d)
		}
	}
}
