package ring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilspace/torusfhe/ring"
	"github.com/nilspace/torusfhe/ring/buffer"
	"github.com/nilspace/torusfhe/ring/distribution"
)

// property 9: read(write(x)) == x for every layout and every distribution
// variant. Header covers the compact one-word Distribution tag (the
// secret-carrying variants); Gaussian and Uniform round-trip through the
// distribution package's own general byte encoding instead, since their
// parameter count does not fit the Header's 56-bit payload.
func TestHeaderRoundTripEveryHeaderDistribution(t *testing.T) {
	cases := []distribution.Distribution{
		&distribution.Ternary{Fixed: true, H: 64},
		&distribution.Ternary{Fixed: false, P: 0.5},
		&distribution.Binary{Fixed: true, H: 32},
		&distribution.Binary{Fixed: false, P: 0.25},
		&distribution.Binary{Block: true, BlockSize: 8},
		&distribution.ZeroDist{},
		&distribution.NoneDist{},
	}

	for _, d := range cases {
		h := ring.Header{K: 54, Base2k: 18, Rank: 2, Dist: d, HasSeed: true}
		h.Seed[0] = 0xAB

		buf := buffer.NewBufferSize(64)
		_, err := ring.WriteHeader(buf, h)
		require.NoError(t, err)

		got, _, err := ring.ReadHeader(buf, false, true, true)
		require.NoError(t, err)

		assert.Equal(t, h.K, got.K)
		assert.Equal(t, h.Base2k, got.Base2k)
		assert.Equal(t, h.Rank, got.Rank)
		assert.Equal(t, h.Seed, got.Seed)
		assert.True(t, d.Equals(got.Dist), "distribution %s round-trip mismatch: got %+v", d.Type(), got.Dist)
	}
}

func TestDistributionByteRoundTripGaussianAndUniform(t *testing.T) {
	cases := []distribution.Distribution{
		&distribution.Gaussian{Sigma: 3.2, Bound: 6},
		&distribution.UniformDist{},
	}
	for _, d := range cases {
		buf := make([]byte, 1+d.MarshalBinarySize())
		n, err := distribution.EncodeDist(d, buf)
		require.NoError(t, err)
		assert.Equal(t, len(buf), n)

		_, got, err := distribution.DecodeDist(buf)
		require.NoError(t, err)
		assert.True(t, d.Equals(got), "distribution %s round-trip mismatch", d.Type())
	}
}

func TestCoeffVecRoundTrip(t *testing.T) {
	const n, cols, limbs = 16, 2, 3
	v := ring.AllocCoeffVec(n, cols, limbs)
	for col := 0; col < cols; col++ {
		for l := 0; l < limbs; l++ {
			row := v.At(col, l)
			for i := range row {
				row[i] = int64(i*col - l*7)
			}
		}
	}

	buf := buffer.NewBufferSize(1024)
	_, err := ring.WriteCoeffVec(buf, v)
	require.NoError(t, err)

	got, _, err := ring.ReadCoeffVec(buf, n, cols, limbs)
	require.NoError(t, err)

	for col := 0; col < cols; col++ {
		for l := 0; l < limbs; l++ {
			assert.Equal(t, v.At(col, l), got.At(col, l), "col %d limb %d", col, l)
		}
	}
}
