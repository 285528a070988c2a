// Package distribution implements definitions for the sampling distributions
// used to fill coefficient-domain polynomial vectors.
package distribution

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ALTree/bigfloat"
)

// Type identifies a distribution kind in its one-byte wire tag.
type Type uint8

// The wire tags match the file-format Distribution tag byte: the low tags
// are reserved for secret-carrying layouts (Ternary/Binary/Zero/None), the
// high tags for the two sampling-only distributions used to fill masks and
// error terms.
const (
	TernaryFixed Type = iota
	TernaryProb
	BinaryFixed
	BinaryProb
	BinaryBlock
	Zero
	None
	Uniform
	DiscreteGaussian
)

var typeToString = [...]string{
	"TernaryFixed", "TernaryProb", "BinaryFixed", "BinaryProb", "BinaryBlock",
	"Zero", "None", "Uniform", "DiscreteGaussian",
}

func (t Type) String() string {
	if int(t) >= len(typeToString) {
		return "Unknown"
	}
	return typeToString[int(t)]
}

// Distribution is the interface implemented by every sampling distribution.
type Distribution interface {
	Type() Type
	// StandardDeviation returns the distribution's standard deviation for a
	// ring of the given log-degree.
	StandardDeviation(logN int) float64
	// Bounds returns the symmetric hard bound coefficients are rejected
	// outside of.
	Bounds() [2]float64
	Equals(Distribution) bool
	CopyNew() Distribution

	// MarshalBinarySize is the number of payload bytes EncodeDist writes,
	// not counting the one-byte Type tag that precedes it on the wire.
	MarshalBinarySize() int
	EncodeDist(data []byte) (ptr int, err error)
	DecodeDist(data []byte) (ptr int, err error)
}

// EncodeDist writes the one-byte Type tag followed by X's encoded payload.
func EncodeDist(X Distribution, data []byte) (ptr int, err error) {
	if len(data) < 1+X.MarshalBinarySize() {
		return 0, fmt.Errorf("buffer too small for encoding distribution: have %d, need %d", len(data), 1+X.MarshalBinarySize())
	}
	data[0] = byte(X.Type())
	ptr, err = X.EncodeDist(data[1:])
	return ptr + 1, err
}

// DecodeDist reads a tagged distribution from data.
func DecodeDist(data []byte) (ptr int, X Distribution, err error) {
	if len(data) == 0 {
		return 0, nil, fmt.Errorf("distribution data must have length >= 1")
	}
	switch Type(data[0]) {
	case TernaryFixed, TernaryProb:
		X = &Ternary{}
	case BinaryFixed, BinaryProb, BinaryBlock:
		X = &Binary{}
	case Zero:
		X = &ZeroDist{}
	case None:
		X = &NoneDist{}
	case Uniform:
		X = &UniformDist{}
	case DiscreteGaussian:
		X = &Gaussian{}
	default:
		return 0, nil, fmt.Errorf("invalid distribution type tag: %d", data[0])
	}
	ptr, err = X.DecodeDist(data[1:])
	return ptr + 1, X, err
}

// Gaussian is a discrete, centered Gaussian distribution with standard
// deviation Sigma, rejected outside of +/-Bound standard deviations.
type Gaussian struct {
	Sigma float64
	Bound float64
}

func (d *Gaussian) Type() Type                        { return DiscreteGaussian }
func (d *Gaussian) StandardDeviation(logN int) float64 { return d.Sigma }
func (d *Gaussian) Bounds() [2]float64                 { return [2]float64{-d.Sigma * d.Bound, d.Sigma * d.Bound} }
func (d *Gaussian) CopyNew() Distribution              { return &Gaussian{d.Sigma, d.Bound} }

// Density approximates, using bigfloat for the sub-ULP tail term, the
// fraction of samples that fall within the bound (used by callers that want
// to budget rejections ahead of time).
func (d *Gaussian) Density() float64 {
	tail := bigfloat.Erfc(bigfloat.BigFloat(d.Bound / math.Sqrt2))
	f, _ := tail.Float64()
	return 1 - f
}

func (d *Gaussian) Equals(other Distribution) bool {
	o, ok := other.(*Gaussian)
	return ok && *d == *o
}

func (d *Gaussian) MarshalBinarySize() int { return 16 }

func (d *Gaussian) EncodeDist(data []byte) (ptr int, err error) {
	if len(data) < d.MarshalBinarySize() {
		return 0, fmt.Errorf("buffer too small: have %d, need %d", len(data), d.MarshalBinarySize())
	}
	binary.LittleEndian.PutUint64(data[0:], math.Float64bits(d.Sigma))
	binary.LittleEndian.PutUint64(data[8:], math.Float64bits(d.Bound))
	return 16, nil
}

func (d *Gaussian) DecodeDist(data []byte) (ptr int, err error) {
	if len(data) < d.MarshalBinarySize() {
		return 0, fmt.Errorf("buffer too small: have %d, need %d", len(data), d.MarshalBinarySize())
	}
	d.Sigma = math.Float64frombits(binary.LittleEndian.Uint64(data[0:]))
	d.Bound = math.Float64frombits(binary.LittleEndian.Uint64(data[8:]))
	return 16, nil
}

// Ternary draws each coefficient from {-1, 0, 1} with either a fixed
// Hamming weight H (TernaryFixed) or independently with probability P of a
// nonzero coefficient (TernaryProb).
type Ternary struct {
	// Fixed is true when H (a fixed Hamming weight) drives the sampler,
	// false when P (an independent nonzero probability) does.
	Fixed bool
	H     int
	P     float64
}

func (d *Ternary) Type() Type {
	if d.Fixed {
		return TernaryFixed
	}
	return TernaryProb
}

func (d *Ternary) StandardDeviation(logN int) float64 {
	if d.Fixed {
		return math.Sqrt(float64(d.H) / math.Exp2(float64(logN)))
	}
	return math.Sqrt(d.P)
}

func (d *Ternary) Bounds() [2]float64 { return [2]float64{-1, 1} }

func (d *Ternary) Equals(other Distribution) bool {
	o, ok := other.(*Ternary)
	return ok && *d == *o
}

func (d *Ternary) CopyNew() Distribution { return &Ternary{d.Fixed, d.H, d.P} }

func (d *Ternary) MarshalBinarySize() int { return 16 }

func (d *Ternary) EncodeDist(data []byte) (ptr int, err error) {
	if len(data) < d.MarshalBinarySize() {
		return 0, fmt.Errorf("buffer too small: have %d, need %d", len(data), d.MarshalBinarySize())
	}
	binary.LittleEndian.PutUint64(data[0:], uint64(d.H))
	binary.LittleEndian.PutUint64(data[8:], math.Float64bits(d.P))
	return 16, nil
}

func (d *Ternary) DecodeDist(data []byte) (ptr int, err error) {
	if len(data) < d.MarshalBinarySize() {
		return 0, fmt.Errorf("buffer too small: have %d, need %d", len(data), d.MarshalBinarySize())
	}
	d.H = int(binary.LittleEndian.Uint64(data[0:]))
	d.P = math.Float64frombits(binary.LittleEndian.Uint64(data[8:]))
	d.Fixed = d.P == 0
	return 16, nil
}

// Binary draws each coefficient from {0, 1}, optionally in fixed-size
// blocks (BinaryBlock groups BlockSize consecutive coefficients so that
// exactly one of them is nonzero).
type Binary struct {
	Fixed     bool
	Block     bool
	H         int
	P         float64
	BlockSize int
}

func (d *Binary) Type() Type {
	switch {
	case d.Block:
		return BinaryBlock
	case d.Fixed:
		return BinaryFixed
	default:
		return BinaryProb
	}
}

func (d *Binary) StandardDeviation(logN int) float64 {
	switch {
	case d.Block:
		return math.Sqrt(1.0 / float64(d.BlockSize))
	case d.Fixed:
		return math.Sqrt(float64(d.H) / math.Exp2(float64(logN)))
	default:
		return math.Sqrt(d.P * (1 - d.P))
	}
}

func (d *Binary) Bounds() [2]float64 { return [2]float64{0, 1} }

func (d *Binary) Equals(other Distribution) bool {
	o, ok := other.(*Binary)
	return ok && *d == *o
}

func (d *Binary) CopyNew() Distribution {
	return &Binary{d.Fixed, d.Block, d.H, d.P, d.BlockSize}
}

func (d *Binary) MarshalBinarySize() int { return 24 }

func (d *Binary) EncodeDist(data []byte) (ptr int, err error) {
	if len(data) < d.MarshalBinarySize() {
		return 0, fmt.Errorf("buffer too small: have %d, need %d", len(data), d.MarshalBinarySize())
	}
	binary.LittleEndian.PutUint64(data[0:], uint64(d.H))
	binary.LittleEndian.PutUint64(data[8:], math.Float64bits(d.P))
	binary.LittleEndian.PutUint64(data[16:], uint64(d.BlockSize))
	return 24, nil
}

func (d *Binary) DecodeDist(data []byte) (ptr int, err error) {
	if len(data) < d.MarshalBinarySize() {
		return 0, fmt.Errorf("buffer too small: have %d, need %d", len(data), d.MarshalBinarySize())
	}
	d.H = int(binary.LittleEndian.Uint64(data[0:]))
	d.P = math.Float64frombits(binary.LittleEndian.Uint64(data[8:]))
	d.BlockSize = int(binary.LittleEndian.Uint64(data[16:]))
	d.Block = d.BlockSize > 0
	d.Fixed = !d.Block && d.H > 0
	return 24, nil
}

// ZeroDist is the all-zero distribution (used for public, noiseless slots).
type ZeroDist struct{}

func (d *ZeroDist) Type() Type                          { return Zero }
func (d *ZeroDist) StandardDeviation(logN int) float64  { return 0 }
func (d *ZeroDist) Bounds() [2]float64                  { return [2]float64{0, 0} }
func (d *ZeroDist) Equals(other Distribution) bool      { _, ok := other.(*ZeroDist); return ok }
func (d *ZeroDist) CopyNew() Distribution               { return &ZeroDist{} }
func (d *ZeroDist) MarshalBinarySize() int              { return 0 }
func (d *ZeroDist) EncodeDist(data []byte) (int, error) { return 0, nil }
func (d *ZeroDist) DecodeDist(data []byte) (int, error) { return 0, nil }

// NoneDist marks a layout that carries no Distribution at all (e.g. a
// plaintext, or a key material slot that never held sampled noise).
type NoneDist struct{}

func (d *NoneDist) Type() Type                          { return None }
func (d *NoneDist) StandardDeviation(logN int) float64  { return 0 }
func (d *NoneDist) Bounds() [2]float64                  { return [2]float64{0, 0} }
func (d *NoneDist) Equals(other Distribution) bool      { _, ok := other.(*NoneDist); return ok }
func (d *NoneDist) CopyNew() Distribution               { return &NoneDist{} }
func (d *NoneDist) MarshalBinarySize() int              { return 0 }
func (d *NoneDist) EncodeDist(data []byte) (int, error) { return 0, nil }
func (d *NoneDist) DecodeDist(data []byte) (int, error) { return 0, nil }

// UniformDist draws every limb independently and uniformly from its full
// base-2^k balanced range.
type UniformDist struct{}

func (d *UniformDist) Type() Type                          { return Uniform }
func (d *UniformDist) StandardDeviation(logN int) float64  { return math.Exp2(64) / math.Sqrt(12.0) }
func (d *UniformDist) Bounds() [2]float64                  { return [2]float64{-math.MaxInt64, math.MaxInt64} }
func (d *UniformDist) Equals(other Distribution) bool      { _, ok := other.(*UniformDist); return ok }
func (d *UniformDist) CopyNew() Distribution               { return &UniformDist{} }
func (d *UniformDist) MarshalBinarySize() int              { return 0 }
func (d *UniformDist) EncodeDist(data []byte) (int, error) { return 0, nil }
func (d *UniformDist) DecodeDist(data []byte) (int, error) { return 0, nil }
