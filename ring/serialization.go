package ring

import (
	"fmt"
	"math"

	"github.com/nilspace/torusfhe/ring/buffer"
	"github.com/nilspace/torusfhe/ring/distribution"
)

// Header is the packed, little-endian, no-padding per-layout header: torus
// precision k, base2k, either a plain Rank (GLWE/keys) or the four GGLWE
// shape fields, an optional Distribution tag for secret-carrying layouts,
// and an optional 32-byte seed for seed-compressed layouts.
type Header struct {
	K, Base2k                       int
	GGLWE                           bool
	Rank                            int
	RankIn, RankOut, Dnum, Dsize    int
	Dist                            distribution.Distribution
	HasSeed                         bool
	Seed                            [SeedSize]byte
}

// WriteHeader serializes h onto w.
func WriteHeader(w buffer.Writer, h Header) (int64, error) {
	var n int64
	if c, err := buffer.WriteAsUint64(w, h.K); err != nil {
		return n + c, err
	} else {
		n += c
	}
	if c, err := buffer.WriteAsUint64(w, h.Base2k); err != nil {
		return n + c, err
	} else {
		n += c
	}
	if h.GGLWE {
		for _, v := range [...]int{h.RankIn, h.RankOut, h.Dnum, h.Dsize} {
			c, err := buffer.WriteAsUint64(w, v)
			n += c
			if err != nil {
				return n, err
			}
		}
	} else {
		c, err := buffer.WriteAsUint64(w, h.Rank)
		n += c
		if err != nil {
			return n, err
		}
	}
	if h.Dist != nil {
		word, err := encodeDistributionTag(h.Dist)
		if err != nil {
			return n, err
		}
		c, err := w.WriteUint64(word)
		n += int64(c)
		if err != nil {
			return n, err
		}
	}
	if h.HasSeed {
		c, err := w.Write(h.Seed[:])
		n += int64(c)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// ReadHeader deserializes a Header written by WriteHeader. gglwe, hasDist
// and hasSeed must match how the layout being read was written, since the
// header carries no self-describing flag for them (the calling layout type
// knows its own shape).
func ReadHeader(r buffer.Reader, gglwe, hasDist, hasSeed bool) (Header, int64, error) {
	var h Header
	var n int64
	readU64 := func() (int, error) {
		var v int
		c, err := buffer.ReadAsUint64(r, &v)
		n += c
		return v, err
	}
	var err error
	if h.K, err = readU64(); err != nil {
		return h, n, err
	}
	if h.Base2k, err = readU64(); err != nil {
		return h, n, err
	}
	h.GGLWE = gglwe
	if gglwe {
		if h.RankIn, err = readU64(); err != nil {
			return h, n, err
		}
		if h.RankOut, err = readU64(); err != nil {
			return h, n, err
		}
		if h.Dnum, err = readU64(); err != nil {
			return h, n, err
		}
		if h.Dsize, err = readU64(); err != nil {
			return h, n, err
		}
	} else {
		if h.Rank, err = readU64(); err != nil {
			return h, n, err
		}
	}
	if hasDist {
		word, err := r.ReadUint64()
		n += 8
		if err != nil {
			return h, n, err
		}
		h.Dist, err = decodeDistributionTag(word)
		if err != nil {
			return h, n, err
		}
	}
	h.HasSeed = hasSeed
	if hasSeed {
		c, err := r.Read(h.Seed[:])
		n += int64(c)
		if err != nil {
			return h, n, err
		}
	}
	return h, n, nil
}

// encodeDistributionTag packs a Distribution into the file format's one-word
// scheme: the type tag in the high byte, the remaining 56 bits carrying
// either a usize (fixed/block variants) or the top 56 bits of an f64
// (probabilistic variants, dropping the low 8 mantissa bits — a deliberate
// precision loss, see spec's design notes).
func encodeDistributionTag(d distribution.Distribution) (uint64, error) {
	tag := uint64(d.Type())
	var payload uint64
	switch t := d.(type) {
	case *distribution.Ternary:
		if t.Fixed {
			payload = uint64(t.H) & (1<<56 - 1)
		} else {
			payload = f64Top56(t.P)
		}
	case *distribution.Binary:
		switch {
		case t.Block:
			payload = uint64(t.BlockSize) & (1<<56 - 1)
		case t.Fixed:
			payload = uint64(t.H) & (1<<56 - 1)
		default:
			payload = f64Top56(t.P)
		}
	case *distribution.ZeroDist, *distribution.NoneDist:
		payload = 0
	default:
		return 0, fmt.Errorf("ring: %s has no wire Distribution tag", d.Type())
	}
	return tag<<56 | payload, nil
}

func decodeDistributionTag(word uint64) (distribution.Distribution, error) {
	tag := distribution.Type(word >> 56)
	payload := word & (1<<56 - 1)
	switch tag {
	case distribution.TernaryFixed:
		return &distribution.Ternary{Fixed: true, H: int(payload)}, nil
	case distribution.TernaryProb:
		return &distribution.Ternary{Fixed: false, P: f64FromTop56(payload)}, nil
	case distribution.BinaryFixed:
		return &distribution.Binary{Fixed: true, H: int(payload)}, nil
	case distribution.BinaryProb:
		return &distribution.Binary{Fixed: false, P: f64FromTop56(payload)}, nil
	case distribution.BinaryBlock:
		return &distribution.Binary{Block: true, BlockSize: int(payload)}, nil
	case distribution.Zero:
		return &distribution.ZeroDist{}, nil
	case distribution.None:
		return &distribution.NoneDist{}, nil
	default:
		return nil, fmt.Errorf("ring: invalid distribution tag %d", tag)
	}
}

func f64Top56(f float64) uint64     { return math.Float64bits(f) >> 8 }
func f64FromTop56(v uint64) float64 { return math.Float64frombits(v << 8) }

// WriteCoeffVec writes v's body: a u64 byte length followed by the raw
// coefficient data in limb-major, column-minor order.
func WriteCoeffVec(w buffer.Writer, v CoeffVec) (int64, error) {
	bodyLen := uint64(v.n) * uint64(v.cols) * uint64(v.limbs) * 8
	c, err := w.WriteUint64(bodyLen)
	n := int64(c)
	if err != nil {
		return n, err
	}
	for l := 0; l < v.limbs; l++ {
		for col := 0; col < v.cols; col++ {
			c, err := w.WriteInt64Slice(v.At(col, l))
			n += int64(c)
			if err != nil {
				return n, err
			}
		}
	}
	return n, nil
}

// ReadCoeffVec reads a body written by WriteCoeffVec into a freshly
// allocated CoeffVec of the given shape.
func ReadCoeffVec(r buffer.Reader, n, cols, limbs int) (CoeffVec, int64, error) {
	v := AllocCoeffVec(n, cols, limbs)
	bodyLen, err := r.ReadUint64()
	var total int64 = 8
	if err != nil {
		return v, total, err
	}
	want := uint64(n) * uint64(cols) * uint64(limbs) * 8
	if bodyLen != want {
		return v, total, fmt.Errorf("ring: coeffvec body length mismatch: file has %d bytes, shape wants %d", bodyLen, want)
	}
	for l := 0; l < limbs; l++ {
		for col := 0; col < cols; col++ {
			if err := r.ReadInt64Slice(v.At(col, l)); err != nil {
				return v, total, err
			}
			total += int64(n) * 8
		}
	}
	return v, total, nil
}

// ModuleHeader is the length-prefixed, non-gob encoding of a Module's
// parameters (N and backend identity) — round-tripping the concrete
// Backend itself is left to the caller, who knows which backend package's
// constructor to call for the recovered name, since ring cannot import
// fft64/ntt120 without an import cycle.
type ModuleHeader struct {
	N           int
	BackendName string
}

// MarshalBinary encodes m's parameters.
func (m *Module) MarshalBinary() ([]byte, error) {
	name := m.Backend.Name()
	buf := buffer.NewBufferSize(16 + len(name))
	if _, err := buffer.WriteAsUint64(buf, m.n); err != nil {
		return nil, err
	}
	if _, err := buf.WriteUint64(uint64(len(name))); err != nil {
		return nil, err
	}
	if _, err := buf.Write([]byte(name)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalModuleHeader decodes what MarshalBinary wrote.
func UnmarshalModuleHeader(data []byte) (ModuleHeader, error) {
	buf := buffer.NewBuffer(data)
	var h ModuleHeader
	if _, err := buffer.ReadAsUint64(buf, &h.N); err != nil {
		return h, err
	}
	l, err := buf.ReadUint64()
	if err != nil {
		return h, err
	}
	name := make([]byte, l)
	if _, err := buf.Read(name); err != nil {
		return h, err
	}
	h.BackendName = string(name)
	return h, nil
}
