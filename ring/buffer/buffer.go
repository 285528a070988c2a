// Package buffer provides the minimal Writer/Reader surface used to
// serialize the file format described in spec.md section 6: little-endian,
// packed, no padding.
package buffer

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Writer is implemented by destinations that can be written to without an
// intermediate bufio.Writer allocation.
type Writer interface {
	io.Writer
	WriteUint32(uint32) (int, error)
	WriteUint64(uint64) (int, error)
	WriteUint64Slice([]uint64) (int, error)
	WriteInt64Slice([]int64) (int, error)
}

// Reader is implemented by sources that can be read from without an
// intermediate bufio.Reader allocation.
type Reader interface {
	io.Reader
	ReadUint32() (uint32, error)
	ReadUint64() (uint64, error)
	ReadUint64Slice([]uint64) error
	ReadInt64Slice([]int64) error
}

// Buffer is an in-memory Writer/Reader over a growable byte slice, the
// in-process counterpart to bytes.Buffer used when the destination is
// already a []byte (e.g. MarshalBinary) rather than an io.Writer.
type Buffer struct {
	buf []byte
}

// NewBuffer wraps buf for writing (appending) and reading (consuming from
// the front). A nil buf is valid and behaves like an empty one.
func NewBuffer(buf []byte) *Buffer {
	return &Buffer{buf: buf}
}

// NewBufferSize allocates a fresh zero-length Buffer with capacity n.
func NewBufferSize(n int) *Buffer {
	return &Buffer{buf: make([]byte, 0, n)}
}

// Bytes returns the buffer's current, unread content.
func (b *Buffer) Bytes() []byte { return b.buf }

func (b *Buffer) Write(p []byte) (int, error) {
	b.buf = append(b.buf, p...)
	return len(p), nil
}

func (b *Buffer) Read(p []byte) (int, error) {
	if len(b.buf) == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	n := copy(p, b.buf)
	b.buf = b.buf[n:]
	return n, nil
}

// WriteUint8 appends a single byte.
func (b *Buffer) WriteUint8(v uint8) (int, error) {
	b.buf = append(b.buf, v)
	return 1, nil
}

// ReadUint8 consumes and returns a single byte.
func (b *Buffer) ReadUint8() uint8 {
	v := b.buf[0]
	b.buf = b.buf[1:]
	return v
}

func (b *Buffer) WriteUint32(v uint32) (int, error) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return b.Write(tmp[:])
}

func (b *Buffer) ReadUint32() (uint32, error) {
	if len(b.buf) < 4 {
		return 0, fmt.Errorf("buffer: short read for uint32: have %d bytes", len(b.buf))
	}
	v := binary.LittleEndian.Uint32(b.buf)
	b.buf = b.buf[4:]
	return v, nil
}

func (b *Buffer) WriteUint64(v uint64) (int, error) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return b.Write(tmp[:])
}

func (b *Buffer) ReadUint64() (uint64, error) {
	if len(b.buf) < 8 {
		return 0, fmt.Errorf("buffer: short read for uint64: have %d bytes", len(b.buf))
	}
	v := binary.LittleEndian.Uint64(b.buf)
	b.buf = b.buf[8:]
	return v, nil
}

func (b *Buffer) WriteUint64Slice(s []uint64) (int, error) {
	n := 0
	for _, v := range s {
		m, err := b.WriteUint64(v)
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

func (b *Buffer) ReadUint64Slice(s []uint64) error {
	for i := range s {
		v, err := b.ReadUint64()
		if err != nil {
			return err
		}
		s[i] = v
	}
	return nil
}

func (b *Buffer) WriteInt64Slice(s []int64) (int, error) {
	n := 0
	for _, v := range s {
		m, err := b.WriteUint64(uint64(v))
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

func (b *Buffer) ReadInt64Slice(s []int64) error {
	for i := range s {
		v, err := b.ReadUint64()
		if err != nil {
			return err
		}
		s[i] = int64(v)
	}
	return nil
}

// WriteAsUint64 writes n, widened to a uint64, as 8 little-endian bytes.
// It mirrors the helper of the same name used throughout the core layouts
// for fields declared as Go `int` but serialized in a fixed-width form.
func WriteAsUint64(w io.Writer, n int) (int64, error) {
	if bw, ok := w.(Writer); ok {
		c, err := bw.WriteUint64(uint64(n))
		return int64(c), err
	}
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], uint64(n))
	c, err := w.Write(tmp[:])
	return int64(c), err
}

// ReadAsUint64 reads 8 little-endian bytes into *n.
func ReadAsUint64(r io.Reader, n *int) (int64, error) {
	if br, ok := r.(Reader); ok {
		v, err := br.ReadUint64()
		*n = int(v)
		if err != nil {
			return 0, err
		}
		return 8, nil
	}
	var tmp [8]byte
	c, err := io.ReadFull(r, tmp[:])
	if err != nil {
		return int64(c), err
	}
	*n = int(binary.LittleEndian.Uint64(tmp[:]))
	return int64(c), nil
}
