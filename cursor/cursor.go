// Package cursor implements the mutable byte offset shared by every decoder
// in the tile-decode pipeline: unsigned/zigzag varint reads, big-endian
// int32 reads, and raw byte-slice views, all advancing a single movable
// position over an immutable backing buffer.
package cursor

import (
	"github.com/maplibre/mlt-go/endian"
	"github.com/maplibre/mlt-go/errs"
)

var bigEndian = endian.GetBigEndianEngine()

// Cursor is a movable byte offset over an immutable byte sequence. Read
// methods never advance past the end of buf; each reports an error instead
// of panicking on a truncated buffer. Set and Advance do not check bounds.
type Cursor struct {
	buf []byte
	pos int
}

// New wraps buf in a Cursor positioned at offset 0.
func New(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Pos returns the current byte offset.
func (c *Cursor) Pos() int { return c.pos }

// Len returns the length of the underlying buffer.
func (c *Cursor) Len() int { return len(c.buf) }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }

// Set moves the cursor to an absolute offset. It is the caller's
// responsibility to keep pos within [0, len(buf)]; used by FastPFOR's
// two-pass header decode to seek back into block bodies once the
// byte-container trailer has been read.
func (c *Cursor) Set(pos int) { c.pos = pos }

// Advance moves the cursor forward by n bytes without reading them.
func (c *Cursor) Advance(n int) { c.pos += n }

// Bytes returns the full backing buffer.
func (c *Cursor) Bytes() []byte { return c.buf }

// ReadByte reads and consumes a single byte.
func (c *Cursor) ReadByte() (byte, error) {
	if c.pos >= len(c.buf) {
		return 0, errs.OutOfRange(c.pos, len(c.buf))
	}
	b := c.buf[c.pos]
	c.pos++
	return b, nil
}

// ReadBytes returns a slice view of the next n bytes and advances past them.
// The returned slice aliases the backing buffer and must not be retained
// past the buffer's lifetime if the caller mutates it elsewhere.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if n < 0 || c.pos+n > len(c.buf) {
		return nil, errs.OutOfRange(c.pos+n, len(c.buf))
	}
	out := c.buf[c.pos : c.pos+n]
	c.pos += n
	return out, nil
}

// ReadInt32BE reads a big-endian 32-bit signed integer.
func (c *Cursor) ReadInt32BE() (int32, error) {
	if c.pos+4 > len(c.buf) {
		return 0, errs.OutOfRange(c.pos+4, len(c.buf))
	}
	v := int32(bigEndian.Uint32(c.buf[c.pos : c.pos+4])) //nolint:gosec
	c.pos += 4
	return v, nil
}

// ReadUvarint reads a 7-bits-per-byte unsigned varint with the continuation
// bit in the MSB, advancing the cursor by the number of bytes consumed.
func (c *Cursor) ReadUvarint() (uint64, error) {
	var value uint64
	var shift uint

	for {
		if c.pos >= len(c.buf) {
			return 0, errs.MalformedStreamf("truncated varint at offset %d", c.pos)
		}

		b := c.buf[c.pos]
		c.pos++

		if shift >= 64 {
			return 0, errs.MalformedStreamf("varint overflow at offset %d", c.pos)
		}

		value |= uint64(b&0x7f) << shift
		if b < 0x80 {
			return value, nil
		}
		shift += 7
	}
}

// ReadVarint reads a zigzag-encoded signed varint.
func (c *Cursor) ReadVarint() (int64, error) {
	u, err := c.ReadUvarint()
	if err != nil {
		return 0, err
	}
	return ZigZagDecode64(u), nil
}

// ZigZagEncode32 maps a signed 32-bit value to its zigzag-encoded unsigned
// representation: (n<<1) XOR (n>>31).
func ZigZagEncode32(n int32) uint32 {
	return uint32((n << 1) ^ (n >> 31)) //nolint:gosec
}

// ZigZagDecode32 reverses ZigZagEncode32.
func ZigZagDecode32(u uint32) int32 {
	return int32(u>>1) ^ -int32(u&1)
}

// ZigZagEncode64 maps a signed 64-bit value to its zigzag-encoded unsigned
// representation.
func ZigZagEncode64(n int64) uint64 {
	return uint64((n << 1) ^ (n >> 63)) //nolint:gosec
}

// ZigZagDecode64 reverses ZigZagEncode64.
func ZigZagDecode64(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1) //nolint:gosec
}
