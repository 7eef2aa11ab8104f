package vox

import (
	"encoding/binary"
	"errors"
)

var ErrTruncated = errors.New("vox: unexpected end of input")
var ErrBadSignature = errors.New("vox: bad signature")
var ErrMalformedChunkTree = errors.New("vox: malformed chunk tree")

// cursor walks an in-memory buffer. The offset only ever moves forward; every
// read is bounds-checked and fails with ErrTruncated rather than running off
// the end of the buffer.
type cursor struct {
	data   []byte
	offset int
}

func (c *cursor) remaining() int {
	return len(c.data) - c.offset
}

func (c *cursor) take(n int) ([]byte, error) {
	if n < 0 || c.remaining() < n {
		return nil, ErrTruncated
	}
	b := c.data[c.offset : c.offset+n]
	c.offset += n
	return b, nil
}

func (c *cursor) skip(n int) error {
	_, err := c.take(n)
	return err
}

// readTag consumes four bytes and casts each to a rune. The format only ever
// emits ASCII tags, so no UTF-8 validation is applied; a stray high byte
// becomes its numeric code point.
func (c *cursor) readTag() (string, error) {
	b, err := c.take(4)
	if err != nil {
		return "", err
	}
	return string([]rune{rune(b[0]), rune(b[1]), rune(b[2]), rune(b[3])}), nil
}

func (c *cursor) readByte() (byte, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// readUint32 interprets the next four bytes with the given byte order. The
// order is an explicit parameter because the format mixes endianness:
// structural fields are little-endian, packed RGBA values big-endian.
func (c *cursor) readUint32(order binary.ByteOrder) (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return order.Uint32(b), nil
}
