package vox

import (
	"encoding/binary"
	"errors"
	"testing"
)

func TestCursorReadUint32Endianness(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x01, 0x02, 0x03, 0x04}
	c := &cursor{data: data}

	le, err := c.readUint32(binary.LittleEndian)
	if err != nil {
		t.Fatalf("little-endian read: %v", err)
	}
	if le != 0x04030201 {
		t.Errorf("little-endian = %#08x, want 0x04030201", le)
	}

	be, err := c.readUint32(binary.BigEndian)
	if err != nil {
		t.Fatalf("big-endian read: %v", err)
	}
	if be != 0x01020304 {
		t.Errorf("big-endian = %#08x, want 0x01020304", be)
	}
}

func TestCursorReadTagNonASCII(t *testing.T) {
	// A stray high byte becomes its code point, not a replacement rune.
	c := &cursor{data: []byte{'M', 'A', 0xff, 'N'}}
	tag, err := c.readTag()
	if err != nil {
		t.Fatalf("read tag: %v", err)
	}
	if tag != "MAÿN" {
		t.Errorf("tag = %q, want %q", tag, "MAÿN")
	}
}

func TestCursorOffsetAdvances(t *testing.T) {
	c := &cursor{data: []byte{1, 2, 3, 4, 5, 6}}
	if _, err := c.readByte(); err != nil {
		t.Fatalf("read byte: %v", err)
	}
	if c.offset != 1 || c.remaining() != 5 {
		t.Errorf("offset = %d remaining = %d, want 1 and 5", c.offset, c.remaining())
	}
	if err := c.skip(2); err != nil {
		t.Fatalf("skip: %v", err)
	}
	b, err := c.readByte()
	if err != nil {
		t.Fatalf("read byte: %v", err)
	}
	if b != 4 {
		t.Errorf("byte = %d, want 4", b)
	}
}

func TestCursorTruncation(t *testing.T) {
	cases := []struct {
		name string
		read func(c *cursor) error
		data []byte
	}{
		{"byte from empty", func(c *cursor) error { _, err := c.readByte(); return err }, nil},
		{"tag from 3 bytes", func(c *cursor) error { _, err := c.readTag(); return err }, []byte{1, 2, 3}},
		{"u32 from 3 bytes", func(c *cursor) error { _, err := c.readUint32(binary.LittleEndian); return err }, []byte{1, 2, 3}},
		{"skip past end", func(c *cursor) error { return c.skip(4) }, []byte{1, 2, 3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := &cursor{data: tc.data}
			if err := tc.read(c); !errors.Is(err, ErrTruncated) {
				t.Fatalf("err = %v, want ErrTruncated", err)
			}
			if c.offset != 0 {
				t.Errorf("failed read moved the offset to %d", c.offset)
			}
		})
	}
}
