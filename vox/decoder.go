// Package vox decodes MagicaVoxel .vox files: a chunk-based binary container
// holding a model size, one or more voxel layers, and a 256-entry RGBA
// palette. Decoding is a single synchronous pass over an in-memory buffer.
package vox

import (
	"encoding/binary"
	"fmt"
	"os"
)

// Magic is the four-byte signature every .vox stream starts with.
const Magic = "VOX "

// chunkHeaderSize is the fixed per-chunk overhead: a 4-byte tag plus two
// u32 length fields. MAIN child accounting is in (contentLen + this) units.
const chunkHeaderSize = 12

// chunkHeader is transient; it exists only while descending the chunk tree
// and is never retained in the decoded model.
type chunkHeader struct {
	tag         string
	contentLen  uint32
	childrenLen uint32
}

// Decoder decodes MagicaVoxel .vox data. The zero value is ready to use.
// A Decoder holds no state between calls; decoding distinct buffers from
// distinct goroutines is safe.
type Decoder struct {
	// OnUnknownChunk, if set, is called once per unrecognized chunk tag with
	// the tag and its declared content length. The chunk payload is skipped
	// whether or not a callback is installed.
	OnUnknownChunk func(tag string, contentLen uint32)
}

// Decode parses a complete .vox byte stream with a default Decoder.
func Decode(data []byte) (*Model, error) {
	var d Decoder
	return d.Decode(data)
}

// DecodeFile reads the file at path fully into memory and decodes it.
func DecodeFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	model, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return model, nil
}

// Decode parses a complete .vox byte stream: the "VOX " signature, a version
// field, then one root MAIN chunk. It returns the decoded model or the first
// error encountered; no partial model is ever returned. Bytes past the end of
// the root chunk are ignored.
func (d *Decoder) Decode(data []byte) (*Model, error) {
	cur := &cursor{data: data}

	sig, err := cur.readTag()
	if err != nil {
		return nil, err
	}
	if sig != Magic {
		return nil, fmt.Errorf("%w: got %q, want %q", ErrBadSignature, sig, Magic)
	}

	model := &Model{}
	if model.Version, err = cur.readUint32(binary.LittleEndian); err != nil {
		return nil, err
	}

	state := &decodeState{cur: cur, model: model, onUnknown: d.OnUnknownChunk}
	if _, err = state.readChunk(); err != nil {
		return nil, err
	}

	if len(state.palette) == 256 {
		copy(model.Palette[:], state.palette)
	} else {
		model.Palette = DefaultPalette
	}
	return model, nil
}

// decodeState is the accumulator shared by one recursive descent: the cursor
// plus the three outputs the chunk tree populates.
type decodeState struct {
	cur       *cursor
	model     *Model
	palette   []uint32
	onUnknown func(tag string, contentLen uint32)
}

// readChunk decodes the chunk at the cursor position and every chunk nested
// inside it, leaving the cursor just past the whole subtree. The header is
// returned so the caller can account for bytes consumed when iterating
// siblings.
func (s *decodeState) readChunk() (chunkHeader, error) {
	var h chunkHeader
	var err error
	if h.tag, err = s.cur.readTag(); err != nil {
		return h, err
	}
	if h.contentLen, err = s.cur.readUint32(binary.LittleEndian); err != nil {
		return h, err
	}
	if h.childrenLen, err = s.cur.readUint32(binary.LittleEndian); err != nil {
		return h, err
	}

	switch {
	case h.tag == "MAIN" && h.childrenLen > 0:
		err = s.readChildren(h.childrenLen)
	case h.tag == "MAIN":
		// Empty root, nothing nested.
	case h.tag == "SIZE":
		err = s.readSize()
	case h.tag == "XYZI":
		err = s.readVoxels()
	case h.tag == "RGBA":
		err = s.readPalette(h.contentLen)
	default:
		if s.onUnknown != nil {
			s.onUnknown(h.tag, h.contentLen)
		}
		err = s.cur.skip(int(h.contentLen))
	}
	return h, err
}

// readChildren iterates the chunks nested under MAIN. Each child accounts for
// its declared content length plus the fixed chunk header; the declared total
// must be consumed exactly.
func (s *decodeState) readChildren(childrenLen uint32) error {
	remaining := int64(childrenLen)
	for remaining > 0 {
		child, err := s.readChunk()
		if err != nil {
			return err
		}
		remaining -= int64(child.contentLen) + chunkHeaderSize
		if remaining < 0 {
			return fmt.Errorf("%w: children overrun declared length by %d bytes", ErrMalformedChunkTree, -remaining)
		}
	}
	return nil
}

func (s *decodeState) readSize() error {
	var err error
	if s.model.Size.X, err = s.cur.readUint32(binary.LittleEndian); err != nil {
		return err
	}
	if s.model.Size.Y, err = s.cur.readUint32(binary.LittleEndian); err != nil {
		return err
	}
	s.model.Size.Z, err = s.cur.readUint32(binary.LittleEndian)
	return err
}

func (s *decodeState) readVoxels() error {
	count, err := s.cur.readUint32(binary.LittleEndian)
	if err != nil {
		return err
	}
	if int64(count)*4 > int64(s.cur.remaining()) {
		return ErrTruncated
	}

	layer := make([]Voxel, 0, count)
	for i := uint32(0); i < count; i++ {
		var v Voxel
		if v.X, err = s.cur.readByte(); err != nil {
			return err
		}
		if v.Y, err = s.cur.readByte(); err != nil {
			return err
		}
		if v.Z, err = s.cur.readByte(); err != nil {
			return err
		}
		if v.C, err = s.cur.readByte(); err != nil {
			return err
		}
		layer = append(layer, v)
	}
	s.model.Layers = append(s.model.Layers, layer)
	return nil
}

func (s *decodeState) readPalette(contentLen uint32) error {
	if contentLen != 256*4 {
		return fmt.Errorf("%w: RGBA content length %d, want %d", ErrMalformedChunkTree, contentLen, 256*4)
	}
	// Big-endian so the payload bytes land in R,G,B,A order in each value.
	for i := 0; i < 256; i++ {
		color, err := s.cur.readUint32(binary.BigEndian)
		if err != nil {
			return err
		}
		s.palette = append(s.palette, color)
	}
	return nil
}
