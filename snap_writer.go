package main

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/jaunkst/vox-loader/vox"
)

const snapHeader = 0xB0C5
const snapLatestVersion = 1

// WriteSnapshot writes a decoded model to writer in the compact VXSN layout:
// a fixed header followed by one zstd-compressed block holding the size, the
// voxel layers, and the full 256-entry palette. The model is not mutated.
func WriteSnapshot(model *vox.Model, writer io.Writer) error {
	zstdWriter, err := zstd.NewWriter(io.Discard)
	if err != nil {
		return err
	}
	defer zstdWriter.Close()
	snapWriter := &snapshotWriter{writer: writer, model: model, zstdWriter: zstdWriter}
	return snapWriter.writeSnapshot()
}

type snapshotWriter struct {
	writer     io.Writer
	model      *vox.Model
	zstdWriter *zstd.Encoder
}

func (w *snapshotWriter) writeSnapshot() (err error) {
	if err = w.writeHeader(); err != nil {
		return
	}
	return w.writeBody()
}

func (w *snapshotWriter) writeHeader() (err error) {
	var header struct {
		Magic   uint16
		Version uint8
	}

	header.Magic = snapHeader
	header.Version = snapLatestVersion

	return binary.Write(w.writer, binary.BigEndian, header)
}

func (w *snapshotWriter) writeBody() (err error) {
	var out bytes.Buffer

	if err = binary.Write(&out, binary.BigEndian, w.model.Size); err != nil {
		return
	}

	if err = binary.Write(&out, binary.BigEndian, uint32(len(w.model.Layers))); err != nil {
		return
	}

	for _, layer := range w.model.Layers {
		if err = w.writeLayer(layer, &out); err != nil {
			return
		}
	}

	if err = binary.Write(&out, binary.BigEndian, w.model.Palette); err != nil {
		return
	}

	return w.writeZstdCompressed(&out)
}

func (w *snapshotWriter) writeLayer(layer []vox.Voxel, out io.Writer) (err error) {
	if err = binary.Write(out, binary.BigEndian, uint32(len(layer))); err != nil {
		return
	}

	for _, voxel := range layer {
		if _, err = out.Write([]byte{voxel.X, voxel.Y, voxel.Z, voxel.C}); err != nil {
			return
		}
	}

	return
}

func (w *snapshotWriter) writeZstdCompressed(buf *bytes.Buffer) (err error) {
	uncompressedSize := buf.Len()

	var compressedOutput bytes.Buffer
	w.zstdWriter.Reset(&compressedOutput)
	if _, err = buf.WriteTo(w.zstdWriter); err != nil {
		return
	}
	if err = w.zstdWriter.Close(); err != nil {
		return
	}
	w.zstdWriter.Reset(io.Discard)

	if err = binary.Write(w.writer, binary.BigEndian, uint32(compressedOutput.Len())); err != nil {
		return
	}
	if err = binary.Write(w.writer, binary.BigEndian, uint32(uncompressedSize)); err != nil {
		return
	}
	_, err = compressedOutput.WriteTo(w.writer)
	return
}
