package main

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/jaunkst/vox-loader/vox"
)

var ErrNotASnapshot = errors.New("snap: bad magic")
var ErrUnsupportedSnapshot = errors.New("snap: unsupported version")
var ErrInvalidSnapshot = errors.New("snap: invalid body")

// ReadSnapshot parses a VXSN stream written by WriteSnapshot back into a
// model. It exists for round-tripping and downstream consumers of the packed
// format; it is not a .vox decoder.
func ReadSnapshot(reader io.Reader) (*vox.Model, error) {
	var header struct {
		Magic   uint16
		Version uint8
	}
	if err := binary.Read(reader, binary.BigEndian, &header); err != nil {
		return nil, fmt.Errorf("could not read snapshot header: %w", err)
	}
	if header.Magic != snapHeader {
		return nil, ErrNotASnapshot
	}
	if header.Version != snapLatestVersion {
		return nil, ErrUnsupportedSnapshot
	}

	body, err := readZstdCompressed(reader)
	if err != nil {
		return nil, err
	}

	return parseSnapshotBody(bytes.NewReader(body))
}

func readZstdCompressed(reader io.Reader) ([]byte, error) {
	var lengths struct {
		Compressed   uint32
		Uncompressed uint32
	}
	if err := binary.Read(reader, binary.BigEndian, &lengths); err != nil {
		return nil, fmt.Errorf("could not read block lengths: %w", err)
	}

	compressed := make([]byte, lengths.Compressed)
	if _, err := io.ReadFull(reader, compressed); err != nil {
		return nil, fmt.Errorf("could not read compressed block: %w", err)
	}

	zstdReader, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer zstdReader.Close()

	body, err := zstdReader.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("could not decompress block: %w", err)
	}
	if len(body) != int(lengths.Uncompressed) {
		return nil, fmt.Errorf("%w: block is %d bytes, header declares %d", ErrInvalidSnapshot, len(body), lengths.Uncompressed)
	}
	return body, nil
}

func parseSnapshotBody(body *bytes.Reader) (*vox.Model, error) {
	model := &vox.Model{}

	if err := binary.Read(body, binary.BigEndian, &model.Size); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSnapshot, err.Error())
	}

	var layerCount uint32
	if err := binary.Read(body, binary.BigEndian, &layerCount); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSnapshot, err.Error())
	}

	for i := uint32(0); i < layerCount; i++ {
		layer, err := parseSnapshotLayer(body)
		if err != nil {
			return nil, err
		}
		model.Layers = append(model.Layers, layer)
	}

	if err := binary.Read(body, binary.BigEndian, &model.Palette); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSnapshot, err.Error())
	}
	return model, nil
}

func parseSnapshotLayer(body *bytes.Reader) ([]vox.Voxel, error) {
	var count uint32
	if err := binary.Read(body, binary.BigEndian, &count); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSnapshot, err.Error())
	}
	if int64(count)*4 > int64(body.Len()) {
		return nil, fmt.Errorf("%w: layer declares %d voxels past end of block", ErrInvalidSnapshot, count)
	}

	layer := make([]vox.Voxel, count)
	for i := range layer {
		var raw [4]byte
		if _, err := io.ReadFull(body, raw[:]); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidSnapshot, err.Error())
		}
		layer[i] = vox.Voxel{X: raw[0], Y: raw[1], Z: raw[2], C: raw[3]}
	}
	return layer, nil
}
