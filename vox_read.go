package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"

	"github.com/jaunkst/vox-loader/vox"
)

// OpenVoxFile reads and decodes a .vox file. Files wrapped in a gzip or zlib
// stream are decompressed transparently; the wrapping is detected from the
// leading bytes, not the file extension.
func OpenVoxFile(path string) (*vox.Model, error) {
	return openVoxFile(path, nil)
}

func openVoxFile(path string, onUnknown func(tag string, contentLen uint32)) (*vox.Model, error) {
	data, err := readVoxData(path)
	if err != nil {
		return nil, err
	}

	decoder := vox.Decoder{OnUnknownChunk: onUnknown}
	model, err := decoder.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", path, err)
	}
	return model, nil
}

func readVoxData(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch {
	case len(raw) >= 2 && raw[0] == 0x1f && raw[1] == 0x8b:
		gzipReader, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("could not open gzip stream in %s: %w", path, err)
		}
		defer gzipReader.Close()
		return io.ReadAll(gzipReader)
	case len(raw) >= 1 && raw[0] == 0x78:
		zlibReader, err := zlib.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("could not open zlib stream in %s: %w", path, err)
		}
		defer zlibReader.Close()
		return io.ReadAll(zlibReader)
	default:
		return raw, nil
	}
}
