package main

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"

	"github.com/jaunkst/vox-loader/vox"
)

func u32le(v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return b[:]
}

func buildChunk(tag string, content, children []byte) []byte {
	out := append([]byte(tag), u32le(uint32(len(content)))...)
	out = append(out, u32le(uint32(len(children)))...)
	out = append(out, content...)
	return append(out, children...)
}

// buildVoxStream assembles a small valid .vox stream: one SIZE chunk of
// 2x3x4 and one XYZI chunk holding two voxels.
func buildVoxStream() []byte {
	sizeContent := append(u32le(2), u32le(3)...)
	size := buildChunk("SIZE", append(sizeContent, u32le(4)...), nil)
	xyzi := buildChunk("XYZI", append(u32le(2), 1, 2, 3, 10, 4, 5, 6, 20), nil)

	stream := append([]byte(vox.Magic), u32le(150)...)
	return append(stream, buildChunk("MAIN", nil, append(size, xyzi...))...)
}

func checkTestModel(t *testing.T, model *vox.Model) {
	t.Helper()
	if model.Size != (vox.Size{X: 2, Y: 3, Z: 4}) {
		t.Errorf("size = %+v, want {2 3 4}", model.Size)
	}
	if model.VoxelCount() != 2 {
		t.Errorf("voxel count = %d, want 2", model.VoxelCount())
	}
}

func TestOpenVoxFilePlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.vox")
	if err := os.WriteFile(path, buildVoxStream(), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	model, err := OpenVoxFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	checkTestModel(t, model)
}

func TestOpenVoxFileGzip(t *testing.T) {
	var compressed bytes.Buffer
	gzipWriter := gzip.NewWriter(&compressed)
	if _, err := gzipWriter.Write(buildVoxStream()); err != nil {
		t.Fatalf("compress fixture: %v", err)
	}
	if err := gzipWriter.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}

	path := filepath.Join(t.TempDir(), "model.vox.gz")
	if err := os.WriteFile(path, compressed.Bytes(), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	model, err := OpenVoxFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	checkTestModel(t, model)
}

func TestOpenVoxFileZlib(t *testing.T) {
	var compressed bytes.Buffer
	zlibWriter := zlib.NewWriter(&compressed)
	if _, err := zlibWriter.Write(buildVoxStream()); err != nil {
		t.Fatalf("compress fixture: %v", err)
	}
	if err := zlibWriter.Close(); err != nil {
		t.Fatalf("close zlib: %v", err)
	}

	path := filepath.Join(t.TempDir(), "model.vox")
	if err := os.WriteFile(path, compressed.Bytes(), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	model, err := OpenVoxFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	checkTestModel(t, model)
}

func TestOpenVoxFileMissing(t *testing.T) {
	_, err := OpenVoxFile(filepath.Join(t.TempDir(), "nope.vox"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if !os.IsNotExist(err) {
		t.Errorf("err = %v, want a not-exist error", err)
	}
}
