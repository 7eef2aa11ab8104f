package vox

// Voxel is one unit cube in a model layer: local coordinates (0-255) and a
// palette color index. Index 0 conventionally means empty/air.
type Voxel struct {
	X uint8
	Y uint8
	Z uint8
	C uint8
}

// Size is the declared dimensions of the voxel volume.
type Size struct {
	X uint32
	Y uint32
	Z uint32
}

// Model is the fully decoded contents of a .vox file. One layer is produced
// per XYZI chunk in the source stream, so a multi-part model carries several.
// Palette always holds 256 entries: the file's RGBA chunk verbatim, or
// DefaultPalette when the file supplies none. Voxel color indices are not
// range-checked against the palette; out-of-range values pass through.
type Model struct {
	Version uint32
	Size    Size
	Layers  [][]Voxel
	Palette [256]uint32
}

// VoxelCount returns the total number of voxels across all layers.
func (m *Model) VoxelCount() int {
	total := 0
	for _, layer := range m.Layers {
		total += len(layer)
	}
	return total
}
