package vox

import "testing"

func TestDefaultPaletteEntries(t *testing.T) {
	cases := []struct {
		index int
		want  uint32
	}{
		{0, 0x00000000},
		{1, 0xffffffff},
		{2, 0xffffccff},
		{255, 0x111111ff},
	}
	for _, tc := range cases {
		if got := DefaultPalette[tc.index]; got != tc.want {
			t.Errorf("DefaultPalette[%d] = %#08x, want %#08x", tc.index, got, tc.want)
		}
	}

	// All entries except the empty color are fully opaque.
	for i := 1; i < 256; i++ {
		if DefaultPalette[i]&0xff != 0xff {
			t.Errorf("DefaultPalette[%d] = %#08x, alpha is not 0xff", i, DefaultPalette[i])
		}
	}
}
