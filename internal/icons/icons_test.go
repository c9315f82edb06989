package icons

import (
	"image"
	"testing"
)

func TestIcons_HaveFixedSize(t *testing.T) {
	all := []Icon{Stop, Previous, Play, Pause, Skip, Order, Random, VolumeDown, VolumeUp}
	for _, ic := range all {
		if ic.Size() != image.Pt(16, 16) {
			t.Errorf("%s: size = %v, want 16x16", ic.Name, ic.Size())
		}
		if ic.Mask().Bounds() != image.Rect(0, 0, 16, 16) {
			t.Errorf("%s: mask bounds = %v", ic.Name, ic.Mask().Bounds())
		}
	}
}

func TestIcons_MasksNotEmpty(t *testing.T) {
	all := []Icon{Stop, Previous, Play, Pause, Skip, Order, Random, VolumeDown, VolumeUp}
	for _, ic := range all {
		mask := ic.Mask()
		set := 0
		for y := 0; y < 16; y++ {
			for x := 0; x < 16; x++ {
				_, _, _, a := mask.At(x, y).RGBA()
				if a > 0 {
					set++
				}
			}
		}
		if set == 0 {
			t.Errorf("%s: mask has no set pixels", ic.Name)
		}
	}
}

func TestIcons_GlyphsPresent(t *testing.T) {
	all := []Icon{Stop, Previous, Play, Pause, Skip, Order, Random, VolumeDown, VolumeUp}
	for _, ic := range all {
		if ic.Glyph == "" {
			t.Errorf("%s: empty glyph", ic.Name)
		}
		if ic.Name == "" {
			t.Error("icon with empty name")
		}
	}
}
