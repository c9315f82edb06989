// Package icons provides the fixed 16x16 bitmap icons used by the
// playback control strip, along with terminal glyph fallbacks for the
// development shell.
package icons

import (
	"image"
	"image/color"
)

const side = 16

// Icon is an immutable monochrome icon. The bitmap is an alpha mask;
// the renderer decides the foreground color at draw time.
type Icon struct {
	Name  string
	Glyph string
	mask  *image.Alpha
}

// Mask returns the icon's alpha mask.
func (i Icon) Mask() image.Image { return i.mask }

// Size returns the icon's pixel dimensions.
func (i Icon) Size() image.Point { return image.Pt(side, side) }

// fromRows builds an icon from 16 rows of bits, bit 15 being the
// leftmost column.
func fromRows(name, glyph string, rows [side]uint16) Icon {
	mask := image.NewAlpha(image.Rect(0, 0, side, side))
	for y, row := range rows {
		for x := 0; x < side; x++ {
			if row&(1<<uint(side-1-x)) != 0 {
				mask.SetAlpha(x, y, color.Alpha{A: 0xff})
			}
		}
	}
	return Icon{Name: name, Glyph: glyph, mask: mask}
}

var (
	// Stop is a filled square.
	Stop = fromRows("stop", "■", [side]uint16{
		0x0000, 0x0000, 0x0000,
		0x1FF8, 0x1FF8, 0x1FF8, 0x1FF8, 0x1FF8,
		0x1FF8, 0x1FF8, 0x1FF8, 0x1FF8, 0x1FF8,
		0x0000, 0x0000, 0x0000,
	})

	// Previous is a bar with a left-pointing triangle.
	Previous = fromRows("previous", "⏮", [side]uint16{
		0x0000, 0x0000, 0x0000,
		0x3018, 0x3078, 0x31F8, 0x37F8, 0x3FF8,
		0x3FF8, 0x37F8, 0x31F8, 0x3078, 0x3018,
		0x0000, 0x0000, 0x0000,
	})

	// Play is a right-pointing triangle.
	Play = fromRows("play", "⏵", [side]uint16{
		0x0000, 0x0000, 0x0000,
		0x0C00, 0x0F00, 0x0FC0, 0x0FF0, 0x0FFC,
		0x0FFC, 0x0FF0, 0x0FC0, 0x0F00, 0x0C00,
		0x0000, 0x0000, 0x0000,
	})

	// Pause is two vertical bars.
	Pause = fromRows("pause", "⏸", [side]uint16{
		0x0000, 0x0000, 0x0000,
		0x1E78, 0x1E78, 0x1E78, 0x1E78, 0x1E78,
		0x1E78, 0x1E78, 0x1E78, 0x1E78, 0x1E78,
		0x0000, 0x0000, 0x0000,
	})

	// Skip is a right-pointing triangle with a bar.
	Skip = fromRows("skip", "⏭", [side]uint16{
		0x0000, 0x0000, 0x0000,
		0x180C, 0x1E0C, 0x1F8C, 0x1FEC, 0x1FFC,
		0x1FFC, 0x1FEC, 0x1F8C, 0x1E0C, 0x180C,
		0x0000, 0x0000, 0x0000,
	})

	// Order is three horizontal bars, playlist order.
	Order = fromRows("order", "≡", [side]uint16{
		0x0000, 0x0000, 0x0000,
		0x3FFC, 0x3FFC, 0x0000, 0x0000, 0x3FFC,
		0x3FFC, 0x0000, 0x0000, 0x3FFC, 0x3FFC,
		0x0000, 0x0000, 0x0000,
	})

	// Random is two crossing paths with arrowheads.
	Random = fromRows("random", "⤨", [side]uint16{
		0x0000, 0x0000, 0x0000,
		0x000C, 0x701E, 0x1830, 0x0C60, 0x06C0,
		0x0380, 0x06C0, 0x0C60, 0x1830, 0x701E,
		0x000C, 0x0000, 0x0000,
	})

	// VolumeDown is a speaker with a minus sign.
	VolumeDown = fromRows("volume-down", "−", [side]uint16{
		0x0000, 0x0000, 0x0000,
		0x0300, 0x0700, 0x0F00, 0x3F00, 0x3F3C,
		0x3F3C, 0x3F00, 0x0F00, 0x0700, 0x0300,
		0x0000, 0x0000, 0x0000,
	})

	// VolumeUp is a speaker with a plus sign.
	VolumeUp = fromRows("volume-up", "+", [side]uint16{
		0x0000, 0x0000, 0x0000,
		0x0300, 0x0710, 0x0F10, 0x3F10, 0x3F7C,
		0x3F7C, 0x3F10, 0x0F10, 0x0710, 0x0300,
		0x0000, 0x0000, 0x0000,
	})
)
