package controls

import (
	"image"
	"image/draw"

	"github.com/ovaum/pocketradio/internal/icons"
)

// Instant performs a single action per activation and keeps no toggle
// state.
type Instant struct {
	base
	action func()
}

// NewInstant creates an instant control.
func NewInstant(icon icons.Icon, palette Palette, action func()) *Instant {
	return &Instant{
		base:   newBase(icon, palette),
		action: action,
	}
}

func (c *Instant) OnSelect() {
	c.action()
}

func (c *Instant) Reset() { c.OnBlur() }

func (c *Instant) Icon() icons.Icon { return c.icon }

func (c *Instant) Draw(dst draw.Image, at image.Point) {
	c.draw(dst, at, c.icon)
}

var _ Control = (*Instant)(nil)
