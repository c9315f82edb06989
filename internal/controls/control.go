package controls

import (
	"image"
	"image/draw"

	"github.com/ovaum/pocketradio/internal/icons"
)

// Control is a focusable UI element driven by physical button events.
//
// Focus moves with OnFocus/OnBlur, OnSelect fires the control's action
// while it is focused, and Reset forces the control back to its idle
// appearance (clearing the switched state for switch controls).
type Control interface {
	OnFocus()
	OnBlur()
	OnSelect()
	Reset()
	Focused() bool

	// Rendering contract: visuals are fully determined by the current
	// selection state and the current icon.
	Icon() icons.Icon
	State() SelectionState
	Size() image.Point
	Draw(dst draw.Image, at image.Point)
}

// base carries the state shared by all control variants. Controls know
// nothing about groups; mutual exclusion is driven from the outside by
// Group.Select.
type base struct {
	icon    icons.Icon
	palette Palette
	state   SelectionState
}

func newBase(icon icons.Icon, palette Palette) base {
	return base{
		icon:    icon,
		palette: palette,
		state:   palette.Idle,
	}
}

func (b *base) OnFocus() { b.state = b.palette.Focused }

func (b *base) OnBlur() { b.state = b.palette.Idle }

func (b *base) Focused() bool { return b.state.Focused }

func (b *base) State() SelectionState { return b.state }

func (b *base) Size() image.Point { return b.icon.Size() }

// draw fills the control's footprint with the state background and
// composites the given icon mask in the state foreground.
func (b *base) draw(dst draw.Image, at image.Point, icon icons.Icon) {
	r := image.Rectangle{Min: at, Max: at.Add(icon.Size())}
	draw.Draw(dst, r, image.NewUniform(b.state.Background), image.Point{}, draw.Src)
	draw.DrawMask(dst, r, image.NewUniform(b.state.Foreground), image.Point{},
		icon.Mask(), icon.Mask().Bounds().Min, draw.Over)
}
