package controls

import (
	"image"
	"image/draw"

	"github.com/ovaum/pocketradio/internal/icons"
)

// Switch is a two-state control. Selecting it while unswitched calls
// activate; selecting it while switched calls deactivate. The switched
// flag only flips when the callback reports that the transition
// actually happened, so a declined action (e.g. play on an empty
// playlist) leaves the control unchanged.
//
// The callbacks are named by the action attempted in each state, not by
// the resulting on/off value.
type Switch struct {
	base
	switchedIcon icons.Icon
	switched     bool
	activate     func() bool
	deactivate   func() bool
}

// NewSwitch creates a switch control showing icon while unswitched and
// switchedIcon while switched.
func NewSwitch(icon, switchedIcon icons.Icon, palette Palette, activate, deactivate func() bool) *Switch {
	return &Switch{
		base:         newBase(icon, palette),
		switchedIcon: switchedIcon,
		activate:     activate,
		deactivate:   deactivate,
	}
}

func (c *Switch) OnSelect() {
	if c.switched {
		if c.deactivate() {
			c.switched = false
		}
	} else {
		if c.activate() {
			c.switched = true
		}
	}
}

// Reset blurs the control and clears the switched state.
func (c *Switch) Reset() {
	c.OnBlur()
	c.switched = false
}

// Switched reports whether the control is in its alternate state.
func (c *Switch) Switched() bool { return c.switched }

func (c *Switch) Icon() icons.Icon {
	if c.switched {
		return c.switchedIcon
	}
	return c.icon
}

func (c *Switch) Draw(dst draw.Image, at image.Point) {
	c.draw(dst, at, c.Icon())
}

var _ Control = (*Switch)(nil)
