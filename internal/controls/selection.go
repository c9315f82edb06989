// Package controls implements the button-driven control model of the
// player: fire-once controls, on/off switch controls, and mutually
// exclusive control groups.
package controls

import "image/color"

// SelectionState holds the renderable state of a control: the color
// pair to draw with and the focus flag.
type SelectionState struct {
	Foreground color.Color
	Background color.Color
	Focused    bool
	// Selected is reserved for a future highlight state; nothing sets
	// it today.
	Selected bool
}

// Palette carries the two selection states every control can be in.
// Both values are built once at startup from the configured colors and
// shared by all controls.
type Palette struct {
	Idle    SelectionState
	Focused SelectionState
}

// NewPalette builds the control palette from the application colors.
func NewPalette(accent, accentDark, background color.Color) Palette {
	return Palette{
		Idle: SelectionState{
			Foreground: accentDark,
			Background: background,
		},
		Focused: SelectionState{
			Foreground: accent,
			Background: background,
			Focused:    true,
		},
	}
}
