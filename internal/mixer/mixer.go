// Package mixer adjusts the hardware output volume through the ALSA
// userspace mixer.
package mixer

import (
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
)

var (
	// ErrNoControl reports that no supported mixer control answered.
	ErrNoControl = errors.New("no supported mixer control found")
	// ErrOutOfRange reports a volume outside 0-100.
	ErrOutOfRange = errors.New("volume out of range")
)

// Mixer reads and writes the output volume as a percentage 0-100.
type Mixer interface {
	Get() (int, error)
	Set(volume int) error
}

// defaultControls are tried in order; hardware codecs differ in which
// one they expose.
var defaultControls = []string{"PCM", "Digital", "Master"}

var percent = regexp.MustCompile(`\[(\d+)%\]`)

// Amixer drives the amixer command-line tool. When card is non-empty
// the card-specific controls are tried before the default ones.
type Amixer struct {
	card     string
	controls []string
	run      func(args ...string) ([]byte, error)
}

// NewAmixer creates a mixer for the given ALSA card ID (may be empty).
func NewAmixer(card string) *Amixer {
	return &Amixer{
		card:     card,
		controls: defaultControls,
		run:      runAmixer,
	}
}

func runAmixer(args ...string) ([]byte, error) {
	return exec.Command("amixer", args...).Output()
}

// candidates yields the argument lists to try, card-scoped first.
func (m *Amixer) candidates(build func(card, control string) []string) [][]string {
	var out [][]string
	if m.card != "" {
		for _, control := range m.controls {
			out = append(out, build(m.card, control))
		}
	}
	for _, control := range m.controls {
		out = append(out, build("", control))
	}
	return out
}

// Get returns the current volume percentage.
func (m *Amixer) Get() (int, error) {
	for _, args := range m.candidates(getArgs) {
		out, err := m.run(args...)
		if err != nil || len(out) == 0 {
			continue
		}
		if v, ok := parseVolume(out); ok {
			return v, nil
		}
	}
	return 0, fmt.Errorf("get volume: %w", ErrNoControl)
}

// Set applies the volume percentage.
func (m *Amixer) Set(volume int) error {
	if volume < 0 || volume > 100 {
		return fmt.Errorf("set volume %d: %w", volume, ErrOutOfRange)
	}
	for _, args := range m.candidates(setArgs(volume)) {
		if _, err := m.run(args...); err == nil {
			return nil
		}
	}
	return fmt.Errorf("set volume: %w", ErrNoControl)
}

func getArgs(card, control string) []string {
	args := []string{}
	if card != "" {
		args = append(args, "-c", card)
	}
	return append(args, "-M", "sget", control)
}

func setArgs(volume int) func(card, control string) []string {
	return func(card, control string) []string {
		args := []string{}
		if card != "" {
			args = append(args, "-c", card)
		}
		return append(args, "-q", "-M", "sset", control, strconv.Itoa(volume)+"%")
	}
}

// parseVolume extracts the percentage from amixer output.
func parseVolume(out []byte) (int, bool) {
	m := percent.FindSubmatch(out)
	if m == nil {
		return 0, false
	}
	v, err := strconv.Atoi(string(m[1]))
	if err != nil {
		return 0, false
	}
	return v, true
}

// Verify Amixer implements Mixer at compile time.
var _ Mixer = (*Amixer)(nil)
