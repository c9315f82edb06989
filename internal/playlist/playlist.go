// Package playlist maintains the play order over a session's track
// list: a permutation of track indices, the position being played, and
// the track the user is browsing.
package playlist

import (
	"math/rand"
	"time"
)

// Mode is the traversal mode of the play order.
type Mode int

const (
	Sequential Mode = iota
	Shuffled
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Sequential:
		return "Sequential"
	case Shuffled:
		return "Shuffled"
	default:
		return "Unknown"
	}
}

// Playlist holds a permutation of 0..n-1 plus the playing position and
// the selected (browsed) track. It is pure data: starting and stopping
// streams is the controller's job.
type Playlist struct {
	order      []int
	playingPos int
	selected   int
	mode       Mode
	rng        *rand.Rand
}

// New creates a sequential playlist over n tracks.
func New(n int) *Playlist {
	return NewWithRand(n, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand creates a playlist with an explicit random source.
func NewWithRand(n int, rng *rand.Rand) *Playlist {
	p := &Playlist{
		order: make([]int, n),
		rng:   rng,
	}
	for i := range p.order {
		p.order[i] = i
	}
	return p
}

// Len returns the number of tracks.
func (p *Playlist) Len() int { return len(p.order) }

// IsEmpty returns true if the playlist has no tracks.
func (p *Playlist) IsEmpty() bool { return len(p.order) == 0 }

// Mode returns the current traversal mode.
func (p *Playlist) Mode() Mode { return p.mode }

// PlayOrder returns a copy of the current permutation.
func (p *Playlist) PlayOrder() []int {
	order := make([]int, len(p.order))
	copy(order, p.order)
	return order
}

// PlayingPosition returns the index into the play order of the track
// currently loaded or loading.
func (p *Playlist) PlayingPosition() int { return p.playingPos }

// PlayingTrack returns the track index at the playing position, or -1
// if the playlist is empty.
func (p *Playlist) PlayingTrack() int {
	if p.IsEmpty() {
		return -1
	}
	return p.order[p.playingPos]
}

// Selected returns the track index the user is browsing.
func (p *Playlist) Selected() int { return p.selected }

// SetSelected sets the browsed track, clamped to the valid range. It
// never affects playback.
func (p *Playlist) SetSelected(track int) {
	if p.IsEmpty() {
		return
	}
	if track < 0 {
		track = 0
	}
	if track >= len(p.order) {
		track = len(p.order) - 1
	}
	p.selected = track
}

// Next advances the playing position by one with wrap-around, moves the
// selection along, and returns the new playing track (-1 if empty).
func (p *Playlist) Next() int {
	if p.IsEmpty() {
		return -1
	}
	p.playingPos = (p.playingPos + 1) % len(p.order)
	p.selected = p.order[p.playingPos]
	return p.selected
}

// Previous moves the playing position back by one with wrap-around,
// moves the selection along, and returns the new playing track.
func (p *Playlist) Previous() int {
	if p.IsEmpty() {
		return -1
	}
	p.playingPos = (p.playingPos - 1 + len(p.order)) % len(p.order)
	p.selected = p.order[p.playingPos]
	return p.selected
}

// AlignToSelected relocates the playing position to the play-order slot
// holding the selected track.
func (p *Playlist) AlignToSelected() {
	p.playingPos = p.slotOf(p.selected)
}

// Shuffle randomly permutes the play order, keeps the playing position
// on the selected track's new slot, and marks the mode Shuffled.
func (p *Playlist) Shuffle() {
	p.rng.Shuffle(len(p.order), func(i, j int) {
		p.order[i], p.order[j] = p.order[j], p.order[i]
	})
	p.playingPos = p.slotOf(p.selected)
	p.mode = Shuffled
}

// Sequence resets the play order to identity, points the playing
// position at the selected track, and marks the mode Sequential.
func (p *Playlist) Sequence() {
	for i := range p.order {
		p.order[i] = i
	}
	p.playingPos = p.selected
	p.mode = Sequential
}

func (p *Playlist) slotOf(track int) int {
	for slot, t := range p.order {
		if t == track {
			return slot
		}
	}
	return 0
}
