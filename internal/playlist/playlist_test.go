package playlist

import (
	"math/rand"
	"testing"
)

func testPlaylist(n int) *Playlist {
	return NewWithRand(n, rand.New(rand.NewSource(1)))
}

func TestNew_StartsSequentialIdentity(t *testing.T) {
	p := testPlaylist(4)

	if p.Mode() != Sequential {
		t.Errorf("Mode() = %v, want Sequential", p.Mode())
	}
	for i, track := range p.PlayOrder() {
		if track != i {
			t.Fatalf("PlayOrder()[%d] = %d, want %d", i, track, i)
		}
	}
	if p.PlayingTrack() != 0 {
		t.Errorf("PlayingTrack() = %d, want 0", p.PlayingTrack())
	}
}

func TestNextThenPrevious_RestoresPosition(t *testing.T) {
	for _, n := range []int{1, 2, 3, 7} {
		p := testPlaylist(n)
		p.SetSelected(n / 2)
		p.AlignToSelected()
		before := p.PlayingPosition()

		p.Next()
		p.Previous()

		if p.PlayingPosition() != before {
			t.Errorf("n=%d: position = %d after next+previous, want %d",
				n, p.PlayingPosition(), before)
		}
	}
}

func TestNext_WrapsAround(t *testing.T) {
	p := testPlaylist(3)
	p.Next()
	p.Next()
	p.Next()
	if p.PlayingPosition() != 0 {
		t.Errorf("position = %d after 3 steps over 3 tracks, want 0", p.PlayingPosition())
	}
}

func TestPrevious_WrapsAround(t *testing.T) {
	p := testPlaylist(3)
	p.Previous()
	if p.PlayingPosition() != 2 {
		t.Errorf("position = %d, want 2", p.PlayingPosition())
	}
	if p.Selected() != p.PlayingTrack() {
		t.Error("selection should follow manual navigation")
	}
}

func TestShuffle_KeepsSelectedPlaying(t *testing.T) {
	p := testPlaylist(8)
	p.SetSelected(5)
	p.AlignToSelected()

	p.Shuffle()

	if p.Mode() != Shuffled {
		t.Errorf("Mode() = %v, want Shuffled", p.Mode())
	}
	if p.PlayingTrack() != 5 {
		t.Errorf("PlayingTrack() = %d after shuffle, want 5", p.PlayingTrack())
	}
}

func TestShuffle_ProducesPermutation(t *testing.T) {
	p := testPlaylist(16)
	p.Shuffle()

	seen := make(map[int]bool)
	for _, track := range p.PlayOrder() {
		if track < 0 || track >= 16 || seen[track] {
			t.Fatalf("play order is not a permutation: %v", p.PlayOrder())
		}
		seen[track] = true
	}
}

func TestShuffleThenSequence_RestoresIdentity(t *testing.T) {
	p := testPlaylist(6)
	p.SetSelected(3)
	p.Shuffle()

	p.Sequence()

	for i, track := range p.PlayOrder() {
		if track != i {
			t.Fatalf("PlayOrder()[%d] = %d after Sequence(), want identity", i, track)
		}
	}
	if p.PlayingPosition() != p.Selected() {
		t.Errorf("position = %d, want selected %d", p.PlayingPosition(), p.Selected())
	}
	if p.Mode() != Sequential {
		t.Errorf("Mode() = %v, want Sequential", p.Mode())
	}
}

func TestAlignToSelected_MovesPlayingPosition(t *testing.T) {
	p := testPlaylist(5)
	p.Shuffle()
	p.SetSelected(4)

	p.AlignToSelected()

	if p.PlayingTrack() != 4 {
		t.Errorf("PlayingTrack() = %d, want 4", p.PlayingTrack())
	}
}

func TestEmptyPlaylist_AllNoOps(t *testing.T) {
	p := testPlaylist(0)

	if !p.IsEmpty() {
		t.Fatal("playlist of 0 tracks should be empty")
	}
	if p.PlayingTrack() != -1 {
		t.Errorf("PlayingTrack() = %d, want -1", p.PlayingTrack())
	}
	if p.Next() != -1 || p.Previous() != -1 {
		t.Error("navigation on empty playlist should return -1")
	}
	p.SetSelected(3)
	if p.Selected() != 0 {
		t.Error("SetSelected on empty playlist should be a no-op")
	}
	p.Shuffle()
	p.Sequence()
}

func TestSetSelected_Clamps(t *testing.T) {
	p := testPlaylist(3)

	p.SetSelected(-2)
	if p.Selected() != 0 {
		t.Errorf("Selected() = %d, want 0", p.Selected())
	}
	p.SetSelected(99)
	if p.Selected() != 2 {
		t.Errorf("Selected() = %d, want 2", p.Selected())
	}
}
