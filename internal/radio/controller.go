// Package radio wires the playback engine, the mixer, the playlist and
// the control strip into the player's top-level behavior.
package radio

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/ovaum/pocketradio/internal/controls"
	"github.com/ovaum/pocketradio/internal/engine"
	"github.com/ovaum/pocketradio/internal/icons"
	"github.com/ovaum/pocketradio/internal/library"
	"github.com/ovaum/pocketradio/internal/mixer"
	"github.com/ovaum/pocketradio/internal/playlist"
	"github.com/ovaum/pocketradio/internal/state"
)

// Control strip layout. The play/pause switch sits in the middle and
// holds the initial focus.
const (
	ctrlStop = iota
	ctrlPrevious
	ctrlPlayPause
	ctrlSkip
	ctrlShuffle
	ctrlVolumeDown
	ctrlVolumeUp

	initialFocus = ctrlPlayPause
)

// Config carries the controller's collaborators and settings.
type Config struct {
	Engine   engine.Interface
	Mixer    mixer.Mixer
	MediaDir string
	Tracks   []library.Entry
	Palette  controls.Palette
	Autoplay bool
	Logger   *slog.Logger
}

// Controller owns the player state machine: which track is selected,
// which is playing, which control has the focus, and how button events
// translate into engine and mixer calls.
//
// All methods are safe for concurrent use. The track-finished handler
// runs on the engine's coordinator goroutine and takes the same lock as
// the input methods, so continuation never races a button press.
type Controller struct {
	mu sync.Mutex

	engine   engine.Interface
	mix      mixer.Mixer
	pl       *playlist.Playlist
	tracks   []library.Entry
	mediaDir string
	autoplay bool
	log      *slog.Logger

	strip         []controls.Control
	playback      *controls.Group
	playSwitch    *controls.Switch
	shuffleSwitch *controls.Switch
	focused       int

	topIndex int

	volume   int
	volumeOK bool

	lastErr error
}

// New creates a controller over the given collaborators and builds the
// control strip.
func New(cfg Config) *Controller {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	c := &Controller{
		engine:   cfg.Engine,
		mix:      cfg.Mixer,
		pl:       playlist.New(len(cfg.Tracks)),
		tracks:   cfg.Tracks,
		mediaDir: cfg.MediaDir,
		autoplay: cfg.Autoplay,
		log:      log,
		focused:  initialFocus,
	}

	c.buildStrip(cfg.Palette)
	c.strip[c.focused].OnFocus()
	c.refreshVolume()
	c.engine.OnTrackFinished(c.onTrackFinished)

	return c
}

// buildStrip assembles the control strip. Stop and play/pause share a
// group so that stopping clears the pause toggle.
func (c *Controller) buildStrip(palette controls.Palette) {
	c.playSwitch = controls.NewSwitch(icons.Play, icons.Pause, palette,
		c.play, c.pause)
	c.shuffleSwitch = controls.NewSwitch(icons.Order, icons.Random, palette,
		c.shuffleOn, c.shuffleOff)

	stop := controls.NewInstant(icons.Stop, palette, c.stopPlayback)
	c.playback = controls.NewGroup(stop, c.playSwitch)

	c.strip = []controls.Control{
		ctrlStop:       stop,
		ctrlPrevious:   controls.NewInstant(icons.Previous, palette, c.previous),
		ctrlPlayPause:  c.playSwitch,
		ctrlSkip:       controls.NewInstant(icons.Skip, palette, c.next),
		ctrlShuffle:    c.shuffleSwitch,
		ctrlVolumeDown: controls.NewInstant(icons.VolumeDown, palette, c.volumeDown),
		ctrlVolumeUp:   controls.NewInstant(icons.VolumeUp, palette, c.volumeUp),
	}
}

// Playback actions. These run as control callbacks under c.mu, held by
// the input method that delivered the button press.

func (c *Controller) play() bool {
	if c.pl.IsEmpty() {
		return false
	}

	if c.pl.Selected() != c.pl.PlayingTrack() {
		c.pl.AlignToSelected()
		if c.engine.Loaded() {
			c.engine.Stop()
		}
	}

	if !c.engine.Loaded() {
		if !c.loadPlaying() {
			return false
		}
	}

	return c.engine.Start()
}

func (c *Controller) pause() bool {
	return c.engine.Pause()
}

func (c *Controller) stopPlayback() {
	c.engine.Stop()
}

func (c *Controller) previous() {
	c.step(c.pl.Previous)
}

func (c *Controller) next() {
	c.step(c.pl.Next)
}

// step moves the playing position and, when something was playing,
// restarts playback on the new track.
func (c *Controller) step(move func() int) {
	if c.pl.IsEmpty() {
		return
	}
	wasActive := c.engine.Active()
	move()
	if wasActive {
		c.engine.Stop()
		c.play()
	}
}

func (c *Controller) shuffleOn() bool {
	c.pl.Shuffle()
	return true
}

func (c *Controller) shuffleOff() bool {
	c.pl.Sequence()
	return true
}

func (c *Controller) volumeDown() {
	c.adjustVolume(mixer.Decrease)
}

func (c *Controller) volumeUp() {
	c.adjustVolume(mixer.Increase)
}

// adjustVolume steps the mixer volume. Mixer failures degrade to a
// silent no-op and mark the volume display unavailable.
func (c *Controller) adjustVolume(step func(int) int) {
	v, err := c.mix.Get()
	if err != nil {
		c.volumeOK = false
		c.log.Warn("volume read failed", "error", err)
		return
	}
	v = step(v)
	if err := c.mix.Set(v); err != nil {
		c.volumeOK = false
		c.log.Warn("volume write failed", "error", err)
		return
	}
	c.volume = v
	c.volumeOK = true
}

func (c *Controller) refreshVolume() {
	v, err := c.mix.Get()
	if err != nil {
		c.volumeOK = false
		return
	}
	c.volume = v
	c.volumeOK = true
}

// loadPlaying loads the current playing track into the engine. A load
// failure is remembered for display and logged, never fatal.
func (c *Controller) loadPlaying() bool {
	track := c.pl.PlayingTrack()
	if track < 0 {
		return false
	}
	path := filepath.Join(c.mediaDir, c.tracks[track].Name)
	if err := c.engine.Load(path); err != nil {
		c.lastErr = err
		c.log.Error("track load failed", "path", path, "error", err)
		return false
	}
	c.lastErr = nil
	return true
}

// onTrackFinished advances to the next track after the engine's grace
// delay. A stale notification, one that arrives after the user paused
// or stopped, finds Continuing false and does nothing.
func (c *Controller) onTrackFinished() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.engine.Continuing() || c.pl.IsEmpty() {
		return
	}

	c.pl.Next()
	c.engine.Stop()
	if c.loadPlaying() {
		c.engine.Start()
	}
}

// Input events.

// OnKeyLeft moves the focus one control to the left.
func (c *Controller) OnKeyLeft() { c.moveFocus(-1) }

// OnKeyRight moves the focus one control to the right.
func (c *Controller) OnKeyRight() { c.moveFocus(1) }

func (c *Controller) moveFocus(delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.focused + delta
	if next < 0 || next >= len(c.strip) {
		return
	}
	c.strip[c.focused].OnBlur()
	c.focused = next
	c.strip[c.focused].OnFocus()
}

// OnKeyUp moves the track selection up.
func (c *Controller) OnKeyUp() { c.moveSelection(-1) }

// OnKeyDown moves the track selection down.
func (c *Controller) OnKeyDown() { c.moveSelection(1) }

func (c *Controller) moveSelection(delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pl.IsEmpty() {
		return
	}
	c.pl.SetSelected(c.pl.Selected() + delta)
}

// OnSelect delivers the select button to the focused control, through
// its group when it has one.
func (c *Controller) OnSelect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectControl(c.strip[c.focused])
}

func (c *Controller) selectControl(ctl controls.Control) {
	if c.playback.Contains(ctl) {
		c.playback.Select(ctl)
		return
	}
	ctl.OnSelect()
}

// OnEnter prepares the player when its view becomes active and, when
// autoplay is configured, starts playback.
func (c *Controller) OnEnter() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.strip[c.focused].OnFocus()
	if c.autoplay && !c.pl.IsEmpty() && !c.engine.Active() {
		c.playback.Select(c.playSwitch)
	}
}

// OnLeave stops playback and resets the control strip when the view is
// left.
func (c *Controller) OnLeave() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.engine.Stop()
	for _, ctl := range c.strip {
		ctl.Reset()
	}
	c.strip[c.focused].OnFocus()
}

// Rescan replaces the track list after a media directory change.
// Playback stops, the selection follows the previously selected file
// name when it survived the rescan, and the play mode is kept.
func (c *Controller) Rescan(entries []library.Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	selectedName := c.selectedName()
	shuffled := c.pl.Mode() == playlist.Shuffled

	c.engine.Stop()
	c.playSwitch.Reset()
	c.tracks = entries
	c.pl = playlist.New(len(entries))
	c.topIndex = 0

	if shuffled {
		c.pl.Shuffle()
	}
	if i := indexOf(entries, selectedName); i >= 0 {
		c.pl.SetSelected(i)
		c.pl.AlignToSelected()
	}
}

// Render accessors.

// Tracks returns the scanned track list.
func (c *Controller) Tracks() []library.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tracks
}

// SelectedIndex returns the browsed track index, or -1 when the list is
// empty.
func (c *Controller) SelectedIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pl.IsEmpty() {
		return -1
	}
	return c.pl.Selected()
}

// PlayingIndex returns the playing track index, or -1 when the list is
// empty.
func (c *Controller) PlayingIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pl.PlayingTrack()
}

// Controls returns the control strip in display order.
func (c *Controller) Controls() []controls.Control {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.strip
}

// Progress reports playback progress in [0, 1] and whether a track is
// loaded.
func (c *Controller) Progress() (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.Progress()
}

// TrackLine renders the status line: playback progress and the playing
// track name, a load error, or "Empty" without tracks.
func (c *Controller) TrackLine() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.tracks) == 0 {
		return "Empty"
	}
	if c.lastErr != nil {
		return fmt.Sprintf("unreadable: %s", c.tracks[c.pl.PlayingTrack()].Name)
	}
	name := c.tracks[c.pl.PlayingTrack()].Name
	if p, ok := c.engine.Progress(); ok {
		return fmt.Sprintf("%5.1f%%: %s", p*100, name)
	}
	return name
}

// VolumeLine renders the volume display, "N/A" when the mixer is
// unavailable.
func (c *Controller) VolumeLine() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.volumeOK {
		return "N/A"
	}
	return fmt.Sprintf("%d%%", c.volume)
}

// Window returns the [start, end) slice bounds of the track list
// visible in rows lines, scrolling so the selection stays in view.
func (c *Controller) Window(rows int) (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if rows <= 0 || len(c.tracks) == 0 {
		return 0, 0
	}
	sel := c.pl.Selected()
	if sel < c.topIndex {
		c.topIndex = sel
	}
	if sel >= c.topIndex+rows {
		c.topIndex = sel - rows + 1
	}
	end := c.topIndex + rows
	if end > len(c.tracks) {
		end = len(c.tracks)
	}
	return c.topIndex, end
}

// Session snapshots the restorable UI state.
func (c *Controller) Session() state.Session {
	c.mu.Lock()
	defer c.mu.Unlock()

	return state.Session{
		ShuffleOn:      c.pl.Mode() == playlist.Shuffled,
		SelectedName:   c.selectedName(),
		FocusedControl: c.focused,
	}
}

// RestoreSession applies a saved session. Unknown track names and
// out-of-range focus indexes are ignored.
func (c *Controller) RestoreSession(s *state.Session) {
	if s == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if s.ShuffleOn && !c.shuffleSwitch.Switched() {
		c.shuffleSwitch.OnSelect()
	}
	if i := indexOf(c.tracks, s.SelectedName); i >= 0 {
		c.pl.SetSelected(i)
		c.pl.AlignToSelected()
	}
	if s.FocusedControl >= 0 && s.FocusedControl < len(c.strip) {
		c.strip[c.focused].OnBlur()
		c.focused = s.FocusedControl
		c.strip[c.focused].OnFocus()
	}
}

func (c *Controller) selectedName() string {
	if c.pl.IsEmpty() {
		return ""
	}
	return c.tracks[c.pl.Selected()].Name
}

func indexOf(entries []library.Entry, name string) int {
	if name == "" {
		return -1
	}
	for i, e := range entries {
		if e.Name == name {
			return i
		}
	}
	return -1
}
