package engine

// Interface defines the playback engine contract for dependency
// injection and testing.
type Interface interface {
	Load(path string) error
	Start() bool
	Pause() bool
	Stop()
	Progress() (float64, bool)
	Loaded() bool
	Active() bool
	Continuing() bool
	OnTrackFinished(fn func())
	Close() error
}

// Verify Engine implements Interface at compile time.
var _ Interface = (*Engine)(nil)
