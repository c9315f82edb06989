package engine

// Mock is a test double for the playback engine.
type Mock struct {
	loaded     bool
	continuing bool
	progress   float64
	loadErr    error
	loadCalls  []string
	stopCalls  int
	onFinished func()
}

// NewMock creates a new mock engine for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Load(path string) error {
	m.loadCalls = append(m.loadCalls, path)
	if m.loadErr != nil {
		return m.loadErr
	}
	m.loaded = true
	m.progress = 0
	return nil
}

func (m *Mock) Start() bool {
	if !m.loaded {
		return false
	}
	m.continuing = true
	return true
}

func (m *Mock) Pause() bool {
	if !m.loaded {
		return false
	}
	m.continuing = false
	return true
}

func (m *Mock) Stop() {
	m.stopCalls++
	m.loaded = false
	m.continuing = false
	m.progress = 0
}

func (m *Mock) Progress() (float64, bool) {
	if !m.loaded {
		return 0, false
	}
	return m.progress, true
}

func (m *Mock) Loaded() bool { return m.loaded }

func (m *Mock) Active() bool { return m.loaded && m.continuing }

func (m *Mock) Continuing() bool { return m.continuing }

func (m *Mock) OnTrackFinished(fn func()) { m.onFinished = fn }

func (m *Mock) Close() error {
	m.Stop()
	return nil
}

// Test helpers

func (m *Mock) SetLoadError(err error) { m.loadErr = err }

func (m *Mock) SetProgress(p float64) { m.progress = p }

func (m *Mock) LoadCalls() []string { return m.loadCalls }

func (m *Mock) StopCalls() int { return m.stopCalls }

// SimulateFinished invokes the registered completion handler the way
// the coordinator goroutine would after the grace delay.
func (m *Mock) SimulateFinished() {
	if m.onFinished != nil {
		m.onFinished()
	}
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
