package mixer

// Mock is an in-memory mixer for testing.
type Mock struct {
	volume int
	err    error
}

// NewMock creates a mock mixer starting at the given volume.
func NewMock(volume int) *Mock {
	return &Mock{volume: volume}
}

func (m *Mock) Get() (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.volume, nil
}

func (m *Mock) Set(volume int) error {
	if m.err != nil {
		return m.err
	}
	if volume < 0 || volume > 100 {
		return ErrOutOfRange
	}
	m.volume = volume
	return nil
}

// Test helpers

func (m *Mock) SetError(err error) { m.err = err }

func (m *Mock) Volume() int { return m.volume }

// Verify Mock implements Mixer at compile time.
var _ Mixer = (*Mock)(nil)
