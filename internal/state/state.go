// Package state persists session preferences across restarts: the
// shuffle mode, the track the user was browsing, and the focused
// control. Playback position is deliberately not saved.
package state

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName    = "pocketradio"
	dbFileName = "pocketradio.db"
)

// Session is the saved snapshot of the player UI.
type Session struct {
	ShuffleOn      bool
	SelectedName   string // file name of the browsed track
	FocusedControl int
}

type Manager struct {
	db *sql.DB
}

// Open opens (and if necessary creates) the state database in the XDG
// data directory.
func Open() (*Manager, error) {
	dbPath, err := xdg.DataFile(filepath.Join(appName, dbFileName))
	if err != nil {
		return nil, err
	}
	return OpenAt(dbPath)
}

// OpenAt opens the state database at an explicit path.
func OpenAt(dbPath string) (*Manager, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Manager{db: db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS session (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			shuffle_on INTEGER NOT NULL DEFAULT 0,
			selected_name TEXT,
			focused_control INTEGER NOT NULL DEFAULT 0
		);
	`)
	return err
}

func (m *Manager) Close() error {
	return m.db.Close()
}

// GetSession returns the saved session, or nil on first run.
func (m *Manager) GetSession() (*Session, error) {
	row := m.db.QueryRow(`
		SELECT shuffle_on, selected_name, focused_control
		FROM session WHERE id = 1
	`)

	var s Session
	var selectedName sql.NullString
	err := row.Scan(&s.ShuffleOn, &selectedName, &s.FocusedControl)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved state is valid on first run
	}
	if err != nil {
		return nil, err
	}
	s.SelectedName = selectedName.String
	return &s, nil
}

// SaveSession persists the session snapshot.
func (m *Manager) SaveSession(s Session) error {
	_, err := m.db.Exec(`
		INSERT INTO session (id, shuffle_on, selected_name, focused_control)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			shuffle_on = excluded.shuffle_on,
			selected_name = excluded.selected_name,
			focused_control = excluded.focused_control
	`, s.ShuffleOn, s.SelectedName, s.FocusedControl)
	return err
}
