package state

import (
	"path/filepath"
	"testing"
)

func openTest(t *testing.T) *Manager {
	t.Helper()
	m, err := OpenAt(filepath.Join(t.TempDir(), "state", "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestGetSession_FirstRun(t *testing.T) {
	m := openTest(t)

	s, err := m.GetSession()
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if s != nil {
		t.Errorf("GetSession() on empty db = %+v, want nil", s)
	}
}

func TestSession_RoundTrip(t *testing.T) {
	m := openTest(t)

	want := Session{ShuffleOn: true, SelectedName: "track7.wav", FocusedControl: 4}
	if err := m.SaveSession(want); err != nil {
		t.Fatalf("SaveSession() error = %v", err)
	}

	got, err := m.GetSession()
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if got == nil || *got != want {
		t.Errorf("GetSession() = %+v, want %+v", got, want)
	}
}

func TestSaveSession_Overwrites(t *testing.T) {
	m := openTest(t)

	if err := m.SaveSession(Session{ShuffleOn: true, SelectedName: "a.wav"}); err != nil {
		t.Fatal(err)
	}
	if err := m.SaveSession(Session{SelectedName: "b.wav", FocusedControl: 2}); err != nil {
		t.Fatal(err)
	}

	got, err := m.GetSession()
	if err != nil {
		t.Fatal(err)
	}
	if got.ShuffleOn || got.SelectedName != "b.wav" || got.FocusedControl != 2 {
		t.Errorf("GetSession() = %+v, want the second save", got)
	}
}
