package library

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestScan_FiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "Zebra.wav", "alpha.wav", "notes.txt", "Beta.WAV")
	if err := os.Mkdir(filepath.Join(dir, "sub.wav"), 0o755); err != nil {
		t.Fatal(err)
	}

	entries := Scan(dir, []string{".wav"})

	got := Names(entries)
	want := []string{"alpha.wav", "Beta.WAV", "Zebra.wav"}
	if len(got) != len(want) {
		t.Fatalf("Scan() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Scan() = %v, want %v", got, want)
		}
	}
}

func TestScan_MissingDirectory(t *testing.T) {
	entries := Scan(filepath.Join(t.TempDir(), "absent"), []string{".wav"})
	if len(entries) != 0 {
		t.Errorf("Scan() on missing dir = %v, want empty", entries)
	}
}

func TestScan_ReportsSizes(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.wav"), make([]byte, 1234), 0o644); err != nil {
		t.Fatal(err)
	}

	entries := Scan(dir, []string{".wav"})

	if len(entries) != 1 || entries[0].Size != 1234 {
		t.Errorf("Scan() = %v, want one 1234-byte entry", entries)
	}
}

func TestWatcher_ReportsChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	writeFiles(t, dir, "new.wav")

	select {
	case <-w.Events:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher never reported the new file")
	}
}

func TestWatcher_CoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	writeFiles(t, dir, "a.wav", "b.wav", "c.wav")

	select {
	case <-w.Events:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher never reported the burst")
	}
	// The burst settles into at most one further pending event.
	time.Sleep(2 * debounce)
	select {
	case <-w.Events:
	default:
	}
	select {
	case <-w.Events:
		t.Error("watcher delivered more than two events for one burst")
	default:
	}
}
