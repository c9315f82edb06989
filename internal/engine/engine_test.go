package engine

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
)

// newTestEngine builds an engine without an audio context: Load skips
// arming a device player, and tests drive the pull callback directly.
func newTestEngine(t *testing.T, delay time.Duration) *Engine {
	t.Helper()
	e := &Engine{
		sampleRate: defaultSampleRate,
		delay:      delay,
		finishedCh: make(chan struct{}, 1),
		done:       make(chan struct{}),
		log:        slog.New(slog.DiscardHandler),
	}
	go e.watchFinished()
	t.Cleanup(func() { close(e.done) })
	return e
}

// writeWAV synthesizes a silent WAV fixture with the given frame count.
func writeWAV(t *testing.T, frames int, rate beep.SampleRate) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, beep.Silence(frames), format); err != nil {
		t.Fatal(err)
	}
	return path
}

// drain pulls frames the way the output device does until EOF.
func drain(t *testing.T, e *Engine) {
	t.Helper()
	buf := make([]byte, 4096)
	for i := 0; i < 10000; i++ {
		_, err := e.Read(buf)
		if err == io.EOF {
			return
		}
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
	}
	t.Fatal("stream never completed")
}

func TestLoad_MissingFile(t *testing.T) {
	e := newTestEngine(t, time.Millisecond)

	err := e.Load(filepath.Join(t.TempDir(), "nope.wav"))

	if !errors.Is(err, ErrUnreadable) {
		t.Errorf("Load() error = %v, want ErrUnreadable", err)
	}
	if e.Loaded() {
		t.Error("failed Load() must leave the engine unloaded")
	}
}

func TestLoad_UnsupportedContainer(t *testing.T) {
	e := newTestEngine(t, time.Millisecond)
	path := filepath.Join(t.TempDir(), "noise.wav")
	if err := os.WriteFile(path, []byte("not a wav file"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := e.Load(path); !errors.Is(err, ErrUnreadable) {
		t.Errorf("Load() error = %v, want ErrUnreadable", err)
	}
}

func TestEngine_Lifecycle(t *testing.T) {
	e := newTestEngine(t, time.Millisecond)
	path := writeWAV(t, 2000, defaultSampleRate)

	if e.Start() {
		t.Error("Start() with no track loaded must return false")
	}
	if e.Pause() {
		t.Error("Pause() with no track loaded must return false")
	}

	if err := e.Load(path); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !e.Loaded() {
		t.Fatal("engine should be loaded")
	}
	if p, ok := e.Progress(); !ok || p != 0 {
		t.Errorf("Progress() = %v, %v, want 0, true", p, ok)
	}

	if !e.Start() {
		t.Fatal("Start() should succeed with a loaded track")
	}
	if !e.Continuing() {
		t.Error("Start() should set the continuing flag")
	}

	if !e.Pause() {
		t.Fatal("Pause() should succeed with a loaded track")
	}
	if e.Continuing() {
		t.Error("Pause() should clear the continuing flag")
	}

	e.Stop()
	if e.Loaded() {
		t.Error("Stop() should release the track")
	}
	if _, ok := e.Progress(); ok {
		t.Error("Progress() after Stop() should report no track")
	}
	e.Stop() // idempotent
}

func TestRead_ProgressReachesOne(t *testing.T) {
	e := newTestEngine(t, time.Millisecond)
	path := writeWAV(t, 2000, defaultSampleRate)
	if err := e.Load(path); err != nil {
		t.Fatal(err)
	}
	e.Start()

	drain(t, e)

	if p, ok := e.Progress(); !ok || p != 1 {
		t.Errorf("Progress() after drain = %v, %v, want 1, true", p, ok)
	}
}

func TestRead_ResampledSource(t *testing.T) {
	e := newTestEngine(t, time.Millisecond)
	path := writeWAV(t, 1000, 22050)
	if err := e.Load(path); err != nil {
		t.Fatal(err)
	}
	e.Start()

	drain(t, e)

	if p, ok := e.Progress(); !ok || p != 1 {
		t.Errorf("Progress() after drain = %v, %v, want 1, true", p, ok)
	}
}

func TestRead_AfterDrainReturnsSilence(t *testing.T) {
	e := newTestEngine(t, time.Millisecond)
	path := writeWAV(t, 500, defaultSampleRate)
	if err := e.Load(path); err != nil {
		t.Fatal(err)
	}
	e.Start()
	drain(t, e)

	buf := []byte{0xaa, 0xbb, 0xcc, 0xdd}
	n, err := e.Read(buf)
	if n != len(buf) || err != nil {
		t.Fatalf("Read() after drain = %d, %v", n, err)
	}
	for _, b := range buf {
		if b != 0 {
			t.Fatal("Read() after drain should produce silence")
		}
	}
}

func TestCompletion_NotifiedAfterDelay(t *testing.T) {
	e := newTestEngine(t, 30*time.Millisecond)
	notified := make(chan struct{}, 1)
	e.OnTrackFinished(func() { notified <- struct{}{} })

	path := writeWAV(t, 500, defaultSampleRate)
	if err := e.Load(path); err != nil {
		t.Fatal(err)
	}
	e.Start()
	drain(t, e)

	// The notification is deferred, not synchronous with the last read.
	select {
	case <-notified:
		t.Fatal("completion notified before the grace delay")
	default:
	}

	select {
	case <-notified:
	case <-time.After(2 * time.Second):
		t.Fatal("completion never notified")
	}
}

func TestCompletion_StaleAfterStopStillDelivered(t *testing.T) {
	// The engine delivers late notifications; the handler is expected
	// to re-check state, so a stop racing the grace delay is benign.
	e := newTestEngine(t, 20*time.Millisecond)
	notified := make(chan struct{}, 1)
	e.OnTrackFinished(func() { notified <- struct{}{} })

	path := writeWAV(t, 500, defaultSampleRate)
	if err := e.Load(path); err != nil {
		t.Fatal(err)
	}
	e.Start()
	drain(t, e)
	e.Stop()

	select {
	case <-notified:
	case <-time.After(2 * time.Second):
		t.Fatal("stale completion should still reach the handler")
	}
	if e.Loaded() || e.Continuing() {
		t.Error("engine must stay stopped across a stale notification")
	}
}

func TestEncodeSamples_ClampsRange(t *testing.T) {
	dst := make([]byte, 2*bytesPerFrame)
	encodeSamples(dst, [][2]float64{{2, -2}, {0, 0}})

	hi := int16(uint16(dst[0]) | uint16(dst[1])<<8)
	lo := int16(uint16(dst[2]) | uint16(dst[3])<<8)
	if hi != 32767 {
		t.Errorf("over-range sample = %d, want 32767", hi)
	}
	if lo != -32767 {
		t.Errorf("under-range sample = %d, want -32767", lo)
	}
}
