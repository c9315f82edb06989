// Package engine streams PCM audio to the hardware output device. It
// decodes WAV containers on demand from the device's pull loop and
// reports track completion through a deferred notification so the
// completion handler never runs on the audio thread.
package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
)

// ErrUnreadable reports a track that cannot be opened or is not a
// supported container.
var ErrUnreadable = errors.New("track unreadable")

const (
	defaultSampleRate = 44100
	channelCount      = 2
	bytesPerFrame     = channelCount * 2 // s16le
	resampleQuality   = 4

	// Grace period between the last decoded frame and the completion
	// notification. Keeps the handler well clear of the audio thread
	// while the device drains its buffer.
	defaultCompletionDelay = time.Second
)

// Config controls engine construction.
type Config struct {
	// PreferredDevice is matched case-insensitively against the names
	// of playback-capable sound cards. Empty or unmatched falls back
	// to the system default route.
	PreferredDevice string

	// CompletionDelay overrides the grace period before the completion
	// notification fires. Zero means the default of one second.
	CompletionDelay time.Duration

	Logger *slog.Logger
}

// Engine owns the output device handle and the frame counters of the
// loaded track.
//
// Two execution contexts touch it: the device's own mixer goroutine
// calling Read, and the application calling Load/Start/Pause/Stop. All
// mutable state sits behind one mutex; Read holds it only while
// decoding into the caller's buffer.
type Engine struct {
	mu sync.Mutex

	ctx    *oto.Context
	player *oto.Player

	file     *os.File
	streamer beep.StreamSeekCloser
	src      beep.Streamer
	format   beep.Format

	totalFrames  int
	playedFrames int
	continuing   bool
	drained      bool

	sampleRate beep.SampleRate
	delay      time.Duration
	card       Card
	cardOK     bool

	finishedCh chan struct{}
	done       chan struct{}
	onFinished func()

	log *slog.Logger
	buf [512][2]float64
}

// New opens the audio output once for the lifetime of the process and
// starts the completion coordinator.
func New(cfg Config) (*Engine, error) {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	delay := cfg.CompletionDelay
	if delay == 0 {
		delay = defaultCompletionDelay
	}

	e := &Engine{
		sampleRate: defaultSampleRate,
		delay:      delay,
		finishedCh: make(chan struct{}, 1),
		done:       make(chan struct{}),
		log:        log,
	}

	e.card, e.cardOK = FindCard(cfg.PreferredDevice)
	if e.cardOK {
		log.Info("audio output card", "card", e.card.ID, "name", e.card.Name)
	} else if cfg.PreferredDevice != "" {
		log.Warn("preferred output device not found, using default route",
			"preferred", cfg.PreferredDevice)
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   int(e.sampleRate),
		ChannelCount: channelCount,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   50 * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("open audio context: %w", err)
	}
	<-ready
	e.ctx = ctx

	go e.watchFinished()
	return e, nil
}

// OutputCard returns the selected playback card, if one matched the
// preferred device name.
func (e *Engine) OutputCard() (Card, bool) {
	return e.card, e.cardOK
}

// Load opens the WAV resource at path and arms a fresh output stream
// against it. Any previously loaded track is released first. Load
// implies ready-to-start; it does not begin streaming.
func (e *Engine) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	e.Stop()

	e.mu.Lock()
	e.file = f
	e.streamer = streamer
	e.format = format
	total := streamer.Len()
	e.totalFrames = total
	e.playedFrames = 0
	e.drained = false

	var src beep.Streamer = streamer
	if format.SampleRate != e.sampleRate {
		src = beep.Resample(resampleQuality, format.SampleRate, e.sampleRate, streamer)
	}
	e.src = src

	if e.ctx != nil {
		e.player = e.ctx.NewPlayer(e)
	}
	e.mu.Unlock()

	e.log.Debug("track loaded", "path", path, "frames", total,
		"rate", int(format.SampleRate))
	return nil
}

// Start resumes or starts streaming. Returns false if no track is
// loaded.
func (e *Engine) Start() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.streamer == nil {
		return false
	}
	e.continuing = true
	if e.player != nil {
		e.player.Play()
	}
	return true
}

// Pause halts streaming without releasing the device. Returns false if
// no track is loaded.
func (e *Engine) Pause() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.streamer == nil {
		return false
	}
	e.continuing = false
	if e.player != nil {
		e.player.Pause()
	}
	return true
}

// Stop releases the output stream and zeroes the frame counters.
// Idempotent; safe to call with a completion notification in flight.
func (e *Engine) Stop() {
	e.mu.Lock()
	player := e.player
	file := e.file
	streamer := e.streamer
	e.player = nil
	e.file = nil
	e.streamer = nil
	e.src = nil
	e.totalFrames = 0
	e.playedFrames = 0
	e.continuing = false
	e.drained = false
	e.mu.Unlock()

	// Closing the player can wait on an in-flight Read, so it happens
	// outside the lock.
	if player != nil {
		player.Close()
	}
	if streamer != nil {
		streamer.Close()
	}
	if file != nil {
		file.Close()
	}
}

// Loaded reports whether a track is loaded.
func (e *Engine) Loaded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.streamer != nil
}

// Active reports whether a loaded track is currently streaming.
func (e *Engine) Active() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.streamer != nil && e.continuing
}

// Continuing reports whether playback should advance to the next track
// when the current one completes. Cleared by Pause and Stop.
func (e *Engine) Continuing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.continuing
}

// Progress returns the playback fraction in [0,1]. The second return
// is false when no track is loaded.
func (e *Engine) Progress() (float64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.totalFrames == 0 {
		return 0, false
	}
	p := float64(e.playedFrames) / float64(e.totalFrames)
	if p > 1 {
		p = 1
	}
	return p, true
}

// OnTrackFinished registers the completion handler. It runs on the
// engine's coordinator goroutine, never on the audio thread, so it may
// call back into Stop, Load and Start.
func (e *Engine) OnTrackFinished(fn func()) {
	e.mu.Lock()
	e.onFinished = fn
	e.mu.Unlock()
}

// Close shuts down the coordinator and suspends the audio context.
func (e *Engine) Close() error {
	e.Stop()
	close(e.done)
	if e.ctx != nil {
		return e.ctx.Suspend()
	}
	return nil
}

// Read is the device pull callback: the output mixer goroutine calls
// it whenever it needs more frames. It decodes up to len(p) bytes of
// interleaved s16le samples and advances the played-frame counter.
//
// When the source is exhausted — or fails mid-stream, which is treated
// as completion — it returns the partial buffer with io.EOF and arms
// the deferred completion notification. It must never block waiting on
// the application.
func (e *Engine) Read(p []byte) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.streamer == nil || e.drained {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}

	frames := len(p) / bytesPerFrame
	n := 0
	complete := false
	for n < frames {
		chunk := frames - n
		if chunk > len(e.buf) {
			chunk = len(e.buf)
		}
		cn, ok := e.src.Stream(e.buf[:chunk])
		encodeSamples(p[n*bytesPerFrame:], e.buf[:cn])
		n += cn
		if !ok {
			complete = true
			break
		}
	}

	e.playedFrames = e.streamer.Position()
	if err := e.streamer.Err(); err != nil {
		// A read error mid-stream behaves as if the track finished.
		e.log.Warn("stream read error, treating as completion", "err", err)
		complete = true
	}
	if complete || e.playedFrames >= e.totalFrames {
		e.drained = true
		time.AfterFunc(e.delay, e.signalFinished)
		return n * bytesPerFrame, io.EOF
	}
	return n * bytesPerFrame, nil
}

// signalFinished posts a completion event. Non-blocking: a pending
// event already covers the notification.
func (e *Engine) signalFinished() {
	select {
	case e.finishedCh <- struct{}{}:
	default:
	}
}

// watchFinished drains completion events and invokes the registered
// handler off the audio thread.
func (e *Engine) watchFinished() {
	for {
		select {
		case <-e.done:
			return
		case <-e.finishedCh:
			e.mu.Lock()
			fn := e.onFinished
			e.mu.Unlock()
			if fn != nil {
				fn()
			}
		}
	}
}

// encodeSamples writes float64 sample pairs as interleaved s16le.
func encodeSamples(dst []byte, samples [][2]float64) {
	for i, sample := range samples {
		for ch := 0; ch < channelCount; ch++ {
			v := sample[ch]
			if v < -1 {
				v = -1
			}
			if v > 1 {
				v = 1
			}
			s := int16(v * 32767)
			off := i*bytesPerFrame + ch*2
			dst[off] = byte(s)
			dst[off+1] = byte(s >> 8)
		}
	}
}
